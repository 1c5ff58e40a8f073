package util

// Cell is used as the return type for the alive-cell lists and flipped-cell updates.
type Cell struct {
	X, Y int
}
