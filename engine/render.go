package engine

import (
	"io"
	"strings"
)

// Render draws one line per row and one glyph per cell.
func Render(g *Grid) string {
	var sb strings.Builder
	sb.Grow((g.width*3 + 1) * g.height)
	writeRows(&sb, g)
	return sb.String()
}

// RenderTo writes the same text as Render to w.
func RenderTo(w io.Writer, g *Grid) error {
	var sb strings.Builder
	writeRows(&sb, g)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeRows(sb *strings.Builder, g *Grid) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.at(y, x) == Alive {
				sb.WriteRune(AliveGlyph)
			} else {
				sb.WriteRune(DeadGlyph)
			}
		}
		sb.WriteByte('\n')
	}
}

// Pixels fills dst (4 bytes per cell, RGBA) with a bitmap of g and returns
// it. dst is reallocated if it is too short.
func Pixels(g *Grid, dst []byte, alive, dead [4]byte) []byte {
	n := len(g.cells) * 4
	if len(dst) < n {
		dst = make([]byte, n)
	}
	for i, c := range g.cells {
		px := dead
		if c == Alive {
			px = alive
		}
		copy(dst[i*4:i*4+4], px[:])
	}
	return dst[:n]
}
