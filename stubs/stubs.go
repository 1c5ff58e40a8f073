package stubs

var Publish = "Relay.Publish"
var Subscribe = "Relay.Subscribe"
var Time = "Relay.Time"

type PublishRequest struct {
	Channel string
	Message []byte
}

type PublishResponse struct {
	Timetoken string
}

// SubscribeRequest asks for every message published on Channel after
// Timetoken. An empty or "0" timetoken only returns the current timetoken.
type SubscribeRequest struct {
	Channel   string
	Timetoken string
}

type SubscribeResponse struct {
	Timetoken string
	Messages  [][]byte
}

type TimeRequest struct{}

type TimeResponse struct {
	Timetoken string
}
