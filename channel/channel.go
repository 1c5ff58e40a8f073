// Package channel delivers raw grid messages between participants over a
// named publish/subscribe channel.
package channel

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed channel client or relay.
var ErrClosed = errors.New("channel closed")

// Timetoken is an opaque cursor. It is only passed back to Subscribe to ask
// for messages published after it.
type Timetoken string

// Zero is the cursor of a subscriber that has not polled yet.
const Zero Timetoken = "0"

// Batch is the result of one poll.
type Batch struct {
	Cursor   Timetoken
	Messages [][]byte
}

// Channel is the narrow interface the session uses to consume and produce
// messages. Delivery is not guaranteed and nothing is retried.
type Channel interface {
	Publish(ctx context.Context, channel string, msg []byte) (Timetoken, error)
	Subscribe(ctx context.Context, channel string, cursor Timetoken) (Batch, error)
	Close() error
}

func isInitial(t Timetoken) bool {
	return t == "" || t == Zero
}
