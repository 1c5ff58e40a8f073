package channel

import (
	"context"
	"errors"
	"log"
	"time"
)

// ErrorPause is how long Listen waits after a failed poll before polling
// again.
var ErrorPause = time.Second

// Listen polls name until ctx is done, handing every message to deliver in
// the order the channel returned them. It keeps the cursor between polls so
// each message is delivered once per successful poll.
func Listen(ctx context.Context, ch Channel, name string, deliver func(msg []byte)) error {
	cursor := Zero
	for {
		batch, err := ch.Subscribe(ctx, name, cursor)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, ErrClosed) {
				return err
			}
			log.Printf("[Channel] Poll of %s failed: %v", name, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(ErrorPause):
			}
			continue
		}
		for _, msg := range batch.Messages {
			deliver(msg)
		}
		if batch.Cursor != "" {
			cursor = batch.Cursor
		}
	}
}
