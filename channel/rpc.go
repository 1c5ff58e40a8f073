package channel

import (
	"context"
	"fmt"
	"net/rpc"

	"uk.ac.bris.cs/sharedlife/stubs"
)

// RPCChannel talks to a Relay served by the broker over net/rpc.
type RPCChannel struct {
	client *rpc.Client
}

func DialRelay(addr string) (*RPCChannel, error) {
	client, err := rpc.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dialing relay %s: %w", addr, err)
	}
	return &RPCChannel{client: client}, nil
}

// call runs one RPC and gives up waiting when ctx is done. The reply of an
// abandoned call is discarded by net/rpc.
func (c *RPCChannel) call(ctx context.Context, method string, req, res interface{}) error {
	call := c.client.Go(method, req, res, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case done := <-call.Done:
		if done.Error == rpc.ErrShutdown {
			return ErrClosed
		}
		return done.Error
	}
}

func (c *RPCChannel) Publish(ctx context.Context, channel string, msg []byte) (Timetoken, error) {
	req := stubs.PublishRequest{Channel: channel, Message: msg}
	res := new(stubs.PublishResponse)
	if err := c.call(ctx, stubs.Publish, req, res); err != nil {
		return "", fmt.Errorf("publish to %s: %w", channel, err)
	}
	return Timetoken(res.Timetoken), nil
}

func (c *RPCChannel) Subscribe(ctx context.Context, channel string, cursor Timetoken) (Batch, error) {
	req := stubs.SubscribeRequest{Channel: channel, Timetoken: string(cursor)}
	res := new(stubs.SubscribeResponse)
	if err := c.call(ctx, stubs.Subscribe, req, res); err != nil {
		return Batch{}, fmt.Errorf("subscribe to %s: %w", channel, err)
	}
	return Batch{Cursor: Timetoken(res.Timetoken), Messages: res.Messages}, nil
}

func (c *RPCChannel) Close() error {
	return c.client.Close()
}
