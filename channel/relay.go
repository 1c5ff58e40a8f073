package channel

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"uk.ac.bris.cs/sharedlife/stubs"
)

// Relay is an in-memory publish/subscribe hub exposed over net/rpc. Every
// channel has a single sequence of timetokens, so all subscribers observe
// messages in the same total order.
type Relay struct {
	mu       sync.Mutex
	channels map[string]*topic
	seq      uint64
	count    uint64
	history  int
	poll     time.Duration
	closed   bool
	done     chan struct{}
}

type topic struct {
	messages []stored
	// wake is closed and replaced on every publish.
	wake chan struct{}
}

type stored struct {
	tt  uint64
	msg []byte
}

// NewRelay keeps at most history messages per channel and holds a
// subscribe call open for up to poll when nothing new is available.
func NewRelay(history int, poll time.Duration) *Relay {
	if history < 1 {
		history = 1
	}
	return &Relay{
		channels: make(map[string]*topic),
		// Timetokens count 100ns intervals, as PubNub's do, so they never
		// collide with the initial "0" cursor.
		seq:      uint64(time.Now().UnixNano() / 100),
		history:  history,
		poll:     poll,
		done:     make(chan struct{}),
	}
}

func (r *Relay) topicLocked(name string) *topic {
	t, ok := r.channels[name]
	if !ok {
		t = &topic{wake: make(chan struct{})}
		r.channels[name] = t
	}
	return t
}

func (r *Relay) Publish(req stubs.PublishRequest, res *stubs.PublishResponse) (err error) {
	if req.Channel == "" {
		return fmt.Errorf("publish: empty channel name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	r.seq++
	r.count++
	t := r.topicLocked(req.Channel)
	t.messages = append(t.messages, stored{tt: r.seq, msg: req.Message})
	if over := len(t.messages) - r.history; over > 0 {
		t.messages = append([]stored(nil), t.messages[over:]...)
	}
	close(t.wake)
	t.wake = make(chan struct{})
	res.Timetoken = format(r.seq)
	return
}

func (r *Relay) Subscribe(req stubs.SubscribeRequest, res *stubs.SubscribeResponse) (err error) {
	if req.Channel == "" {
		return fmt.Errorf("subscribe: empty channel name")
	}
	var after uint64
	if !isInitial(Timetoken(req.Timetoken)) {
		after, err = strconv.ParseUint(req.Timetoken, 10, 64)
		if err != nil {
			return fmt.Errorf("subscribe: bad timetoken %q", req.Timetoken)
		}
	}

	deadline := time.NewTimer(r.poll)
	defer deadline.Stop()
	for {
		r.mu.Lock()
		if r.closed {
			r.mu.Unlock()
			return ErrClosed
		}
		if isInitial(Timetoken(req.Timetoken)) {
			res.Timetoken = format(r.seq)
			r.mu.Unlock()
			return
		}
		t := r.topicLocked(req.Channel)
		for _, m := range t.messages {
			if m.tt > after {
				res.Messages = append(res.Messages, m.msg)
				res.Timetoken = format(m.tt)
			}
		}
		wake := t.wake
		r.mu.Unlock()

		if len(res.Messages) > 0 {
			return
		}
		select {
		case <-wake:
		case <-deadline.C:
			res.Timetoken = req.Timetoken
			return
		case <-r.done:
			return ErrClosed
		}
	}
}

func (r *Relay) Time(_ stubs.TimeRequest, res *stubs.TimeResponse) (err error) {
	r.mu.Lock()
	res.Timetoken = format(r.seq)
	r.mu.Unlock()
	return
}

// Published reports how many messages have been accepted since start.
func (r *Relay) Published() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Shutdown releases every pending subscribe call.
func (r *Relay) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.done)
	log.Printf("[Relay] Shut down after %d messages", r.count)
}

func format(tt uint64) string {
	return strconv.FormatUint(tt, 10)
}
