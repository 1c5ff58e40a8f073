package gol

import (
	"context"
	"errors"
	"log"
	"time"

	"uk.ac.bris.cs/sharedlife/channel"
	"uk.ac.bris.cs/sharedlife/engine"
	"uk.ac.bris.cs/sharedlife/util"
	"uk.ac.bris.cs/sharedlife/wire"
)

const outboxSize = 256

type distributorChannels struct {
	events     chan<- Event
	keyPresses <-chan rune
	actions    <-chan Action
}

type session struct {
	p        Params
	universe *engine.Universe
	ch       channel.Channel
	outbox   chan []byte
	held     []engine.Set
}

// distributor is the only goroutine that mutates the universe. Timer ticks,
// host actions and channel messages are all applied from its select loop, in
// the order they are received.
func (s *session) distributor(ctx context.Context, c distributorChannels) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inbound := make(chan []engine.Event, 64)
	if s.ch != nil {
		s.outbox = make(chan []byte, outboxSize)
		go s.publisher(ctx)
		go s.subscriber(ctx, inbound)
	}

	var tick <-chan time.Time
	if s.p.TickInterval > 0 {
		ticker := time.NewTicker(s.p.TickInterval)
		defer ticker.Stop()
		tick = ticker.C
	}
	reporter := time.NewTicker(2 * time.Second)
	defer reporter.Stop()

	s.emit(c, CellsFlipped{CompletedTurns: 0, Cells: s.universe.AliveCells()})
	s.emit(c, StateChange{s.universe.Generation(), Executing})

	paused := false
	actions := c.actions
loop:
	for {
		select {
		case <-ctx.Done():
			break loop

		case <-tick:
			if !paused {
				s.local(c, engine.Tick{})
			}

		case evs := <-inbound:
			for _, ev := range evs {
				s.apply(c, ev)
			}

		case a, ok := <-actions:
			if !ok {
				break loop
			}
			switch {
			case a.Flush:
				s.flush()
			case a.Hold:
				if set, ok := a.Event.(engine.Set); ok && s.apply(c, set) {
					s.held = append(s.held, set)
				}
			case a.Event == (engine.Tick{}):
				s.requestTick(c)
			case a.Event != nil:
				s.local(c, a.Event)
			}

		case k := <-c.keyPresses:
			switch k {
			case 's':
				s.save(c)
			case 'q':
				break loop
			case 't':
				s.requestTick(c)
			case 'p':
				paused = !paused
				if paused {
					s.emit(c, StateChange{s.universe.Generation(), Paused})
				} else {
					s.emit(c, StateChange{s.universe.Generation(), Executing})
				}
			}

		case <-reporter.C:
			s.emit(c, AliveCellsCount{
				CompletedTurns: s.universe.Generation(),
				CellsCount:     s.universe.AliveCount(),
			})
		}
	}

	s.flush()
	turn := s.universe.Generation()
	s.save(c)
	s.emit(c, FinalTurnComplete{turn, s.universe.AliveCells()})
	s.emit(c, StateChange{turn, Quitting})
	if c.events != nil {
		// Close the channel to stop the visualiser goroutine gracefully.
		close(c.events)
	}
}

// local applies an event raised on this participant and announces it.
func (s *session) local(c distributorChannels, ev engine.Event) {
	if !s.apply(c, ev) {
		return
	}
	msg, err := wire.Encode(s.p.Origin, ev)
	if err != nil {
		log.Printf("[Session] Cannot encode %v: %v", ev, err)
		return
	}
	s.publish(msg)
}

// requestTick asks every participant, this one included, to advance. On a
// shared channel the tick is only applied when it comes back from the
// channel, so it lands in the channel's order relative to other
// participants' cells. The message carries no origin so the echo is not
// skipped.
func (s *session) requestTick(c distributorChannels) {
	if s.ch == nil {
		s.apply(c, engine.Tick{})
		return
	}
	msg, err := wire.Encode("", engine.Tick{})
	if err != nil {
		log.Printf("[Session] Cannot encode tick: %v", err)
		return
	}
	s.publish(msg)
}

// apply runs ev through the engine and reports the cells it changed. Bound
// violations are logged and dropped.
func (s *session) apply(c distributorChannels, ev engine.Event) bool {
	var before []engine.Cell
	if _, ok := ev.(engine.Tick); ok && c.events != nil {
		before = s.universe.Cells()
	}
	var prev engine.Cell
	switch e := ev.(type) {
	case engine.Toggle:
		prev, _ = s.universe.Get(e.Row, e.Col)
	case engine.Set:
		prev, _ = s.universe.Get(e.Row, e.Col)
	}

	if err := s.universe.Apply(ev); err != nil {
		if errors.Is(err, engine.ErrOutOfBounds) {
			log.Printf("[Session] Dropped %v: %v", ev, err)
		} else {
			log.Printf("[Session] Cannot apply %v: %v", ev, err)
		}
		return false
	}
	if c.events == nil {
		return true
	}

	turn := s.universe.Generation()
	switch e := ev.(type) {
	case engine.Tick:
		s.emit(c, CellsFlipped{turn, diff(before, s.universe.Cells(), s.universe.Width())})
		s.emit(c, TurnComplete{turn})
	case engine.Toggle:
		s.emit(c, CellsFlipped{turn, []util.Cell{{X: e.Col, Y: e.Row}}})
	case engine.Set:
		if prev.IsAlive() != e.Alive {
			s.emit(c, CellsFlipped{turn, []util.Cell{{X: e.Col, Y: e.Row}}})
		}
	}
	return true
}

func diff(before, after []engine.Cell, width int) []util.Cell {
	var flipped []util.Cell
	for i := range after {
		if before[i] != after[i] {
			flipped = append(flipped, util.Cell{X: i % width, Y: i / width})
		}
	}
	return flipped
}

func (s *session) flush() {
	if len(s.held) == 0 {
		return
	}
	msg, err := wire.EncodeSets(s.p.Origin, s.held)
	s.held = nil
	if err != nil {
		log.Printf("[Session] Cannot encode cell batch: %v", err)
		return
	}
	s.publish(msg)
}

func (s *session) publish(msg []byte) {
	if s.outbox == nil {
		return
	}
	select {
	case s.outbox <- msg:
	default:
		log.Printf("[Session] Outbox full, dropped %s", msg)
	}
}

func (s *session) save(c distributorChannels) {
	turn := s.universe.Generation()
	filename, err := savePGM(s.p.OutDir, s.universe.Snapshot(), turn)
	if err != nil {
		log.Printf("[Session] Snapshot failed: %v", err)
		return
	}
	s.emit(c, ImageOutputComplete{turn, filename})
}

func (s *session) emit(c distributorChannels, ev Event) {
	if c.events != nil {
		c.events <- ev
	}
}

// publisher sends outbox messages one at a time, in order. A failed publish
// is logged and not retried.
func (s *session) publisher(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.outbox:
			if _, err := s.ch.Publish(ctx, s.p.Channel, msg); err != nil && ctx.Err() == nil {
				log.Printf("[Session] Publish failed: %v", err)
			}
		}
	}
}

// subscriber decodes channel messages and forwards their events to the
// distributor. Malformed and unrelated messages never reach the engine.
func (s *session) subscriber(ctx context.Context, inbound chan<- []engine.Event) {
	err := channel.Listen(ctx, s.ch, s.p.Channel, func(msg []byte) {
		origin, events, err := wire.Decode(msg)
		switch {
		case errors.Is(err, wire.ErrUnrelated):
			return
		case err != nil:
			log.Printf("[Session] Dropped message %s: %v", msg, err)
			return
		case origin != "" && origin == s.p.Origin:
			return
		}
		select {
		case inbound <- events:
		case <-ctx.Done():
		}
	})
	if err != nil && ctx.Err() == nil {
		log.Printf("[Session] Stopped listening on %s: %v", s.p.Channel, err)
	}
}
