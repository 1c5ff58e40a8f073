package gol

import (
	"context"
	"fmt"
	"time"

	"uk.ac.bris.cs/sharedlife/channel"
	"uk.ac.bris.cs/sharedlife/engine"
)

// Params provides the details of the shared universe and how to join it.
type Params struct {
	ImageWidth  int
	ImageHeight int
	// Channel is the pub/sub channel name shared by every participant.
	Channel string
	// Origin identifies this participant on the channel so its own
	// messages are not applied twice.
	Origin string
	// TickInterval drives the local timer. Zero disables it; ticks then
	// only come from the host or the channel.
	TickInterval time.Duration
	// Input is an optional PGM file used instead of the seed policy.
	Input  string
	Seed   engine.SeedPolicy
	OutDir string
}

// Action is a local change requested by the host.
type Action struct {
	Event engine.Event
	// Hold applies a Set now but keeps it back from the channel until the
	// next Flush, which publishes all held cells as one message.
	Hold  bool
	Flush bool
}

// NewUniverse builds the starting universe from p.Input or p.Seed.
func NewUniverse(p Params) (*engine.Universe, error) {
	if p.Input != "" {
		g, err := loadPGM(p.Input)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", p.Input, err)
		}
		u := engine.NewUniverseSeeded(g.Width(), g.Height(), nil)
		if err := u.Load(g.Cells(), 0); err != nil {
			return nil, err
		}
		return u, nil
	}
	seed := p.Seed
	if seed == nil {
		seed = engine.DefaultSeed
	}
	return engine.NewUniverseSeeded(p.ImageWidth, p.ImageHeight, seed), nil
}

// Run joins the channel and processes local and remote events until a 'q'
// keypress, the actions channel closing or ctx being cancelled. ch may be nil
// for a session that is not shared. events is closed when Run returns.
func Run(ctx context.Context, p Params, u *engine.Universe, ch channel.Channel, events chan<- Event, keyPresses <-chan rune, actions <-chan Action) {
	if p.OutDir == "" {
		p.OutDir = "out"
	}
	s := &session{p: p, universe: u, ch: ch}
	distributorChannels := distributorChannels{
		events:     events,
		keyPresses: keyPresses,
		actions:    actions,
	}
	s.distributor(ctx, distributorChannels)
}
