package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"uk.ac.bris.cs/sharedlife/channel"
	"uk.ac.bris.cs/sharedlife/engine"
	"uk.ac.bris.cs/sharedlife/gol"
	"uk.ac.bris.cs/sharedlife/sdl"
	"uk.ac.bris.cs/sharedlife/termview"
	"uk.ac.bris.cs/sharedlife/webview"
)

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return v
	}
	return d
}

func getenvDuration(k string, d time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return v
	}
	return d
}

// checkParams rejects a -size that cannot back a universe. The size is not
// used when starting from an image.
func checkParams(p gol.Params) error {
	if p.Input != "" {
		return nil
	}
	if err := engine.CheckSize(p.ImageWidth, p.ImageHeight); err != nil {
		return fmt.Errorf("-size %d: %w", p.ImageWidth, err)
	}
	return nil
}

// main is the function called when joining a shared universe with 'go run .'
func main() {
	runtime.LockOSThread()
	var params gol.Params

	size := flag.Int(
		"size",
		getenvInt("LIFE_SIZE", 128),
		"Width and height of the universe. Ignored when -in is set.")

	flag.StringVar(
		&params.Channel,
		"channel",
		getenvDefault("LIFE_CHANNEL", "global"),
		"Name of the channel shared with the other participants.")

	flag.StringVar(
		&params.Origin,
		"id",
		getenvDefault("LIFE_ID", defaultOrigin()),
		"Participant id attached to published messages.")

	flag.DurationVar(
		&params.TickInterval,
		"tick",
		getenvDuration("LIFE_TICK", 0),
		"Advance and broadcast one generation at this interval. 0 only ticks on request.")

	flag.StringVar(&params.Input, "in", "", "PGM image to start from instead of the seed pattern.")
	flag.StringVar(&params.OutDir, "out", "out", "Directory for PGM snapshots.")

	transport := flag.String(
		"transport",
		getenvDefault("LIFE_TRANSPORT", "relay"),
		"Channel transport: relay, pubnub or none.")

	broker := flag.String("broker", getenvDefault("BROKER_ADDR", "127.0.0.1:8040"), "Address of the relay broker.")

	var pubnub channel.PubNubConfig
	flag.StringVar(&pubnub.Host, "pubnub-host", getenvDefault("PUBNUB_HOST", channel.DefaultPubNubHost), "PubNub REST host.")
	flag.StringVar(&pubnub.PubKey, "pub-key", os.Getenv("PUBNUB_PUB_KEY"), "PubNub publish key.")
	flag.StringVar(&pubnub.SubKey, "sub-key", os.Getenv("PUBNUB_SUB_KEY"), "PubNub subscribe key.")

	view := flag.String("view", "sdl", "Display: sdl, ebiten, term or text.")

	noVis := flag.Bool(
		"noVis",
		false,
		"Disables the display and only reports progress.")

	flag.Parse()

	params.ImageWidth = *size
	params.ImageHeight = *size
	if err := checkParams(params); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	universe, err := gol.NewUniverse(params)
	if err != nil {
		log.Fatal(err)
	}
	params.ImageWidth, params.ImageHeight = universe.Width(), universe.Height()

	var ch channel.Channel
	switch *transport {
	case "relay":
		ch, err = channel.DialRelay(*broker)
	case "pubnub":
		ch, err = channel.NewPubNub(pubnub)
	case "none":
	default:
		err = fmt.Errorf("unknown transport %q", *transport)
	}
	if err != nil {
		log.Fatal(err)
	}
	if ch != nil {
		defer ch.Close()
	}

	fmt.Println("Size:", params.ImageWidth, "x", params.ImageHeight)
	fmt.Println("Channel:", params.Channel, "via", *transport, "as", params.Origin)

	keyPresses := make(chan rune, 10)
	actions := make(chan gol.Action, 64)
	events := make(chan gol.Event, 1000)

	go gol.Run(context.Background(), params, universe, ch, events, keyPresses, actions)

	switch {
	case *noVis:
		drain(events, false)
	case *view == "sdl":
		sdl.Run(params, events, keyPresses, actions)
	case *view == "text":
		go readCommands(os.Stdin, keyPresses, actions)
		drainText(universe, events)
	case *view == "ebiten":
		done := make(chan struct{})
		go func() {
			drain(events, false)
			close(done)
		}()
		if err := webview.Run(universe, 5, keyPresses, actions, done); err != nil {
			log.Fatal(err)
		}
		keyPresses <- 'q'
		<-done
	case *view == "term":
		done := make(chan struct{})
		go func() {
			drain(events, true)
			close(done)
		}()
		termview.Run(universe, keyPresses, actions)
		<-done
	default:
		log.Fatalf("unknown view %q", *view)
	}
}

func defaultOrigin() string {
	host, err := os.Hostname()
	if err != nil {
		host = "participant"
	}
	return fmt.Sprintf("%s-%d-%d", host, os.Getpid(), time.Now().UnixNano()%1e6)
}

// drain consumes session events until the session closes the channel.
func drain(events <-chan gol.Event, quiet bool) {
	for event := range events {
		if quiet {
			continue
		}
		switch e := event.(type) {
		case gol.AliveCellsCount, gol.ImageOutputComplete, gol.StateChange, gol.FinalTurnComplete:
			fmt.Printf("Completed Turns %-8v%v\n", e.GetCompletedTurns(), e)
		}
	}
}
