package main

// The broker relays grid messages between participants. Every message
// published on a channel gets the next timetoken, so all subscribers see one
// total order, which is what keeps their universes converged.

import (
	"errors"
	"flag"
	"log"
	"net"
	"net/rpc"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uk.ac.bris.cs/sharedlife/channel"
)

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func main() {
	pAddr := flag.String("port", getenvDefault("PORT", "8040"), "Port to listen on")
	history := flag.Int("history", 1000, "Messages kept per channel for subscribers that fall behind")
	poll := flag.Duration("poll", 30*time.Second, "How long a subscribe call waits for new messages")
	flag.Parse()

	relay := channel.NewRelay(*history, *poll)
	if err := rpc.Register(relay); err != nil {
		log.Fatalf("Failed to register Relay: %v", err)
	}
	listener, err := net.Listen("tcp", ":"+*pAddr)
	if err != nil {
		log.Fatalf("Failed to listen on port %v: %v", *pAddr, err)
	}
	log.Printf("[Relay] Listening on %v ...", listener.Addr())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("[Relay] Shutting down")
		relay.Shutdown()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("[Relay] Accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}
