package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/charleschow/hoops-analyst/internal/core/display"
	"github.com/charleschow/hoops-analyst/internal/events"
	"github.com/charleschow/hoops-analyst/internal/fanout"
	"github.com/charleschow/hoops-analyst/internal/telemetry"
)

// watch tails an analyst service's fanout feed and prints edges.
func main() {
	addr := flag.String("addr", "localhost:8090", "analyst service host:port")
	game := flag.String("game", "", "only follow this game id")
	level := flag.String("log", "info", "log level")
	flag.Parse()

	telemetry.Init(telemetry.ParseLogLevel(*level))

	bus := events.NewBus()
	display.NewEdgeObserver(os.Stdout).Register(bus)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry.Infof("Watching %s for edges", *addr)
	fanout.NewClient(*addr, *game, true, bus).ConnectWithRetry(ctx)
}
