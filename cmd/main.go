package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charleschow/hoops-analyst/internal/adapters/inbound/httpapi"
	"github.com/charleschow/hoops-analyst/internal/adapters/outbound/discord"
	"github.com/charleschow/hoops-analyst/internal/adapters/outbound/redisstream"
	"github.com/charleschow/hoops-analyst/internal/config"
	"github.com/charleschow/hoops-analyst/internal/core/alerting"
	"github.com/charleschow/hoops-analyst/internal/core/analyst"
	"github.com/charleschow/hoops-analyst/internal/core/display"
	"github.com/charleschow/hoops-analyst/internal/core/journal"
	"github.com/charleschow/hoops-analyst/internal/events"
	"github.com/charleschow/hoops-analyst/internal/fanout"
	"github.com/charleschow/hoops-analyst/internal/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))
	telemetry.Infof("Starting analyst service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var workers sync.WaitGroup
	goWorker := func(run func(context.Context)) {
		workers.Add(1)
		go func() {
			defer workers.Done()
			run(ctx)
		}()
	}

	bus := events.NewBus()

	// ── League constants ────────────────────────────────────────
	constants, err := config.LoadLeagueConstants(cfg.LeagueConstantsPath)
	if err != nil {
		telemetry.Errorf("Failed to load league constants: %v", err)
		os.Exit(1)
	}
	telemetry.Infof("League constants  tov=%.1f  ftr=%.3f  oreb=%.3f  3pa=%.1f",
		constants.TovLgAvg, constants.FtrAvg, constants.OrebAvg, constants.ThreePAAvg)

	svc := analyst.NewService(bus, constants)

	// ── Journal ─────────────────────────────────────────────────
	var store *journal.Store
	var reader httpapi.JournalReader
	if cfg.JournalPath != "" {
		store, err = journal.OpenStore(cfg.JournalPath)
		if err != nil {
			telemetry.Warnf("Journal disabled: %v", err)
		} else {
			rec := journal.NewRecorder(store)
			rec.Register(bus)
			goWorker(rec.Run)
			reader = journal.NewReader(store)
			telemetry.Infof("Journal open  path=%s  rows=%d", cfg.JournalPath, store.Count())
		}
	}

	// ── Discord alerts ──────────────────────────────────────────
	notifier := discord.NewNotifier(cfg.DiscordWebhookURL)
	if notifier.Enabled() {
		alerter := alerting.New(notifier, cfg.AlertRatePerMin)
		alerter.Register(bus)
		goWorker(alerter.Run)
		telemetry.Infof("Discord alerts enabled  rate=%.1f/min", cfg.AlertRatePerMin)
	}

	// ── Redis stream ────────────────────────────────────────────
	if cfg.RedisAddr != "" {
		client, err := redisstream.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			telemetry.Warnf("Redis stream disabled: %v", err)
		} else {
			defer client.Close()
			pub := redisstream.NewPublisher(client, cfg.RedisStream)
			pub.Register(bus)
			goWorker(pub.Run)
			telemetry.Infof("Publishing projections to redis stream %q", cfg.RedisStream)
		}
	}

	// ── Console edges ───────────────────────────────────────────
	display.NewEdgeObserver(os.Stderr).Register(bus)

	// ── HTTP + fanout ───────────────────────────────────────────
	fan := fanout.NewServer(bus)
	telemetry.Infof("Bus wired  projection=%d  edge=%d subscribers",
		bus.Subscribers(events.EventProjection), bus.Subscribers(events.EventEdge))
	handler := httpapi.NewHandler(svc, reader)

	addr := fmt.Sprintf("%s:%d", cfg.HTTPHost, cfg.HTTPPort)
	server := &http.Server{
		Addr:        addr,
		Handler:     httpapi.NewRouter(handler, fan.HandleWS, cfg.CORSOrigins),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			telemetry.Errorf("HTTP server: %v", err)
			os.Exit(1)
		}
	}()
	telemetry.Infof("API listening on %q", addr)

	// ── Shutdown ────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	telemetry.Infof("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)

	cancel()
	workers.Wait()

	if store != nil {
		store.Close()
	}

	m := telemetry.TakeSnapshot()
	telemetry.Infof("Shutdown complete  requests=%d  projections=%d  triggers=%d  alerts=%d  journal=%d  stream=%d  p50=%s  p99=%s",
		m.Requests, m.Projections, m.TriggersFired, m.AlertsSent, m.JournalWrites, m.StreamPublishes,
		m.ProjectionP50, m.ProjectionP99)
}
