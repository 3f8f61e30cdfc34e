// Package alerting turns edge events into Discord alerts, one per matchup
// and trigger set, under a global send rate.
package alerting

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/charleschow/hoops-analyst/internal/adapters/outbound/discord"
	"github.com/charleschow/hoops-analyst/internal/core/display"
	"github.com/charleschow/hoops-analyst/internal/events"
	"github.com/charleschow/hoops-analyst/internal/telemetry"
)

const (
	alertQueueSize = 64
	dedupTTL       = 6 * time.Hour
	sendTimeout    = 10 * time.Second
)

// Notifier is satisfied by *discord.Notifier.
type Notifier interface {
	EdgeAlert(ctx context.Context, s discord.EdgeSummary) error
}

type Alerter struct {
	notifier Notifier
	limiter  *rate.Limiter
	dedup    *dedupGuard
	now      func() time.Time
	queue    chan pending
}

type pending struct {
	key     string
	summary discord.EdgeSummary
}

// New builds an Alerter that sends at most perMinute alerts per minute
// with a burst of one.
func New(n Notifier, perMinute float64) *Alerter {
	limit := rate.Limit(perMinute / 60)
	if perMinute <= 0 {
		limit = rate.Inf
	}
	return &Alerter{
		notifier: n,
		limiter:  rate.NewLimiter(limit, 1),
		dedup:    newDedupGuard(dedupTTL),
		now:      time.Now,
		queue:    make(chan pending, alertQueueSize),
	}
}

// Register subscribes the alerter to edge events on bus.
func (a *Alerter) Register(bus *events.Bus) {
	bus.Subscribe(events.EventEdge, a.OnEdge)
}

// OnEdge decides whether an edge event becomes an alert and queues it.
func (a *Alerter) OnEdge(e events.Event) error {
	pe, ok := e.Payload.(events.ProjectionEvent)
	if !ok {
		return fmt.Errorf("alerting: unexpected payload %T", e.Payload)
	}
	if !pe.Results.Triggers.Any() {
		return nil
	}

	now := a.now()
	key := dedupKey(pe.GameID, pe.Results.Triggers.Signature())
	if !a.dedup.claim(key, now) {
		telemetry.Metrics.AlertsSuppressed.Inc()
		return nil
	}
	if !a.limiter.AllowN(now, 1) {
		a.dedup.release(key)
		telemetry.Metrics.AlertsSuppressed.Inc()
		telemetry.Debugf("alerting: rate limited %s", key)
		return nil
	}

	select {
	case a.queue <- pending{key: key, summary: Summarize(pe)}:
		return nil
	default:
		telemetry.Metrics.AlertsSuppressed.Inc()
		return fmt.Errorf("alerting: queue full, dropped %s", key)
	}
}

// Summarize builds the alert view of a projection event.
func Summarize(pe events.ProjectionEvent) discord.EdgeSummary {
	return discord.EdgeSummary{
		Matchup:     pe.Matchup(),
		GameID:      pe.GameID,
		Favorite:    display.FavoriteLabel(pe.TeamA, pe.TeamB, pe.Results),
		TotalProj:   pe.Results.TotalProj,
		MarketTotal: pe.Market.Total,
		WinProbA:    pe.Results.WinProbA,
		Edges:       display.EdgeLines(pe.TeamA, pe.TeamB, pe.Results),
	}
}

// Run delivers queued alerts until ctx is cancelled.
func (a *Alerter) Run(ctx context.Context) {
	sweep := time.NewTicker(time.Hour)
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case p := <-a.queue:
			a.send(ctx, p)
		case <-sweep.C:
			a.dedup.sweep(a.now())
		}
	}
}

func (a *Alerter) send(ctx context.Context, p pending) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := a.notifier.EdgeAlert(sendCtx, p.summary); err != nil {
		telemetry.Metrics.AlertErrors.Inc()
		telemetry.Warnf("alerting: %s: %v", p.key, err)
		return
	}
	telemetry.Metrics.AlertsSent.Inc()
	telemetry.Infof("alerting: sent %s", p.key)
}
