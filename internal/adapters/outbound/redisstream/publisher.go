package redisstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/charleschow/hoops-analyst/internal/events"
	"github.com/charleschow/hoops-analyst/internal/telemetry"
)

const (
	streamMaxLen   = 10000
	publishQueue   = 256
	publishTimeout = 2 * time.Second
)

// Publisher mirrors projection events onto a Redis stream for downstream
// consumers. Bus handlers enqueue; Run performs the XADDs.
type Publisher struct {
	client *redis.Client
	stream string
	queue  chan *redis.XAddArgs
}

func NewPublisher(client *redis.Client, stream string) *Publisher {
	return &Publisher{
		client: client,
		stream: stream,
		queue:  make(chan *redis.XAddArgs, publishQueue),
	}
}

// Register subscribes the publisher to projection events on bus.
func (p *Publisher) Register(bus *events.Bus) {
	bus.Subscribe(events.EventProjection, p.OnProjection)
}

func (p *Publisher) OnProjection(e events.Event) error {
	pe, ok := e.Payload.(events.ProjectionEvent)
	if !ok {
		return fmt.Errorf("redisstream: unexpected payload %T", e.Payload)
	}
	args, err := xaddArgs(p.stream, e, pe)
	if err != nil {
		telemetry.Metrics.StreamErrors.Inc()
		return err
	}

	select {
	case p.queue <- args:
		return nil
	default:
		telemetry.Metrics.StreamErrors.Inc()
		return fmt.Errorf("redisstream: queue full, dropped %s", pe.GameID)
	}
}

// xaddArgs builds the stream entry: the full event as JSON under "data",
// plus flat fields consumers can filter on without decoding.
func xaddArgs(stream string, e events.Event, pe events.ProjectionEvent) (*redis.XAddArgs, error) {
	data, err := json.Marshal(pe)
	if err != nil {
		return nil, fmt.Errorf("marshaling projection: %w", err)
	}
	return &redis.XAddArgs{
		Stream: stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data":       string(data),
			"event_id":   e.ID,
			"game_id":    pe.GameID,
			"triggers":   pe.Results.Triggers.Signature(),
			"emitted_at": e.Timestamp.UnixMilli(),
		},
	}, nil
}

// Run publishes queued entries until ctx is cancelled.
func (p *Publisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case args := <-p.queue:
			pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
			err := p.client.XAdd(pubCtx, args).Err()
			cancel()
			if err != nil {
				telemetry.Metrics.StreamErrors.Inc()
				telemetry.Warnf("redisstream: xadd %s: %v", p.stream, err)
				continue
			}
			telemetry.Metrics.StreamPublishes.Inc()
		}
	}
}

// Connect dials addr and pings it.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}
