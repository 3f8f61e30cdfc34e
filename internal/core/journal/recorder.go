package journal

import (
	"context"
	"fmt"

	"github.com/charleschow/hoops-analyst/internal/events"
	"github.com/charleschow/hoops-analyst/internal/telemetry"
)

const recorderQueueSize = 256

// Writer is the write side of the journal.
type Writer interface {
	Insert(ctx context.Context, r Record) (int64, error)
}

// Recorder journals every projection event. Bus handlers only enqueue;
// Run does the SQLite writes on its own goroutine.
type Recorder struct {
	w     Writer
	queue chan Record
}

func NewRecorder(w Writer) *Recorder {
	return &Recorder{w: w, queue: make(chan Record, recorderQueueSize)}
}

// Register subscribes the recorder to projection events on bus.
func (r *Recorder) Register(bus *events.Bus) {
	bus.Subscribe(events.EventProjection, r.OnProjection)
}

func (r *Recorder) OnProjection(e events.Event) error {
	pe, ok := e.Payload.(events.ProjectionEvent)
	if !ok {
		return fmt.Errorf("journal: unexpected payload %T", e.Payload)
	}
	rec, err := RecordFrom(e, pe)
	if err != nil {
		telemetry.Metrics.JournalErrors.Inc()
		return err
	}

	select {
	case r.queue <- rec:
		return nil
	default:
		telemetry.Metrics.JournalErrors.Inc()
		return fmt.Errorf("journal: queue full, dropped %s", pe.GameID)
	}
}

// Run writes queued records until ctx is cancelled, then flushes what is
// left in the queue.
func (r *Recorder) Run(ctx context.Context) {
	for {
		select {
		case rec := <-r.queue:
			r.write(ctx, rec)
		case <-ctx.Done():
			for {
				select {
				case rec := <-r.queue:
					r.write(context.Background(), rec)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) write(ctx context.Context, rec Record) {
	if _, err := r.w.Insert(ctx, rec); err != nil {
		telemetry.Metrics.JournalErrors.Inc()
		telemetry.Warnf("journal: %s: %v", rec.GameID, err)
		return
	}
	telemetry.Metrics.JournalWrites.Inc()
}
