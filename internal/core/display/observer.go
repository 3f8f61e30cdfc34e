package display

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charleschow/hoops-analyst/internal/events"
)

const edgeDisplayThrottle = 30 * time.Second

// EdgeObserver prints a short block for every edge event, at most once per
// game per throttle window.
type EdgeObserver struct {
	w        io.Writer
	throttle time.Duration
	now      func() time.Time

	mu       sync.Mutex
	lastEdge map[string]time.Time
}

func NewEdgeObserver(w io.Writer) *EdgeObserver {
	return &EdgeObserver{
		w:        w,
		throttle: edgeDisplayThrottle,
		now:      time.Now,
		lastEdge: make(map[string]time.Time),
	}
}

// Register subscribes the observer to edge events on bus.
func (o *EdgeObserver) Register(bus *events.Bus) {
	bus.Subscribe(events.EventEdge, o.OnEdge)
}

func (o *EdgeObserver) OnEdge(e events.Event) error {
	pe, ok := e.Payload.(events.ProjectionEvent)
	if !ok {
		return fmt.Errorf("display: unexpected payload %T", e.Payload)
	}

	now := o.now()
	o.mu.Lock()
	last, seen := o.lastEdge[pe.GameID]
	if seen && now.Sub(last) < o.throttle {
		o.mu.Unlock()
		return nil
	}
	o.lastEdge[pe.GameID] = now
	o.mu.Unlock()

	var b []byte
	b = fmt.Appendf(b, "\n[EDGE %s]\n%s\n", now.Format("3:04:05.000 PM"), dividerLight)
	b = fmt.Appendf(b, "  %s  |  %s  |  total %.1f\n", pe.Matchup(), FavoriteLabel(pe.TeamA, pe.TeamB, pe.Results), pe.Results.TotalProj)
	for _, l := range EdgeLines(pe.TeamA, pe.TeamB, pe.Results) {
		b = fmt.Appendf(b, "    %s\n", l)
	}
	b = fmt.Appendf(b, "%s\n", dividerLight)

	_, err := o.w.Write(b)
	return err
}
