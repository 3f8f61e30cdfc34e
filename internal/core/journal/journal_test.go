package journal

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charleschow/hoops-analyst/internal/core/projection"
	"github.com/charleschow/hoops-analyst/internal/events"
)

func projectionEvent(a, b string) (events.Event, events.ProjectionEvent) {
	ta, tb := projection.DefaultTeam(a), projection.DefaultTeam(b)
	ta.OrtgSeason = 121
	pe := events.ProjectionEvent{
		GameID:    a + "@" + b,
		TeamA:     ta,
		TeamB:     tb,
		Market:    projection.DefaultMarket(),
		Constants: projection.DefaultLeagueConstants(),
	}
	pe.Results = projection.Project(pe.TeamA, pe.TeamB, pe.Market, pe.Constants)
	return events.New(events.EventProjection, pe.GameID, pe), pe
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "journal", "projections.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordFrom(t *testing.T) {
	e, pe := projectionEvent("bos", "cha")
	r, err := RecordFrom(e, pe)
	if err != nil {
		t.Fatal(err)
	}
	if r.EventID != e.ID || r.GameID != "bos@cha" || r.TeamA != "bos" {
		t.Errorf("identity fields wrong: %+v", r)
	}
	if r.TotalProj != pe.Results.TotalProj || r.MarginFinal != pe.Results.MarginFinal {
		t.Error("flat result columns do not match results")
	}
	if r.Triggers != pe.Results.Triggers.Signature() {
		t.Errorf("Triggers = %q, want %q", r.Triggers, pe.Results.Triggers.Signature())
	}

	var back projection.Results
	if err := json.Unmarshal(r.ResultsJSON, &back); err != nil {
		t.Fatalf("results json: %v", err)
	}
	if back.PFinal != pe.Results.PFinal {
		t.Errorf("PFinal round trip = %v, want %v", back.PFinal, pe.Results.PFinal)
	}
}

func TestStoreInsertAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, g := range [][2]string{{"bos", "cha"}, {"den", "phx"}, {"bos", "cha"}} {
		e, pe := projectionEvent(g[0], g[1])
		r, err := RecordFrom(e, pe)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := s.Insert(ctx, r); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	rows, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].ID <= rows[1].ID {
		t.Errorf("rows not newest first: %d, %d", rows[0].ID, rows[1].ID)
	}
	if rows[0].CreatedAt.IsZero() {
		t.Error("created_at not parsed")
	}

	game, err := s.ForGame(ctx, "bos@cha", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(game) != 2 {
		t.Errorf("ForGame returned %d rows, want 2", len(game))
	}
	if s.Count() != 3 {
		t.Errorf("Count = %d, want 3", s.Count())
	}
}

func TestStoreEvictsOldest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var firstID int64
	for i := 0; i < 10; i++ {
		e, pe := projectionEvent("bos", "cha")
		r, _ := RecordFrom(e, pe)
		id, err := s.Insert(ctx, r)
		if err != nil {
			t.Fatal(err)
		}
		if i == 0 {
			firstID = id
		}
	}

	s.maxBytes = 1
	e, pe := projectionEvent("den", "phx")
	r, _ := RecordFrom(e, pe)
	if _, err := s.Insert(ctx, r); err != nil {
		t.Fatal(err)
	}

	if s.Count() != 10 {
		t.Errorf("Count = %d after eviction, want 10", s.Count())
	}
	rows, err := s.Recent(ctx, 100)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		if row.ID == firstID {
			t.Error("oldest row survived eviction")
		}
	}
}

type fakeWriter struct {
	mu   sync.Mutex
	recs []Record
}

func (f *fakeWriter) Insert(_ context.Context, r Record) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, r)
	return int64(len(f.recs)), nil
}

func TestRecorderFlushesOnShutdown(t *testing.T) {
	w := &fakeWriter{}
	rec := NewRecorder(w)
	bus := events.NewBus()
	rec.Register(bus)

	for i := 0; i < 3; i++ {
		e, _ := projectionEvent("bos", "cha")
		bus.Publish(e)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec.Run(ctx)

	if len(w.recs) != 3 {
		t.Errorf("wrote %d records, want 3", len(w.recs))
	}
}

func TestRecorderRejectsPayload(t *testing.T) {
	rec := NewRecorder(&fakeWriter{})
	if err := rec.OnProjection(events.Event{Payload: 42}); err == nil {
		t.Error("expected error for wrong payload type")
	}
}

type countingSource struct {
	calls atomic.Int32
}

func (c *countingSource) Recent(_ context.Context, limit int) ([]Record, error) {
	c.calls.Add(1)
	return make([]Record, limit), nil
}

func (c *countingSource) ForGame(_ context.Context, gameID string, limit int) ([]Record, error) {
	c.calls.Add(1)
	rows := make([]Record, limit)
	for i := range rows {
		rows[i] = Record{GameID: gameID, ResultsJSON: json.RawMessage(`{"p_final":100}`)}
	}
	return rows, nil
}

func TestReaderCaches(t *testing.T) {
	src := &countingSource{}
	r := NewReader(src)
	clock := time.Unix(1_700_000_000, 0)
	r.now = func() time.Time { return clock }

	ctx := context.Background()
	rows, err := r.Recent(ctx, 5)
	if err != nil || len(rows) != 5 {
		t.Fatalf("Recent = %d rows, err %v", len(rows), err)
	}
	r.Recent(ctx, 5)
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want 1 inside ttl", got)
	}

	clock = clock.Add(recentCacheTTL)
	r.Recent(ctx, 5)
	if got := src.calls.Load(); got != 2 {
		t.Errorf("source calls = %d, want 2 after ttl", got)
	}
}

func TestReaderForGameCachesPerGame(t *testing.T) {
	src := &countingSource{}
	r := NewReader(src)
	clock := time.Unix(1_700_000_000, 0)
	r.now = func() time.Time { return clock }

	ctx := context.Background()
	rows, err := r.ForGame(ctx, "bos@cha", 3)
	if err != nil || len(rows) != 3 || rows[0].GameID != "bos@cha" {
		t.Fatalf("ForGame = %+v, err %v", rows, err)
	}
	r.ForGame(ctx, "bos@cha", 3)
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source calls = %d, want 1 for a repeated game query", got)
	}
	r.ForGame(ctx, "den@phx", 3)
	r.Recent(ctx, 3)
	if got := src.calls.Load(); got != 3 {
		t.Errorf("source calls = %d, want 3 across distinct queries", got)
	}
}

func TestReaderReturnsCopies(t *testing.T) {
	r := NewReader(&countingSource{})
	ctx := context.Background()

	first, _ := r.ForGame(ctx, "bos@cha", 2)
	first[0].GameID = "mutated"
	first[0].ResultsJSON[0] = 'X'

	second, _ := r.ForGame(ctx, "bos@cha", 2)
	if second[0].GameID != "bos@cha" {
		t.Errorf("cached row changed by caller: game_id = %q", second[0].GameID)
	}
	if string(second[0].ResultsJSON) != `{"p_final":100}` {
		t.Errorf("cached results changed by caller: %s", second[0].ResultsJSON)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, DefaultRecentLimit},
		{-3, DefaultRecentLimit},
		{7, 7},
		{MaxRecentLimit + 1, MaxRecentLimit},
	}
	for _, tt := range tests {
		if got := ClampLimit(tt.in); got != tt.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
