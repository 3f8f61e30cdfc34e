package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charleschow/hoops-analyst/internal/core/analyst"
	"github.com/charleschow/hoops-analyst/internal/core/journal"
	"github.com/charleschow/hoops-analyst/internal/core/projection"
	"github.com/charleschow/hoops-analyst/internal/events"
)

type stubRecent struct {
	rows      []journal.Record
	err       error
	lastLimit int
	lastGame  string
}

func (s *stubRecent) Recent(_ context.Context, limit int) ([]journal.Record, error) {
	s.lastLimit = limit
	return s.rows, s.err
}

func (s *stubRecent) ForGame(_ context.Context, gameID string, limit int) ([]journal.Record, error) {
	s.lastGame = gameID
	s.lastLimit = limit
	return s.rows, s.err
}

func newTestRouter(reader JournalReader) (http.Handler, *events.Bus) {
	bus := events.NewBus()
	svc := analyst.NewService(bus, projection.DefaultLeagueConstants())
	return NewRouter(NewHandler(svc, reader), nil, []string{"http://localhost:3000"}), bus
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	h, _ := newTestRouter(nil)
	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["status"] != "healthy" {
		t.Errorf("body = %v", body)
	}
}

func TestProject(t *testing.T) {
	h, bus := newTestRouter(nil)
	var published int
	bus.Subscribe(events.EventProjection, func(events.Event) error {
		published++
		return nil
	})

	body := `{
		"team_a": {"name": "Boston", "pace_season": 99, "pace_l10": 101, "ortg_season": 121, "ortg_l10": 119,
		           "drtg_season": 111, "drtg_l10": 112, "ft_accuracy_pct": 0.81, "corner_three_mismatch": "strong"},
		"team_b": {"name": "Charlotte", "pace_season": 100, "pace_l10": 100, "ortg_season": 110, "ortg_l10": 110,
		           "drtg_season": 118, "drtg_l10": 118, "ft_accuracy_pct": 77, "fatigue_level": "tired_defense"},
		"market": {"total": 226.5, "spread": -8.5, "ml_a": -350, "ml_b": 280, "tt_a": 117.5, "tt_b": 109}
	}`
	rec := do(t, h, http.MethodPost, "/v1/projections", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}

	var pe events.ProjectionEvent
	if err := json.NewDecoder(rec.Body).Decode(&pe); err != nil {
		t.Fatal(err)
	}
	if pe.GameID != "boston-celtics@charlotte-hornets" {
		t.Errorf("game_id = %q", pe.GameID)
	}
	want := projection.Project(pe.TeamA, pe.TeamB, pe.Market, pe.Constants)
	if pe.Results.TotalProj != want.TotalProj || pe.Results.MarginFinal != want.MarginFinal {
		t.Errorf("results differ from engine: got %v/%v want %v/%v",
			pe.Results.TotalProj, pe.Results.MarginFinal, want.TotalProj, want.MarginFinal)
	}
	if pe.TeamA.CornerThreeMismatch != projection.CornerStrong {
		t.Errorf("corner mismatch = %q", pe.TeamA.CornerThreeMismatch)
	}
	if published != 1 {
		t.Errorf("published %d projection events, want 1", published)
	}
}

func TestProjectRejectsBadInput(t *testing.T) {
	h, _ := newTestRouter(nil)
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"team_a":`},
		{"unknown enum", `{"team_a": {"fatigue_level": "sleepy"}, "team_b": {}}`},
		{"wrong type", `{"team_a": {"pace_season": "fast"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/projections", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			var body map[string]string
			json.NewDecoder(rec.Body).Decode(&body)
			if body["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestRecent(t *testing.T) {
	stub := &stubRecent{rows: []journal.Record{{ID: 2, GameID: "g"}, {ID: 1, GameID: "g"}}}
	h, _ := newTestRouter(stub)

	rec := do(t, h, http.MethodGet, "/v1/projections/recent?limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if stub.lastLimit != 2 {
		t.Errorf("limit passed = %d", stub.lastLimit)
	}
	var rows []journal.Record
	json.NewDecoder(rec.Body).Decode(&rows)
	if len(rows) != 2 || rows[0].ID != 2 {
		t.Errorf("rows = %+v", rows)
	}
}

func TestRecentErrors(t *testing.T) {
	tests := []struct {
		name   string
		reader JournalReader
		path   string
		want   int
	}{
		{"journal disabled", nil, "/v1/projections/recent", http.StatusServiceUnavailable},
		{"bad limit", &stubRecent{}, "/v1/projections/recent?limit=ten", http.StatusBadRequest},
		{"read failure", &stubRecent{err: errors.New("disk")}, "/v1/projections/recent", http.StatusInternalServerError},
		{"game journal disabled", nil, "/v1/games/bos@cha/projections", http.StatusServiceUnavailable},
		{"game bad limit", &stubRecent{}, "/v1/games/bos@cha/projections?limit=x", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestRouter(tt.reader)
			if rec := do(t, h, http.MethodGet, tt.path, ""); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestGameProjections(t *testing.T) {
	stub := &stubRecent{rows: []journal.Record{{ID: 4, GameID: "boston-celtics@charlotte-hornets"}}}
	h, _ := newTestRouter(stub)

	rec := do(t, h, http.MethodGet, "/v1/games/boston-celtics@charlotte-hornets/projections?limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	if stub.lastGame != "boston-celtics@charlotte-hornets" || stub.lastLimit != 5 {
		t.Errorf("ForGame called with game=%q limit=%d", stub.lastGame, stub.lastLimit)
	}
	var rows []journal.Record
	json.NewDecoder(rec.Body).Decode(&rows)
	if len(rows) != 1 || rows[0].ID != 4 {
		t.Errorf("rows = %+v", rows)
	}
}

func TestProjectNonFiniteResult(t *testing.T) {
	h, bus := newTestRouter(nil)
	var published int
	bus.Subscribe(events.EventProjection, func(events.Event) error {
		published++
		return nil
	})
	bus.Subscribe(events.EventEdge, func(events.Event) error {
		published++
		return nil
	})

	body := `{"team_a": {"name": "Boston", "ftr_off": 1e300, "ft_accuracy_pct": 1e308}, "team_b": {"name": "Charlotte"}}`
	rec := do(t, h, http.MethodPost, "/v1/projections", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body = %q", rec.Code, rec.Body)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if !strings.Contains(resp["error"], "non-finite") {
		t.Errorf("error = %q", resp["error"])
	}
	if published != 0 {
		t.Errorf("published %d events for a non-finite projection", published)
	}
}

func TestRespondJSONEncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusOK, map[string]float64{"x": math.Inf(1)})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty body on encode failure")
	}
}

func TestRecentEmptyIsArray(t *testing.T) {
	h, _ := newTestRouter(&stubRecent{})
	rec := do(t, h, http.MethodGet, "/v1/projections/recent", "")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestConstantsAndMetrics(t *testing.T) {
	h, _ := newTestRouter(nil)

	rec := do(t, h, http.MethodGet, "/v1/constants", "")
	var c projection.LeagueConstants
	json.NewDecoder(rec.Body).Decode(&c)
	if c != projection.DefaultLeagueConstants() {
		t.Errorf("constants = %+v", c)
	}

	rec = do(t, h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"requests"`) {
		t.Errorf("metrics status=%d body=%s", rec.Code, rec.Body)
	}
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestRouter(nil)
	req := httptest.NewRequest(http.MethodOptions, "/v1/projections", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
