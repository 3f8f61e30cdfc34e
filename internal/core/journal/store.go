package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charleschow/hoops-analyst/internal/events"
	"github.com/charleschow/hoops-analyst/internal/telemetry"

	_ "modernc.org/sqlite"
)

const (
	maxStoreBytes  int64   = 256 << 20 // 256 MiB
	evictPct       float64 = 0.10      // evict oldest 10% of rows
	vacuumInterval         = 10        // incremental vacuum every N evictions
)

// Record is one journaled projection. ResultsJSON holds the full result
// including its breakdown; the flat columns exist for querying.
type Record struct {
	ID          int64           `json:"id"`
	EventID     string          `json:"event_id"`
	GameID      string          `json:"game_id"`
	TeamA       string          `json:"team_a"`
	TeamB       string          `json:"team_b"`
	CreatedAt   time.Time       `json:"created_at"`
	PFinal      float64         `json:"p_final"`
	PtsA        float64         `json:"pts_a"`
	PtsB        float64         `json:"pts_b"`
	TotalProj   float64         `json:"total_proj"`
	MarginFinal float64         `json:"margin_final"`
	EdgeTotal   float64         `json:"edge_total"`
	EdgeSpread  float64         `json:"edge_spread"`
	EdgeTTA     float64         `json:"edge_tt_a"`
	EdgeTTB     float64         `json:"edge_tt_b"`
	MLEdge      float64         `json:"ml_edge"`
	Triggers    string          `json:"triggers"`
	ResultsJSON json.RawMessage `json:"results"`
}

// RecordFrom flattens a projection event into a journal row.
func RecordFrom(e events.Event, pe events.ProjectionEvent) (Record, error) {
	raw, err := json.Marshal(pe.Results)
	if err != nil {
		return Record{}, fmt.Errorf("encode results: %w", err)
	}
	r := pe.Results
	return Record{
		EventID:     e.ID,
		GameID:      pe.GameID,
		TeamA:       pe.TeamA.Name,
		TeamB:       pe.TeamB.Name,
		CreatedAt:   e.Timestamp,
		PFinal:      r.PFinal,
		PtsA:        r.PtsA,
		PtsB:        r.PtsB,
		TotalProj:   r.TotalProj,
		MarginFinal: r.MarginFinal,
		EdgeTotal:   r.EdgeTotal,
		EdgeSpread:  r.EdgeSpread,
		EdgeTTA:     r.EdgeTTA,
		EdgeTTB:     r.EdgeTTB,
		MLEdge:      r.MLEdge,
		Triggers:    r.Triggers.Signature(),
		ResultsJSON: raw,
	}, nil
}

// Store persists projections in a FIFO SQLite database capped at
// maxStoreBytes. The oldest 10% of rows go when the budget is exceeded.
type Store struct {
	db           *sql.DB
	mu           sync.Mutex
	cachedSize   int64
	rowCount     int64
	evictCounter int
	maxBytes     int64
}

func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	var avMode int
	if err := db.QueryRow(`PRAGMA auto_vacuum`).Scan(&avMode); err != nil {
		db.Close()
		return nil, fmt.Errorf("read auto_vacuum: %w", err)
	}
	if avMode != 2 {
		if _, err := db.Exec(`PRAGMA auto_vacuum = INCREMENTAL`); err != nil {
			db.Close()
			return nil, fmt.Errorf("set auto_vacuum: %w", err)
		}
		if _, err := db.Exec(`VACUUM`); err != nil {
			telemetry.Warnf("journal: VACUUM to enable auto_vacuum failed: %v", err)
		}
	}

	for _, stmt := range []string{schema, gameIndex} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init journal schema: %w", err)
		}
	}

	var size int64
	db.QueryRow(`SELECT COALESCE(page_count * page_size, 0) FROM pragma_page_count(), pragma_page_size()`).Scan(&size)
	var rowCount int64
	db.QueryRow(`SELECT COUNT(*) FROM projections`).Scan(&rowCount)

	telemetry.Plainf("journal: opened %s  size=%d  rows=%d", path, size, rowCount)
	return &Store{db: db, cachedSize: size, rowCount: rowCount, maxBytes: maxStoreBytes}, nil
}

const schema = `CREATE TABLE IF NOT EXISTS projections (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id     TEXT    NOT NULL,
	game_id      TEXT    NOT NULL,
	team_a       TEXT    NOT NULL,
	team_b       TEXT    NOT NULL,
	created_at   TEXT    NOT NULL,

	p_final      REAL    NOT NULL,
	pts_a        REAL    NOT NULL,
	pts_b        REAL    NOT NULL,
	total_proj   REAL    NOT NULL,
	margin_final REAL    NOT NULL,

	edge_total   REAL    NOT NULL,
	edge_spread  REAL    NOT NULL,
	edge_tt_a    REAL    NOT NULL,
	edge_tt_b    REAL    NOT NULL,
	ml_edge      REAL    NOT NULL,
	triggers     TEXT    NOT NULL DEFAULT '',

	results_json TEXT    NOT NULL
)`

const gameIndex = `CREATE INDEX IF NOT EXISTS idx_projections_game ON projections(game_id, id)`

// Insert stores a record and returns its row ID.
func (s *Store) Insert(ctx context.Context, r Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projections (
			event_id, game_id, team_a, team_b, created_at,
			p_final, pts_a, pts_b, total_proj, margin_final,
			edge_total, edge_spread, edge_tt_a, edge_tt_b, ml_edge, triggers,
			results_json
		) VALUES (?,?,?,?,?, ?,?,?,?,?, ?,?,?,?,?,?, ?)`,
		r.EventID, r.GameID, r.TeamA, r.TeamB, r.CreatedAt.UTC().Format(time.RFC3339Nano),
		r.PFinal, r.PtsA, r.PtsB, r.TotalProj, r.MarginFinal,
		r.EdgeTotal, r.EdgeSpread, r.EdgeTTA, r.EdgeTTB, r.MLEdge, r.Triggers,
		string(r.ResultsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("insert projection: %w", err)
	}

	id, _ := res.LastInsertId()
	s.rowCount++
	s.refreshSize()
	if s.cachedSize > s.maxBytes {
		s.evict()
	}
	return id, nil
}

const selectCols = `id, event_id, game_id, team_a, team_b, created_at,
	p_final, pts_a, pts_b, total_proj, margin_final,
	edge_total, edge_spread, edge_tt_a, edge_tt_b, ml_edge, triggers, results_json`

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	return s.query(ctx, `SELECT `+selectCols+` FROM projections ORDER BY id DESC LIMIT ?`, limit)
}

// ForGame returns up to limit records for one game, newest first.
func (s *Store) ForGame(ctx context.Context, gameID string, limit int) ([]Record, error) {
	return s.query(ctx, `SELECT `+selectCols+` FROM projections WHERE game_id = ? ORDER BY id DESC LIMIT ?`, gameID, limit)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query projections: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r         Record
			createdAt string
			raw       string
		)
		if err := rows.Scan(&r.ID, &r.EventID, &r.GameID, &r.TeamA, &r.TeamB, &createdAt,
			&r.PFinal, &r.PtsA, &r.PtsB, &r.TotalProj, &r.MarginFinal,
			&r.EdgeTotal, &r.EdgeSpread, &r.EdgeTTA, &r.EdgeTTB, &r.MLEdge, &r.Triggers, &raw,
		); err != nil {
			return nil, fmt.Errorf("scan projection: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		r.ResultsJSON = json.RawMessage(raw)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the number of stored rows.
func (s *Store) Count() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rowCount
}

// refreshSize re-reads the database file size from SQLite pragmas.
// Must be called with s.mu held.
func (s *Store) refreshSize() {
	var size int64
	row := s.db.QueryRow(`SELECT COALESCE(page_count * page_size, 0) FROM pragma_page_count(), pragma_page_size()`)
	if err := row.Scan(&size); err == nil {
		s.cachedSize = size
	}
}

// evict deletes the oldest 10% of rows by count.
// Must be called with s.mu held.
func (s *Store) evict() {
	toDelete := int64(float64(s.rowCount) * evictPct)
	if toDelete < 1 {
		toDelete = 1
	}

	res, err := s.db.Exec(
		`DELETE FROM projections WHERE id IN (
			SELECT id FROM projections ORDER BY id ASC LIMIT ?
		)`, toDelete,
	)
	if err != nil {
		telemetry.Warnf("journal evict: %v", err)
		return
	}

	deleted, _ := res.RowsAffected()
	s.rowCount -= deleted
	s.evictCounter++

	telemetry.Infof("journal: evicted %d rows (target %d)", deleted, toDelete)

	if s.evictCounter%vacuumInterval == 0 {
		s.db.Exec(`PRAGMA incremental_vacuum`)
	}

	s.refreshSize()
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
