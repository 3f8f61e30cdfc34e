package journal

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 200

	recentCacheTTL = 2 * time.Second
)

// Source is the read side of the journal.
type Source interface {
	Recent(ctx context.Context, limit int) ([]Record, error)
	ForGame(ctx context.Context, gameID string, limit int) ([]Record, error)
}

type cachedPage struct {
	rows    []Record
	fetched time.Time
}

// Reader serves journal queries from a short-lived cache. Concurrent
// misses for the same query share one database round trip. Every caller
// gets its own copy of the rows.
type Reader struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	pages map[string]cachedPage

	sfGroup singleflight.Group
}

func NewReader(src Source) *Reader {
	return &Reader{
		src:   src,
		ttl:   recentCacheTTL,
		now:   time.Now,
		pages: make(map[string]cachedPage),
	}
}

// ClampLimit maps a requested page size into [1, MaxRecentLimit]; zero or
// negative means DefaultRecentLimit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		return MaxRecentLimit
	}
	return limit
}

// Recent returns the newest projections across all games.
func (r *Reader) Recent(ctx context.Context, limit int) ([]Record, error) {
	limit = ClampLimit(limit)
	return r.cached(strconv.Itoa(limit), func() ([]Record, error) {
		return r.src.Recent(ctx, limit)
	})
}

// ForGame returns the newest projections for one game.
func (r *Reader) ForGame(ctx context.Context, gameID string, limit int) ([]Record, error) {
	limit = ClampLimit(limit)
	return r.cached("game:"+gameID+":"+strconv.Itoa(limit), func() ([]Record, error) {
		return r.src.ForGame(ctx, gameID, limit)
	})
}

func (r *Reader) cached(key string, fetch func() ([]Record, error)) ([]Record, error) {
	r.mu.RLock()
	page, ok := r.pages[key]
	r.mu.RUnlock()
	if ok && r.now().Sub(page.fetched) < r.ttl {
		return clone(page.rows), nil
	}

	v, err, _ := r.sfGroup.Do(key, func() (any, error) {
		rows, err := fetch()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.pages[key] = cachedPage{rows: rows, fetched: r.now()}
		r.mu.Unlock()
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return clone(v.([]Record)), nil
}

func clone(rows []Record) []Record {
	if rows == nil {
		return nil
	}
	out := make([]Record, len(rows))
	copy(out, rows)
	for i := range out {
		out[i].ResultsJSON = append(json.RawMessage(nil), rows[i].ResultsJSON...)
	}
	return out
}
