package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/charleschow/hoops-analyst/internal/core/analyst"
	"github.com/charleschow/hoops-analyst/internal/core/journal"
	"github.com/charleschow/hoops-analyst/internal/telemetry"
)

const maxBodyBytes = 1 << 20

// JournalReader is satisfied by *journal.Reader.
type JournalReader interface {
	Recent(ctx context.Context, limit int) ([]journal.Record, error)
	ForGame(ctx context.Context, gameID string, limit int) ([]journal.Record, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	svc    *analyst.Service
	reader JournalReader
}

// NewHandler creates a handler. reader may be nil when the journal is disabled.
func NewHandler(svc *analyst.Service, reader JournalReader) *Handler {
	return &Handler{svc: svc, reader: reader}
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "hoops-analyst",
	})
}

// Metrics returns a snapshot of the service counters.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, telemetry.TakeSnapshot())
}

// Constants returns the league baseline requests default to.
func (h *Handler) Constants(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Constants())
}

// Project runs one projection and returns it with its inputs echoed.
func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	var req analyst.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	pe := h.svc.Project(req)
	if !pe.Results.Finite() {
		respondError(w, http.StatusUnprocessableEntity, "projection result is non-finite; check input magnitudes")
		return
	}
	respondJSON(w, http.StatusOK, pe)
}

// Recent lists journaled projections, newest first.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	h.listJournal(w, r, func(ctx context.Context, limit int) ([]journal.Record, error) {
		return h.reader.Recent(ctx, limit)
	})
}

// GameProjections lists journaled projections for one game, newest first.
func (h *Handler) GameProjections(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	h.listJournal(w, r, func(ctx context.Context, limit int) ([]journal.Record, error) {
		return h.reader.ForGame(ctx, gameID, limit)
	})
}

func (h *Handler) listJournal(w http.ResponseWriter, r *http.Request,
	read func(ctx context.Context, limit int) ([]journal.Record, error)) {
	if h.reader == nil {
		respondError(w, http.StatusServiceUnavailable, "journal disabled")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	rows, err := read(r.Context(), limit)
	if err != nil {
		telemetry.Warnf("httpapi: journal read: %v", err)
		respondError(w, http.StatusInternalServerError, "journal read failed")
		return
	}
	if rows == nil {
		rows = []journal.Record{}
	}
	respondJSON(w, http.StatusOK, rows)
}

// respondJSON writes a JSON response. The body is encoded before the
// header goes out so an encoding failure can still become a 500.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		telemetry.Warnf("httpapi: encode response: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"response encoding failed"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
