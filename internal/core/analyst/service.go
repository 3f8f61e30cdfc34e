// Package analyst runs projections for callers and announces each result
// on the event bus.
package analyst

import (
	"fmt"
	"time"

	"github.com/charleschow/hoops-analyst/internal/core/projection"
	"github.com/charleschow/hoops-analyst/internal/core/teams"
	"github.com/charleschow/hoops-analyst/internal/events"
	"github.com/charleschow/hoops-analyst/internal/telemetry"
)

// Request is one projection request. Market and Constants fall back to the
// stock market and the service's league constants when absent.
type Request struct {
	GameID    string                      `json:"game_id,omitempty"`
	TeamA     projection.TeamStats        `json:"team_a"`
	TeamB     projection.TeamStats        `json:"team_b"`
	Market    *projection.MarketData      `json:"market,omitempty"`
	Constants *projection.LeagueConstants `json:"constants,omitempty"`
}

// Service owns the league baseline and the bus projections are published on.
type Service struct {
	bus       *events.Bus
	constants projection.LeagueConstants
}

func NewService(bus *events.Bus, constants projection.LeagueConstants) *Service {
	return &Service{bus: bus, constants: constants}
}

// Constants returns the league baseline requests default to.
func (s *Service) Constants() projection.LeagueConstants { return s.constants }

// Project runs the engine, publishes a projection event and, when any
// trigger fired, an edge event carrying the same payload. Results that are
// not finite are returned to the caller but never published.
func (s *Service) Project(req Request) events.ProjectionEvent {
	pe := events.ProjectionEvent{
		GameID:    req.GameID,
		TeamA:     req.TeamA,
		TeamB:     req.TeamB,
		Market:    projection.DefaultMarket(),
		Constants: s.constants,
	}
	if req.Market != nil {
		pe.Market = *req.Market
	}
	if req.Constants != nil {
		pe.Constants = *req.Constants
	}
	if pe.TeamA.Name == "" {
		pe.TeamA.Name = "Team A"
	}
	if pe.TeamB.Name == "" {
		pe.TeamB.Name = "Team B"
	}
	if pe.GameID == "" {
		pe.GameID = teams.GameID(pe.TeamA.Name, pe.TeamB.Name)
	}

	start := time.Now()
	pe.Results = projection.Project(pe.TeamA, pe.TeamB, pe.Market, pe.Constants)
	telemetry.Metrics.ProjectionLatency.Record(time.Since(start))
	telemetry.Metrics.Projections.Inc()

	log := telemetry.With("game", pe.GameID)
	if !pe.Results.Finite() {
		telemetry.Metrics.NonFinite.Inc()
		log.Warn("analyst: non-finite projection not published", "margin", pe.Results.MarginFinal, "total", pe.Results.TotalProj)
		return pe
	}
	log.Debug(fmt.Sprintf("analyst: p=%.1f total=%.1f margin=%.1f", pe.Results.PFinal, pe.Results.TotalProj, pe.Results.MarginFinal),
		"triggers", pe.Results.Triggers.Signature())

	evt := events.New(events.EventProjection, pe.GameID, pe)
	s.bus.Publish(evt)

	if pe.Results.Triggers.Any() {
		telemetry.Metrics.TriggersFired.Inc()
		edge := evt
		edge.Type = events.EventEdge
		s.bus.Publish(edge)
	}
	return pe
}
