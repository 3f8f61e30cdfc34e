package events

import "github.com/charleschow/hoops-analyst/internal/core/projection"

// ProjectionEvent carries one engine call: its inputs and its result.
// It is published for every projection and re-published as EventEdge
// when any trigger fired.
type ProjectionEvent struct {
	GameID    string                     `json:"game_id"`
	TeamA     projection.TeamStats       `json:"team_a"`
	TeamB     projection.TeamStats       `json:"team_b"`
	Market    projection.MarketData      `json:"market"`
	Constants projection.LeagueConstants `json:"constants"`
	Results   projection.Results         `json:"results"`
}

// Matchup renders "A @ B" for display.
func (p ProjectionEvent) Matchup() string {
	return p.TeamA.Name + " @ " + p.TeamB.Name
}
