package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/charleschow/hoops-analyst/internal/core/projection"
)

// Matchup is a complete set of engine inputs read from one file.
type Matchup struct {
	TeamA     projection.TeamStats
	TeamB     projection.TeamStats
	Market    projection.MarketData
	Constants projection.LeagueConstants
}

type matchupFile struct {
	TeamA     projection.TeamStats  `yaml:"team_a"`
	TeamB     projection.TeamStats  `yaml:"team_b"`
	Market    projection.MarketData `yaml:"market"`
	Constants leagueFile            `yaml:"constants"`
}

// LoadMatchup reads a matchup YAML file. Keys left out of a team or market
// block keep the league-average seed values; unknown categorical values
// are rejected.
func LoadMatchup(path string) (Matchup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Matchup{}, fmt.Errorf("read matchup: %w", err)
	}
	return ParseMatchup(data)
}

func ParseMatchup(data []byte) (Matchup, error) {
	f := matchupFile{
		TeamA:  projection.DefaultTeam("Team A"),
		TeamB:  projection.DefaultTeam("Team B"),
		Market: projection.DefaultMarket(),
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Matchup{}, fmt.Errorf("parse matchup: %w", err)
	}

	return Matchup{
		TeamA:     f.TeamA,
		TeamB:     f.TeamB,
		Market:    f.Market,
		Constants: f.Constants.apply(projection.DefaultLeagueConstants()),
	}, nil
}
