package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/charleschow/hoops-analyst/internal/core/projection"
)

// leagueFile uses pointers so a key left out of the YAML keeps its default
// instead of collapsing to zero.
type leagueFile struct {
	TovLgAvg   *float64 `yaml:"tov_lg_avg"`
	FtrAvg     *float64 `yaml:"ftr_avg"`
	OrebAvg    *float64 `yaml:"oreb_avg"`
	ThreePAAvg *float64 `yaml:"three_pa_avg"`
}

func (f leagueFile) apply(c projection.LeagueConstants) projection.LeagueConstants {
	if f.TovLgAvg != nil {
		c.TovLgAvg = *f.TovLgAvg
	}
	if f.FtrAvg != nil {
		c.FtrAvg = *f.FtrAvg
	}
	if f.OrebAvg != nil {
		c.OrebAvg = *f.OrebAvg
	}
	if f.ThreePAAvg != nil {
		c.ThreePAAvg = *f.ThreePAAvg
	}
	return c
}

// LoadLeagueConstants reads league baselines from path. A missing file
// yields the stock defaults.
func LoadLeagueConstants(path string) (projection.LeagueConstants, error) {
	defaults := projection.DefaultLeagueConstants()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaults, nil
	}
	if err != nil {
		return defaults, fmt.Errorf("read league constants: %w", err)
	}

	var f leagueFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return defaults, fmt.Errorf("parse league constants: %w", err)
	}
	return f.apply(defaults), nil
}
