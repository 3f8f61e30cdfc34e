package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/charleschow/hoops-analyst/internal/config"
	"github.com/charleschow/hoops-analyst/internal/core/display"
	"github.com/charleschow/hoops-analyst/internal/core/projection"
)

func main() {
	file := flag.String("f", "examples/matchup.yaml", "matchup YAML file")
	asJSON := flag.Bool("json", false, "print the result record as JSON")
	flag.Parse()

	m, err := config.LoadMatchup(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "project: %v\n", err)
		os.Exit(1)
	}

	res := projection.Project(m.TeamA, m.TeamB, m.Market, m.Constants)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(os.Stderr, "project: encode: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := display.Render(os.Stdout, m.TeamA, m.TeamB, m.Market, res); err != nil {
		fmt.Fprintf(os.Stderr, "project: %v\n", err)
		os.Exit(1)
	}
}
