package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP API
	HTTPHost    string
	HTTPPort    int
	CORSOrigins []string

	// League baselines (YAML). Empty or missing file means stock defaults.
	LeagueConstantsPath string

	// Projection journal (SQLite). Empty disables it.
	JournalPath string

	// Discord edge alerts. Empty webhook disables them.
	DiscordWebhookURL string
	AlertRatePerMin   float64

	// Redis stream publishing. Empty address disables it.
	RedisAddr   string
	RedisStream string

	// Telemetry
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPHost:    envStr("HTTP_HOST", "0.0.0.0"),
		HTTPPort:    envInt("HTTP_PORT", 8090),
		CORSOrigins: envList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),

		LeagueConstantsPath: envStr("LEAGUE_CONSTANTS_PATH", "internal/config/league_constants.yaml"),

		JournalPath: envStr("JOURNAL_PATH", "data/projections.db"),

		DiscordWebhookURL: envStr("DISCORD_WEBHOOK_URL", ""),
		AlertRatePerMin:   envFloat("ALERT_RATE_PER_MIN", 6),

		RedisAddr:   envStr("REDIS_ADDR", ""),
		RedisStream: envStr("REDIS_STREAM", "projections.basketball_nba"),

		LogLevel: envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
