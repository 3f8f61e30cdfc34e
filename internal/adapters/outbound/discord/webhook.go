package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charleschow/hoops-analyst/internal/telemetry"
)

// Notifier posts messages to a Discord webhook. A Notifier with no URL is
// disabled and every send is a no-op.
type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *Notifier) Enabled() bool { return n.webhookURL != "" }

type Embed struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
	Timestamp   string  `json:"timestamp,omitempty"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

func (n *Notifier) SendText(ctx context.Context, msg string) error {
	return n.send(ctx, webhookPayload{Content: msg})
}

func (n *Notifier) SendEmbed(ctx context.Context, embed Embed) error {
	if embed.Timestamp == "" {
		embed.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return n.send(ctx, webhookPayload{Embeds: []Embed{embed}})
}

func (n *Notifier) send(ctx context.Context, payload webhookPayload) error {
	if !n.Enabled() {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		telemetry.Warnf("discord: rate limited")
		return fmt.Errorf("discord rate limited")
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook: status=%d", resp.StatusCode)
	}

	return nil
}

// --- Convenience methods for common alert types ---

const (
	ColorGreen  = 0x2ECC71
	ColorRed    = 0xE74C3C
	ColorYellow = 0xF1C40F
	ColorBlue   = 0x3498DB
)

// EdgeSummary is the alert-ready view of one projection with fired triggers.
type EdgeSummary struct {
	Matchup     string
	GameID      string
	Favorite    string
	TotalProj   float64
	MarketTotal float64
	WinProbA    float64
	Edges       []string
}

func (n *Notifier) EdgeAlert(ctx context.Context, s EdgeSummary) error {
	return n.SendEmbed(ctx, EdgeEmbed(s))
}

// EdgeEmbed builds the embed EdgeAlert sends.
func EdgeEmbed(s EdgeSummary) Embed {
	return Embed{
		Title:       fmt.Sprintf("Edge Detected: %s", s.Matchup),
		Description: strings.Join(s.Edges, "\n"),
		Color:       ColorGreen,
		Fields: []Field{
			{Name: "Game", Value: s.GameID, Inline: true},
			{Name: "Model margin", Value: s.Favorite, Inline: true},
			{Name: "Model total", Value: fmt.Sprintf("%.1f (mkt %.1f)", s.TotalProj, s.MarketTotal), Inline: true},
			{Name: "Win prob A", Value: fmt.Sprintf("%.1f%%", s.WinProbA*100), Inline: true},
		},
	}
}
