package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	colorOrange = 0xE67E22 // below the warning threshold
	colorRed    = 0xE74C3C // 5% or less remaining
)

// criticalRatio is the remaining fraction at or below which alerts turn red.
const criticalRatio = 0.05

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendQuotaAlert posts the alert as a single Discord embed.
func (d *DiscordNotifier) SendQuotaAlert(ctx context.Context, alert QuotaAlert) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(alert)},
	}
	return d.post(ctx, payload)
}

func buildEmbed(alert QuotaAlert) discordEmbed {
	embed := discordEmbed{
		Title: fmt.Sprintf("eBay quota low: %s", alert.Resource),
		Color: quotaColor(alert.RemainingRatio()),
		Description: fmt.Sprintf(
			"%.1f%% of the %s call quota remains.",
			alert.RemainingRatio()*100, alert.Resource,
		),
		Fields: []discordEmbedField{
			{Name: "Used", Value: fmt.Sprintf("%d", alert.Used), Inline: true},
			{Name: "Limit", Value: fmt.Sprintf("%d", alert.Limit), Inline: true},
			{Name: "Remaining", Value: fmt.Sprintf("%d", alert.Remaining), Inline: true},
		},
	}

	if !alert.ResetAt.IsZero() {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:  "Resets",
			Value: alert.ResetAt.UTC().Format(time.RFC3339),
		})
		embed.Timestamp = alert.ResetAt.UTC().Format(time.RFC3339)
	}

	return embed
}

func quotaColor(ratio float64) int {
	if ratio <= criticalRatio {
		return colorRed
	}
	return colorOrange
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
