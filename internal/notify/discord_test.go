package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAlert(remaining int64) QuotaAlert {
	return QuotaAlert{
		Resource:  "buy.browse",
		Used:      5000 - remaining,
		Limit:     5000,
		Remaining: remaining,
		ResetAt:   time.Date(2026, 2, 17, 8, 0, 0, 0, time.UTC),
	}
}

func TestDiscordNotifier_SendQuotaAlert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		alert      QuotaAlert
		statusCode int
		wantErr    bool
		errMsg     string
		wantColor  int
	}{
		{
			name:       "below warning threshold is orange",
			alert:      testAlert(400),
			statusCode: http.StatusNoContent,
			wantColor:  colorOrange,
		},
		{
			name:       "five percent remaining is red",
			alert:      testAlert(250),
			statusCode: http.StatusNoContent,
			wantColor:  colorRed,
		},
		{
			name:       "exhausted is red",
			alert:      testAlert(0),
			statusCode: http.StatusOK,
			wantColor:  colorRed,
		},
		{
			name:       "discord rate limit",
			alert:      testAlert(400),
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "server error includes body",
			alert:      testAlert(400),
			statusCode: http.StatusInternalServerError,
			wantErr:    true,
			errMsg:     "discord returned 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got discordWebhookPayload
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.statusCode)
				if tt.statusCode >= 300 {
					fmt.Fprint(w, `{"message":"nope"}`)
				}
			}))
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL, WithHTTPClient(srv.Client()))
			err := d.SendQuotaAlert(context.Background(), tt.alert)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)

			require.Len(t, got.Embeds, 1)
			embed := got.Embeds[0]
			assert.Equal(t, "eBay quota low: buy.browse", embed.Title)
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Equal(t, "2026-02-17T08:00:00Z", embed.Timestamp)
			require.Len(t, embed.Fields, 4)
			assert.Equal(t, fmt.Sprintf("%d", tt.alert.Remaining), embed.Fields[2].Value)
		})
	}
}

func TestBuildEmbed_NoResetTime(t *testing.T) {
	t.Parallel()

	embed := buildEmbed(QuotaAlert{Resource: "commerce.taxonomy", Used: 9, Limit: 10, Remaining: 1})
	assert.Len(t, embed.Fields, 3)
	assert.Empty(t, embed.Timestamp)
	assert.Equal(t, "10.0% of the commerce.taxonomy call quota remains.", embed.Description)
}

func TestQuotaAlert_RemainingRatio(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.08, testAlert(400).RemainingRatio(), 0.0001)
	assert.InDelta(t, 1.0, QuotaAlert{Remaining: 3}.RemainingRatio(), 0.0001)
}

func TestDiscordNotifier_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewDiscordNotifier(url).SendQuotaAlert(context.Background(), testAlert(10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

// compile-time interface check.
var _ Notifier = (*DiscordNotifier)(nil)
