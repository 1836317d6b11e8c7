package webhook

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigledger/GigLedger/app/models"
)

func TestFormatterFor(t *testing.T) {
	assert.IsType(t, discordFormatter{}, FormatterFor(models.WEBHOOK_PROVIDER_DISCORD))
	assert.IsType(t, genericFormatter{}, FormatterFor(models.WEBHOOK_PROVIDER_GENERIC))
	assert.IsType(t, genericFormatter{}, FormatterFor("something-else"))
}

func TestGenericFormatter_PassesPayloadThrough(t *testing.T) {
	payload := EventPayload{
		Event:     EventGigAdded,
		Timestamp: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		UserID:    42,
		Data:      map[string]interface{}{"band_name": "Quartet"},
	}

	body, err := genericFormatter{}.Format(payload)
	require.NoError(t, err)

	var decoded EventPayload
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, EventGigAdded, decoded.Event)
	assert.Equal(t, uint(42), decoded.UserID)
	assert.Equal(t, "Quartet", decoded.Data["band_name"])
}

func decodeDiscord(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var msg struct {
		Embeds []map[string]interface{} `json:"embeds"`
	}
	require.NoError(t, json.Unmarshal(body, &msg))
	require.Len(t, msg.Embeds, 1)
	return msg.Embeds[0]
}

func TestDiscordFormatter_EventShapes(t *testing.T) {
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		event         EventType
		data          map[string]interface{}
		expectedTitle string
		expectedColor float64
	}{
		{
			name:          "payment received",
			event:         EventPaymentReceived,
			data:          map[string]interface{}{"band_name": "Quartet", "amount": 1550.0, "date": "2026-05-01"},
			expectedTitle: "Payment Received",
			expectedColor: float64(colorGreen),
		},
		{
			name:          "band paid",
			event:         EventBandPaid,
			data:          map[string]interface{}{"band_name": "Quartet", "amount": 900.0, "gig_count": 2},
			expectedTitle: "Band Paid",
			expectedColor: float64(colorBlue),
		},
		{
			name:          "gig added",
			event:         EventGigAdded,
			data:          map[string]interface{}{"band_name": "Quartet", "amount": 1550.0, "date": "2026-06-01"},
			expectedTitle: "New Gig",
			expectedColor: float64(colorOrange),
		},
		{
			name:          "gig updated",
			event:         EventGigUpdated,
			data:          map[string]interface{}{"band_name": "Quartet", "change": "fee changed"},
			expectedTitle: "Gig Updated",
			expectedColor: float64(colorOrange),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := discordFormatter{}.Format(EventPayload{
				Event:     tt.event,
				Timestamp: ts,
				UserID:    42,
				Data:      tt.data,
			})
			require.NoError(t, err)

			embed := decodeDiscord(t, body)
			assert.Equal(t, tt.expectedTitle, embed["title"])
			assert.Equal(t, tt.expectedColor, embed["color"])
			assert.Equal(t, "2026-05-01T12:00:00Z", embed["timestamp"])
		})
	}
}

func TestDiscordFormatter_BandPaidIncludesGigCount(t *testing.T) {
	body, err := discordFormatter{}.Format(EventPayload{
		Event:     EventBandPaid,
		Timestamp: time.Now(),
		Data:      map[string]interface{}{"band_name": "Quartet", "amount": 900.0, "gig_count": 2},
	})
	require.NoError(t, err)

	embed := decodeDiscord(t, body)
	fields, ok := embed["fields"].([]interface{})
	require.True(t, ok)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.(map[string]interface{})["name"].(string))
	}
	assert.Contains(t, names, "Amount")
	assert.Contains(t, names, "Gigs")
}

func TestDiscordFormatter_UnknownEventFallsBack(t *testing.T) {
	body, err := discordFormatter{}.Format(EventPayload{
		Event:     EventType("something_new"),
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	embed := decodeDiscord(t, body)
	assert.Equal(t, "something_new", embed["title"])
}
