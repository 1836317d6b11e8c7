package webhook

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gigledger/GigLedger/app/models"
)

// PayloadFormatter renders the wire body for one provider kind. New
// providers add a formatter here instead of branching in the sender.
type PayloadFormatter interface {
	Format(payload EventPayload) ([]byte, error)
}

// FormatterFor returns the formatter for a provider. Unknown providers get
// the generic JSON shape.
func FormatterFor(provider string) PayloadFormatter {
	switch provider {
	case models.WEBHOOK_PROVIDER_DISCORD:
		return discordFormatter{}
	default:
		return genericFormatter{}
	}
}

// genericFormatter sends the EventPayload itself as JSON.
type genericFormatter struct{}

func (genericFormatter) Format(payload EventPayload) ([]byte, error) {
	return json.Marshal(payload)
}

// discordFormatter maps events onto Discord's webhook message shape.
type discordFormatter struct{}

type discordMessage struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color"`
	Fields      []discordField `json:"fields,omitempty"`
	Timestamp   string         `json:"timestamp"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

const (
	colorGreen  = 0x2ECC71
	colorBlue   = 0x3498DB
	colorOrange = 0xE67E22
)

func (discordFormatter) Format(payload EventPayload) ([]byte, error) {
	embed := discordEmbed{
		Timestamp: payload.Timestamp.UTC().Format(time.RFC3339),
	}

	band := stringField(payload.Data, "band_name")

	switch payload.Event {
	case EventPaymentReceived:
		embed.Title = "Payment Received"
		embed.Color = colorGreen
		embed.Description = fmt.Sprintf("Payment from %s came in.", band)
		embed.Fields = amountAndDateFields(payload.Data)
	case EventBandPaid:
		embed.Title = "Band Paid"
		embed.Color = colorBlue
		embed.Description = fmt.Sprintf("%s has been paid out.", band)
		embed.Fields = append(amountAndDateFields(payload.Data), discordField{
			Name:   "Gigs",
			Value:  stringField(payload.Data, "gig_count"),
			Inline: true,
		})
	case EventGigAdded:
		embed.Title = "New Gig"
		embed.Color = colorOrange
		embed.Description = fmt.Sprintf("New gig booked with %s.", band)
		embed.Fields = amountAndDateFields(payload.Data)
	case EventGigUpdated:
		embed.Title = "Gig Updated"
		embed.Color = colorOrange
		embed.Description = fmt.Sprintf("%s: %s", band, stringField(payload.Data, "change"))
	default:
		embed.Title = string(payload.Event)
		embed.Color = colorBlue
	}

	return json.Marshal(discordMessage{Embeds: []discordEmbed{embed}})
}

func amountAndDateFields(data map[string]interface{}) []discordField {
	fields := make([]discordField, 0, 2)
	if amount, ok := data["amount"]; ok {
		fields = append(fields, discordField{Name: "Amount", Value: fmt.Sprintf("%v", amount), Inline: true})
	}
	if date := stringField(data, "date"); date != "" {
		fields = append(fields, discordField{Name: "Date", Value: date, Inline: true})
	}
	return fields
}

func stringField(data map[string]interface{}, key string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
