package webhook

import "time"

// EventType tags a financial event that subscriptions can listen for.
type EventType string

const (
	EventPaymentReceived EventType = "payment_received"
	EventBandPaid        EventType = "band_paid"
	EventGigAdded        EventType = "gig_added"
	EventGigUpdated      EventType = "gig_updated"
)

// EventTypes lists every known event tag.
func EventTypes() []EventType {
	return []EventType{EventPaymentReceived, EventBandPaid, EventGigAdded, EventGigUpdated}
}

// Valid reports whether the tag is a known event type.
func (e EventType) Valid() bool {
	switch e {
	case EventPaymentReceived, EventBandPaid, EventGigAdded, EventGigUpdated:
		return true
	}
	return false
}

// EventPayload is the provider-neutral body of one event: the tag, when it
// happened, whose data it is, and the event-specific fields (band name,
// amount, date, gig count, ...).
type EventPayload struct {
	Event     EventType              `json:"event"`
	Timestamp time.Time              `json:"timestamp"`
	UserID    uint                   `json:"user_id"`
	Data      map[string]interface{} `json:"data"`
}
