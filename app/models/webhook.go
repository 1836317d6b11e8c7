package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	WEBHOOK_PROVIDER_DISCORD = "discord"
	WEBHOOK_PROVIDER_GENERIC = "generic"
)

// Webhook is a user-registered outbound endpoint plus the set of event
// types it wants to receive. Its delivery log entries are owned by the
// subscription and are removed together with it.
type Webhook struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"index" json:"user_id"`
	User      User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name      string       `gorm:"type:varchar(150)" json:"name" validate:"required,max=150"`
	URL       string       `gorm:"type:varchar(500)" json:"url" validate:"required,url,max=500"`
	Provider  string       `gorm:"type:varchar(20);default:'generic'" json:"provider" validate:"oneof=discord generic"`
	Events    []string     `gorm:"serializer:json" json:"events" validate:"required,min=1,dive,oneof=payment_received band_paid gig_added gig_updated"`
	Enabled   bool         `gorm:"default:true" json:"enabled"`
	Logs      []WebhookLog `gorm:"foreignKey:WebhookID" json:"logs,omitempty"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (w *Webhook) Validate() error {
	v := validator.New()

	return v.Struct(w)
}

// NewWebhook builds a validated subscription. An empty name defaults to
// "<provider> Webhook" like the UI does.
func NewWebhook(userID uint, name string, url string, provider string, events []string) (*Webhook, error) {
	if name == "" {
		name = fmt.Sprintf("%s Webhook", provider)
	}

	w := &Webhook{
		UserID:   userID,
		Name:     name,
		URL:      url,
		Provider: provider,
		Events:   events,
		Enabled:  true,
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// SubscribedTo reports whether the subscription's event set contains the
// given event type.
func (w *Webhook) SubscribedTo(event string) bool {
	for _, e := range w.Events {
		if e == event {
			return true
		}
	}
	return false
}
