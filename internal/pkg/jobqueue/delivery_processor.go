package jobqueue

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gigledger/GigLedger/app/models"
	"github.com/gigledger/GigLedger/app/repository"
	"github.com/gigledger/GigLedger/internal/pkg/webhook"
)

// DeliverySender performs one delivery attempt. The webhook sender
// implements this; tests substitute a fake.
type DeliverySender interface {
	Deliver(hook *models.Webhook, payload webhook.EventPayload) bool
}

// webhookStore is the slice of the webhook repository the processor needs.
type webhookStore interface {
	GetByID(id uint) (*models.Webhook, error)
}

// SetSender overrides the delivery sender, mainly for tests.
func (q *Queue) SetSender(sender DeliverySender) {
	q.sender = sender
}

// SetWebhookStore overrides the subscription lookup, mainly for tests.
func (q *Queue) SetWebhookStore(store webhookStore) {
	q.hooks = store
}

func (q *Queue) webhookStore() webhookStore {
	if q.hooks == nil {
		q.hooks = repository.GetGlobalRepositories().Webhook
	}
	return q.hooks
}

func (q *Queue) deliverySender() DeliverySender {
	if q.sender == nil {
		q.sender = webhook.NewSender(repository.GetGlobalRepositories().WebhookLog)
	}
	return q.sender
}

// processWebhookDeliveryJob performs one delivery attempt for one
// subscription. A nil return marks the job completed; ErrDrop discards it;
// any other error counts the attempt and triggers the retry schedule.
func (q *Queue) processWebhookDeliveryJob(ctx context.Context, job *Job) error {
	payload, err := WebhookDeliveryJobPayloadFromMap(job.Payload)
	if err != nil {
		// An unreadable payload will not get better on retry
		return fmt.Errorf("%w: invalid payload: %v", ErrDrop, err)
	}

	hook, err := q.webhookStore().GetByID(payload.WebhookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: webhook %d deleted", ErrDrop, payload.WebhookID)
		}
		// Transient lookup failure, worth another attempt
		return fmt.Errorf("webhook %d lookup failed: %w", payload.WebhookID, err)
	}
	if !hook.Enabled {
		return fmt.Errorf("%w: webhook %d disabled", ErrDrop, hook.ID)
	}

	event := webhook.EventPayload{
		Event:     webhook.EventType(payload.Event),
		Timestamp: payload.Timestamp,
		UserID:    payload.UserID,
		Data:      payload.Data,
	}

	if ok := q.deliverySender().Deliver(hook, event); !ok {
		return fmt.Errorf("delivery attempt for webhook %d failed", hook.ID)
	}

	return nil
}
