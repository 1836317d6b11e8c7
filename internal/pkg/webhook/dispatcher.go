package webhook

import (
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/gigledger/GigLedger/app/repository"
)

// Enqueuer schedules one delivery for asynchronous processing. The job
// queue implements this; tests substitute a recorder.
type Enqueuer interface {
	EnqueueWebhookDelivery(webhookID uint, payload EventPayload) error
}

// Dispatcher fans a financial event out to every matching subscription.
// Dispatch is fire-and-forget: the mutation that triggered the event never
// sees lookup or delivery failures and never waits for the network.
type Dispatcher struct {
	registry repository.WebhookRepository
	queue    Enqueuer
}

// NewDispatcher creates a dispatcher over a subscription registry and a
// delivery queue.
func NewDispatcher(registry repository.WebhookRepository, queue Enqueuer) *Dispatcher {
	return &Dispatcher{registry: registry, queue: queue}
}

// Dispatch queues one delivery per enabled subscription of the user that
// listens for the event type. No matching subscription means no work and no
// log contact. Errors are swallowed here by design; the delivery log is the
// only failure signal this pipeline exposes.
func (d *Dispatcher) Dispatch(userID uint, event EventType, data map[string]interface{}) {
	hooks, err := d.registry.ListEnabledForEvent(userID, string(event))
	if err != nil {
		log.Errorf("[Webhook] Subscription lookup failed for user %d, event %s: %v", userID, event, err)
		return
	}
	if len(hooks) == 0 {
		return
	}

	payload := EventPayload{
		Event:     event,
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		Data:      data,
	}

	for _, hook := range hooks {
		if err := d.queue.EnqueueWebhookDelivery(hook.ID, payload); err != nil {
			log.Errorf("[Webhook] Failed to enqueue delivery for webhook %d: %v", hook.ID, err)
		}
	}
}

// PaymentReceived announces an incoming payment. An empty date defaults to
// the current time.
func (d *Dispatcher) PaymentReceived(userID uint, bandName string, amount float64, date string) {
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}
	d.Dispatch(userID, EventPaymentReceived, map[string]interface{}{
		"band_name": bandName,
		"amount":    amount,
		"date":      date,
	})
}

// BandPaid announces that a band's outstanding shares were paid out.
func (d *Dispatcher) BandPaid(userID uint, bandName string, amount float64, gigCount int) {
	d.Dispatch(userID, EventBandPaid, map[string]interface{}{
		"band_name": bandName,
		"amount":    amount,
		"gig_count": gigCount,
	})
}

// GigAdded announces a newly booked gig.
func (d *Dispatcher) GigAdded(userID uint, bandName string, date string, amount float64) {
	d.Dispatch(userID, EventGigAdded, map[string]interface{}{
		"band_name": bandName,
		"date":      date,
		"amount":    amount,
	})
}

// GigUpdated announces an edit to an existing gig.
func (d *Dispatcher) GigUpdated(userID uint, bandName string, change string) {
	d.Dispatch(userID, EventGigUpdated, map[string]interface{}{
		"band_name": bandName,
		"change":    change,
	})
}
