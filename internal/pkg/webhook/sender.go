package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/gigledger/GigLedger/app/models"
	"github.com/gigledger/GigLedger/app/repository"
)

const (
	// DefaultTimeout bounds a single delivery attempt end to end.
	DefaultTimeout = 10 * time.Second

	// maxResponseBytes caps how much of a receiver's response body ends up
	// in the delivery log.
	maxResponseBytes = 4 * 1024
)

// Sender performs single delivery attempts. Every attempt, successful or
// not, appends exactly one log entry before the sender returns; a failed
// log write is itself only logged, never surfaced.
type Sender struct {
	client *http.Client
	logs   repository.WebhookLogRepository
}

// NewSender creates a sender that records attempts in the given log store.
func NewSender(logs repository.WebhookLogRepository) *Sender {
	return &Sender{
		client: &http.Client{Timeout: DefaultTimeout},
		logs:   logs,
	}
}

// Deliver POSTs one event to one subscription and reports whether the
// attempt succeeded. Success means the receiver answered with a 2xx status;
// everything else, including transport failures, counts as a failed attempt.
func (s *Sender) Deliver(hook *models.Webhook, payload EventPayload) bool {
	entry := &models.WebhookLog{
		WebhookID: hook.ID,
		Event:     string(payload.Event),
	}
	if data, err := json.Marshal(payload.Data); err == nil {
		entry.Payload = string(data)
	}

	body, err := FormatterFor(hook.Provider).Format(payload)
	if err != nil {
		// Formatting failures are recorded like transport failures: the
		// attempt never reached the network.
		entry.Error = err.Error()
		s.append(entry)
		return false
	}

	resp, err := s.client.Post(hook.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		entry.StatusCode = 0
		entry.Error = err.Error()
		s.append(entry)
		return false
	}
	defer resp.Body.Close()

	entry.StatusCode = resp.StatusCode
	entry.Success = resp.StatusCode >= 200 && resp.StatusCode < 300

	// Discord answers webhook posts with an empty 204; storing the status
	// line is more useful there than an empty body.
	if hook.Provider == models.WEBHOOK_PROVIDER_DISCORD {
		entry.Response = fmt.Sprintf("HTTP %d", resp.StatusCode)
	} else {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		entry.Response = string(respBody)
	}

	s.append(entry)
	return entry.Success
}

func (s *Sender) append(entry *models.WebhookLog) {
	if err := s.logs.Append(entry); err != nil {
		log.Errorf("[Webhook] Failed to record delivery attempt for webhook %d: %v", entry.WebhookID, err)
	}
}

// SetClient swaps the HTTP client, mainly so tests can shorten timeouts.
func (s *Sender) SetClient(client *http.Client) {
	if client != nil {
		s.client = client
	}
}
