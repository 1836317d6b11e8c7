package jobqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBasicJobTypes tests the basic job type constants
func TestBasicJobTypes(t *testing.T) {
	assert.Equal(t, "webhook_delivery", string(JobTypeWebhookDelivery))
}

// TestBasicJobStatus tests the basic job status constants
func TestBasicJobStatus(t *testing.T) {
	assert.Equal(t, "pending", string(JobStatusPending))
	assert.Equal(t, "processing", string(JobStatusProcessing))
	assert.Equal(t, "completed", string(JobStatusCompleted))
	assert.Equal(t, "failed", string(JobStatusFailed))
	assert.Equal(t, "retrying", string(JobStatusRetrying))
	assert.Equal(t, "dropped", string(JobStatusDropped))
}

// TestJob_BasicMethods tests basic job methods
func TestJob_BasicMethods(t *testing.T) {
	job := &Job{
		Status:      JobStatusFailed,
		Attempts:    1,
		MaxAttempts: 3,
	}

	// Test IsRetryable
	assert.True(t, job.IsRetryable())

	job.Attempts = 3
	assert.False(t, job.IsRetryable())

	// Test status transitions
	beforeTime := time.Now()

	job.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	assert.NotNil(t, job.ProcessedAt)
	assert.True(t, job.UpdatedAt.After(beforeTime))

	job.MarkAsCompleted()
	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.NotNil(t, job.CompletedAt)
	assert.Empty(t, job.ErrorMsg)

	job.MarkAsFailed("test error")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "test error", job.ErrorMsg)
	assert.Equal(t, 4, job.Attempts)

	job.MarkAsRetrying()
	assert.Equal(t, JobStatusRetrying, job.Status)

	job.MarkAsDropped()
	assert.Equal(t, JobStatusDropped, job.Status)
}

// TestJob_AttemptBudget verifies that a fresh job gets exactly three attempts
func TestJob_AttemptBudget(t *testing.T) {
	job := &Job{
		Status:      JobStatusPending,
		MaxAttempts: DefaultMaxAttempts,
	}

	attempts := 0
	for {
		job.MarkAsProcessing()
		job.MarkAsFailed("receiver down")
		attempts++
		if !job.IsRetryable() {
			break
		}
	}

	assert.Equal(t, 3, attempts)
}

// TestWebhookDeliveryJobPayload_Serialization tests payload serialization
func TestWebhookDeliveryJobPayload_Serialization(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	payload := WebhookDeliveryJobPayload{
		WebhookID: 7,
		Event:     "payment_received",
		UserID:    42,
		Timestamp: now,
		Data: map[string]interface{}{
			"band_name": "The Testers",
			"amount":    1550.0,
		},
	}

	// Test ToMap
	data := payload.ToMap()
	assert.Equal(t, uint(7), data["webhook_id"])
	assert.Equal(t, "payment_received", data["event"])
	assert.Equal(t, uint(42), data["user_id"])

	// Test FromMap round trip
	restored, err := WebhookDeliveryJobPayloadFromMap(data)
	require.NoError(t, err)
	assert.Equal(t, payload.WebhookID, restored.WebhookID)
	assert.Equal(t, payload.Event, restored.Event)
	assert.Equal(t, payload.UserID, restored.UserID)
	assert.True(t, payload.Timestamp.Equal(restored.Timestamp))
	assert.Equal(t, "The Testers", restored.Data["band_name"])
	assert.Equal(t, 1550.0, restored.Data["amount"])
}

// TestWebhookDeliveryJobPayload_FromMapInvalid tests unreadable payloads
func TestWebhookDeliveryJobPayload_FromMapInvalid(t *testing.T) {
	_, err := WebhookDeliveryJobPayloadFromMap(map[string]interface{}{
		"webhook_id": "not-a-number",
	})
	assert.Error(t, err)
}
