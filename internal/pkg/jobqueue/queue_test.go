package jobqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestNewQueue tests the queue constructor
func TestNewQueue(t *testing.T) {
	tests := []struct {
		name            string
		workers         int
		expectedWorkers int
	}{
		{"Valid worker count", 5, 5},
		{"Zero workers", 0, 3},
		{"Negative workers", -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := NewQueue(tt.workers)

			assert.NotNil(t, queue)
			assert.Equal(t, tt.expectedWorkers, queue.workers)
			assert.NotNil(t, queue.workerPool)
			assert.Equal(t, tt.expectedWorkers, cap(queue.workerPool))
			assert.NotNil(t, queue.stopCh)
			assert.False(t, queue.running)
			assert.NotNil(t, queue.retryDelay)
			assert.NotNil(t, queue.scheduleRetry)
		})
	}
}

func TestConstants(t *testing.T) {
	// Test Redis key constants
	assert.Equal(t, "delivery:", JobKeyPrefix)
	assert.Equal(t, "delivery_queue", JobQueueKey)
	assert.Equal(t, "delivery_processing", JobProcessingKey)
	assert.Equal(t, "delivery_stats", JobStatsKey)

	// Test job settings constants
	assert.Equal(t, 3, DefaultMaxAttempts)
	assert.Equal(t, 24*time.Hour, JobTTL)
}

// TestBackoffDelay pins the retry pauses: 1s after the first failed
// attempt, 2s after the second.
func TestBackoffDelay(t *testing.T) {
	assert.Equal(t, 1*time.Second, backoffDelay(1))
	assert.Equal(t, 2*time.Second, backoffDelay(2))
	assert.Equal(t, 4*time.Second, backoffDelay(3))

	// Out-of-range input clamps to the first step
	assert.Equal(t, 1*time.Second, backoffDelay(0))
	assert.Equal(t, 1*time.Second, backoffDelay(-5))
}
