package jobqueue

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/gigledger/GigLedger/internal/pkg/env"
)

// Manager manages the global delivery queue and background tasks
type Manager struct {
	queue       *Queue
	statsTicker *time.Ticker
	stopCh      chan struct{}
	wg          sync.WaitGroup
	mu          sync.Mutex
	running     bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global delivery queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		// Get worker count from env, fallback to 5 if not set
		workerCount := 5
		if v, err := strconv.Atoi(env.GetEnv("QUEUE_WORKERS", "5")); err == nil && v > 0 {
			workerCount = v
		}

		globalManager = &Manager{
			queue:  NewQueue(workerCount),
			stopCh: make(chan struct{}),
		}
	})
	return globalManager
}

// GetQueue returns the managed delivery queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the delivery queue and background tasks
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[JobQueue Manager] Starting delivery queue and background tasks")

	// Start the delivery queue
	m.queue.Start()

	// Log queue statistics every 5 minutes
	m.statsTicker = time.NewTicker(5 * time.Minute)
	m.wg.Add(1)
	go m.statsWorker()

	log.Info("[JobQueue Manager] Started successfully")
}

// Stop stops the delivery queue and background tasks
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[JobQueue Manager] Stopping delivery queue and background tasks...")

	if m.statsTicker != nil {
		m.statsTicker.Stop()
	}

	// Signal workers to stop
	close(m.stopCh)
	m.stopCh = nil
	m.running = false

	// Wait for background workers to finish
	m.wg.Wait()

	// Stop the delivery queue
	m.queue.Stop()

	log.Info("[JobQueue Manager] Stopped successfully")
}

// statsWorker periodically logs queue depth and status counters
func (m *Manager) statsWorker() {
	defer m.wg.Done()
	log.Info("[JobQueue Manager] Started stats worker (interval: 5 minutes)")

	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Stats worker stopping")
			return
		case <-m.statsTicker.C:
			ctx := context.Background()
			pending, err := m.queue.GetQueueSize(ctx)
			if err != nil {
				log.Errorf("[JobQueue Manager] Error reading queue size: %v", err)
				continue
			}
			processing, _ := m.queue.GetProcessingSize(ctx)
			stats, _ := m.queue.GetJobStats(ctx)
			log.Infof("[JobQueue Manager] Queue: %d pending, %d processing, stats: %v", pending, processing, stats)
		}
	}
}

// IsRunning returns whether the manager is currently running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
