package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"

	"tenant-platform/internal/metrics"
)

// Handler processes one delivery. Returning an error rejects the delivery
// without requeue, which routes it to the tenant's DLQ.
type Handler func(ctx context.Context, msg amqp.Delivery) error

// Pool fans a tenant's deliveries out to a resizable set of goroutines.
type Pool struct {
	tenantID string
	handler  Handler

	mu      sync.Mutex
	workers int
	msgs    <-chan amqp.Delivery
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
}

func NewPool(tenantID string, workerCount int, handler Handler) *Pool {
	if workerCount <= 0 {
		workerCount = 1
	}
	return &Pool{
		tenantID: tenantID,
		handler:  handler,
		workers:  workerCount,
	}
}

// Start launches the workers on msgs. Calling Start on a running pool is a
// no-op.
func (wp *Pool) Start(msgs <-chan amqp.Delivery) {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.running {
		return
	}
	wp.msgs = msgs
	wp.startLocked()
}

func (wp *Pool) startLocked() {
	log.Info().Str("tenant", wp.tenantID).Int("workers", wp.workers).Msg("[Worker] starting pool")
	wp.stopCh = make(chan struct{})
	wp.running = true
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.run(wp.stopCh)
	}
}

func (wp *Pool) run(stop <-chan struct{}) {
	defer wp.wg.Done()
	metrics.WorkerActive.WithLabelValues(wp.tenantID).Inc()
	defer metrics.WorkerActive.WithLabelValues(wp.tenantID).Dec()

	for {
		select {
		case <-stop:
			return
		case msg, ok := <-wp.msgs:
			if !ok {
				return
			}
			wp.process(msg)
		}
	}
}

func (wp *Pool) process(msg amqp.Delivery) {
	if err := wp.handler(context.Background(), msg); err != nil {
		log.Warn().Err(err).Str("tenant", wp.tenantID).Msg("[Worker] failed to process message")
		_ = msg.Reject(false) // send to DLQ
		metrics.WorkerProcessed.WithLabelValues(wp.tenantID, "rejected").Inc()
		return
	}
	_ = msg.Ack(false)
	metrics.WorkerProcessed.WithLabelValues(wp.tenantID, "ok").Inc()
}

// Stop signals every worker and waits for in-flight messages to finish.
func (wp *Pool) Stop() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	wp.stopLocked()
}

func (wp *Pool) stopLocked() {
	if !wp.running {
		return
	}
	close(wp.stopCh)
	wp.wg.Wait()
	wp.running = false
	log.Info().Str("tenant", wp.tenantID).Msg("[Worker] pool stopped")
}

// Workers returns the configured concurrency.
func (wp *Pool) Workers() int {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	return wp.workers
}

// SetWorkerCount updates the worker pool to use a new concurrency level
func (wp *Pool) SetWorkerCount(n int) {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if n <= 0 || n == wp.workers {
		return
	}

	log.Info().Str("tenant", wp.tenantID).Int("from", wp.workers).Int("to", n).Msg("[Worker] rescaling pool")

	wasRunning := wp.running
	wp.stopLocked()
	wp.workers = n
	if wasRunning {
		wp.startLocked()
	}
}
