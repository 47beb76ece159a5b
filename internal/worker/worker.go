package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driven"
	"github.com/ThePadawan/beevenue-core/internal/core/ports/driving"
)

// Worker consumes index events from the event queue and applies them
// to the index service one at a time.
type Worker struct {
	eventQueue   driven.EventQueue
	indexService driving.IndexService
	logger       *slog.Logger

	// Configuration
	concurrency    int
	dequeueTimeout time.Duration

	// Internal state
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Config holds configuration for the worker.
type Config struct {
	EventQueue     driven.EventQueue
	IndexService   driving.IndexService
	Logger         *slog.Logger
	Concurrency    int           // Number of concurrent event processors
	DequeueTimeout time.Duration // How long to block waiting for an event
}

// New creates a new index worker.
func New(cfg Config) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	dequeueTimeout := cfg.DequeueTimeout
	if dequeueTimeout <= 0 {
		dequeueTimeout = 5 * time.Second
	}

	return &Worker{
		eventQueue:     cfg.EventQueue,
		indexService:   cfg.IndexService,
		logger:         logger,
		concurrency:    concurrency,
		dequeueTimeout: dequeueTimeout,
	}
}

// Start begins the worker loop.
// It runs until Stop is called or context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("worker starting",
		"concurrency", w.concurrency,
		"dequeue_timeout", w.dequeueTimeout,
	)

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			w.processLoop(ctx, workerID)
		}(i)
	}

	go func() {
		wg.Wait()
		close(w.doneCh)
	}()

	return nil
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("worker stopped")
}

// Wait blocks until the worker stops.
func (w *Worker) Wait() {
	<-w.doneCh
}

// processLoop is the main processing loop for a worker goroutine.
func (w *Worker) processLoop(ctx context.Context, workerID int) {
	logger := w.logger.With("worker_id", workerID)
	logger.Info("worker goroutine started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker context cancelled")
			return
		case <-w.stopCh:
			logger.Info("worker stop signal received")
			return
		default:
		}

		event, err := w.eventQueue.Dequeue(ctx, w.dequeueTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			logger.Error("failed to dequeue event", "error", err)
			time.Sleep(time.Second) // Back off on error
			continue
		}

		if event == nil {
			// No event available, continue
			continue
		}

		w.processEvent(ctx, event, logger)
	}
}

// processEvent applies a single event to the index.
func (w *Worker) processEvent(ctx context.Context, event *domain.Event, logger *slog.Logger) {
	logger = logger.With("event_type", event.Type, "queue_id", event.QueueID)
	logger.Info("processing event")

	startTime := time.Now()
	err := w.indexService.Apply(ctx, event)
	duration := time.Since(startTime)

	if err != nil {
		// Index events carry no retry semantics; the next full
		// rebuild reconciles, so a failed event is acked and dropped.
		logger.Error("event failed", "duration", duration, "error", err)
	} else {
		logger.Info("event applied", "duration", duration)
	}

	if ackErr := w.eventQueue.Ack(ctx, event); ackErr != nil {
		logger.Error("failed to ack event", "ack_error", ackErr)
	}
}
