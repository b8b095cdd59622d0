package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ordesk/backoffice/internal/adapter/carrier"
	"github.com/ordesk/backoffice/internal/domain/model"
)

// TrackingFacade exposes the subset of application functionality required by the tracker.
type TrackingFacade interface {
	UndeliveredArchive(ctx context.Context, market model.Market, limit int) ([]model.SentOrder, error)
	TrackParcel(ctx context.Context, awb string) (*carrier.Tracking, error)
	UpdateAWBStatus(ctx context.Context, market model.Market, orderID int64, status model.AWBStatus) error
}

type trackingJob struct {
	market model.Market
	record model.SentOrder
}

// AWBTracker polls the carrier API for undelivered archive records and
// updates their carrier status concurrently.
type AWBTracker struct {
	facade       TrackingFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan trackingJob
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewAWBTracker constructs the tracking worker pool.
func NewAWBTracker(facade TrackingFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *AWBTracker {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &AWBTracker{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan trackingJob, batchSize*workers),
	}
}

// Start launches background processing.
func (t *AWBTracker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	for i := 0; i < t.workers; i++ {
		t.wg.Add(1)
		go t.worker(runCtx)
	}

	t.wg.Add(1)
	go t.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (t *AWBTracker) Stop() {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.mu.Unlock()

	t.wg.Wait()
}

func (t *AWBTracker) dispatch(ctx context.Context) {
	defer t.wg.Done()
	defer close(t.jobs)
	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.fetchAndDispatch(ctx)
		}
	}
}

func (t *AWBTracker) fetchAndDispatch(ctx context.Context) {
	for _, market := range model.Markets() {
		records, err := t.facade.UndeliveredArchive(ctx, market, t.batchSize)
		if err != nil {
			t.logger.Error("fetch undelivered archive failed",
				slog.String("market", string(market)), slog.String("error", err.Error()))
			continue
		}
		for _, record := range records {
			select {
			case <-ctx.Done():
				return
			case t.jobs <- trackingJob{market: market, record: record}:
			}
		}
	}
}

func (t *AWBTracker) worker(ctx context.Context) {
	defer t.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-t.jobs:
			if !ok {
				return
			}
			t.handle(ctx, job)
		}
	}
}

func (t *AWBTracker) handle(ctx context.Context, job trackingJob) {
	tracking, err := t.facade.TrackParcel(ctx, job.record.AWB)
	if err != nil {
		switch e := err.(type) {
		case carrier.TooManyRequestsError:
			t.logger.Warn("carrier rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			if errors.Is(err, carrier.ErrUnknownTracking) {
				return
			}
			t.logger.Error("carrier fetch failed",
				slog.String("awb", job.record.AWB), slog.String("error", err.Error()))
		}
		return
	}

	if tracking.Status == job.record.AWBStatus {
		return
	}

	if err := t.facade.UpdateAWBStatus(ctx, job.market, job.record.ID, tracking.Status); err != nil {
		t.logger.Error("update awb status failed",
			slog.String("awb", job.record.AWB), slog.String("error", err.Error()))
	}
}
