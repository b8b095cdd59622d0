package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ordesk/backoffice/internal/domain/model"
)

// QueueFacade exposes the subset of application functionality required by the watcher.
type QueueFacade interface {
	PendingSnapshot(ctx context.Context, market model.Market) ([]model.Order, error)
}

// QueueWatcher polls the pending queue of every market and fans snapshots
// out to subscribed clients. Slow subscribers skip snapshots instead of
// blocking the poll loop.
type QueueWatcher struct {
	facade       QueueFacade
	pollInterval time.Duration
	logger       *slog.Logger

	mu     sync.Mutex
	subs   map[model.Market]map[int64]chan []model.Order
	last   map[model.Market][]model.Order
	nextID int64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewQueueWatcher constructs the queue snapshot watcher.
func NewQueueWatcher(facade QueueFacade, pollInterval time.Duration, logger *slog.Logger) *QueueWatcher {
	return &QueueWatcher{
		facade:       facade,
		pollInterval: pollInterval,
		logger:       logger,
		subs:         make(map[model.Market]map[int64]chan []model.Order),
		last:         make(map[model.Market][]model.Order),
	}
}

// Subscribe registers a listener for queue snapshots of one market. The
// returned cancel function must be called when the listener goes away. The
// latest known snapshot, if any, is delivered immediately.
func (w *QueueWatcher) Subscribe(market model.Market) (<-chan []model.Order, func()) {
	ch := make(chan []model.Order, 1)

	w.mu.Lock()
	w.nextID++
	id := w.nextID
	if w.subs[market] == nil {
		w.subs[market] = make(map[int64]chan []model.Order)
	}
	w.subs[market][id] = ch
	if snapshot, ok := w.last[market]; ok {
		ch <- snapshot
	}
	w.mu.Unlock()

	cancel := func() {
		w.mu.Lock()
		if listeners, ok := w.subs[market]; ok {
			if _, ok := listeners[id]; ok {
				delete(listeners, id)
				close(ch)
			}
		}
		w.mu.Unlock()
	}
	return ch, cancel
}

// Start launches background polling.
func (w *QueueWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.poll(runCtx)
}

// Stop waits for the poll loop to finish.
func (w *QueueWatcher) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *QueueWatcher) poll(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, market := range model.Markets() {
				w.refresh(ctx, market)
			}
		}
	}
}

func (w *QueueWatcher) refresh(ctx context.Context, market model.Market) {
	snapshot, err := w.facade.PendingSnapshot(ctx, market)
	if err != nil {
		w.logger.Error("queue snapshot failed",
			slog.String("market", string(market)), slog.String("error", err.Error()))
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.last[market] = snapshot
	for _, ch := range w.subs[market] {
		select {
		case ch <- snapshot:
		default:
		}
	}
}
