package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ordesk/backoffice/internal/domain/model"
)

type queueFacadeStub struct {
	orders []model.Order
	err    error
	calls  atomic.Int64
}

func (s *queueFacadeStub) PendingSnapshot(ctx context.Context, market model.Market) ([]model.Order, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.orders, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestQueueWatcherSubscribeDeliversLastSnapshot(t *testing.T) {
	facade := &queueFacadeStub{orders: []model.Order{{ID: 1, DocID: "1"}}}
	watcher := NewQueueWatcher(facade, time.Hour, discardLogger())

	watcher.refresh(context.Background(), model.MarketRO)

	snapshots, cancel := watcher.Subscribe(model.MarketRO)
	defer cancel()

	select {
	case snapshot := <-snapshots:
		if len(snapshot) != 1 || snapshot[0].ID != 1 {
			t.Fatalf("unexpected snapshot %+v", snapshot)
		}
	case <-time.After(time.Second):
		t.Fatal("no immediate snapshot delivered")
	}
}

func TestQueueWatcherFansOutRefresh(t *testing.T) {
	facade := &queueFacadeStub{}
	watcher := NewQueueWatcher(facade, time.Hour, discardLogger())

	first, cancelFirst := watcher.Subscribe(model.MarketRO)
	defer cancelFirst()
	second, cancelSecond := watcher.Subscribe(model.MarketRO)
	defer cancelSecond()
	other, cancelOther := watcher.Subscribe(model.MarketMD)
	defer cancelOther()

	facade.orders = []model.Order{{ID: 2, DocID: "2"}}
	watcher.refresh(context.Background(), model.MarketRO)

	for _, ch := range []<-chan []model.Order{first, second} {
		select {
		case snapshot := <-ch:
			if len(snapshot) != 1 || snapshot[0].ID != 2 {
				t.Fatalf("unexpected snapshot %+v", snapshot)
			}
		case <-time.After(time.Second):
			t.Fatal("snapshot not fanned out")
		}
	}

	select {
	case snapshot := <-other:
		t.Fatalf("snapshot leaked across markets: %+v", snapshot)
	default:
	}
}

func TestQueueWatcherCancelClosesChannel(t *testing.T) {
	watcher := NewQueueWatcher(&queueFacadeStub{}, time.Hour, discardLogger())

	snapshots, cancel := watcher.Subscribe(model.MarketRO)
	cancel()
	cancel() // idempotent

	if _, ok := <-snapshots; ok {
		t.Fatal("expected closed channel after cancel")
	}

	facade := &queueFacadeStub{orders: []model.Order{{ID: 3}}}
	watcher.facade = facade
	watcher.refresh(context.Background(), model.MarketRO)
}

func TestQueueWatcherRefreshKeepsLastOnError(t *testing.T) {
	facade := &queueFacadeStub{orders: []model.Order{{ID: 4}}}
	watcher := NewQueueWatcher(facade, time.Hour, discardLogger())
	watcher.refresh(context.Background(), model.MarketRO)

	facade.err = errors.New("db down")
	watcher.refresh(context.Background(), model.MarketRO)

	snapshots, cancel := watcher.Subscribe(model.MarketRO)
	defer cancel()
	select {
	case snapshot := <-snapshots:
		if len(snapshot) != 1 || snapshot[0].ID != 4 {
			t.Fatalf("expected previous snapshot, got %+v", snapshot)
		}
	case <-time.After(time.Second):
		t.Fatal("previous snapshot lost after failed refresh")
	}
}

func TestQueueWatcherStartPolls(t *testing.T) {
	facade := &queueFacadeStub{orders: []model.Order{{ID: 5}}}
	watcher := NewQueueWatcher(facade, 5*time.Millisecond, discardLogger())

	snapshots, cancel := watcher.Subscribe(model.MarketRO)
	defer cancel()

	watcher.Start(context.Background())
	defer watcher.Stop()

	select {
	case snapshot := <-snapshots:
		if len(snapshot) != 1 || snapshot[0].ID != 5 {
			t.Fatalf("unexpected snapshot %+v", snapshot)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("poll loop produced no snapshot")
	}
}
