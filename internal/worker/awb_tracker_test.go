package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ordesk/backoffice/internal/adapter/carrier"
	"github.com/ordesk/backoffice/internal/domain/model"
)

type statusUpdate struct {
	market  model.Market
	orderID int64
	status  model.AWBStatus
}

type trackingFacadeStub struct {
	mu        sync.Mutex
	records   map[model.Market][]model.SentOrder
	trackings map[string]*carrier.Tracking
	trackErr  error
	updateErr error
	updates   []statusUpdate
}

func (s *trackingFacadeStub) UndeliveredArchive(ctx context.Context, market model.Market, limit int) ([]model.SentOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[market], nil
}

func (s *trackingFacadeStub) TrackParcel(ctx context.Context, awb string) (*carrier.Tracking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trackErr != nil {
		return nil, s.trackErr
	}
	tracking, ok := s.trackings[awb]
	if !ok {
		return nil, carrier.ErrUnknownTracking
	}
	return tracking, nil
}

func (s *trackingFacadeStub) UpdateAWBStatus(ctx context.Context, market model.Market, orderID int64, status model.AWBStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates = append(s.updates, statusUpdate{market: market, orderID: orderID, status: status})
	return nil
}

func (s *trackingFacadeStub) recorded() []statusUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]statusUpdate(nil), s.updates...)
}

func undelivered(id int64, awb string, status model.AWBStatus) model.SentOrder {
	return model.SentOrder{
		Order:     model.Order{ID: id, DocID: "1", Status: model.OrderStatusConfirmed},
		AWB:       awb,
		AWBStatus: status,
	}
}

func TestAWBTrackerHandleUpdatesChangedStatus(t *testing.T) {
	facade := &trackingFacadeStub{
		trackings: map[string]*carrier.Tracking{
			"AWB1": {AWB: "AWB1", Status: model.AWBStatusDelivered},
		},
	}
	tracker := NewAWBTracker(facade, time.Hour, 10, 2, discardLogger())

	tracker.handle(context.Background(), trackingJob{
		market: model.MarketRO,
		record: undelivered(7, "AWB1", model.AWBStatusInProgress),
	})

	updates := facade.recorded()
	if len(updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(updates))
	}
	if updates[0].market != model.MarketRO || updates[0].orderID != 7 || updates[0].status != model.AWBStatusDelivered {
		t.Fatalf("unexpected update %+v", updates[0])
	}
}

func TestAWBTrackerHandleSkipsUnchangedStatus(t *testing.T) {
	facade := &trackingFacadeStub{
		trackings: map[string]*carrier.Tracking{
			"AWB1": {AWB: "AWB1", Status: model.AWBStatusInProgress},
		},
	}
	tracker := NewAWBTracker(facade, time.Hour, 10, 2, discardLogger())

	tracker.handle(context.Background(), trackingJob{
		market: model.MarketRO,
		record: undelivered(7, "AWB1", model.AWBStatusInProgress),
	})

	if updates := facade.recorded(); len(updates) != 0 {
		t.Fatalf("expected no updates, got %+v", updates)
	}
}

func TestAWBTrackerHandleIgnoresUnknownTracking(t *testing.T) {
	facade := &trackingFacadeStub{}
	tracker := NewAWBTracker(facade, time.Hour, 10, 2, discardLogger())

	tracker.handle(context.Background(), trackingJob{
		market: model.MarketRO,
		record: undelivered(7, "AWB404", model.AWBStatusInProgress),
	})

	if updates := facade.recorded(); len(updates) != 0 {
		t.Fatalf("expected no updates, got %+v", updates)
	}
}

func TestAWBTrackerHandleSwallowsCarrierFailure(t *testing.T) {
	facade := &trackingFacadeStub{trackErr: errors.New("carrier down")}
	tracker := NewAWBTracker(facade, time.Hour, 10, 2, discardLogger())

	tracker.handle(context.Background(), trackingJob{
		market: model.MarketRO,
		record: undelivered(7, "AWB1", model.AWBStatusInProgress),
	})

	if updates := facade.recorded(); len(updates) != 0 {
		t.Fatalf("expected no updates, got %+v", updates)
	}
}

func TestAWBTrackerDefaults(t *testing.T) {
	tracker := NewAWBTracker(&trackingFacadeStub{}, time.Hour, 0, 0, discardLogger())
	if tracker.workers != 1 || tracker.batchSize != 1 {
		t.Fatalf("expected defaults of 1, got workers=%d batch=%d", tracker.workers, tracker.batchSize)
	}
}

func TestAWBTrackerStartProcessesBatch(t *testing.T) {
	facade := &trackingFacadeStub{
		records: map[model.Market][]model.SentOrder{
			model.MarketRO: {undelivered(7, "AWB1", model.AWBStatusInProgress)},
		},
		trackings: map[string]*carrier.Tracking{
			"AWB1": {AWB: "AWB1", Status: model.AWBStatusDelivered},
		},
	}
	tracker := NewAWBTracker(facade, 5*time.Millisecond, 5, 2, discardLogger())

	tracker.Start(context.Background())
	defer tracker.Stop()

	deadline := time.After(2 * time.Second)
	for {
		if updates := facade.recorded(); len(updates) > 0 {
			if updates[0].orderID != 7 || updates[0].status != model.AWBStatusDelivered {
				t.Fatalf("unexpected update %+v", updates[0])
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("tracker produced no update")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
