package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ordesk/backoffice/internal/adapter/carrier"
	"github.com/ordesk/backoffice/internal/config"
	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
	"github.com/ordesk/backoffice/internal/usecase"
	testhelpers "github.com/ordesk/backoffice/internal/test"
)

type trackingProviderStub struct {
	tracking *carrier.Tracking
	err      error
}

func (s *trackingProviderStub) Track(ctx context.Context, awb string) (*carrier.Tracking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tracking, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newFacade(t *testing.T, tracking TrackingProvider) (*BackofficeFacade, *testhelpers.OrderRepositoryStub) {
	t.Helper()

	logger := discardLogger()
	orders := testhelpers.NewOrderRepositoryStub()
	users := testhelpers.NewUserRepositoryStub()
	archive := testhelpers.NewArchiveRepositoryStub()
	products := testhelpers.NewProductRepositoryStub()
	recorder := usecase.NewAuditRecorder(&testhelpers.AuditRepositoryStub{}, logger)

	facade := NewBackofficeFacade(
		usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{}),
		usecase.NewUserUseCase(users, testhelpers.HasherStub{}),
		usecase.NewOrderUseCase(orders, recorder),
		usecase.NewAssignmentUseCase(orders, recorder),
		usecase.NewLifecycleUseCase(orders, recorder),
		usecase.NewArchiveUseCase(archive, recorder),
		usecase.NewProductUseCase(products),
		recorder,
		tracking,
		&config.Config{QueuePollInterval: time.Hour},
		logger,
	)
	return facade, orders
}

func TestFacadeClaimFlow(t *testing.T) {
	facade, orders := newFacade(t, nil)
	orders.Put(model.MarketRO, &model.Order{
		ID: 1, DocID: "1", Status: model.OrderStatusPending, OrderTime: time.Now(),
	})

	claimed, err := facade.ClaimNext(context.Background(), model.MarketRO, "Ana", repository.QueueFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claimed.Status != model.OrderStatusInProgress {
		t.Fatalf("unexpected status %q", claimed.Status)
	}

	current, err := facade.CurrentOrder(context.Background(), model.MarketRO, "Ana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.DocID != "1" {
		t.Fatalf("unexpected current order %+v", current)
	}

	if err := facade.SwitchMarket(context.Background(), "Ana"); err == nil {
		t.Fatal("expected switch refusal while holding an order")
	}
}

func TestFacadePendingSnapshot(t *testing.T) {
	facade, orders := newFacade(t, nil)
	orders.Put(model.MarketRO, &model.Order{
		ID: 1, DocID: "1", Status: model.OrderStatusPending, OrderTime: time.Now(),
	})

	snapshot, err := facade.PendingSnapshot(context.Background(), model.MarketRO)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snapshot) != 1 {
		t.Fatalf("expected 1 pending order, got %d", len(snapshot))
	}
}

func TestFacadeSubscribeQueue(t *testing.T) {
	facade, _ := newFacade(t, nil)

	snapshots, cancel := facade.SubscribeQueue(model.MarketRO)
	cancel()
	if _, ok := <-snapshots; ok {
		t.Fatal("expected closed channel after cancel")
	}
}

func TestFacadeTrackParcelWithoutCarrier(t *testing.T) {
	facade, _ := newFacade(t, nil)

	if _, err := facade.TrackParcel(context.Background(), "AWB1"); !errors.Is(err, carrier.ErrUnknownTracking) {
		t.Fatalf("expected ErrUnknownTracking, got %v", err)
	}
}

func TestFacadeTrackParcelDelegates(t *testing.T) {
	provider := &trackingProviderStub{tracking: &carrier.Tracking{AWB: "AWB1", Status: model.AWBStatusDelivered}}
	facade, _ := newFacade(t, provider)

	tracking, err := facade.TrackParcel(context.Background(), "AWB1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tracking.Status != model.AWBStatusDelivered {
		t.Fatalf("unexpected tracking %+v", tracking)
	}
}

func TestFacadeAuthenticate(t *testing.T) {
	facade, _ := newFacade(t, nil)

	if _, _, err := facade.Authenticate(context.Background(), "ghost@example.com", "secret"); err == nil {
		t.Fatal("expected error for unknown account")
	}
}
