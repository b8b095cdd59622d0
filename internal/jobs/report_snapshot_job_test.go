package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ordesk/backoffice/internal/domain/model"
)

type reportFacadeStub struct {
	mu    sync.Mutex
	stats []model.OperatorDayStats
	err   error
	calls []reportCall
}

type reportCall struct {
	market   model.Market
	operator string
	from     time.Time
	to       time.Time
}

func (s *reportFacadeStub) OperatorReport(ctx context.Context, market model.Market, operator string, from, to time.Time) ([]model.OperatorDayStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, reportCall{market: market, operator: operator, from: from, to: to})
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestReportSnapshotJobRunCoversPreviousDay(t *testing.T) {
	facade := &reportFacadeStub{stats: []model.OperatorDayStats{{
		Date:           "02/03/2025",
		Operator:       "Ana",
		UpsellTotal:    decimal.NewFromInt(50),
		CrossSellTotal: decimal.NewFromInt(10),
	}}}
	job := NewReportSnapshotJob(facade, "0 1 * * *", discardLogger())
	job.now = func() time.Time {
		return time.Date(2025, time.March, 3, 1, 0, 0, 0, time.UTC)
	}

	job.run()

	if len(facade.calls) != len(model.Markets()) {
		t.Fatalf("expected one call per market, got %d", len(facade.calls))
	}
	call := facade.calls[0]
	if call.operator != "" {
		t.Fatalf("expected all-operator report, got %q", call.operator)
	}
	wantFrom := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)
	if !call.from.Equal(wantFrom) {
		t.Fatalf("expected from %s, got %s", wantFrom, call.from)
	}
	if !call.to.Before(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("interval leaks into the current day: %s", call.to)
	}
}

func TestReportSnapshotJobRunContinuesOnError(t *testing.T) {
	facade := &reportFacadeStub{err: errors.New("db down")}
	job := NewReportSnapshotJob(facade, "0 1 * * *", discardLogger())

	job.run()

	if len(facade.calls) != len(model.Markets()) {
		t.Fatalf("expected every market attempted, got %d", len(facade.calls))
	}
}

func TestReportSnapshotJobStartRejectsBadSpec(t *testing.T) {
	job := NewReportSnapshotJob(&reportFacadeStub{}, "not a cron spec", discardLogger())
	if err := job.Start(); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestReportSnapshotJobStartStop(t *testing.T) {
	job := NewReportSnapshotJob(&reportFacadeStub{}, "0 1 * * *", discardLogger())
	if err := job.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	job.Stop()
}
