package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ordesk/backoffice/internal/domain/model"
	testhelpers "github.com/ordesk/backoffice/internal/test"
)

func TestAuditRecord(t *testing.T) {
	repo := &testhelpers.AuditRepositoryStub{}
	recorder := newRecorder(repo)
	at := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	recorder.now = func() time.Time { return at }

	recorder.Record(context.Background(), model.AuditActionNext, "Ana", model.MarketRO, 42)

	if len(repo.Entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(repo.Entries))
	}
	entry := repo.Entries[0]
	if entry.Action != model.AuditActionNext || entry.User != "Ana" || entry.Market != model.MarketRO || entry.OrderID != 42 {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if !entry.ActionDate.Equal(at) {
		t.Fatalf("expected stamped action date, got %v", entry.ActionDate)
	}
}

func TestAuditRecordSwallowsAppendFailure(t *testing.T) {
	repo := &testhelpers.AuditRepositoryStub{Err: errors.New("connection reset")}
	recorder := newRecorder(repo)

	// must not panic or propagate; the order mutation stays authoritative
	recorder.Record(context.Background(), model.AuditActionSave, "Ana", model.MarketRO, 1)
}

func TestAuditHistory(t *testing.T) {
	repo := &testhelpers.AuditRepositoryStub{}
	recorder := newRecorder(repo)
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	stamps := []time.Time{base, base.Add(time.Hour), base.Add(48 * time.Hour)}
	i := 0
	recorder.now = func() time.Time {
		at := stamps[i]
		i++
		return at
	}
	recorder.Record(context.Background(), model.AuditActionNext, "Ana", model.MarketRO, 1)
	recorder.Record(context.Background(), model.AuditActionConfirm, "Ana", model.MarketRO, 1)
	recorder.Record(context.Background(), model.AuditActionNext, "Ana", model.MarketRO, 2)

	entries, err := recorder.History(context.Background(), "Ana", base, base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected two entries inside the window, got %d", len(entries))
	}

	entries, err = recorder.History(context.Background(), "Bogdan", base, base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries for another user, got %d", len(entries))
	}
}
