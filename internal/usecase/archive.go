package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
)

// ArchiveUseCase serves lookups and reports over archived orders.
type ArchiveUseCase struct {
	archive repository.ArchiveRepository
	audit   *AuditRecorder
}

// NewArchiveUseCase constructs ArchiveUseCase.
func NewArchiveUseCase(archive repository.ArchiveRepository, audit *AuditRecorder) *ArchiveUseCase {
	return &ArchiveUseCase{archive: archive, audit: audit}
}

// FindByAWB is the packer scanning flow: point lookup by tracking code.
func (u *ArchiveUseCase) FindByAWB(ctx context.Context, market model.Market, code string) (*model.SentOrder, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domainErrors.NewValidationError("awb", "required")
	}
	return u.archive.GetByAWB(ctx, market, code)
}

// FindByPhone returns archived orders placed from the phone number.
func (u *ArchiveUseCase) FindByPhone(ctx context.Context, market model.Market, user, phone string) ([]model.SentOrder, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, domainErrors.NewValidationError("phone", "required")
	}
	records, err := u.archive.ListByPhone(ctx, market, phone)
	if err != nil {
		return nil, err
	}
	u.audit.Record(ctx, model.AuditActionSearch, user, market, 0)
	return records, nil
}

// AssignAWB attaches the carrier tracking code to an archived order. The
// code is set exactly once; archive records are otherwise immutable.
func (u *ArchiveUseCase) AssignAWB(ctx context.Context, market model.Market, orderID int64, awb string) error {
	awb = strings.TrimSpace(awb)
	if awb == "" {
		return domainErrors.NewValidationError("awb", "required")
	}
	return u.archive.SetAWB(ctx, market, orderID, awb)
}

// Undelivered returns archive records with a tracking code whose parcel has
// not reached a terminal carrier state yet.
func (u *ArchiveUseCase) Undelivered(ctx context.Context, market model.Market, limit int) ([]model.SentOrder, error) {
	return u.archive.ListUndelivered(ctx, market, limit)
}

// UpdateAWBStatus records the carrier-reported state of a shipped parcel.
func (u *ArchiveUseCase) UpdateAWBStatus(ctx context.Context, market model.Market, orderID int64, status model.AWBStatus) error {
	if !status.Valid() {
		return domainErrors.NewValidationError("awbStatus", "unknown carrier state")
	}
	return u.archive.UpdateAWBStatus(ctx, market, orderID, status)
}

// OperatorReport folds archive records in the window into per-day stats.
// An empty operator aggregates every operator.
func (u *ArchiveUseCase) OperatorReport(ctx context.Context, market model.Market, operator string, from, to time.Time) ([]model.OperatorDayStats, error) {
	if !to.After(from) {
		return nil, domainErrors.NewValidationError("interval", "end must be after start")
	}
	records, err := u.archive.ListByOperatorAndInterval(ctx, market, operator, from, to)
	if err != nil {
		return nil, err
	}
	return FoldSentOrders(records), nil
}
