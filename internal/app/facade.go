package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/ordesk/backoffice/internal/adapter/carrier"
	"github.com/ordesk/backoffice/internal/config"
	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
	"github.com/ordesk/backoffice/internal/usecase"
	"github.com/ordesk/backoffice/internal/worker"
)

// TrackingProvider queries the carrier API. Nil when tracking is disabled.
type TrackingProvider interface {
	Track(ctx context.Context, awb string) (*carrier.Tracking, error)
}

// BackofficeFacade aggregates the use cases behind the single surface the
// HTTP handlers and background workers talk to.
type BackofficeFacade struct {
	auth       *usecase.AuthUseCase
	users      *usecase.UserUseCase
	orders     *usecase.OrderUseCase
	assignment *usecase.AssignmentUseCase
	lifecycle  *usecase.LifecycleUseCase
	archive    *usecase.ArchiveUseCase
	products   *usecase.ProductUseCase
	audit      *usecase.AuditRecorder
	tracking   TrackingProvider
	watcher    *worker.QueueWatcher
}

// NewBackofficeFacade constructs the facade and its embedded queue watcher.
func NewBackofficeFacade(
	auth *usecase.AuthUseCase,
	users *usecase.UserUseCase,
	orders *usecase.OrderUseCase,
	assignment *usecase.AssignmentUseCase,
	lifecycle *usecase.LifecycleUseCase,
	archive *usecase.ArchiveUseCase,
	products *usecase.ProductUseCase,
	audit *usecase.AuditRecorder,
	tracking TrackingProvider,
	cfg *config.Config,
	logger *slog.Logger,
) *BackofficeFacade {
	f := &BackofficeFacade{
		auth:       auth,
		users:      users,
		orders:     orders,
		assignment: assignment,
		lifecycle:  lifecycle,
		archive:    archive,
		products:   products,
		audit:      audit,
		tracking:   tracking,
	}
	f.watcher = worker.NewQueueWatcher(f, cfg.QueuePollInterval, logger)
	return f
}

// QueueWatcher exposes the embedded watcher for lifecycle management.
func (f *BackofficeFacade) QueueWatcher() *worker.QueueWatcher {
	return f.watcher
}

// --- session ---

func (f *BackofficeFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Login(ctx, email, password)
}

func (f *BackofficeFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *BackofficeFacade) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *BackofficeFacade) SwitchMarket(ctx context.Context, operator string) error {
	return f.assignment.CanSwitchMarket(ctx, operator)
}

// --- queue assignment ---

func (f *BackofficeFacade) ClaimNext(ctx context.Context, market model.Market, operator string, filter repository.QueueFilter) (*model.Order, error) {
	return f.assignment.ClaimNext(ctx, market, operator, filter)
}

func (f *BackofficeFacade) CurrentOrder(ctx context.Context, market model.Market, operator string) (*model.Order, error) {
	return f.assignment.Current(ctx, market, operator)
}

func (f *BackofficeFacade) QueueOrders(ctx context.Context, market model.Market, filter repository.QueueFilter) ([]model.Order, error) {
	return f.orders.Queue(ctx, market, filter)
}

func (f *BackofficeFacade) SubscribeQueue(market model.Market) (<-chan []model.Order, func()) {
	return f.watcher.Subscribe(market)
}

// PendingSnapshot feeds the queue watcher.
func (f *BackofficeFacade) PendingSnapshot(ctx context.Context, market model.Market) ([]model.Order, error) {
	return f.orders.Queue(ctx, market, repository.QueueFilter{})
}

// --- order lifecycle ---

func (f *BackofficeFacade) UpdateOrder(ctx context.Context, market model.Market, docID, operator string, edits *usecase.OrderEdits) (*model.Order, error) {
	return f.lifecycle.Update(ctx, market, docID, operator, edits)
}

func (f *BackofficeFacade) ConfirmOrder(ctx context.Context, market model.Market, docID, operator string) (*model.SentOrder, error) {
	return f.lifecycle.Confirm(ctx, market, docID, operator)
}

func (f *BackofficeFacade) ResolveOrder(ctx context.Context, market model.Market, docID, operator string, target model.OrderStatus, comment string) (*model.Order, error) {
	return f.lifecycle.Resolve(ctx, market, docID, operator, target, comment)
}

func (f *BackofficeFacade) ReleaseOrder(ctx context.Context, market model.Market, docID, operator string) (*model.Order, error) {
	return f.lifecycle.Release(ctx, market, docID, operator)
}

func (f *BackofficeFacade) SaveAndCloseOrder(ctx context.Context, market model.Market, docID, operator string, edits *usecase.OrderEdits) (*model.Order, error) {
	return f.lifecycle.SaveAndClose(ctx, market, docID, operator, edits)
}

func (f *BackofficeFacade) ResetOrder(ctx context.Context, market model.Market, docID string) (*model.Order, error) {
	return f.lifecycle.ResetToPending(ctx, market, docID)
}

// --- order creation and listing ---

func (f *BackofficeFacade) CreateOrder(ctx context.Context, market model.Market, operator string, draft *usecase.OrderEdits, orderType model.OrderType) (*model.Order, error) {
	return f.orders.Create(ctx, market, operator, draft, orderType)
}

func (f *BackofficeFacade) ListOrders(ctx context.Context, market model.Market, filter repository.ListFilter) ([]model.Order, error) {
	return f.orders.List(ctx, market, filter)
}

// --- archive ---

func (f *BackofficeFacade) ArchiveByAWB(ctx context.Context, market model.Market, code string) (*model.SentOrder, error) {
	return f.archive.FindByAWB(ctx, market, code)
}

func (f *BackofficeFacade) ArchiveByPhone(ctx context.Context, market model.Market, user, phone string) ([]model.SentOrder, error) {
	return f.archive.FindByPhone(ctx, market, user, phone)
}

func (f *BackofficeFacade) AssignAWB(ctx context.Context, market model.Market, orderID int64, awb string) error {
	return f.archive.AssignAWB(ctx, market, orderID, awb)
}

func (f *BackofficeFacade) OperatorReport(ctx context.Context, market model.Market, operator string, from, to time.Time) ([]model.OperatorDayStats, error) {
	return f.archive.OperatorReport(ctx, market, operator, from, to)
}

// --- carrier tracking (worker-facing) ---

func (f *BackofficeFacade) UndeliveredArchive(ctx context.Context, market model.Market, limit int) ([]model.SentOrder, error) {
	return f.archive.Undelivered(ctx, market, limit)
}

func (f *BackofficeFacade) TrackParcel(ctx context.Context, awb string) (*carrier.Tracking, error) {
	if f.tracking == nil {
		return nil, carrier.ErrUnknownTracking
	}
	return f.tracking.Track(ctx, awb)
}

func (f *BackofficeFacade) UpdateAWBStatus(ctx context.Context, market model.Market, orderID int64, status model.AWBStatus) error {
	return f.archive.UpdateAWBStatus(ctx, market, orderID, status)
}

// --- accounts ---

func (f *BackofficeFacade) CreateUser(ctx context.Context, email, password, displayName string, role model.Role) (*model.User, error) {
	return f.users.Create(ctx, email, password, displayName, role)
}

func (f *BackofficeFacade) ListUsers(ctx context.Context) ([]model.User, error) {
	return f.users.List(ctx)
}

func (f *BackofficeFacade) ChangeUserRole(ctx context.Context, id int64, role model.Role) error {
	return f.users.ChangeRole(ctx, id, role)
}

func (f *BackofficeFacade) DeleteUser(ctx context.Context, id int64) error {
	return f.users.Delete(ctx, id)
}

// --- catalog ---

func (f *BackofficeFacade) CreateProduct(ctx context.Context, market model.Market, product *model.Product) error {
	return f.products.Create(ctx, market, product)
}

func (f *BackofficeFacade) ListProducts(ctx context.Context, market model.Market) ([]model.Product, error) {
	return f.products.List(ctx, market)
}

func (f *BackofficeFacade) UpdateProduct(ctx context.Context, market model.Market, product *model.Product) error {
	return f.products.Update(ctx, market, product)
}

func (f *BackofficeFacade) DeleteProduct(ctx context.Context, market model.Market, id int64) error {
	return f.products.Delete(ctx, market, id)
}

// --- audit ---

func (f *BackofficeFacade) AuditHistory(ctx context.Context, user string, from, to time.Time) ([]model.AuditEntry, error) {
	return f.audit.History(ctx, user, from, to)
}
