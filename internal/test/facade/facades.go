package facade

import (
	"context"
	"time"

	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
	test "github.com/ordesk/backoffice/internal/test"
	"github.com/ordesk/backoffice/internal/usecase"
)

// SessionFacadeStub aliases the shared session stub so facade consumers keep
// a single import.
type SessionFacadeStub = test.SessionFacadeStub

// BackofficeFacadeStub provides controllable behaviour for HTTP layer tests.
// Every operation can be overridden; defaults return the configured state.
type BackofficeFacadeStub struct {
	SessionFacadeStub

	Order    *model.Order
	Orders   []model.Order
	Sent     *model.SentOrder
	Archive  []model.SentOrder
	Users    []model.User
	Products []model.Product
	Stats    []model.OperatorDayStats
	Entries  []model.AuditEntry
	OpErr    error

	ClaimNextFn  func(context.Context, model.Market, string, repository.QueueFilter) (*model.Order, error)
	ConfirmFn    func(context.Context, model.Market, string, string) (*model.SentOrder, error)
	ResolveFn    func(context.Context, model.Market, string, string, model.OrderStatus, string) (*model.Order, error)
	SwitchFn     func(context.Context, string) error
	AuthFn       func(context.Context, string, string) (*model.User, string, error)
	Subscription chan []model.Order
}

func (s *BackofficeFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthFn != nil {
		return s.AuthFn(ctx, email, password)
	}
	if s.OpErr != nil {
		return nil, "", s.OpErr
	}
	user := s.User
	if user == nil {
		user = &model.User{ID: 1, Email: email, DisplayName: "operator", Role: model.RoleOperator}
	}
	return user, "token", nil
}

func (s *BackofficeFacadeStub) SwitchMarket(ctx context.Context, operator string) error {
	if s.SwitchFn != nil {
		return s.SwitchFn(ctx, operator)
	}
	return s.OpErr
}

func (s *BackofficeFacadeStub) ClaimNext(ctx context.Context, market model.Market, operator string, filter repository.QueueFilter) (*model.Order, error) {
	if s.ClaimNextFn != nil {
		return s.ClaimNextFn(ctx, market, operator, filter)
	}
	return s.orderOrErr()
}

func (s *BackofficeFacadeStub) CurrentOrder(ctx context.Context, market model.Market, operator string) (*model.Order, error) {
	return s.orderOrErr()
}

func (s *BackofficeFacadeStub) QueueOrders(ctx context.Context, market model.Market, filter repository.QueueFilter) ([]model.Order, error) {
	if s.OpErr != nil {
		return nil, s.OpErr
	}
	return s.Orders, nil
}

func (s *BackofficeFacadeStub) SubscribeQueue(market model.Market) (<-chan []model.Order, func()) {
	ch := s.Subscription
	if ch == nil {
		ch = make(chan []model.Order)
		close(ch)
	}
	return ch, func() {}
}

func (s *BackofficeFacadeStub) UpdateOrder(ctx context.Context, market model.Market, docID, operator string, edits *usecase.OrderEdits) (*model.Order, error) {
	return s.orderOrErr()
}

func (s *BackofficeFacadeStub) ConfirmOrder(ctx context.Context, market model.Market, docID, operator string) (*model.SentOrder, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, market, docID, operator)
	}
	if s.OpErr != nil {
		return nil, s.OpErr
	}
	return s.Sent, nil
}

func (s *BackofficeFacadeStub) ResolveOrder(ctx context.Context, market model.Market, docID, operator string, target model.OrderStatus, comment string) (*model.Order, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, market, docID, operator, target, comment)
	}
	return s.orderOrErr()
}

func (s *BackofficeFacadeStub) ReleaseOrder(ctx context.Context, market model.Market, docID, operator string) (*model.Order, error) {
	return s.orderOrErr()
}

func (s *BackofficeFacadeStub) SaveAndCloseOrder(ctx context.Context, market model.Market, docID, operator string, edits *usecase.OrderEdits) (*model.Order, error) {
	return s.orderOrErr()
}

func (s *BackofficeFacadeStub) ResetOrder(ctx context.Context, market model.Market, docID string) (*model.Order, error) {
	return s.orderOrErr()
}

func (s *BackofficeFacadeStub) CreateOrder(ctx context.Context, market model.Market, operator string, draft *usecase.OrderEdits, orderType model.OrderType) (*model.Order, error) {
	return s.orderOrErr()
}

func (s *BackofficeFacadeStub) ListOrders(ctx context.Context, market model.Market, filter repository.ListFilter) ([]model.Order, error) {
	if s.OpErr != nil {
		return nil, s.OpErr
	}
	return s.Orders, nil
}

func (s *BackofficeFacadeStub) ArchiveByAWB(ctx context.Context, market model.Market, code string) (*model.SentOrder, error) {
	if s.OpErr != nil {
		return nil, s.OpErr
	}
	return s.Sent, nil
}

func (s *BackofficeFacadeStub) ArchiveByPhone(ctx context.Context, market model.Market, user, phone string) ([]model.SentOrder, error) {
	if s.OpErr != nil {
		return nil, s.OpErr
	}
	return s.Archive, nil
}

func (s *BackofficeFacadeStub) AssignAWB(ctx context.Context, market model.Market, orderID int64, awb string) error {
	return s.OpErr
}

func (s *BackofficeFacadeStub) OperatorReport(ctx context.Context, market model.Market, operator string, from, to time.Time) ([]model.OperatorDayStats, error) {
	if s.OpErr != nil {
		return nil, s.OpErr
	}
	return s.Stats, nil
}

func (s *BackofficeFacadeStub) CreateUser(ctx context.Context, email, password, displayName string, role model.Role) (*model.User, error) {
	if s.OpErr != nil {
		return nil, s.OpErr
	}
	return &model.User{ID: 1, Email: email, DisplayName: displayName, Role: role}, nil
}

func (s *BackofficeFacadeStub) ListUsers(ctx context.Context) ([]model.User, error) {
	if s.OpErr != nil {
		return nil, s.OpErr
	}
	return s.Users, nil
}

func (s *BackofficeFacadeStub) ChangeUserRole(ctx context.Context, id int64, role model.Role) error {
	return s.OpErr
}

func (s *BackofficeFacadeStub) DeleteUser(ctx context.Context, id int64) error {
	return s.OpErr
}

func (s *BackofficeFacadeStub) CreateProduct(ctx context.Context, market model.Market, product *model.Product) error {
	return s.OpErr
}

func (s *BackofficeFacadeStub) ListProducts(ctx context.Context, market model.Market) ([]model.Product, error) {
	if s.OpErr != nil {
		return nil, s.OpErr
	}
	return s.Products, nil
}

func (s *BackofficeFacadeStub) UpdateProduct(ctx context.Context, market model.Market, product *model.Product) error {
	return s.OpErr
}

func (s *BackofficeFacadeStub) DeleteProduct(ctx context.Context, market model.Market, id int64) error {
	return s.OpErr
}

func (s *BackofficeFacadeStub) AuditHistory(ctx context.Context, user string, from, to time.Time) ([]model.AuditEntry, error) {
	if s.OpErr != nil {
		return nil, s.OpErr
	}
	return s.Entries, nil
}

func (s *BackofficeFacadeStub) orderOrErr() (*model.Order, error) {
	if s.OpErr != nil {
		return nil, s.OpErr
	}
	if s.Order == nil {
		return &model.Order{}, nil
	}
	return s.Order, nil
}
