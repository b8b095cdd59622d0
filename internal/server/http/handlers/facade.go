package handlers

import (
	"context"
	"time"

	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
	"github.com/ordesk/backoffice/internal/usecase"
)

// AuthFacade describes session capabilities required by handlers.
type AuthFacade interface {
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
	SwitchMarket(ctx context.Context, operator string) error
}

// AssignmentFacade covers queue claiming for operators.
type AssignmentFacade interface {
	ClaimNext(ctx context.Context, market model.Market, operator string, filter repository.QueueFilter) (*model.Order, error)
	CurrentOrder(ctx context.Context, market model.Market, operator string) (*model.Order, error)
	QueueOrders(ctx context.Context, market model.Market, filter repository.QueueFilter) ([]model.Order, error)
	SubscribeQueue(market model.Market) (<-chan []model.Order, func())
}

// LifecycleFacade covers status transitions on held orders.
type LifecycleFacade interface {
	UpdateOrder(ctx context.Context, market model.Market, docID, operator string, edits *usecase.OrderEdits) (*model.Order, error)
	ConfirmOrder(ctx context.Context, market model.Market, docID, operator string) (*model.SentOrder, error)
	ResolveOrder(ctx context.Context, market model.Market, docID, operator string, target model.OrderStatus, comment string) (*model.Order, error)
	ReleaseOrder(ctx context.Context, market model.Market, docID, operator string) (*model.Order, error)
	SaveAndCloseOrder(ctx context.Context, market model.Market, docID, operator string, edits *usecase.OrderEdits) (*model.Order, error)
	ResetOrder(ctx context.Context, market model.Market, docID string) (*model.Order, error)
}

// OrderFacade covers creation and administrative listing.
type OrderFacade interface {
	CreateOrder(ctx context.Context, market model.Market, operator string, draft *usecase.OrderEdits, orderType model.OrderType) (*model.Order, error)
	ListOrders(ctx context.Context, market model.Market, filter repository.ListFilter) ([]model.Order, error)
}

// ArchiveFacade covers archive lookups, AWB assignment and reporting.
type ArchiveFacade interface {
	ArchiveByAWB(ctx context.Context, market model.Market, code string) (*model.SentOrder, error)
	ArchiveByPhone(ctx context.Context, market model.Market, user, phone string) ([]model.SentOrder, error)
	AssignAWB(ctx context.Context, market model.Market, orderID int64, awb string) error
	OperatorReport(ctx context.Context, market model.Market, operator string, from, to time.Time) ([]model.OperatorDayStats, error)
}

// UserFacade covers administrative account management.
type UserFacade interface {
	CreateUser(ctx context.Context, email, password, displayName string, role model.Role) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ChangeUserRole(ctx context.Context, id int64, role model.Role) error
	DeleteUser(ctx context.Context, id int64) error
}

// ProductFacade covers the catalog.
type ProductFacade interface {
	CreateProduct(ctx context.Context, market model.Market, product *model.Product) error
	ListProducts(ctx context.Context, market model.Market) ([]model.Product, error)
	UpdateProduct(ctx context.Context, market model.Market, product *model.Product) error
	DeleteProduct(ctx context.Context, market model.Market, id int64) error
}

// AuditFacade exposes the action log.
type AuditFacade interface {
	AuditHistory(ctx context.Context, user string, from, to time.Time) ([]model.AuditEntry, error)
}

// BackofficeFacade aggregates the full set of operations used across handlers.
type BackofficeFacade interface {
	AuthFacade
	AssignmentFacade
	LifecycleFacade
	OrderFacade
	ArchiveFacade
	UserFacade
	ProductFacade
	AuditFacade
}
