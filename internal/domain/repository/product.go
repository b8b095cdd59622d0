package repository

import (
	"context"

	"github.com/ordesk/backoffice/internal/domain/model"
)

// ProductRepository describes the per-market catalog.
type ProductRepository interface {
	Create(ctx context.Context, market model.Market, product *model.Product) error
	Get(ctx context.Context, market model.Market, id int64) (*model.Product, error)
	List(ctx context.Context, market model.Market) ([]model.Product, error)
	Update(ctx context.Context, market model.Market, product *model.Product) error
	Delete(ctx context.Context, market model.Market, id int64) error
}
