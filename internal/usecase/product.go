package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
)

// ProductUseCase covers catalog management per market.
type ProductUseCase struct {
	products repository.ProductRepository
	now      func() time.Time
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products, now: time.Now}
}

func validateProduct(p *model.Product) error {
	if strings.TrimSpace(p.ProductID) == "" {
		return domainErrors.NewValidationError("productId", "required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return domainErrors.NewValidationError("name", "required")
	}
	if p.Price.IsNegative() {
		return domainErrors.NewValidationError("price", "must not be negative")
	}
	if p.Upsell.IsNegative() {
		return domainErrors.NewValidationError("upsell", "must not be negative")
	}
	return nil
}

// Create adds a catalog entry.
func (u *ProductUseCase) Create(ctx context.Context, market model.Market, product *model.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	now := u.now()
	product.CreatedAt = now
	product.UpdatedAt = now
	return u.products.Create(ctx, market, product)
}

// List returns the market catalog.
func (u *ProductUseCase) List(ctx context.Context, market model.Market) ([]model.Product, error) {
	return u.products.List(ctx, market)
}

// Update rewrites a catalog entry. Orders keep the prices their line items
// copied at add-time.
func (u *ProductUseCase) Update(ctx context.Context, market model.Market, product *model.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	product.UpdatedAt = u.now()
	return u.products.Update(ctx, market, product)
}

// Delete removes a catalog entry.
func (u *ProductUseCase) Delete(ctx context.Context, market model.Market, id int64) error {
	return u.products.Delete(ctx, market, id)
}
