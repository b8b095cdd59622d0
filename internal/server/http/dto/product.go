package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ordesk/backoffice/internal/domain/model"
)

// ProductRequest creates or replaces a catalog entry.
type ProductRequest struct {
	ProductID       string          `json:"productId" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Upsell          decimal.Decimal `json:"upsell"`
	Personalization string          `json:"personalization"`
	Stock           int             `json:"stock"`
	Category        string          `json:"category"`
	ImageURL        string          `json:"imageUrl"`
}

// Product converts the payload into the domain form.
func (r *ProductRequest) Product() *model.Product {
	return &model.Product{
		ProductID:       r.ProductID,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		Upsell:          r.Upsell,
		Personalization: r.Personalization,
		Stock:           r.Stock,
		Category:        r.Category,
		ImageURL:        r.ImageURL,
	}
}

// ProductResponse is the transport view of a catalog entry.
type ProductResponse struct {
	ID              int64           `json:"id"`
	ProductID       string          `json:"productId"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Upsell          decimal.Decimal `json:"upsell"`
	Personalization string          `json:"personalization"`
	Stock           int             `json:"stock"`
	Category        string          `json:"category"`
	ImageURL        string          `json:"imageUrl"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewProductResponse maps a domain product to its transport form.
func NewProductResponse(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		ProductID:       p.ProductID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Upsell:          p.Upsell,
		Personalization: p.Personalization,
		Stock:           p.Stock,
		Category:        p.Category,
		ImageURL:        p.ImageURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
