package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry operators add to orders. Prices here are the
// catalog defaults; a line item copies them at add-time.
type Product struct {
	ID              int64
	ProductID       string
	Name            string
	Description     string
	Price           decimal.Decimal
	Upsell          decimal.Decimal
	Personalization string
	Stock           int
	Category        string
	ImageURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
