package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
	testhelpers "github.com/ordesk/backoffice/internal/test"
)

func TestProductCreate(t *testing.T) {
	repo := testhelpers.NewProductRepositoryStub()
	uc := NewProductUseCase(repo)
	stamp := time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return stamp }

	product := &model.Product{
		ProductID: "lamp-3d",
		Name:      "3D lamp",
		Price:     decimal.NewFromInt(80),
		Upsell:    decimal.NewFromInt(15),
	}
	require.NoError(t, uc.Create(context.Background(), model.MarketRO, product))

	assert.Equal(t, int64(1), product.ID)
	assert.Equal(t, stamp, product.CreatedAt)
	assert.Equal(t, stamp, product.UpdatedAt)
	assert.Len(t, repo.Products[model.MarketRO], 1)
	assert.Empty(t, repo.Products[model.MarketMD])
}

func TestProductCreateValidation(t *testing.T) {
	uc := NewProductUseCase(testhelpers.NewProductRepositoryStub())

	tests := []struct {
		name    string
		product model.Product
		field   string
	}{
		{"blank product id", model.Product{ProductID: "  ", Name: "lamp"}, "productId"},
		{"blank name", model.Product{ProductID: "lamp-3d", Name: ""}, "name"},
		{"negative price", model.Product{ProductID: "lamp-3d", Name: "lamp", Price: decimal.NewFromInt(-1)}, "price"},
		{"negative upsell", model.Product{ProductID: "lamp-3d", Name: "lamp", Upsell: decimal.NewFromInt(-1)}, "upsell"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := uc.Create(context.Background(), model.MarketRO, &tc.product)
			var vErr *domainErrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestProductUpdate(t *testing.T) {
	repo := testhelpers.NewProductRepositoryStub()
	uc := NewProductUseCase(repo)

	product := &model.Product{ProductID: "lamp-3d", Name: "3D lamp"}
	require.NoError(t, uc.Create(context.Background(), model.MarketRO, product))

	created := product.UpdatedAt
	later := created.Add(time.Hour)
	uc.now = func() time.Time { return later }

	product.Name = "3D moon lamp"
	require.NoError(t, uc.Update(context.Background(), model.MarketRO, product))

	stored, err := repo.Get(context.Background(), model.MarketRO, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "3D moon lamp", stored.Name)
	assert.Equal(t, later, stored.UpdatedAt)

	missing := &model.Product{ID: 99, ProductID: "ghost", Name: "ghost"}
	assert.ErrorIs(t, uc.Update(context.Background(), model.MarketRO, missing), domainErrors.ErrNotFound)
}

func TestProductDelete(t *testing.T) {
	repo := testhelpers.NewProductRepositoryStub()
	uc := NewProductUseCase(repo)

	product := &model.Product{ProductID: "lamp-3d", Name: "3D lamp"}
	require.NoError(t, uc.Create(context.Background(), model.MarketRO, product))

	require.NoError(t, uc.Delete(context.Background(), model.MarketRO, product.ID))
	assert.Empty(t, repo.Products[model.MarketRO])

	assert.ErrorIs(t, uc.Delete(context.Background(), model.MarketRO, product.ID), domainErrors.ErrNotFound)
}

func TestProductListIsMarketScoped(t *testing.T) {
	repo := testhelpers.NewProductRepositoryStub()
	uc := NewProductUseCase(repo)

	require.NoError(t, uc.Create(context.Background(), model.MarketRO, &model.Product{ProductID: "ro-lamp", Name: "lamp"}))
	require.NoError(t, uc.Create(context.Background(), model.MarketMD, &model.Product{ProductID: "md-lamp", Name: "lamp"}))

	products, err := uc.List(context.Background(), model.MarketMD)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "md-lamp", products[0].ProductID)
}
