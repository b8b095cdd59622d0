package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

const productColumns = `id, product_id, name, description, price, upsell,
       personalization, stock, category, image_url, created_at, updated_at`

func scanProduct(scan func(dest ...any) error) (*model.Product, error) {
	var p model.Product
	err := scan(&p.ID, &p.ProductID, &p.Name, &p.Description, &p.Price, &p.Upsell,
		&p.Personalization, &p.Stock, &p.Category, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, market model.Market, product *model.Product) error {
	const query = `INSERT INTO products (market, product_id, name, description, price, upsell,
                   personalization, stock, category, image_url, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	err := r.storage.pool.QueryRow(ctx, query, string(market),
		product.ProductID, product.Name, product.Description, product.Price, product.Upsell,
		product.Personalization, product.Stock, product.Category, product.ImageURL,
		product.CreatedAt, product.UpdatedAt).Scan(&product.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *productRepository) Get(ctx context.Context, market model.Market, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE market = $1 AND id = $2`
	return scanProduct(r.storage.pool.QueryRow(ctx, query, string(market), id).Scan)
}

func (r *productRepository) List(ctx context.Context, market model.Market) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE market = $1 ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query, string(market))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Update(ctx context.Context, market model.Market, product *model.Product) error {
	const query = `UPDATE products SET
                   product_id = $3, name = $4, description = $5, price = $6, upsell = $7,
                   personalization = $8, stock = $9, category = $10, image_url = $11, updated_at = $12
                   WHERE market = $1 AND id = $2`
	tag, err := r.storage.pool.Exec(ctx, query, string(market), product.ID,
		product.ProductID, product.Name, product.Description, product.Price, product.Upsell,
		product.Personalization, product.Stock, product.Category, product.ImageURL, product.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, market model.Market, id int64) error {
	const query = `DELETE FROM products WHERE market = $1 AND id = $2`
	tag, err := r.storage.pool.Exec(ctx, query, string(market), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
