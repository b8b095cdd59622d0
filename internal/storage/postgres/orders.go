package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `order_id, doc_id, name, phone, customer_address, address, products,
       status, assigned_operator, resolved_by, call_count, comment, discount,
       delivery_price, delivery_date, total_price, order_time, type, updated_at`

func scanOrder(scan func(dest ...any) error) (*model.Order, error) {
	var (
		o               model.Order
		addressJSON     []byte
		productsJSON    []byte
		status, orderTp string
	)
	err := scan(&o.ID, &o.DocID, &o.Name, &o.Phone, &o.CustomerAddress,
		&addressJSON, &productsJSON, &status, &o.AssignedOperator, &o.ResolvedBy,
		&o.CallCount, &o.Comment, &o.Discount, &o.DeliveryPrice, &o.DeliveryDate,
		&o.TotalPrice, &o.OrderTime, &orderTp, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	o.Status = model.OrderStatus(status)
	o.Type = model.OrderType(orderTp)
	if err := json.Unmarshal(addressJSON, &o.Address); err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	if err := json.Unmarshal(productsJSON, &o.Products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func orderArgs(order *model.Order) ([]any, error) {
	addressJSON, err := json.Marshal(order.Address)
	if err != nil {
		return nil, fmt.Errorf("encode address: %w", err)
	}
	productsJSON, err := json.Marshal(order.Products)
	if err != nil {
		return nil, fmt.Errorf("encode products: %w", err)
	}
	return []any{
		order.ID, order.DocID, order.Name, order.Phone, order.CustomerAddress,
		addressJSON, productsJSON, string(order.Status), order.AssignedOperator,
		order.ResolvedBy, order.CallCount, order.Comment, order.Discount,
		order.DeliveryPrice, order.DeliveryDate, order.TotalPrice,
		order.OrderTime, string(order.Type), order.UpdatedAt,
	}, nil
}

func (r *orderRepository) Create(ctx context.Context, market model.Market, order *model.Order) error {
	query := `INSERT INTO orders (market, ` + orderColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	args, err := orderArgs(order)
	if err != nil {
		return err
	}
	_, err = r.storage.pool.Exec(ctx, query, append([]any{string(market)}, args...)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *orderRepository) Get(ctx context.Context, market model.Market, docID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE market = $1 AND doc_id = $2`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, string(market), docID).Scan)
}

func (r *orderRepository) Update(ctx context.Context, market model.Market, order *model.Order) error {
	const query = `UPDATE orders SET
              name = $3, phone = $4, customer_address = $5, address = $6, products = $7,
              status = $8, assigned_operator = $9, resolved_by = $10, call_count = $11,
              comment = $12, discount = $13, delivery_price = $14, delivery_date = $15,
              total_price = $16, type = $17, updated_at = $18
              WHERE market = $1 AND doc_id = $2`
	addressJSON, err := json.Marshal(order.Address)
	if err != nil {
		return fmt.Errorf("encode address: %w", err)
	}
	productsJSON, err := json.Marshal(order.Products)
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	tag, err := r.storage.pool.Exec(ctx, query,
		string(market), order.DocID, order.Name, order.Phone, order.CustomerAddress,
		addressJSON, productsJSON, string(order.Status), order.AssignedOperator,
		order.ResolvedBy, order.CallCount, order.Comment, order.Discount,
		order.DeliveryPrice, order.DeliveryDate, order.TotalPrice,
		string(order.Type), order.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, market model.Market, docID string) error {
	const query = `DELETE FROM orders WHERE market = $1 AND doc_id = $2`
	tag, err := r.storage.pool.Exec(ctx, query, string(market), docID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) ListQueue(ctx context.Context, market model.Market, filter repository.QueueFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE market = $1 AND status = $2`
	args := []any{string(market), string(model.OrderStatusPending)}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.CallCount != nil {
		args = append(args, *filter.CallCount)
		query += fmt.Sprintf(" AND call_count = $%d", len(args))
	}
	query += " ORDER BY order_time ASC"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) List(ctx context.Context, market model.Market, filter repository.ListFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE market = $1`
	args := []any{string(market)}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.CallCount != nil {
		args = append(args, *filter.CallCount)
		query += fmt.Sprintf(" AND call_count = $%d", len(args))
	}
	query += " ORDER BY order_time DESC"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) GetHeldByOperator(ctx context.Context, market model.Market, operator string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE market = $1 AND status = $2 AND assigned_operator = $3`
	return scanOrder(r.storage.pool.QueryRow(ctx, query,
		string(market), string(model.OrderStatusInProgress), operator).Scan)
}

func (r *orderRepository) HoldsAnyOrder(ctx context.Context, operator string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM orders WHERE status = $1 AND assigned_operator = $2)`
	var holds bool
	err := r.storage.pool.QueryRow(ctx, query, string(model.OrderStatusInProgress), operator).Scan(&holds)
	if err != nil {
		return false, err
	}
	return holds, nil
}

func (r *orderRepository) Claim(ctx context.Context, market model.Market, docID, operator string, now time.Time) (*model.Order, error) {
	var claimed *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockQuery = `SELECT status FROM orders WHERE market = $1 AND doc_id = $2 FOR UPDATE`
		var status string
		if err := tx.QueryRow(ctx, lockQuery, string(market), docID).Scan(&status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if model.OrderStatus(status) != model.OrderStatusPending {
			return domainErrors.ErrOrderNotAvailable
		}

		const updateQuery = `UPDATE orders
              SET status = $3, assigned_operator = $4, updated_at = $5
              WHERE market = $1 AND doc_id = $2`
		if _, err := tx.Exec(ctx, updateQuery, string(market), docID,
			string(model.OrderStatusInProgress), operator, now); err != nil {
			return err
		}

		selectQuery := `SELECT ` + orderColumns + ` FROM orders WHERE market = $1 AND doc_id = $2`
		order, err := scanOrder(tx.QueryRow(ctx, selectQuery, string(market), docID).Scan)
		if err != nil {
			return err
		}
		claimed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *orderRepository) Confirm(ctx context.Context, market model.Market, order *model.Order, archived *model.SentOrder, entry *model.AuditEntry) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query := `INSERT INTO archive (market, ` + archiveColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
		args, err := archiveArgs(archived)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, append([]any{string(market)}, args...)...); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		const deleteQuery = `DELETE FROM orders WHERE market = $1 AND doc_id = $2`
		tag, err := tx.Exec(ctx, deleteQuery, string(market), order.DocID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		const auditQuery = `INSERT INTO audit_log (action, username, market, order_id, action_date)
              VALUES ($1, $2, $3, $4, $5)`
		_, err = tx.Exec(ctx, auditQuery,
			string(entry.Action), entry.User, string(entry.Market), entry.OrderID, entry.ActionDate)
		return err
	})
}

func (r *orderRepository) MaxOrderID(ctx context.Context, market model.Market) (int64, error) {
	const query = `SELECT COALESCE(MAX(order_id), 0) FROM orders WHERE market = $1`
	var maxID int64
	if err := r.storage.pool.QueryRow(ctx, query, string(market)).Scan(&maxID); err != nil {
		return 0, err
	}
	return maxID, nil
}
