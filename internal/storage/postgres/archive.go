package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
)

type archiveRepository struct {
	storage *Storage
}

const archiveColumns = `order_id, doc_id, name, phone, customer_address, address, products,
       status, resolved_by, call_count, comment, discount, delivery_price,
       delivery_date, total_price, order_time, type, updated_at, awb, awb_status`

func scanSentOrder(scan func(dest ...any) error) (*model.SentOrder, error) {
	var (
		s               model.SentOrder
		addressJSON     []byte
		productsJSON    []byte
		status, orderTp string
		awbStatus       string
	)
	err := scan(&s.ID, &s.DocID, &s.Name, &s.Phone, &s.CustomerAddress,
		&addressJSON, &productsJSON, &status, &s.ResolvedBy, &s.CallCount,
		&s.Comment, &s.Discount, &s.DeliveryPrice, &s.DeliveryDate,
		&s.TotalPrice, &s.OrderTime, &orderTp, &s.UpdatedAt, &s.AWB, &awbStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	s.Status = model.OrderStatus(status)
	s.Type = model.OrderType(orderTp)
	s.AWBStatus = model.AWBStatus(awbStatus)
	if err := json.Unmarshal(addressJSON, &s.Address); err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	if err := json.Unmarshal(productsJSON, &s.Products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return &s, nil
}

func collectSentOrders(rows pgx.Rows) ([]model.SentOrder, error) {
	defer rows.Close()

	var result []model.SentOrder
	for rows.Next() {
		record, err := scanSentOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func archiveArgs(record *model.SentOrder) ([]any, error) {
	addressJSON, err := json.Marshal(record.Address)
	if err != nil {
		return nil, fmt.Errorf("encode address: %w", err)
	}
	productsJSON, err := json.Marshal(record.Products)
	if err != nil {
		return nil, fmt.Errorf("encode products: %w", err)
	}
	return []any{
		record.ID, record.DocID, record.Name, record.Phone, record.CustomerAddress,
		addressJSON, productsJSON, string(record.Status), record.ResolvedBy,
		record.CallCount, record.Comment, record.Discount, record.DeliveryPrice,
		record.DeliveryDate, record.TotalPrice, record.OrderTime,
		string(record.Type), record.UpdatedAt, record.AWB, string(record.AWBStatus),
	}, nil
}

func (r *archiveRepository) GetByOrderID(ctx context.Context, market model.Market, orderID int64) (*model.SentOrder, error) {
	query := `SELECT ` + archiveColumns + ` FROM archive WHERE market = $1 AND order_id = $2`
	return scanSentOrder(r.storage.pool.QueryRow(ctx, query, string(market), orderID).Scan)
}

func (r *archiveRepository) GetByAWB(ctx context.Context, market model.Market, code string) (*model.SentOrder, error) {
	query := `SELECT ` + archiveColumns + ` FROM archive WHERE market = $1 AND awb = $2`
	return scanSentOrder(r.storage.pool.QueryRow(ctx, query, string(market), code).Scan)
}

func (r *archiveRepository) ListByPhone(ctx context.Context, market model.Market, phone string) ([]model.SentOrder, error) {
	query := `SELECT ` + archiveColumns + ` FROM archive
              WHERE market = $1 AND phone = $2 ORDER BY updated_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, string(market), phone)
	if err != nil {
		return nil, err
	}
	return collectSentOrders(rows)
}

func (r *archiveRepository) ListByOperatorAndInterval(ctx context.Context, market model.Market, operator string, from, to time.Time) ([]model.SentOrder, error) {
	query := `SELECT ` + archiveColumns + ` FROM archive
              WHERE market = $1 AND updated_at >= $2 AND updated_at <= $3`
	args := []any{string(market), from, to}
	if operator != "" {
		args = append(args, operator)
		query += fmt.Sprintf(" AND resolved_by = $%d", len(args))
	}
	query += " ORDER BY updated_at ASC"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectSentOrders(rows)
}

func (r *archiveRepository) ListUndelivered(ctx context.Context, market model.Market, limit int) ([]model.SentOrder, error) {
	query := `SELECT ` + archiveColumns + ` FROM archive
              WHERE market = $1 AND awb <> '' AND awb_status NOT IN ($2, $3)
              ORDER BY updated_at ASC LIMIT $4`
	rows, err := r.storage.pool.Query(ctx, query, string(market),
		string(model.AWBStatusDelivered), string(model.AWBStatusReturned), limit)
	if err != nil {
		return nil, err
	}
	return collectSentOrders(rows)
}

func (r *archiveRepository) SetAWB(ctx context.Context, market model.Market, orderID int64, awb string) error {
	const query = `UPDATE archive SET awb = $3, awb_status = $4
                   WHERE market = $1 AND order_id = $2 AND awb = ''`
	tag, err := r.storage.pool.Exec(ctx, query, string(market), orderID, awb, string(model.AWBStatusInProgress))
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	const existsQuery = `SELECT EXISTS (SELECT 1 FROM archive WHERE market = $1 AND order_id = $2)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, existsQuery, string(market), orderID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domainErrors.ErrNotFound
	}
	return domainErrors.ErrAlreadyExists
}

func (r *archiveRepository) UpdateAWBStatus(ctx context.Context, market model.Market, orderID int64, status model.AWBStatus) error {
	const query = `UPDATE archive SET awb_status = $3 WHERE market = $1 AND order_id = $2`
	tag, err := r.storage.pool.Exec(ctx, query, string(market), orderID, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
