package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/ordesk/backoffice/internal/domain/errors"
	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage uses. Narrowed to an
// interface so pgxmock pools can stand in during tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type auditRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Archive() repository.ArchiveRepository {
	return &archiveRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Audit() repository.AuditRepository {
	return &auditRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email TEXT NOT NULL,
            display_name TEXT NOT NULL,
            role TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            last_login TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            market TEXT NOT NULL,
            doc_id TEXT NOT NULL,
            order_id BIGINT NOT NULL,
            name TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            customer_address TEXT NOT NULL DEFAULT '',
            address JSONB NOT NULL DEFAULT '{}',
            products JSONB NOT NULL DEFAULT '[]',
            status TEXT NOT NULL,
            assigned_operator TEXT,
            resolved_by TEXT,
            call_count INT NOT NULL DEFAULT 0,
            comment TEXT NOT NULL DEFAULT '',
            discount NUMERIC NOT NULL DEFAULT 0,
            delivery_price NUMERIC NOT NULL DEFAULT 0,
            delivery_date TIMESTAMPTZ,
            total_price NUMERIC NOT NULL DEFAULT 0,
            order_time TIMESTAMPTZ NOT NULL,
            type TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL,
            PRIMARY KEY (market, doc_id)
        )`,
		`CREATE TABLE IF NOT EXISTS archive (
            market TEXT NOT NULL,
            order_id BIGINT NOT NULL,
            doc_id TEXT NOT NULL,
            name TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            customer_address TEXT NOT NULL DEFAULT '',
            address JSONB NOT NULL DEFAULT '{}',
            products JSONB NOT NULL DEFAULT '[]',
            status TEXT NOT NULL,
            resolved_by TEXT,
            call_count INT NOT NULL DEFAULT 0,
            comment TEXT NOT NULL DEFAULT '',
            discount NUMERIC NOT NULL DEFAULT 0,
            delivery_price NUMERIC NOT NULL DEFAULT 0,
            delivery_date TIMESTAMPTZ,
            total_price NUMERIC NOT NULL DEFAULT 0,
            order_time TIMESTAMPTZ NOT NULL,
            type TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL,
            awb TEXT NOT NULL DEFAULT '',
            awb_status TEXT NOT NULL DEFAULT '',
            PRIMARY KEY (market, order_id)
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            market TEXT NOT NULL,
            product_id TEXT NOT NULL,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price NUMERIC NOT NULL DEFAULT 0,
            upsell NUMERIC NOT NULL DEFAULT 0,
            personalization TEXT NOT NULL DEFAULT '',
            stock INT NOT NULL DEFAULT 0,
            category TEXT NOT NULL DEFAULT '',
            image_url TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS audit_log (
            id SERIAL PRIMARY KEY,
            action TEXT NOT NULL,
            username TEXT NOT NULL,
            market TEXT NOT NULL,
            order_id BIGINT NOT NULL DEFAULT 0,
            action_date TIMESTAMPTZ NOT NULL
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (LOWER(email))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_order_id ON orders (market, order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_queue ON orders (market, status, order_time)`,
		`CREATE INDEX IF NOT EXISTS idx_archive_awb ON archive (market, awb)`,
		`CREATE INDEX IF NOT EXISTS idx_archive_phone ON archive (market, phone)`,
		`CREATE INDEX IF NOT EXISTS idx_archive_operator ON archive (market, resolved_by, updated_at)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_user ON audit_log (username, action_date DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	const query = `INSERT INTO users (email, display_name, role, password_hash, last_login)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.storage.pool.QueryRow(ctx, query, user.Email, user.DisplayName, string(user.Role), user.PasswordHash, user.LastLogin).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, display_name, role, password_hash, last_login
                   FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, display_name, role, password_hash, last_login
                   FROM users WHERE id = $1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &role, &u.PasswordHash, &u.LastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	u.Role = model.Role(role)
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	const query = `SELECT id, email, display_name, role, password_hash, last_login
                   FROM users ORDER BY display_name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		var role string
		if err := rows.Scan(&u.ID, &u.Email, &u.DisplayName, &role, &u.PasswordHash, &u.LastLogin); err != nil {
			return nil, err
		}
		u.Role = model.Role(role)
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	const query = `UPDATE users SET role = $1 WHERE id = $2`
	tag, err := r.storage.pool.Exec(ctx, query, string(role), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	const query = `UPDATE users SET last_login = $1 WHERE id = $2`
	_, err := r.storage.pool.Exec(ctx, query, at, id)
	return err
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- AuditRepository implementation ---

func (r *auditRepository) Append(ctx context.Context, entry *model.AuditEntry) error {
	const query = `INSERT INTO audit_log (action, username, market, order_id, action_date)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.storage.pool.QueryRow(ctx, query,
		string(entry.Action), entry.User, string(entry.Market), entry.OrderID, entry.ActionDate,
	).Scan(&entry.ID)
}

func (r *auditRepository) ListByUserAndInterval(ctx context.Context, user string, from, to time.Time) ([]model.AuditEntry, error) {
	const query = `SELECT id, action, username, market, order_id, action_date
                   FROM audit_log
                   WHERE username = $1 AND action_date >= $2 AND action_date <= $3
                   ORDER BY action_date DESC`
	rows, err := r.storage.pool.Query(ctx, query, user, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		var action, market string
		if err := rows.Scan(&e.ID, &action, &e.User, &market, &e.OrderID, &e.ActionDate); err != nil {
			return nil, err
		}
		e.Action = model.AuditAction(action)
		e.Market = model.Market(market)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
