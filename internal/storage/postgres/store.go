package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kaiwenlim/fintrack-be/internal/models"
	"github.com/kaiwenlim/fintrack-be/internal/storage"
)

// Ensure Store satisfies the storage interfaces at compile time.
var _ storage.Store = (*Store)(nil)

const uniqueViolation = "23505"

// Store provides Postgres-backed persistence for users and records.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects a pool and applies the idempotent schema statements.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			owner_id BIGINT NOT NULL REFERENCES users(id),
			type TEXT NOT NULL,
			amount NUMERIC(18,2) NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT '',
			record_date DATE NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS records_owner_date_idx ON records (owner_id, record_date DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row. A duplicate email surfaces as
// storage.ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at;`
	err := s.pool.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// FindUserByEmail fetches a user by email address.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// FindUserByID fetches a user by id.
func (s *Store) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	const query = `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// CreateRecord inserts a record, assigning a fresh id when none is set.
func (s *Store) CreateRecord(ctx context.Context, rec models.Record) (models.Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO records (id, owner_id, type, amount, category, record_date, description)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
		RETURNING created_at, updated_at;`
	err := s.pool.QueryRow(ctx, query,
		rec.ID, rec.OwnerID, rec.Type, rec.Amount.String(), rec.Category, rec.Date, rec.Description).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return models.Record{}, fmt.Errorf("create record: %w", err)
	}
	return rec, nil
}

// ListRecordsByOwner returns the owner's records in the store's natural
// order: newest date first, creation time as tiebreak.
func (s *Store) ListRecordsByOwner(ctx context.Context, ownerID int64) ([]models.Record, error) {
	const query = `
		SELECT id, owner_id, type, amount::text, category, record_date, description, created_at, updated_at
		FROM records
		WHERE owner_id = $1
		ORDER BY record_date DESC, created_at DESC;`
	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// GetRecord fetches one record by id, scoped to its owner. Foreign ids are
// indistinguishable from missing ones.
func (s *Store) GetRecord(ctx context.Context, ownerID int64, id string) (models.Record, error) {
	const query = `
		SELECT id, owner_id, type, amount::text, category, record_date, description, created_at, updated_at
		FROM records
		WHERE id = $1 AND owner_id = $2;`
	return scanRecord(s.pool.QueryRow(ctx, query, id, ownerID))
}

// UpdateRecord replaces all mutable fields of a record by id.
func (s *Store) UpdateRecord(ctx context.Context, rec models.Record) (models.Record, error) {
	const query = `
		UPDATE records
		SET type = $3, amount = $4::numeric, category = $5, record_date = $6, description = $7, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING created_at, updated_at;`
	err := s.pool.QueryRow(ctx, query,
		rec.ID, rec.OwnerID, rec.Type, rec.Amount.String(), rec.Category, rec.Date, rec.Description).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Record{}, storage.ErrNotFound
		}
		return models.Record{}, fmt.Errorf("update record: %w", err)
	}
	return rec, nil
}

// DeleteRecord removes a record by id, scoped to its owner.
func (s *Store) DeleteRecord(ctx context.Context, ownerID int64, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM records WHERE id = $1 AND owner_id = $2;`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func scanRecord(row pgx.Row) (models.Record, error) {
	var rec models.Record
	var amount string
	var date time.Time
	err := row.Scan(&rec.ID, &rec.OwnerID, &rec.Type, &amount, &rec.Category, &date,
		&rec.Description, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Record{}, storage.ErrNotFound
		}
		return models.Record{}, err
	}
	rec.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Record{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	rec.Amount = parsed
	return rec, nil
}
