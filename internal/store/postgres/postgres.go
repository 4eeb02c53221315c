// Package postgres implements the store on a PostgreSQL pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cashbook/internal/core"
	"cashbook/internal/store"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(ctx context.Context, connURL string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, connURL)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	r := &Repository{pool: pool}
	if err := r.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repository) Close() {
	r.pool.Close()
}

func (r *Repository) ensureSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS transactions (
		seq          BIGSERIAL,
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL REFERENCES users (id),
		description  TEXT NOT NULL,
		amount_cents BIGINT NOT NULL,
		kind         TEXT NOT NULL,
		category     TEXT NOT NULL,
		due_date     TEXT NOT NULL,
		payment_date TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL,
		counterparty TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions (user_id);
	CREATE TABLE IF NOT EXISTS records (
		seq     BIGSERIAL,
		id      TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users (id),
		kind    TEXT NOT NULL,
		name    TEXT NOT NULL,
		grp     TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_records_user_kind ON records (user_id, kind);`
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const transactionColumns = `id, description, amount_cents, kind, category,
	due_date, payment_date, status, counterparty`

func scanTransaction(row pgx.Row) (core.Transaction, error) {
	var (
		t          core.Transaction
		cents      int64
		kind       string
		status     string
		due, payed string
	)
	err := row.Scan(&t.ID, &t.Description, &cents, &kind, &t.Category,
		&due, &payed, &status, &t.Counterparty)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Amount = core.Money{Cents: cents}
	t.Kind = core.TransactionKind(kind)
	t.Status = core.TransactionStatus(status)
	t.DueDate = core.ParseDate(due)
	t.PaymentDate = core.ParseDate(payed)
	return t, nil
}

func (r *Repository) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 ORDER BY seq`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

func (r *Repository) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 AND id = $2`,
		userID, id)
	t, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *Repository) InsertTransaction(ctx context.Context, userID string, t core.Transaction) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO transactions (id, user_id, description, amount_cents, kind,
			category, due_date, payment_date, status, counterparty)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, userID, t.Description, t.Amount.Cents, string(t.Kind),
		t.Category, t.DueDate.String(), t.PaymentDate.String(),
		string(t.Status), t.Counterparty)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, userID string, t core.Transaction) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE transactions SET description = $1, amount_cents = $2, kind = $3,
			category = $4, due_date = $5, payment_date = $6, status = $7, counterparty = $8
		 WHERE user_id = $9 AND id = $10`,
		t.Description, t.Amount.Cents, string(t.Kind), t.Category,
		t.DueDate.String(), t.PaymentDate.String(), string(t.Status),
		t.Counterparty, userID, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM transactions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *Repository) ListRecords(ctx context.Context, userID string, kind core.RecordKind) ([]core.Record, error) {
	if !core.ValidRecordKind(kind) {
		return nil, fmt.Errorf("list records: unknown kind %q", kind)
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, grp FROM records WHERE user_id = $1 AND kind = $2 ORDER BY seq`,
		userID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		var rec core.Record
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Group); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out, nil
}

func (r *Repository) InsertRecord(ctx context.Context, userID string, kind core.RecordKind, rec core.Record) error {
	if !core.ValidRecordKind(kind) {
		return fmt.Errorf("insert record: unknown kind %q", kind)
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO records (id, user_id, kind, name, grp) VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, userID, string(kind), rec.Name, rec.Group)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, username string) (store.User, error) {
	var u store.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = $1`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.User{}, core.ErrNotFound
	}
	if err != nil {
		return store.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *Repository) CreateUser(ctx context.Context, u store.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)`,
		u.ID, u.Username, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

var _ store.Store = (*Repository)(nil)
