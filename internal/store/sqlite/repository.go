// Package sqlite implements the store on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"cashbook/internal/core"
	"cashbook/internal/store"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const transactionColumns = `id, description, amount_cents, kind, category,
	due_date, payment_date, status, counterparty`

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
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
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = ? ORDER BY rowid`,
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
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = ? AND id = ?`,
		userID, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *Repository) InsertTransaction(ctx context.Context, userID string, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, description, amount_cents, kind,
			category, due_date, payment_date, status, counterparty)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, userID, t.Description, t.Amount.Cents, string(t.Kind),
		t.Category, t.DueDate.String(), t.PaymentDate.String(),
		string(t.Status), t.Counterparty)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, userID string, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET description = ?, amount_cents = ?, kind = ?,
			category = ?, due_date = ?, payment_date = ?, status = ?, counterparty = ?
		 WHERE user_id = ? AND id = ?`,
		t.Description, t.Amount.Cents, string(t.Kind), t.Category,
		t.DueDate.String(), t.PaymentDate.String(), string(t.Status),
		t.Counterparty, userID, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *Repository) ListRecords(ctx context.Context, userID string, kind core.RecordKind) ([]core.Record, error) {
	if !core.ValidRecordKind(kind) {
		return nil, fmt.Errorf("list records: unknown kind %q", kind)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, grp FROM records WHERE user_id = ? AND kind = ? ORDER BY rowid`,
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
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO records (id, user_id, kind, name, grp) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, userID, string(kind), rec.Name, rec.Group)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, username string) (store.User, error) {
	var u store.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = ?`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return store.User{}, core.ErrNotFound
	}
	if err != nil {
		return store.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *Repository) CreateUser(ctx context.Context, u store.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

var _ store.Store = (*Repository)(nil)
