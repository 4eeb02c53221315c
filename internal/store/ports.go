// Package store defines the persistence ports of the cash book and is
// implemented by the memory, sqlite and postgres backends.
package store

import (
	"context"

	"cashbook/internal/core"
)

// User is an account owner. PasswordHash is a bcrypt hash; the clear
// text password never reaches the store.
type User struct {
	ID           string
	Username     string
	PasswordHash string
}

// TransactionStore persists a user's transactions. List order is
// insertion order. Update and Delete return core.ErrNotFound when the
// id does not exist for that user.
type TransactionStore interface {
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
	InsertTransaction(ctx context.Context, userID string, t core.Transaction) error
	UpdateTransaction(ctx context.Context, userID string, t core.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id string) error
}

// RecordStore persists a user's reference records per kind, in
// insertion order.
type RecordStore interface {
	ListRecords(ctx context.Context, userID string, kind core.RecordKind) ([]core.Record, error)
	InsertRecord(ctx context.Context, userID string, kind core.RecordKind, r core.Record) error
}

// UserStore persists accounts. GetUser returns core.ErrNotFound for an
// unknown username.
type UserStore interface {
	GetUser(ctx context.Context, username string) (User, error)
	CreateUser(ctx context.Context, u User) error
}

// Store is the full persistence surface a backend provides.
type Store interface {
	TransactionStore
	RecordStore
	UserStore
}
