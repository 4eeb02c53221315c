// Package memory provides an in-memory store implementation used as
// the default backend and as a test double.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"cashbook/internal/core"
	"cashbook/internal/store"
)

type ledger struct {
	transactions []core.Transaction
	records      map[core.RecordKind][]core.Record
}

// Store keeps every user's ledger in process memory. New ledgers are
// seeded with the default category set.
type Store struct {
	mu      sync.RWMutex
	ledgers map[string]*ledger
	users   map[string]store.User // keyed by username
}

func New() *Store {
	return &Store{
		ledgers: make(map[string]*ledger),
		users:   make(map[string]store.User),
	}
}

// ledgerFor returns the user's ledger, creating and seeding it on
// first use. Callers must hold the write lock.
func (s *Store) ledgerFor(userID string) *ledger {
	l, ok := s.ledgers[userID]
	if !ok {
		l = &ledger{records: make(map[core.RecordKind][]core.Record)}
		for _, name := range core.DefaultCategoryNames {
			l.records[core.RecordCategory] = append(l.records[core.RecordCategory], core.Record{
				ID:    uuid.NewString(),
				Name:  name,
				Group: core.DefaultCategoryGroup,
			})
		}
		s.ledgers[userID] = l
	}
	return l
}

func (s *Store) ListTransactions(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.ledgerFor(userID)
	out := make([]core.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, userID, id string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.ledgers[userID]
	if !ok {
		return core.Transaction{}, core.ErrNotFound
	}
	for _, t := range l.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

func (s *Store) InsertTransaction(_ context.Context, userID string, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.ledgerFor(userID)
	l.transactions = append(l.transactions, t)
	return nil
}

func (s *Store) UpdateTransaction(_ context.Context, userID string, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ledgers[userID]
	if !ok {
		return core.ErrNotFound
	}
	for i := range l.transactions {
		if l.transactions[i].ID == t.ID {
			l.transactions[i] = t
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteTransaction(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ledgers[userID]
	if !ok {
		return core.ErrNotFound
	}
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) ListRecords(_ context.Context, userID string, kind core.RecordKind) ([]core.Record, error) {
	if !core.ValidRecordKind(kind) {
		return nil, fmt.Errorf("list records: unknown kind %q", kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.ledgerFor(userID)
	out := make([]core.Record, len(l.records[kind]))
	copy(out, l.records[kind])
	return out, nil
}

func (s *Store) InsertRecord(_ context.Context, userID string, kind core.RecordKind, r core.Record) error {
	if !core.ValidRecordKind(kind) {
		return fmt.Errorf("insert record: unknown kind %q", kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.ledgerFor(userID)
	l.records[kind] = append(l.records[kind], r)
	return nil
}

func (s *Store) GetUser(_ context.Context, username string) (store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return store.User{}, core.ErrNotFound
	}
	return u, nil
}

func (s *Store) CreateUser(_ context.Context, u store.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.Username]; exists {
		return fmt.Errorf("create user: username %q already taken", u.Username)
	}
	s.users[u.Username] = u
	return nil
}

var _ store.Store = (*Store)(nil)
