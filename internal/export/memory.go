package export

import (
	"context"
	"sync"

	"cashbook/internal/core"
)

// MemoryAppender collects appended rows in memory, used in tests and
// when no spreadsheet is configured.
type MemoryAppender struct {
	mu   sync.Mutex
	rows []core.Transaction
}

func NewMemoryAppender() *MemoryAppender {
	return &MemoryAppender{}
}

func (m *MemoryAppender) Append(_ context.Context, t core.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, t)
	return nil
}

// Rows returns a copy of everything appended so far.
func (m *MemoryAppender) Rows() []core.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Transaction, len(m.rows))
	copy(out, m.rows)
	return out
}

var _ RowAppender = (*MemoryAppender)(nil)
