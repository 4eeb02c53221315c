package core

import "sort"

// Filters narrows a transaction list. Zero-valued fields impose no
// constraint.
type Filters struct {
	// OnDate keeps transactions whose due date or payment date equals
	// this exact day.
	OnDate Date
	// Kind keeps only income or only expense transactions.
	Kind TransactionKind
	// Status matches the display label exactly, except the
	// StatusSettledBucket value which matches both settled labels.
	Status string
}

// Match reports whether the transaction passes every set filter.
func (f Filters) Match(t Transaction) bool {
	if !f.OnDate.IsAbsent() {
		if !t.DueDate.Equal(f.OnDate) && !t.PaymentDate.Equal(f.OnDate) {
			return false
		}
	}
	if f.Kind != "" && t.Kind != f.Kind {
		return false
	}
	if f.Status != "" {
		if f.Status == StatusSettledBucket {
			if !t.IsSettled() {
				return false
			}
		} else if t.StatusLabel() != f.Status {
			return false
		}
	}
	return true
}

type (
	SortKey   int
	SortOrder int
)

const (
	SortByDueDate SortKey = iota
	SortByPaymentDate
)

const (
	Ascending SortOrder = iota
	Descending
)

// FilterAndSort returns the transactions passing f, ordered by the
// given date key. Absent dates carry the minimal zero-time sentinel, so
// they come first ascending and last descending. The sort is stable:
// ties keep their input order. The input slice is never mutated.
func FilterAndSort(txs []Transaction, f Filters, key SortKey, order SortOrder) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	sortByDate(out, key, order)
	return out
}

func sortByDate(txs []Transaction, key SortKey, order SortOrder) {
	at := func(t Transaction) Date {
		if key == SortByPaymentDate {
			return t.PaymentDate
		}
		return t.DueDate
	}
	sort.SliceStable(txs, func(i, j int) bool {
		a, b := at(txs[i]), at(txs[j])
		if order == Descending {
			return b.Before(a)
		}
		return a.Before(b)
	})
}
