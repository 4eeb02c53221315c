package core

// Display labels derived from kind and status. Settled income shows as
// "received", settled expense as "paid", everything else as "pending".
const (
	LabelReceived = "received"
	LabelPaid     = "paid"
	LabelPending  = "pending"
)

// StatusSettledBucket is the filter value that matches both settled
// display labels at once.
const StatusSettledBucket = "settled"

// IsSettled reports whether the transaction has been realized.
func (t Transaction) IsSettled() bool { return t.Status == StatusSettled }

// IsRealizedIncome reports whether the transaction contributes to
// realized income: settled and of income kind.
func (t Transaction) IsRealizedIncome() bool {
	return t.Kind == Income && t.IsSettled()
}

// IsRealizedExpense reports whether the transaction contributes to
// realized expense: settled and of expense kind.
func (t Transaction) IsRealizedExpense() bool {
	return t.Kind == Expense && t.IsSettled()
}

// StatusLabel returns the user-facing status label for the transaction.
func (t Transaction) StatusLabel() string {
	if !t.IsSettled() {
		return LabelPending
	}
	if t.Kind == Income {
		return LabelReceived
	}
	return LabelPaid
}
