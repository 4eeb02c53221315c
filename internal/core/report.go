package core

// DateRange is an inclusive calendar-day interval. The zero value is
// the empty range: it contains nothing.
type DateRange struct {
	Start Date
	End   Date
}

// Contains reports whether d falls within the range, inclusive on both
// ends. Absent dates are never contained.
func (r DateRange) Contains(d Date) bool {
	if d.IsAbsent() || r.Start.IsAbsent() || r.End.IsAbsent() {
		return false
	}
	return !d.Before(r.Start) && !d.After(r.End)
}

// DefaultRange is the report window used when no bounds are given:
// the first day of today's month through today.
func DefaultRange(today Date) DateRange {
	return DateRange{
		Start: NewDate(today.Year(), int(today.Month()), 1),
		End:   today,
	}
}

// ResolveRange turns raw query bounds into a report range. Empty
// bounds fall back to the defaults; a malformed bound resolves to the
// empty range so the report renders empty instead of failing.
func ResolveRange(rawStart, rawEnd string, today Date) DateRange {
	def := DefaultRange(today)
	start, end := def.Start, def.End
	if rawStart != "" {
		if start = ParseDate(rawStart); start.IsAbsent() {
			return DateRange{}
		}
	}
	if rawEnd != "" {
		if end = ParseDate(rawEnd); end.IsAbsent() {
			return DateRange{}
		}
	}
	return DateRange{Start: start, End: end}
}

// SimpleReport lists the transactions paid within a range, split by
// kind. It carries no balance.
type SimpleReport struct {
	Range        DateRange
	Income       []Transaction
	Expense      []Transaction
	IncomeTotal  Money
	ExpenseTotal Money
}

// NewSimpleReport selects transactions whose payment date falls in the
// range, sorted by payment date ascending, and splits them by kind
// with per-kind sums.
func NewSimpleReport(txs []Transaction, r DateRange) SimpleReport {
	out := SimpleReport{Range: r}
	selected := make([]Transaction, 0)
	for _, t := range txs {
		if r.Contains(t.PaymentDate) {
			selected = append(selected, t)
		}
	}
	sortByDate(selected, SortByPaymentDate, Ascending)
	for _, t := range selected {
		if t.Kind == Income {
			out.Income = append(out.Income, t)
			out.IncomeTotal = out.IncomeTotal.Add(t.Amount)
		} else {
			out.Expense = append(out.Expense, t)
			out.ExpenseTotal = out.ExpenseTotal.Add(t.Amount)
		}
	}
	return out
}

// DetailedReport lists every transaction touching a range, with
// realized totals and the realized balance inside the selection.
type DetailedReport struct {
	Range        DateRange
	Transactions []Transaction
	Totals       Totals
	Balance      Money
}

// NewDetailedReport selects transactions whose payment date or due
// date falls in the range, sorted by due date ascending (absent due
// dates first). Totals count realized amounts only; the balance is
// realized income minus realized expense within the selection. The
// selection is a superset of the simple report's for the same range.
func NewDetailedReport(txs []Transaction, r DateRange) DetailedReport {
	out := DetailedReport{Range: r}
	for _, t := range txs {
		if r.Contains(t.PaymentDate) || r.Contains(t.DueDate) {
			out.Transactions = append(out.Transactions, t)
		}
	}
	sortByDate(out.Transactions, SortByDueDate, Ascending)
	out.Totals = LifetimeTotals(out.Transactions)
	out.Balance = out.Totals.Balance()
	return out
}

// RangeTotals sums realized amounts among transactions whose payment
// date falls in the range.
func RangeTotals(txs []Transaction, r DateRange) Totals {
	var out Totals
	for _, t := range txs {
		if !r.Contains(t.PaymentDate) {
			continue
		}
		switch {
		case t.IsRealizedIncome():
			out.Income = out.Income.Add(t.Amount)
		case t.IsRealizedExpense():
			out.Expense = out.Expense.Add(t.Amount)
		}
	}
	return out
}
