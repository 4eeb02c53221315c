package core

// Totals holds realized income and expense sums.
type Totals struct {
	Income  Money
	Expense Money
}

// Balance returns income minus expense. It may be negative.
func (t Totals) Balance() Money { return t.Income.Sub(t.Expense) }

// LifetimeTotals sums realized amounts over the whole ledger. Pending
// transactions never contribute, and the result is independent of any
// dashboard filter: callers pass the full transaction list.
func LifetimeTotals(txs []Transaction) Totals {
	var out Totals
	for _, t := range txs {
		switch {
		case t.IsRealizedIncome():
			out.Income = out.Income.Add(t.Amount)
		case t.IsRealizedExpense():
			out.Expense = out.Expense.Add(t.Amount)
		}
	}
	return out
}

// CategoryBreakdown groups realized expenses by category label. The
// two returned slices are parallel, ordered by first appearance in the
// input; categories whose sum is exactly zero are omitted.
func CategoryBreakdown(txs []Transaction) ([]string, []Money) {
	var order []string
	sums := make(map[string]Money)
	for _, t := range txs {
		if !t.IsRealizedExpense() {
			continue
		}
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}
	labels := make([]string, 0, len(order))
	amounts := make([]Money, 0, len(order))
	for _, c := range order {
		if sums[c].IsZero() {
			continue
		}
		labels = append(labels, c)
		amounts = append(amounts, sums[c])
	}
	return labels, amounts
}

// netFlowMonths is the fixed width of the monthly net-flow window.
const netFlowMonths = 6

// NetFlowPoint is one month of the net-flow series.
type NetFlowPoint struct {
	Key     string // YYYY-MM bucket key
	Label   string // short display label, e.g. Aug/26
	Income  Money
	Expense Money
}

// Net returns the month's income minus expense.
func (p NetFlowPoint) Net() Money { return p.Income.Sub(p.Expense) }

// MonthlyNetFlow builds the trailing six-month net-flow series ending
// at today's month. The series always has exactly six entries in
// chronological order, zero-initialized; settled transactions bucket by
// payment date, and payments outside the window are dropped.
func MonthlyNetFlow(txs []Transaction, today Date) []NetFlowPoint {
	points := make([]NetFlowPoint, netFlowMonths)
	index := make(map[string]int, netFlowMonths)
	first := NewDate(today.Year(), int(today.Month()), 1).
		AddDate(0, -(netFlowMonths - 1), 0)
	for i := range points {
		m := DateOf(first.AddDate(0, i, 0))
		points[i] = NetFlowPoint{Key: m.MonthKey(), Label: m.Format("Jan/06")}
		index[points[i].Key] = i
	}
	for _, t := range txs {
		if !t.IsSettled() || t.PaymentDate.IsAbsent() {
			continue
		}
		i, ok := index[t.PaymentDate.MonthKey()]
		if !ok {
			continue
		}
		if t.Kind == Income {
			points[i].Income = points[i].Income.Add(t.Amount)
		} else {
			points[i].Expense = points[i].Expense.Add(t.Amount)
		}
	}
	return points
}
