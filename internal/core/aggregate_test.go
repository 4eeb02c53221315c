package core

import "testing"

func TestLifetimeTotalsIgnoresPending(t *testing.T) {
	txs := []Transaction{
		tx("1", Income, 300000, NewDate(2026, 8, 5), NewDate(2026, 8, 5)),
		tx("2", Expense, 120000, NewDate(2026, 8, 10), NewDate(2026, 8, 10)),
		tx("3", Expense, 99900, NewDate(2026, 9, 1), Date{}),
		tx("4", Income, 50000, NewDate(2026, 9, 5), Date{}),
	}
	got := LifetimeTotals(txs)
	if got.Income.Cents != 300000 {
		t.Errorf("Income = %d, want 300000", got.Income.Cents)
	}
	if got.Expense.Cents != 120000 {
		t.Errorf("Expense = %d, want 120000", got.Expense.Cents)
	}
	if got.Balance().Cents != 180000 {
		t.Errorf("Balance = %d, want 180000", got.Balance().Cents)
	}
}

func TestLifetimeTotalsNegativeBalance(t *testing.T) {
	txs := []Transaction{
		tx("1", Expense, 5000, NewDate(2026, 1, 1), NewDate(2026, 1, 1)),
	}
	if got := LifetimeTotals(txs).Balance().Cents; got != -5000 {
		t.Errorf("Balance = %d, want -5000", got)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	withCat := func(tr Transaction, cat string) Transaction {
		tr.Category = cat
		return tr
	}
	txs := []Transaction{
		withCat(tx("1", Expense, 1000, NewDate(2026, 1, 1), NewDate(2026, 1, 1)), "Moradia"),
		withCat(tx("2", Expense, 500, NewDate(2026, 1, 2), NewDate(2026, 1, 2)), "Transporte"),
		withCat(tx("3", Expense, 700, NewDate(2026, 1, 3), NewDate(2026, 1, 3)), "Moradia"),
		// pending expense must not count
		withCat(tx("4", Expense, 9999, NewDate(2026, 1, 4), Date{}), "Lazer"),
		// realized income must not count
		withCat(tx("5", Income, 8888, NewDate(2026, 1, 5), NewDate(2026, 1, 5)), "Salário"),
		// zero-sum category is omitted
		withCat(tx("6", Expense, 0, NewDate(2026, 1, 6), NewDate(2026, 1, 6)), "Educação"),
	}
	labels, amounts := CategoryBreakdown(txs)
	wantLabels := []string{"Moradia", "Transporte"}
	wantCents := []int64{1700, 500}
	if len(labels) != len(wantLabels) || len(amounts) != len(wantLabels) {
		t.Fatalf("got %d labels / %d amounts, want %d", len(labels), len(amounts), len(wantLabels))
	}
	for i := range wantLabels {
		if labels[i] != wantLabels[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], wantLabels[i])
		}
		if amounts[i].Cents != wantCents[i] {
			t.Errorf("amounts[%d] = %d, want %d", i, amounts[i].Cents, wantCents[i])
		}
	}
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	labels, amounts := CategoryBreakdown(nil)
	if len(labels) != 0 || len(amounts) != 0 {
		t.Errorf("breakdown of nil = %v / %v, want empty", labels, amounts)
	}
}

func TestMonthlyNetFlowWindow(t *testing.T) {
	today := NewDate(2026, 8, 31)
	points := MonthlyNetFlow(nil, today)
	if len(points) != 6 {
		t.Fatalf("got %d points, want 6", len(points))
	}
	wantKeys := []string{"2026-03", "2026-04", "2026-05", "2026-06", "2026-07", "2026-08"}
	wantLabels := []string{"Mar/26", "Apr/26", "May/26", "Jun/26", "Jul/26", "Aug/26"}
	for i := range points {
		if points[i].Key != wantKeys[i] {
			t.Errorf("points[%d].Key = %q, want %q", i, points[i].Key, wantKeys[i])
		}
		if points[i].Label != wantLabels[i] {
			t.Errorf("points[%d].Label = %q, want %q", i, points[i].Label, wantLabels[i])
		}
		if points[i].Net().Cents != 0 {
			t.Errorf("points[%d].Net = %d, want 0", i, points[i].Net().Cents)
		}
	}
}

func TestMonthlyNetFlowCrossesYearBoundary(t *testing.T) {
	points := MonthlyNetFlow(nil, NewDate(2026, 2, 10))
	wantKeys := []string{"2025-09", "2025-10", "2025-11", "2025-12", "2026-01", "2026-02"}
	for i := range points {
		if points[i].Key != wantKeys[i] {
			t.Errorf("points[%d].Key = %q, want %q", i, points[i].Key, wantKeys[i])
		}
	}
}

func TestMonthlyNetFlowBucketsByPaymentDate(t *testing.T) {
	today := NewDate(2026, 8, 15)
	txs := []Transaction{
		tx("1", Income, 10000, NewDate(2026, 6, 1), NewDate(2026, 6, 10)),
		tx("2", Expense, 4000, NewDate(2026, 6, 1), NewDate(2026, 6, 20)),
		tx("3", Expense, 2500, NewDate(2026, 8, 1), NewDate(2026, 8, 2)),
		// pending: never buckets
		tx("4", Income, 77700, NewDate(2026, 7, 1), Date{}),
		// paid before the window: silently dropped
		tx("5", Expense, 66600, NewDate(2025, 1, 1), NewDate(2025, 1, 1)),
	}
	points := MonthlyNetFlow(txs, today)
	byKey := make(map[string]NetFlowPoint, len(points))
	for _, p := range points {
		byKey[p.Key] = p
	}
	if got := byKey["2026-06"].Net().Cents; got != 6000 {
		t.Errorf("2026-06 net = %d, want 6000", got)
	}
	if got := byKey["2026-08"].Net().Cents; got != -2500 {
		t.Errorf("2026-08 net = %d, want -2500", got)
	}
	if got := byKey["2026-07"].Net().Cents; got != 0 {
		t.Errorf("2026-07 net = %d, want 0", got)
	}
}
