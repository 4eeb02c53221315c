package core

import "testing"

func TestDefaultRange(t *testing.T) {
	r := DefaultRange(NewDate(2026, 8, 31))
	if !r.Start.Equal(NewDate(2026, 8, 1)) {
		t.Errorf("Start = %v, want 2026-08-01", r.Start)
	}
	if !r.End.Equal(NewDate(2026, 8, 31)) {
		t.Errorf("End = %v, want 2026-08-31", r.End)
	}
}

func TestResolveRange(t *testing.T) {
	today := NewDate(2026, 8, 15)
	tests := []struct {
		name             string
		rawStart, rawEnd string
		wantStart        Date
		wantEnd          Date
		wantEmpty        bool
	}{
		{"both empty defaults", "", "", NewDate(2026, 8, 1), today, false},
		{"explicit bounds", "2026-07-01", "2026-07-31", NewDate(2026, 7, 1), NewDate(2026, 7, 31), false},
		{"start only", "2026-06-01", "", NewDate(2026, 6, 1), today, false},
		{"end only", "", "2026-08-10", NewDate(2026, 8, 1), NewDate(2026, 8, 10), false},
		{"malformed start", "junk", "2026-08-10", Date{}, Date{}, true},
		{"malformed end", "2026-08-01", "2026-13-01", Date{}, Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ResolveRange(tt.rawStart, tt.rawEnd, today)
			if tt.wantEmpty {
				if !r.Start.IsAbsent() || !r.End.IsAbsent() {
					t.Fatalf("ResolveRange = %+v, want empty range", r)
				}
				return
			}
			if !r.Start.Equal(tt.wantStart) || !r.End.Equal(tt.wantEnd) {
				t.Errorf("ResolveRange = [%v, %v], want [%v, %v]", r.Start, r.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	r := DateRange{Start: NewDate(2026, 8, 1), End: NewDate(2026, 8, 31)}
	tests := []struct {
		name string
		d    Date
		want bool
	}{
		{"start inclusive", NewDate(2026, 8, 1), true},
		{"end inclusive", NewDate(2026, 8, 31), true},
		{"inside", NewDate(2026, 8, 15), true},
		{"before", NewDate(2026, 7, 31), false},
		{"after", NewDate(2026, 9, 1), false},
		{"absent", Date{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.d); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
	if (DateRange{}).Contains(NewDate(2026, 8, 1)) {
		t.Error("empty range must contain nothing")
	}
}

func reportFixture() []Transaction {
	return []Transaction{
		tx("salary", Income, 300000, NewDate(2026, 8, 5), NewDate(2026, 8, 5)),
		tx("rent", Expense, 120000, NewDate(2026, 8, 10), NewDate(2026, 8, 10)),
		// pending, due inside the month
		tx("invoice", Expense, 99900, NewDate(2026, 8, 20), Date{}),
		// paid outside the range
		tx("bonus", Income, 50000, NewDate(2026, 7, 1), NewDate(2026, 7, 1)),
	}
}

func TestNewSimpleReport(t *testing.T) {
	r := DateRange{Start: NewDate(2026, 8, 1), End: NewDate(2026, 8, 31)}
	rep := NewSimpleReport(reportFixture(), r)
	if len(rep.Income) != 1 || rep.Income[0].ID != "salary" {
		t.Fatalf("Income = %+v, want just salary", rep.Income)
	}
	if len(rep.Expense) != 1 || rep.Expense[0].ID != "rent" {
		t.Fatalf("Expense = %+v, want just rent", rep.Expense)
	}
	if rep.IncomeTotal.Cents != 300000 {
		t.Errorf("IncomeTotal = %d, want 300000", rep.IncomeTotal.Cents)
	}
	if rep.ExpenseTotal.Cents != 120000 {
		t.Errorf("ExpenseTotal = %d, want 120000", rep.ExpenseTotal.Cents)
	}
}

func TestNewSimpleReportSortedByPaymentDate(t *testing.T) {
	txs := []Transaction{
		tx("late", Expense, 100, NewDate(2026, 8, 1), NewDate(2026, 8, 25)),
		tx("early", Expense, 100, NewDate(2026, 8, 1), NewDate(2026, 8, 2)),
	}
	r := DateRange{Start: NewDate(2026, 8, 1), End: NewDate(2026, 8, 31)}
	rep := NewSimpleReport(txs, r)
	if rep.Expense[0].ID != "early" || rep.Expense[1].ID != "late" {
		t.Errorf("expense order = %s, %s; want early, late", rep.Expense[0].ID, rep.Expense[1].ID)
	}
}

func TestNewDetailedReport(t *testing.T) {
	r := DateRange{Start: NewDate(2026, 8, 1), End: NewDate(2026, 8, 31)}
	rep := NewDetailedReport(reportFixture(), r)
	// salary and rent by payment date, invoice by due date
	wantIDs := []string{"salary", "rent", "invoice"}
	if len(rep.Transactions) != len(wantIDs) {
		t.Fatalf("got %d transactions, want %d", len(rep.Transactions), len(wantIDs))
	}
	for i, id := range wantIDs {
		if rep.Transactions[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, rep.Transactions[i].ID, id)
		}
	}
	// pending invoice is selected but never counted
	if rep.Totals.Income.Cents != 300000 {
		t.Errorf("Income = %d, want 300000", rep.Totals.Income.Cents)
	}
	if rep.Totals.Expense.Cents != 120000 {
		t.Errorf("Expense = %d, want 120000", rep.Totals.Expense.Cents)
	}
	if rep.Balance.Cents != 180000 {
		t.Errorf("Balance = %d, want 180000", rep.Balance.Cents)
	}
}

func TestDetailedSelectionSupersetOfSimple(t *testing.T) {
	r := DateRange{Start: NewDate(2026, 8, 1), End: NewDate(2026, 8, 31)}
	txs := reportFixture()
	simple := NewSimpleReport(txs, r)
	detailed := NewDetailedReport(txs, r)
	inDetailed := make(map[string]bool, len(detailed.Transactions))
	for _, t2 := range detailed.Transactions {
		inDetailed[t2.ID] = true
	}
	for _, t2 := range append(simple.Income, simple.Expense...) {
		if !inDetailed[t2.ID] {
			t.Errorf("transaction %s in simple report but not in detailed", t2.ID)
		}
	}
}

func TestReportsWithEmptyRange(t *testing.T) {
	var r DateRange
	txs := reportFixture()
	if rep := NewSimpleReport(txs, r); len(rep.Income)+len(rep.Expense) != 0 {
		t.Error("simple report over empty range must be empty")
	}
	if rep := NewDetailedReport(txs, r); len(rep.Transactions) != 0 {
		t.Error("detailed report over empty range must be empty")
	}
}

func TestRangeTotals(t *testing.T) {
	r := DateRange{Start: NewDate(2026, 8, 1), End: NewDate(2026, 8, 31)}
	got := RangeTotals(reportFixture(), r)
	if got.Income.Cents != 300000 || got.Expense.Cents != 120000 {
		t.Errorf("RangeTotals = %+v, want 300000/120000", got)
	}
}
