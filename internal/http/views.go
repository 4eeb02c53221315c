package http

import (
	"encoding/json"
	"io"
	"net/http"

	"cashbook/internal/core"
	"cashbook/internal/ledger"
)

const maxBodyBytes = 1 << 20

func decodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

type transactionView struct {
	ID           string     `json:"id"`
	Description  string     `json:"description"`
	Amount       core.Money `json:"amount"`
	Kind         string     `json:"kind"`
	Category     string     `json:"category"`
	DueDate      core.Date  `json:"due_date"`
	PaymentDate  core.Date  `json:"payment_date"`
	Status       string     `json:"status"`
	Counterparty string     `json:"counterparty,omitempty"`
}

func newTransactionView(t core.Transaction) transactionView {
	return transactionView{
		ID:           t.ID,
		Description:  t.Description,
		Amount:       t.Amount,
		Kind:         string(t.Kind),
		Category:     t.Category,
		DueDate:      t.DueDate,
		PaymentDate:  t.PaymentDate,
		Status:       t.StatusLabel(),
		Counterparty: t.Counterparty,
	}
}

func newTransactionViews(txs []core.Transaction) []transactionView {
	out := make([]transactionView, len(txs))
	for i, t := range txs {
		out[i] = newTransactionView(t)
	}
	return out
}

type chartSeriesView struct {
	Labels []string     `json:"labels"`
	Values []core.Money `json:"values"`
}

type netFlowPointView struct {
	Key     string     `json:"key"`
	Label   string     `json:"label"`
	Income  core.Money `json:"income"`
	Expense core.Money `json:"expense"`
	Net     core.Money `json:"net"`
}

type dashboardView struct {
	Transactions []transactionView  `json:"transactions"`
	Income       core.Money         `json:"income"`
	Expense      core.Money         `json:"expense"`
	Balance      core.Money         `json:"balance"`
	ByCategory   chartSeriesView    `json:"by_category"`
	NetFlow      []netFlowPointView `json:"net_flow"`
}

func newDashboardView(v ledger.DashboardView) dashboardView {
	out := dashboardView{
		Transactions: newTransactionViews(v.Transactions),
		Income:       v.Totals.Income,
		Expense:      v.Totals.Expense,
		Balance:      v.Balance,
		ByCategory: chartSeriesView{
			Labels: v.CategoryLabels,
			Values: v.CategoryAmounts,
		},
		NetFlow: make([]netFlowPointView, len(v.NetFlow)),
	}
	if out.ByCategory.Labels == nil {
		out.ByCategory.Labels = []string{}
	}
	if out.ByCategory.Values == nil {
		out.ByCategory.Values = []core.Money{}
	}
	for i, p := range v.NetFlow {
		out.NetFlow[i] = netFlowPointView{
			Key:     p.Key,
			Label:   p.Label,
			Income:  p.Income,
			Expense: p.Expense,
			Net:     p.Net(),
		}
	}
	return out
}

type rangeView struct {
	Start core.Date `json:"start"`
	End   core.Date `json:"end"`
}

type simpleReportView struct {
	Range        rangeView         `json:"range"`
	Income       []transactionView `json:"income"`
	Expense      []transactionView `json:"expense"`
	IncomeTotal  core.Money        `json:"income_total"`
	ExpenseTotal core.Money        `json:"expense_total"`
}

func newSimpleReportView(r core.SimpleReport) simpleReportView {
	return simpleReportView{
		Range:        rangeView{Start: r.Range.Start, End: r.Range.End},
		Income:       newTransactionViews(r.Income),
		Expense:      newTransactionViews(r.Expense),
		IncomeTotal:  r.IncomeTotal,
		ExpenseTotal: r.ExpenseTotal,
	}
}

type detailedReportView struct {
	Range        rangeView         `json:"range"`
	Transactions []transactionView `json:"transactions"`
	Income       core.Money        `json:"income"`
	Expense      core.Money        `json:"expense"`
	Balance      core.Money        `json:"balance"`
}

func newDetailedReportView(r core.DetailedReport) detailedReportView {
	return detailedReportView{
		Range:        rangeView{Start: r.Range.Start, End: r.Range.End},
		Transactions: newTransactionViews(r.Transactions),
		Income:       r.Totals.Income,
		Expense:      r.Totals.Expense,
		Balance:      r.Balance,
	}
}

type recordView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group,omitempty"`
}

func newRecordViews(recs []core.Record) []recordView {
	out := make([]recordView, len(recs))
	for i, r := range recs {
		out[i] = recordView{ID: r.ID, Name: r.Name, Group: r.Group}
	}
	return out
}
