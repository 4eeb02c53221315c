// Package ledger orchestrates the cash-book operations: it coerces raw
// user input, applies the core engine, persists through the store and
// emits change events.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cashbook/internal/core"
	"cashbook/internal/events"
	"cashbook/internal/log"
	"cashbook/internal/store"
)

// Publisher emits transaction change notifications. Publishing is
// best-effort; the service logs failures and carries on.
type Publisher interface {
	PublishTransactionEvent(ctx context.Context, event *events.TransactionEvent) error
}

type Service struct {
	store     store.Store
	publisher Publisher
	logger    *log.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher attaches an event publisher.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithClock overrides the wall clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(st store.Store, logger *log.Logger, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: logger.WithComponent("ledger"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() core.Date {
	return core.DateOf(s.now())
}

// TransactionInput carries the raw, untyped fields of an add or edit
// submission. Amount and dates are coerced by the service.
type TransactionInput struct {
	Description  string
	Amount       string
	Kind         string
	Category     string
	DueDate      string
	PaymentDate  string
	Counterparty string
	Settled      bool
}

// coerce turns raw input into a validated transaction. The id is left
// for the caller to fill.
func (s *Service) coerce(in TransactionInput) (core.Transaction, error) {
	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount: %w", err)
	}

	t := core.Transaction{
		Description:  strings.TrimSpace(in.Description),
		Amount:       amount,
		Kind:         core.TransactionKind(in.Kind),
		Category:     strings.TrimSpace(in.Category),
		DueDate:      core.ParseDate(in.DueDate),
		Counterparty: strings.TrimSpace(in.Counterparty),
		Status:       core.StatusPending,
	}
	if in.Settled {
		t.Status = core.StatusSettled
		t.PaymentDate = core.ParseDate(in.PaymentDate)
		if t.PaymentDate.IsAbsent() {
			t.PaymentDate = s.today()
		}
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// Add creates a transaction from raw input and returns it.
func (s *Service) Add(ctx context.Context, userID string, in TransactionInput) (core.Transaction, error) {
	t, err := s.coerce(in)
	if err != nil {
		return core.Transaction{}, err
	}
	t.ID = uuid.NewString()

	if err := s.store.InsertTransaction(ctx, userID, t); err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction added",
		"transaction_id", t.ID,
		"kind", string(t.Kind),
		"amount_cents", t.Amount.Cents)
	s.publish(ctx, userID, t.ID, events.ActionCreated)
	return t, nil
}

// Edit replaces every field of an existing transaction with the same
// coercion rules as Add.
func (s *Service) Edit(ctx context.Context, userID, id string, in TransactionInput) (core.Transaction, error) {
	if _, err := s.store.GetTransaction(ctx, userID, id); err != nil {
		return core.Transaction{}, err
	}
	t, err := s.coerce(in)
	if err != nil {
		return core.Transaction{}, err
	}
	t.ID = id

	if err := s.store.UpdateTransaction(ctx, userID, t); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction edited", "transaction_id", id)
	s.publish(ctx, userID, id, events.ActionUpdated)
	return t, nil
}

// Settle marks a transaction settled with today's payment date.
// Settling an already settled transaction refreshes the payment date.
func (s *Service) Settle(ctx context.Context, userID, id string) (core.Transaction, error) {
	t, err := s.store.GetTransaction(ctx, userID, id)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Status = core.StatusSettled
	t.PaymentDate = s.today()

	if err := s.store.UpdateTransaction(ctx, userID, t); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction settled",
		"transaction_id", id,
		"payment_date", t.PaymentDate.String())
	s.publish(ctx, userID, id, events.ActionSettled)
	return t, nil
}

// Delete removes a transaction.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Transaction deleted", "transaction_id", id)
	s.publish(ctx, userID, id, events.ActionDeleted)
	return nil
}

// Get returns a single transaction.
func (s *Service) Get(ctx context.Context, userID, id string) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, userID, id)
}

func (s *Service) publish(ctx context.Context, userID, transactionID, action string) {
	if s.publisher == nil {
		return
	}
	event := events.NewTransactionEvent(userID, transactionID, action)
	if err := s.publisher.PublishTransactionEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish transaction event",
			"transaction_id", transactionID,
			"action", action,
			"error", err)
	}
}

// DashboardView is everything the dashboard renders: the filtered
// list plus aggregates computed over the unfiltered ledger.
type DashboardView struct {
	Transactions    []core.Transaction
	Totals          core.Totals
	Balance         core.Money
	CategoryLabels  []string
	CategoryAmounts []core.Money
	NetFlow         []core.NetFlowPoint
}

// Dashboard lists the user's transactions under the given filters,
// due-date descending, together with lifetime aggregates. The balance
// and chart series always cover the whole ledger regardless of the
// filters.
func (s *Service) Dashboard(ctx context.Context, userID string, f core.Filters) (DashboardView, error) {
	all, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return DashboardView{}, fmt.Errorf("list transactions: %w", err)
	}

	view := DashboardView{
		Transactions: core.FilterAndSort(all, f, core.SortByDueDate, core.Descending),
		Totals:       core.LifetimeTotals(all),
		NetFlow:      core.MonthlyNetFlow(all, s.today()),
	}
	view.Balance = view.Totals.Balance()
	view.CategoryLabels, view.CategoryAmounts = core.CategoryBreakdown(all)
	return view, nil
}

// SimpleReport builds the payment-date report for the raw range bounds.
func (s *Service) SimpleReport(ctx context.Context, userID, rawStart, rawEnd string) (core.SimpleReport, error) {
	all, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return core.SimpleReport{}, fmt.Errorf("list transactions: %w", err)
	}
	r := core.ResolveRange(rawStart, rawEnd, s.today())
	return core.NewSimpleReport(all, r), nil
}

// DetailedReport builds the due-or-payment report for the raw range
// bounds.
func (s *Service) DetailedReport(ctx context.Context, userID, rawStart, rawEnd string) (core.DetailedReport, error) {
	all, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return core.DetailedReport{}, fmt.Errorf("list transactions: %w", err)
	}
	r := core.ResolveRange(rawStart, rawEnd, s.today())
	return core.NewDetailedReport(all, r), nil
}

// Records lists a user's reference records of one kind.
func (s *Service) Records(ctx context.Context, userID string, kind core.RecordKind) ([]core.Record, error) {
	return s.store.ListRecords(ctx, userID, kind)
}

// AddRecord creates a reference record. Custom categories get the
// fixed custom group label.
func (s *Service) AddRecord(ctx context.Context, userID string, kind core.RecordKind, name string) (core.Record, error) {
	r := core.Record{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
	}
	if kind == core.RecordCategory {
		r.Group = core.CustomCategoryGroup
	}
	if err := r.Validate(); err != nil {
		return core.Record{}, err
	}
	if err := s.store.InsertRecord(ctx, userID, kind, r); err != nil {
		return core.Record{}, fmt.Errorf("insert record: %w", err)
	}
	s.logger.InfoContext(ctx, "Record added", "kind", string(kind), "name", r.Name)
	return r, nil
}

// SeedUser ensures the named account exists with the given bcrypt
// password hash and that its ledger carries the default categories.
func (s *Service) SeedUser(ctx context.Context, username, passwordHash string) (store.User, error) {
	u, err := s.store.GetUser(ctx, username)
	if err == nil {
		return u, nil
	}
	u = store.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return store.User{}, fmt.Errorf("create user: %w", err)
	}

	existing, err := s.store.ListRecords(ctx, u.ID, core.RecordCategory)
	if err != nil {
		return store.User{}, fmt.Errorf("list categories: %w", err)
	}
	if len(existing) == 0 {
		for _, name := range core.DefaultCategoryNames {
			rec := core.Record{
				ID:    uuid.NewString(),
				Name:  name,
				Group: core.DefaultCategoryGroup,
			}
			if err := s.store.InsertRecord(ctx, u.ID, core.RecordCategory, rec); err != nil {
				return store.User{}, fmt.Errorf("seed category: %w", err)
			}
		}
	}

	s.logger.InfoContext(ctx, "User seeded", "username", username)
	return u, nil
}
