package core

import (
	"errors"
	"strings"
)

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"

	StatusPending TransactionStatus = "pending"
	StatusSettled TransactionStatus = "settled"
)

type (
	TransactionKind   string
	TransactionStatus string

	// Transaction is a single cash-book entry. DueDate is always
	// present; PaymentDate is present exactly when the transaction is
	// settled.
	Transaction struct {
		ID           string
		Description  string
		Amount       Money
		Kind         TransactionKind
		Category     string
		DueDate      Date
		PaymentDate  Date
		Status       TransactionStatus
		Counterparty string // client or supplier, optional
	}
)

// Reference record kinds owned by a user alongside transactions.
const (
	RecordCategory      RecordKind = "category"
	RecordAccount       RecordKind = "account"
	RecordCreditCard    RecordKind = "credit_card"
	RecordPaymentMethod RecordKind = "payment_method"
	RecordClient        RecordKind = "client"
	RecordSupplier      RecordKind = "supplier"
)

// CustomCategoryGroup is the group label assigned to user-created
// categories. Seed categories carry DefaultCategoryGroup instead.
const (
	CustomCategoryGroup  = "Categorias Personalizadas"
	DefaultCategoryGroup = "Categorias Padrão"
)

// DefaultCategoryNames seeds every new ledger with the standard
// category set.
var DefaultCategoryNames = []string{
	"Salário", "Moradia", "Alimentação", "Transporte",
	"Lazer", "Saúde", "Educação", "Outros",
}

type (
	RecordKind string

	// Record is a named reference entry (category, account, card,
	// payment method, client or supplier). Group is only meaningful
	// for categories.
	Record struct {
		ID    string
		Name  string
		Group string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidKind      = errors.New("invalid transaction kind")
	ErrEmptyDescription = errors.New("empty description")
	ErrMissingDueDate   = errors.New("missing due date")
	ErrEmptyName        = errors.New("empty name")
	ErrNotFound         = errors.New("not found")
)

// ValidRecordKind reports whether k is one of the reference record
// kinds the store accepts.
func ValidRecordKind(k RecordKind) bool {
	switch k {
	case RecordCategory, RecordAccount, RecordCreditCard,
		RecordPaymentMethod, RecordClient, RecordSupplier:
		return true
	}
	return false
}

// Validate checks the structural invariants of a transaction: a
// description, a non-negative amount, a known kind, a due date, and a
// payment date present if and only if the status is settled.
func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if t.Kind != Income && t.Kind != Expense {
		return ErrInvalidKind
	}
	if t.DueDate.IsAbsent() {
		return ErrMissingDueDate
	}
	switch t.Status {
	case StatusSettled:
		if t.PaymentDate.IsAbsent() {
			return errors.New("settled transaction without payment date")
		}
	case StatusPending:
		if !t.PaymentDate.IsAbsent() {
			return errors.New("pending transaction with payment date")
		}
	default:
		return errors.New("invalid transaction status")
	}
	return nil
}

// Validate checks a reference record has a non-empty name.
func (r Record) Validate() error {
	if len(strings.TrimSpace(r.Name)) == 0 {
		return ErrEmptyName
	}
	return nil
}
