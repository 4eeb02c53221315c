package events

import (
	"encoding/json"
	"time"
)

// Transaction event actions carried on the wire.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionSettled = "settled"
	ActionDeleted = "deleted"
)

// TransactionEvent is a lightweight notification that a transaction
// changed. It carries only identifiers; consumers fetch the current
// state from the store.
type TransactionEvent struct {
	UserID        string    `json:"user_id"`
	TransactionID string    `json:"transaction_id"`
	Action        string    `json:"action"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewTransactionEvent creates an event stamped with the current time.
func NewTransactionEvent(userID, transactionID, action string) *TransactionEvent {
	return &TransactionEvent{
		UserID:        userID,
		TransactionID: transactionID,
		Action:        action,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON creates an event from JSON bytes
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
