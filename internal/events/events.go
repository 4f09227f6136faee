package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	CustomerCreated = "customer.created"

	AccountCreated    = "account.created"
	OperationRecorded = "operation.recorded"
	BalanceUpdated    = "balance.updated"
)

// Stream names
const (
	CustomerEventsStream = "customer.events"
	AccountEventsStream  = "account.events"
)

// Event is the envelope every published event travels in.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type CustomerCreatedEvent struct {
	CustomerID int64  `json:"customerId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

type AccountCreatedEvent struct {
	AccountID   string `json:"accountId"`
	CustomerID  int64  `json:"customerId"`
	AccountType string `json:"accountType"`
}

type OperationRecordedEvent struct {
	OperationID int64           `json:"operationId"`
	AccountID   string          `json:"accountId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type BalanceUpdatedEvent struct {
	AccountID  string          `json:"accountId"`
	NewBalance decimal.Decimal `json:"newBalance"`
	Change     decimal.Decimal `json:"change"`
}
