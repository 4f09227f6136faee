package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType discriminates the bank account variants.
type AccountType string

const (
	CurrentAccount AccountType = "CURRENT"
	SavingAccount  AccountType = "SAVING"
)

// OperationType classifies a balance-changing operation.
type OperationType string

const (
	Debit  OperationType = "DEBIT"
	Credit OperationType = "CREDIT"
)

type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BankAccount is the write model for both account variants. Type selects which
// variant field is meaningful: OverdraftLimit for current accounts, InterestRate
// for saving accounts. Balance is only ever changed through debit/credit
// operations after creation.
type BankAccount struct {
	ID             string          `json:"id"`
	Type           AccountType     `json:"accountType"`
	Balance        decimal.Decimal `json:"balance"`
	CustomerID     int64           `json:"customerId"`
	OverdraftLimit decimal.Decimal `json:"overdraftLimit,omitempty"`
	InterestRate   float64         `json:"interestRate,omitempty"`
	CreatedAt      time.Time       `json:"createdTimestamp"`
}

// AccountOperation is an append-only record of a single debit or credit.
type AccountOperation struct {
	ID            int64           `json:"id"`
	AccountID     string          `json:"-"`
	Type          OperationType   `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	OperationDate time.Time       `json:"operationDate"`
}
