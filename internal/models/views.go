package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerView is the read-optimised projection of a customer.
type CustomerView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AccountView is the read-optimised projection of a bank account. Exactly one
// of OverdraftLimit/InterestRate is populated, according to AccountType.
type AccountView struct {
	ID             string           `json:"id"`
	AccountType    AccountType      `json:"accountType"`
	Balance        decimal.Decimal  `json:"balance"`
	CustomerID     int64            `json:"customerId"`
	OverdraftLimit *decimal.Decimal `json:"overdraftLimit,omitempty"`
	InterestRate   *float64         `json:"interestRate,omitempty"`
	CreatedAt      time.Time        `json:"createdTimestamp"`
}

// OperationView is the read-optimised projection of an account operation.
type OperationView struct {
	ID            int64           `json:"id"`
	AccountID     string          `json:"accountId"`
	Type          OperationType   `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	OperationDate time.Time       `json:"operationDate"`
}

// NewCustomerView converts the write model to its read view.
func NewCustomerView(c *Customer) *CustomerView {
	return &CustomerView{ID: c.ID, Name: c.Name, Email: c.Email}
}

// NewAccountView converts the write model to its read view, mapping the
// discriminator to the matching variant field.
func NewAccountView(a *BankAccount) *AccountView {
	view := &AccountView{
		ID:          a.ID,
		AccountType: a.Type,
		Balance:     a.Balance,
		CustomerID:  a.CustomerID,
		CreatedAt:   a.CreatedAt,
	}
	switch a.Type {
	case CurrentAccount:
		overdraft := a.OverdraftLimit
		view.OverdraftLimit = &overdraft
	case SavingAccount:
		rate := a.InterestRate
		view.InterestRate = &rate
	}
	return view
}

// NewOperationView converts the write model to its read view.
func NewOperationView(op *AccountOperation) *OperationView {
	return &OperationView{
		ID:            op.ID,
		AccountID:     op.AccountID,
		Type:          op.Type,
		Amount:        op.Amount,
		Description:   op.Description,
		OperationDate: op.OperationDate,
	}
}
