package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/atlasbank/banking-service/internal/models"
)

// CustomerStore persists customer records. Create assigns the customer id.
type CustomerStore interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
}

// AccountStore persists bank account records.
type AccountStore interface {
	Create(ctx context.Context, account *models.BankAccount) error
	GetByID(ctx context.Context, id string) (*models.BankAccount, error)
	List(ctx context.Context) ([]models.BankAccount, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]models.BankAccount, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error
}

// OperationLog is the append-only record of debit/credit operations.
// Append assigns the operation id.
type OperationLog interface {
	Append(ctx context.Context, op *models.AccountOperation) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]models.AccountOperation, error)
}

// TxRunner runs fn inside a single store transaction. Store calls made with
// the context passed to fn join that transaction. Nested calls join the
// enclosing transaction rather than opening a new one, so a transfer's debit
// and credit commit or roll back together.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher emits domain events after successful mutations.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}
