package ledger

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atlasbank/banking-service/internal/events"
	"github.com/atlasbank/banking-service/internal/models"
)

// Service orchestrates customer/account creation and the balance-mutating
// operations. Every mutating method runs inside a single store transaction;
// Transfer wraps its debit and credit in one shared transaction so a failed
// credit rolls the debit back. Domain events are published only after the
// transaction has committed.
type Service struct {
	customers  CustomerStore
	accounts   AccountStore
	operations OperationLog
	tx         TxRunner
	publisher  EventPublisher
}

func NewService(
	customers CustomerStore,
	accounts AccountStore,
	operations OperationLog,
	tx TxRunner,
	publisher EventPublisher,
) *Service {
	return &Service{
		customers:  customers,
		accounts:   accounts,
		operations: operations,
		tx:         tx,
		publisher:  publisher,
	}
}

func (s *Service) CreateCustomer(ctx context.Context, name, email string) (*models.Customer, error) {
	customer := &models.Customer{Name: name, Email: email}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	s.publish(ctx, events.CustomerEventsStream, events.CustomerCreated, events.CustomerCreatedEvent{
		CustomerID: customer.ID,
		Name:       customer.Name,
		Email:      customer.Email,
	})
	return customer, nil
}

func (s *Service) GetCustomer(ctx context.Context, customerID int64) (*models.Customer, error) {
	return s.customers.GetByID(ctx, customerID)
}

func (s *Service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customers.List(ctx)
}

// CreateCurrentAccount opens a current account for an existing customer.
// The initial balance is stored as given; the overdraft limit is recorded but
// not enforced by any debit check.
func (s *Service) CreateCurrentAccount(ctx context.Context, initialBalance, overdraftLimit decimal.Decimal, customerID int64) (*models.BankAccount, error) {
	account := &models.BankAccount{
		Type:           models.CurrentAccount,
		Balance:        initialBalance,
		OverdraftLimit: overdraftLimit,
	}
	return s.createAccount(ctx, account, customerID)
}

// CreateSavingAccount opens a saving account for an existing customer. The
// interest rate is a stored attribute; no accrual runs against it.
func (s *Service) CreateSavingAccount(ctx context.Context, initialBalance decimal.Decimal, interestRate float64, customerID int64) (*models.BankAccount, error) {
	account := &models.BankAccount{
		Type:         models.SavingAccount,
		Balance:      initialBalance,
		InterestRate: interestRate,
	}
	return s.createAccount(ctx, account, customerID)
}

func (s *Service) createAccount(ctx context.Context, account *models.BankAccount, customerID int64) (*models.BankAccount, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	account.ID = uuid.New().String()
	account.CustomerID = customer.ID
	account.CreatedAt = time.Now().UTC()

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	s.publish(ctx, events.AccountEventsStream, events.AccountCreated, events.AccountCreatedEvent{
		AccountID:   account.ID,
		CustomerID:  account.CustomerID,
		AccountType: string(account.Type),
	})
	return account, nil
}

func (s *Service) GetAccount(ctx context.Context, accountID string) (*models.BankAccount, error) {
	return s.accounts.GetByID(ctx, accountID)
}

func (s *Service) ListAccounts(ctx context.Context) ([]models.BankAccount, error) {
	return s.accounts.List(ctx)
}

func (s *Service) ListCustomerAccounts(ctx context.Context, customerID int64) ([]models.BankAccount, error) {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.accounts.ListByCustomer(ctx, customerID)
}

// Debit withdraws amount from the account. It fails with
// ErrBalanceNotSufficient strictly when balance < amount; debiting the exact
// balance drains the account to zero. The operation record and the balance
// update are written in one transaction.
func (s *Service) Debit(ctx context.Context, accountID string, amount decimal.Decimal, description string) error {
	var applied appliedOperation
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		applied, err = s.debit(ctx, accountID, amount, description)
		return err
	})
	if err != nil {
		return err
	}
	s.publishApplied(ctx, applied)
	return nil
}

// Credit deposits amount into the account. There is no upper bound on the
// resulting balance.
func (s *Service) Credit(ctx context.Context, accountID string, amount decimal.Decimal, description string) error {
	var applied appliedOperation
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		applied, err = s.credit(ctx, accountID, amount, description)
		return err
	})
	if err != nil {
		return err
	}
	s.publishApplied(ctx, applied)
	return nil
}

// Transfer moves amount from the source account to the destination account.
// Both legs run in one transaction: if the credit fails (for example the
// destination does not exist) the debit is rolled back and no funds move.
func (s *Service) Transfer(ctx context.Context, sourceID, destinationID string, amount decimal.Decimal) error {
	var debited, credited appliedOperation
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		if debited, err = s.debit(ctx, sourceID, amount, "Transfer to "+destinationID); err != nil {
			return err
		}
		credited, err = s.credit(ctx, destinationID, amount, "Transfer from "+sourceID)
		return err
	})
	if err != nil {
		return err
	}
	s.publishApplied(ctx, debited)
	s.publishApplied(ctx, credited)
	return nil
}

// AccountHistory returns the account's operations, newest first.
func (s *Service) AccountHistory(ctx context.Context, accountID string, limit, offset int) ([]models.AccountOperation, error) {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.operations.ListByAccount(ctx, accountID, limit, offset)
}

// appliedOperation carries the committed operation row and resulting balance
// out of the transaction closure so events can be published after commit.
type appliedOperation struct {
	op         *models.AccountOperation
	newBalance decimal.Decimal
}

// debit performs the withdrawal writes. The caller supplies the transaction
// boundary via ctx.
func (s *Service) debit(ctx context.Context, accountID string, amount decimal.Decimal, description string) (appliedOperation, error) {
	if !amount.IsPositive() {
		return appliedOperation{}, ErrAmountNotPositive
	}
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return appliedOperation{}, err
	}
	if account.Balance.LessThan(amount) {
		return appliedOperation{}, ErrBalanceNotSufficient
	}
	op, err := s.appendOperation(ctx, accountID, models.Debit, amount, description)
	if err != nil {
		return appliedOperation{}, err
	}
	newBalance := account.Balance.Sub(amount)
	if err := s.accounts.UpdateBalance(ctx, accountID, newBalance); err != nil {
		return appliedOperation{}, err
	}
	return appliedOperation{op: op, newBalance: newBalance}, nil
}

// credit performs the deposit writes. The caller supplies the transaction
// boundary via ctx.
func (s *Service) credit(ctx context.Context, accountID string, amount decimal.Decimal, description string) (appliedOperation, error) {
	if !amount.IsPositive() {
		return appliedOperation{}, ErrAmountNotPositive
	}
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return appliedOperation{}, err
	}
	op, err := s.appendOperation(ctx, accountID, models.Credit, amount, description)
	if err != nil {
		return appliedOperation{}, err
	}
	newBalance := account.Balance.Add(amount)
	if err := s.accounts.UpdateBalance(ctx, accountID, newBalance); err != nil {
		return appliedOperation{}, err
	}
	return appliedOperation{op: op, newBalance: newBalance}, nil
}

func (s *Service) appendOperation(ctx context.Context, accountID string, opType models.OperationType, amount decimal.Decimal, description string) (*models.AccountOperation, error) {
	op := &models.AccountOperation{
		AccountID:     accountID,
		Type:          opType,
		Amount:        amount,
		Description:   description,
		OperationDate: time.Now().UTC(),
	}
	if err := s.operations.Append(ctx, op); err != nil {
		return nil, err
	}
	return op, nil
}

func (s *Service) publishApplied(ctx context.Context, applied appliedOperation) {
	op := applied.op
	s.publish(ctx, events.AccountEventsStream, events.OperationRecorded, events.OperationRecordedEvent{
		OperationID: op.ID,
		AccountID:   op.AccountID,
		Type:        string(op.Type),
		Amount:      op.Amount,
		Description: op.Description,
	})
	change := op.Amount
	if op.Type == models.Debit {
		change = op.Amount.Neg()
	}
	s.publish(ctx, events.AccountEventsStream, events.BalanceUpdated, events.BalanceUpdatedEvent{
		AccountID:  op.AccountID,
		NewBalance: applied.newBalance,
		Change:     change,
	})
}

// publish emits a domain event. Publish failures are logged, never surfaced:
// the write has already committed and the read model self-heals via cache TTL.
func (s *Service) publish(ctx context.Context, stream, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, stream, eventType, data); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
