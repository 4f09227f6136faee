// Package query serves the read side: view projections answered from the
// Redis-backed read repositories, plus the projector that keeps them fresh.
package query

import (
	"context"

	"github.com/atlasbank/banking-service/internal/models"
	"github.com/atlasbank/banking-service/internal/repository"
)

// Service answers all read requests from the view repositories.
type Service struct {
	customers  *repository.CustomerReadRepository
	accounts   *repository.AccountReadRepository
	operations *repository.OperationRepository
}

func NewService(
	customers *repository.CustomerReadRepository,
	accounts *repository.AccountReadRepository,
	operations *repository.OperationRepository,
) *Service {
	return &Service{customers: customers, accounts: accounts, operations: operations}
}

func (s *Service) GetCustomer(ctx context.Context, customerID int64) (*models.CustomerView, error) {
	return s.customers.GetByID(ctx, customerID)
}

func (s *Service) ListCustomers(ctx context.Context) ([]models.CustomerView, error) {
	return s.customers.List(ctx)
}

func (s *Service) GetAccount(ctx context.Context, accountID string) (*models.AccountView, error) {
	return s.accounts.GetByID(ctx, accountID)
}

func (s *Service) ListAccounts(ctx context.Context) ([]models.AccountView, error) {
	return s.accounts.List(ctx)
}

func (s *Service) ListCustomerAccounts(ctx context.Context, customerID int64) ([]models.AccountView, error) {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.accounts.ListByCustomer(ctx, customerID)
}

// AccountHistory returns the account's operation views, newest first.
func (s *Service) AccountHistory(ctx context.Context, accountID string, limit, offset int) ([]models.OperationView, error) {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	ops, err := s.operations.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	views := make([]models.OperationView, len(ops))
	for i := range ops {
		views[i] = *models.NewOperationView(&ops[i])
	}
	return views, nil
}
