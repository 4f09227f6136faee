package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atlasbank/banking-service/internal/ledger"
	"github.com/atlasbank/banking-service/internal/models"
)

// CustomerRepository is the PostgreSQL customer store (source of truth).
type CustomerRepository struct {
	db *DB
}

func NewCustomerRepository(db *DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (name, email)
		VALUES ($1, $2)
		RETURNING id
	`
	err := r.db.executor(ctx).QueryRowContext(ctx, query, customer.Name, customer.Email).Scan(&customer.ID)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	query := `SELECT id, name, email FROM customers WHERE id = $1`

	var customer models.Customer
	err := r.db.executor(ctx).QueryRowContext(ctx, query, id).Scan(&customer.ID, &customer.Name, &customer.Email)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	query := `SELECT id, name, email FROM customers ORDER BY id`

	rows, err := r.db.executor(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var customer models.Customer
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Email); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

var _ ledger.CustomerStore = (*CustomerRepository)(nil)
