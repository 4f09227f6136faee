package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/atlasbank/banking-service/internal/ledger"
	"github.com/atlasbank/banking-service/internal/models"
)

// AccountRepository is the PostgreSQL bank account store (source of truth).
// Both account variants live in one table discriminated by account_type;
// over_draft and interest_rate are nullable variant columns.
type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *models.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (id, account_type, balance, customer_id, over_draft, interest_rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.executor(ctx).ExecContext(ctx, query,
		account.ID, account.Type, account.Balance, account.CustomerID,
		overdraftColumn(account), interestColumn(account), account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.BankAccount, error) {
	query := `
		SELECT id, account_type, balance, customer_id, over_draft, interest_rate, created_at
		FROM bank_accounts
		WHERE id = $1
	`
	account, err := scanAccount(r.db.executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]models.BankAccount, error) {
	query := `
		SELECT id, account_type, balance, customer_id, over_draft, interest_rate, created_at
		FROM bank_accounts
		ORDER BY created_at
	`
	return r.queryAccounts(ctx, query)
}

func (r *AccountRepository) ListByCustomer(ctx context.Context, customerID int64) ([]models.BankAccount, error) {
	query := `
		SELECT id, account_type, balance, customer_id, over_draft, interest_rate, created_at
		FROM bank_accounts
		WHERE customer_id = $1
		ORDER BY created_at
	`
	return r.queryAccounts(ctx, query, customerID)
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	query := `UPDATE bank_accounts SET balance = $2 WHERE id = $1`

	result, err := r.db.executor(ctx).ExecContext(ctx, query, id, balance)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]models.BankAccount, error) {
	rows, err := r.db.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.BankAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.BankAccount, error) {
	var (
		account      models.BankAccount
		overdraft    decimal.NullDecimal
		interestRate sql.NullFloat64
	)
	err := row.Scan(
		&account.ID, &account.Type, &account.Balance, &account.CustomerID,
		&overdraft, &interestRate, &account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if overdraft.Valid {
		account.OverdraftLimit = overdraft.Decimal
	}
	if interestRate.Valid {
		account.InterestRate = interestRate.Float64
	}
	return &account, nil
}

func overdraftColumn(account *models.BankAccount) decimal.NullDecimal {
	if account.Type != models.CurrentAccount {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: account.OverdraftLimit, Valid: true}
}

func interestColumn(account *models.BankAccount) sql.NullFloat64 {
	if account.Type != models.SavingAccount {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: account.InterestRate, Valid: true}
}

var _ ledger.AccountStore = (*AccountRepository)(nil)
