package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/atlasbank/banking-service/internal/ledger"
	"github.com/atlasbank/banking-service/internal/models"
	redisclient "github.com/atlasbank/banking-service/internal/redis"
)

const accountViewKeyPrefix = "account:view:"

// AccountReadRepository serves account view projections. Redis is the primary
// read store; PostgreSQL is the transparent fallback, warming the cache on
// every cold read. Views are dropped from the cache when the projector sees a
// balance change and expire by TTL otherwise.
type AccountReadRepository struct {
	db    *DB
	cache *redisclient.ViewCache[models.AccountView]
}

func NewAccountReadRepository(db *DB, redisClient *goredis.Client, ttl time.Duration) *AccountReadRepository {
	return &AccountReadRepository{
		db:    db,
		cache: redisclient.NewViewCache[models.AccountView](redisClient, ttl),
	}
}

// GetByID returns an AccountView, trying Redis first then PostgreSQL.
func (r *AccountReadRepository) GetByID(ctx context.Context, id string) (*models.AccountView, error) {
	cacheKey := accountViewKeyPrefix + id

	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	query := `
		SELECT id, account_type, balance, customer_id, over_draft, interest_rate, created_at
		FROM bank_accounts
		WHERE id = $1
	`
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	view := models.NewAccountView(account)
	r.cache.Set(ctx, cacheKey, view)
	return view, nil
}

// List returns every account view straight from PostgreSQL.
func (r *AccountReadRepository) List(ctx context.Context) ([]models.AccountView, error) {
	query := `
		SELECT id, account_type, balance, customer_id, over_draft, interest_rate, created_at
		FROM bank_accounts
		ORDER BY created_at
	`
	return r.queryViews(ctx, query)
}

// ListByCustomer returns the customer's account views straight from PostgreSQL.
func (r *AccountReadRepository) ListByCustomer(ctx context.Context, customerID int64) ([]models.AccountView, error) {
	query := `
		SELECT id, account_type, balance, customer_id, over_draft, interest_rate, created_at
		FROM bank_accounts
		WHERE customer_id = $1
		ORDER BY created_at
	`
	return r.queryViews(ctx, query, customerID)
}

// Invalidate removes the cached view for an account. Called by the projector
// whenever an event signals the account changed.
func (r *AccountReadRepository) Invalidate(ctx context.Context, id string) {
	r.cache.Delete(ctx, accountViewKeyPrefix+id)
}

func (r *AccountReadRepository) queryViews(ctx context.Context, query string, args ...any) ([]models.AccountView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var views []models.AccountView
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		views = append(views, *models.NewAccountView(account))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return views, nil
}
