package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/atlasbank/banking-service/internal/ledger"
	"github.com/atlasbank/banking-service/internal/models"
	redisclient "github.com/atlasbank/banking-service/internal/redis"
)

const customerViewKeyPrefix = "customer:view:"

// CustomerReadRepository serves customer view projections, Redis first with a
// PostgreSQL fallback. Customer records are immutable after creation, so TTL
// expiry alone keeps the cache honest.
type CustomerReadRepository struct {
	db    *DB
	cache *redisclient.ViewCache[models.CustomerView]
}

func NewCustomerReadRepository(db *DB, redisClient *goredis.Client, ttl time.Duration) *CustomerReadRepository {
	return &CustomerReadRepository{
		db:    db,
		cache: redisclient.NewViewCache[models.CustomerView](redisClient, ttl),
	}
}

// GetByID returns a CustomerView, trying Redis first then PostgreSQL.
func (r *CustomerReadRepository) GetByID(ctx context.Context, id int64) (*models.CustomerView, error) {
	cacheKey := customerViewKeyPrefix + strconv.FormatInt(id, 10)

	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	query := `SELECT id, name, email FROM customers WHERE id = $1`

	var view models.CustomerView
	err := r.db.QueryRowContext(ctx, query, id).Scan(&view.ID, &view.Name, &view.Email)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	r.cache.Set(ctx, cacheKey, &view)
	return &view, nil
}

// List returns every customer view in store order straight from PostgreSQL.
func (r *CustomerReadRepository) List(ctx context.Context) ([]models.CustomerView, error) {
	query := `SELECT id, name, email FROM customers ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var views []models.CustomerView
	for rows.Next() {
		var view models.CustomerView
		if err := rows.Scan(&view.ID, &view.Name, &view.Email); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return views, nil
}
