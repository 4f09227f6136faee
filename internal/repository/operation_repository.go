package repository

import (
	"context"
	"fmt"

	"github.com/atlasbank/banking-service/internal/ledger"
	"github.com/atlasbank/banking-service/internal/models"
)

// OperationRepository is the append-only PostgreSQL operation log.
type OperationRepository struct {
	db *DB
}

func NewOperationRepository(db *DB) *OperationRepository {
	return &OperationRepository{db: db}
}

func (r *OperationRepository) Append(ctx context.Context, op *models.AccountOperation) error {
	query := `
		INSERT INTO account_operations (account_id, operation_type, amount, description, operation_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.executor(ctx).QueryRowContext(ctx, query,
		op.AccountID, op.Type, op.Amount, op.Description, op.OperationDate,
	).Scan(&op.ID)
	if err != nil {
		return fmt.Errorf("failed to append operation: %w", err)
	}
	return nil
}

// ListByAccount returns the account's operations newest first. limit <= 0
// means no limit.
func (r *OperationRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]models.AccountOperation, error) {
	query := `
		SELECT id, account_id, operation_type, amount, description, operation_date
		FROM account_operations
		WHERE account_id = $1
		ORDER BY operation_date DESC, id DESC
	`
	args := []any{accountID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := r.db.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer rows.Close()

	var ops []models.AccountOperation
	for rows.Next() {
		var op models.AccountOperation
		if err := rows.Scan(&op.ID, &op.AccountID, &op.Type, &op.Amount, &op.Description, &op.OperationDate); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	return ops, nil
}

var _ ledger.OperationLog = (*OperationRepository)(nil)
