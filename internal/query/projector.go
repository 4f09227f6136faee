package query

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atlasbank/banking-service/internal/events"
	"github.com/atlasbank/banking-service/internal/repository"
)

// Projector keeps the account view cache in step with the event stream. It
// drops the cached view whenever an event signals the account changed; the
// next read warms the cache from PostgreSQL. Invalidation is idempotent, so
// at-least-once delivery from the consumer group needs no dedupe.
type Projector struct {
	accounts *repository.AccountReadRepository
}

func NewProjector(accounts *repository.AccountReadRepository) *Projector {
	return &Projector{accounts: accounts}
}

// HandleAccountEvent is the subscriber handler for the account event stream.
func (p *Projector) HandleAccountEvent(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.OperationRecorded, events.BalanceUpdated:
		accountID, err := accountIDFromEvent(event)
		if err != nil {
			return err
		}
		p.accounts.Invalidate(ctx, accountID)
		return nil
	default:
		// account.created needs no invalidation: there is nothing cached yet.
		return nil
	}
}

// accountIDFromEvent re-decodes the event payload, which arrives as untyped
// JSON inside the envelope.
func accountIDFromEvent(event events.Event) (string, error) {
	raw, err := json.Marshal(event.Data)
	if err != nil {
		return "", fmt.Errorf("failed to re-encode event data: %w", err)
	}
	var payload struct {
		AccountID string `json:"accountId"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("failed to decode event data: %w", err)
	}
	if payload.AccountID == "" {
		return "", fmt.Errorf("event %s carries no account id", event.Type)
	}
	return payload.AccountID, nil
}
