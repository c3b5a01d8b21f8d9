package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/storage"
)

type DeleteRecurringRule struct {
	RuleID uuid.UUID
}

func (a *DeleteRecurringRule) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.RecurringRules.Delete(ctx, a.RuleID)
}
