package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/storage"
	"github.com/carson-networks/workspace-server/internal/storage/recurringrule"
)

type UpdateRecurringRule struct {
	RuleID uuid.UUID
	Update recurringrule.RecurringRuleUpdate
}

func (a *UpdateRecurringRule) Perform(ctx context.Context, writer *storage.Writer) error {
	rule, err := writer.RecurringRules.FindByIDForUpdate(ctx, a.RuleID)
	if err != nil {
		return err
	}
	if rule == nil {
		return errors.New("recurring rule not found")
	}

	return writer.RecurringRules.Update(ctx, a.RuleID, &a.Update)
}
