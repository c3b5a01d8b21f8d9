package actions

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/storage"
)

// SkipNextOccurrence advances a rule's cursor by exactly one period without
// materializing a transaction. The row lock keeps the advance from racing a
// concurrent generate run.
type SkipNextOccurrence struct {
	RuleID uuid.UUID

	Result time.Time
}

func (a *SkipNextOccurrence) Perform(ctx context.Context, writer *storage.Writer) error {
	rule, err := writer.RecurringRules.FindByIDForUpdate(ctx, a.RuleID)
	if err != nil {
		return err
	}
	if rule == nil {
		return errors.New("recurring rule not found")
	}

	next := rule.Frequency.Advance(rule.NextDate)
	if err := writer.RecurringRules.UpdateNextDate(ctx, a.RuleID, rule.NextDate, next); err != nil {
		return err
	}

	a.Result = next
	return nil
}
