package actions

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/workspace-server/internal/schedule"
	"github.com/carson-networks/workspace-server/internal/storage"
	"github.com/carson-networks/workspace-server/internal/storage/recurringrule"
)

// CreateRecurringRule inserts a rule with its cursor at the first occurrence.
type CreateRecurringRule struct {
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Description string
	Frequency   schedule.Frequency
	NextDate    time.Time
	CategoryID  uuid.NullUUID
	EndDate     sql.NullTime

	Result uuid.UUID
}

func (a *CreateRecurringRule) Perform(ctx context.Context, writer *storage.Writer) error {
	acct, err := writer.Accounts.FindByID(ctx, a.AccountID)
	if err != nil {
		return err
	}
	if acct == nil {
		return errors.New("account not found")
	}

	id, err := writer.RecurringRules.Insert(ctx, &recurringrule.RecurringRuleCreate{
		AccountID:   a.AccountID,
		Amount:      a.Amount,
		Description: a.Description,
		Frequency:   a.Frequency,
		NextDate:    a.NextDate,
		CategoryID:  a.CategoryID,
		EndDate:     a.EndDate,
	})
	if err != nil {
		return err
	}

	a.Result = id
	return nil
}
