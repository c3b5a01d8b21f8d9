package service

import (
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/workspace-server/internal/schedule"
	"github.com/carson-networks/workspace-server/internal/storage/recurringrule"
)

// RecurringRule represents a recurring rule in the service layer.
type RecurringRule struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Description string
	Frequency   schedule.Frequency
	NextDate    time.Time
	CategoryID  *uuid.UUID
	EndDate     *time.Time
	IsActive    bool
	CreatedAt   time.Time
}

// RuleCreate is the input for creating a recurring rule. NextDate is the
// first occurrence; the cursor starts there.
type RuleCreate struct {
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Description string
	Frequency   schedule.Frequency
	NextDate    time.Time
	CategoryID  *uuid.UUID
	EndDate     *time.Time
}

// RuleUpdate carries optional field edits. Nil fields are untouched;
// ClearEndDate removes an existing end date.
type RuleUpdate struct {
	Amount       *decimal.Decimal
	Description  *string
	Frequency    *schedule.Frequency
	EndDate      *time.Time
	ClearEndDate bool
	IsActive     *bool
}

// RuleCursor identifies a position in a paginated result set.
type RuleCursor struct {
	Position int
	Limit    int
}

func ruleFromStorage(row *recurringrule.RecurringRule) RecurringRule {
	rule := RecurringRule{
		ID:          row.ID,
		AccountID:   row.AccountID,
		Amount:      row.Amount,
		Description: row.Description,
		Frequency:   row.Frequency,
		NextDate:    row.NextDate,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
	}
	if row.CategoryID.Valid {
		categoryID := row.CategoryID.UUID
		rule.CategoryID = &categoryID
	}
	if row.EndDate.Valid {
		endDate := row.EndDate.Time
		rule.EndDate = &endDate
	}
	return rule
}

func nullUUIDFromPtr(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func nullTimeFromPtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
