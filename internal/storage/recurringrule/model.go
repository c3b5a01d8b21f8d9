package recurringrule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/workspace-server/internal/schedule"
)

// ErrCursorMoved is returned by UpdateNextDate when the rule's cursor no
// longer matches the expected value, meaning a concurrent run advanced it.
var ErrCursorMoved = errors.New("recurring rule cursor was advanced concurrently")

// RecurringRule represents a recurring rule record. NextDate is the cursor:
// the earliest occurrence not yet materialized as a transaction. It only
// moves forward, one Advance step at a time.
type RecurringRule struct {
	ID          uuid.UUID          `db:"id"`
	AccountID   uuid.UUID          `db:"account_id"`
	Amount      decimal.Decimal    `db:"amount"`
	Description string             `db:"description"`
	Frequency   schedule.Frequency `db:"frequency"`
	NextDate    time.Time          `db:"next_date"`
	CategoryID  uuid.NullUUID      `db:"category_id"`
	EndDate     sql.NullTime       `db:"end_date"`
	IsActive    bool               `db:"is_active"`
	CreatedAt   time.Time          `db:"created_at"`
}

// RecurringRuleCreate is the input for creating a new recurring rule.
type RecurringRuleCreate struct {
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Description string
	Frequency   schedule.Frequency
	NextDate    time.Time
	CategoryID  uuid.NullUUID
	EndDate     sql.NullTime
}

// RecurringRuleUpdate carries optional field edits. Nil fields are untouched.
// NextDate is deliberately absent: the cursor moves only through the engine's
// advance step or the skip operation.
type RecurringRuleUpdate struct {
	Amount      *decimal.Decimal
	Description *string
	Frequency   *schedule.Frequency
	EndDate     *sql.NullTime
	IsActive    *bool
}

// RuleFilter specifies filters for listing recurring rules.
type RuleFilter struct {
	AccountIDs []uuid.UUID
	Limit      int
	Offset     int
}

// IRecurringRuleTable defines the interface for recurring rule storage.
type IRecurringRuleTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RecurringRule, error)
	// FindByIDForUpdate locks the row for the duration of the surrounding
	// transaction. Only meaningful on a transaction-bound table.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*RecurringRule, error)
	// ListDue returns active rules owned by the given accounts whose cursor
	// is on or before upTo, ordered by cursor date.
	ListDue(ctx context.Context, accountIDs []uuid.UUID, upTo time.Time) ([]*RecurringRule, error)
	List(ctx context.Context, filter *RuleFilter) ([]*RecurringRule, error)
	Insert(ctx context.Context, create *RecurringRuleCreate) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, update *RecurringRuleUpdate) error
	// UpdateNextDate moves the cursor from expected to next as a single
	// compare-and-swap. Returns ErrCursorMoved when expected is stale.
	UpdateNextDate(ctx context.Context, id uuid.UUID, expected, next time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}
