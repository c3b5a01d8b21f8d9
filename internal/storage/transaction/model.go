package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction represents a transaction record. RecurringRuleID identifies
// provenance when the transaction was materialized from a recurring rule;
// it is informational only and never owning.
type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	AccountID       uuid.UUID       `db:"account_id"`
	CategoryID      uuid.NullUUID   `db:"category_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionName string          `db:"transaction_name"`
	TransactionDate time.Time       `db:"transaction_date"`
	RecurringRuleID uuid.NullUUID   `db:"recurring_rule_id"`
	CreatedAt       time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	AccountID       uuid.UUID
	CategoryID      uuid.NullUUID
	Amount          decimal.Decimal
	TransactionName string
	TransactionDate time.Time // defaults to now if zero
	RecurringRuleID uuid.NullUUID
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	AccountIDs      []uuid.UUID
	RecurringRuleID *uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation without changing callers.
type ITransactionTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}
