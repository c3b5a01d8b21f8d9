package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// GeneratedTransaction describes one occurrence that was materialized
// during a generate run.
type GeneratedTransaction struct {
	RuleID        uuid.UUID
	TransactionID uuid.UUID
	Date          time.Time
	Amount        decimal.Decimal
	Description   string
}

// GenerateResult is the aggregate outcome of a generate run. Count can be
// lower than the number of theoretically-due occurrences when individual
// inserts failed: generation is best-effort per occurrence.
type GenerateResult struct {
	Generated []GeneratedTransaction
	Count     int
	UpToDate  time.Time
}
