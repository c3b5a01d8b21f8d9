package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/workspace-server/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	CategoryID      *uuid.UUID
	Amount          decimal.Decimal
	TransactionName string
	TransactionDate time.Time
	RecurringRuleID *uuid.UUID
	CreatedAt       time.Time
}

// TransactionCursor identifies a position in a paginated result set. The
// creation-time bound is locked in on the first page so later pages are
// consistent even as new rows arrive.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	tx := Transaction{
		ID:              row.ID,
		AccountID:       row.AccountID,
		Amount:          row.Amount,
		TransactionName: row.TransactionName,
		TransactionDate: row.TransactionDate,
		CreatedAt:       row.CreatedAt,
	}
	if row.CategoryID.Valid {
		categoryID := row.CategoryID.UUID
		tx.CategoryID = &categoryID
	}
	if row.RecurringRuleID.Valid {
		ruleID := row.RecurringRuleID.UUID
		tx.RecurringRuleID = &ruleID
	}
	return tx
}
