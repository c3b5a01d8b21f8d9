package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Account represents an account record. Every account belongs to exactly
// one workspace; workspace membership gates all access to it.
type Account struct {
	ID              uuid.UUID       `db:"id"`
	WorkspaceID     uuid.UUID       `db:"workspace_id"`
	Name            string          `db:"name"`
	Type            AccountType     `db:"type"`
	SubType         string          `db:"sub_type"`
	StartingBalance decimal.Decimal `db:"starting_balance"`
	CreatedAt       time.Time       `db:"created_at"`
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	WorkspaceID uuid.UUID
	Limit       int
	Offset      int
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	WorkspaceID     uuid.UUID
	Name            string
	Type            AccountType
	SubType         string
	StartingBalance decimal.Decimal
}

// IAccountTable defines the interface for account storage operations.
// This abstraction allows swapping the implementation without changing callers.
type IAccountTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	// ListIDs returns the IDs of every account owned by the workspace.
	ListIDs(ctx context.Context, workspaceID uuid.UUID) ([]uuid.UUID, error)
	Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error)
	List(ctx context.Context, filter *AccountFilter) ([]*Account, error)
}

type AccountType int8

const (
	AccountTypeCash AccountType = iota
	AccountTypeCreditCards
	AccountTypeInvestments
	AccountTypeLoans
	AccountTypeAssets
)
