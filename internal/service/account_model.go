package service

import (
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/workspace-server/internal/storage/account"
)

// AccountType represents an account type in the service layer.
type AccountType int8

const (
	AccountTypeCash AccountType = iota
	AccountTypeCreditCards
	AccountTypeInvestments
	AccountTypeLoans
	AccountTypeAssets
)

// Account represents an account in the service layer.
type Account struct {
	ID              uuid.UUID
	WorkspaceID     uuid.UUID
	Name            string
	Type            AccountType
	SubType         string
	StartingBalance decimal.Decimal
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

func accountTypeToStorage(t AccountType) account.AccountType {
	return account.AccountType(t)
}

func accountTypeFromStorage(t account.AccountType) AccountType {
	return AccountType(t)
}
