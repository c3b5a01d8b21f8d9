package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/operator/actions"
	"github.com/carson-networks/workspace-server/internal/storage"
	"github.com/carson-networks/workspace-server/internal/storage/account"
)

const defaultAccountLimit = 20

// AccountService handles account business logic.
type AccountService struct {
	storage  *storage.Storage
	operator actionProcessor
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, operator actionProcessor) *AccountService {
	return &AccountService{storage: store, operator: operator}
}

// CreateAccount creates a new account in the workspace and returns its ID.
func (s *AccountService) CreateAccount(ctx context.Context, userID uuid.UUID, acct Account) (uuid.UUID, error) {
	if err := requireMembership(ctx, s.storage, acct.WorkspaceID, userID); err != nil {
		return uuid.Nil, err
	}

	action := &actions.CreateAccount{
		WorkspaceID:     acct.WorkspaceID,
		Name:            acct.Name,
		Type:            accountTypeToStorage(acct.Type),
		SubType:         acct.SubType,
		StartingBalance: acct.StartingBalance,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.Result, nil
}

// GetAccount retrieves an account in the workspace by ID.
func (s *AccountService) GetAccount(ctx context.Context, workspaceID, userID, accountID uuid.UUID) (*Account, error) {
	if err := requireMembership(ctx, s.storage, workspaceID, userID); err != nil {
		return nil, err
	}

	row, err := requireWorkspaceAccount(ctx, s.storage, workspaceID, accountID)
	if err != nil {
		return nil, err
	}
	return &Account{
		ID:              row.ID,
		WorkspaceID:     row.WorkspaceID,
		Name:            row.Name,
		Type:            accountTypeFromStorage(row.Type),
		SubType:         row.SubType,
		StartingBalance: row.StartingBalance,
	}, nil
}

// ListAccounts returns a page of the workspace's accounts using cursor pagination.
func (s *AccountService) ListAccounts(ctx context.Context, workspaceID, userID uuid.UUID, cursor *AccountCursor) ([]Account, *AccountCursor, error) {
	if err := requireMembership(ctx, s.storage, workspaceID, userID); err != nil {
		return nil, nil, err
	}

	limit := defaultAccountLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.storage.Accounts.List(ctx, &account.AccountFilter{
		WorkspaceID: workspaceID,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *AccountCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	convertedAccounts := make([]Account, len(rows))
	for i, row := range rows {
		convertedAccounts[i] = Account{
			ID:              row.ID,
			WorkspaceID:     row.WorkspaceID,
			Name:            row.Name,
			Type:            accountTypeFromStorage(row.Type),
			SubType:         row.SubType,
			StartingBalance: row.StartingBalance,
		}
	}

	return convertedAccounts, nextCursor, nil
}
