package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/storage"
	"github.com/carson-networks/workspace-server/internal/storage/account"
)

// requireMembership is the authorization gate every workspace operation
// passes through: the acting user must be a member of the workspace.
func requireMembership(ctx context.Context, store *storage.Storage, workspaceID, userID uuid.UUID) error {
	membership, err := store.Workspaces.FindMembership(ctx, workspaceID, userID)
	if err != nil {
		return fmt.Errorf("loading workspace membership: %w", err)
	}
	if membership == nil {
		return ErrAccessDenied
	}
	return nil
}

// requireWorkspaceAccount resolves an account and confirms it belongs to the
// workspace. Accounts in other workspaces report ErrNotFound, not a hint
// that they exist.
func requireWorkspaceAccount(ctx context.Context, store *storage.Storage, workspaceID, accountID uuid.UUID) (*account.Account, error) {
	acct, err := store.Accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("loading account: %w", err)
	}
	if acct == nil || acct.WorkspaceID != workspaceID {
		return nil, ErrNotFound
	}
	return acct, nil
}
