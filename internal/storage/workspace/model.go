package workspace

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Membership links a user to a workspace. Its presence is what authorizes
// the user to operate on the workspace's accounts, rules, and transactions.
type Membership struct {
	WorkspaceID uuid.UUID `db:"workspace_id"`
	UserID      uuid.UUID `db:"user_id"`
	Role        string    `db:"role"`
	CreatedAt   time.Time `db:"created_at"`
}

// WorkspaceCreate is the input for creating a new workspace.
type WorkspaceCreate struct {
	Name    string
	OwnerID uuid.UUID
}

// IWorkspaceTable defines the interface for workspace and membership storage.
type IWorkspaceTable interface {
	// FindMembership returns the membership for the given user in the given
	// workspace, or nil when the user is not a member.
	FindMembership(ctx context.Context, workspaceID, userID uuid.UUID) (*Membership, error)
	Insert(ctx context.Context, name string) (uuid.UUID, error)
	InsertMembership(ctx context.Context, workspaceID, userID uuid.UUID, role string) error
}
