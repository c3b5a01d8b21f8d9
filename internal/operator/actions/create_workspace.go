package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/storage"
)

// CreateWorkspace inserts a workspace and its owner membership atomically.
type CreateWorkspace struct {
	Name    string
	OwnerID uuid.UUID

	Result uuid.UUID
}

func (a *CreateWorkspace) Perform(ctx context.Context, writer *storage.Writer) error {
	workspaceID, err := writer.Workspaces.Insert(ctx, a.Name)
	if err != nil {
		return err
	}

	if err := writer.Workspaces.InsertMembership(ctx, workspaceID, a.OwnerID, "owner"); err != nil {
		return err
	}

	a.Result = workspaceID
	return nil
}
