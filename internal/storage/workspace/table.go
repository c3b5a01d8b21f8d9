package workspace

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ IWorkspaceTable = (*WorkspacesTable)(nil)

type WorkspacesTable struct {
	exec bob.Executor
}

func NewWorkspacesTable(exec bob.Executor) *WorkspacesTable {
	return &WorkspacesTable{exec: exec}
}

// FindMembership returns the membership row, or nil when none exists.
func (t *WorkspacesTable) FindMembership(ctx context.Context, workspaceID, userID uuid.UUID) (*Membership, error) {
	q := psql.Select(
		sm.Columns("workspace_id", "user_id", "role", "created_at"),
		sm.From("workspace_memberships"),
		psql.WhereAnd(
			sm.Where(psql.Quote("workspace_id").EQ(psql.Arg(workspaceID))),
			sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[Membership]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Insert creates a new workspace and returns its generated ID.
func (t *WorkspacesTable) Insert(ctx context.Context, name string) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("workspaces", "name"),
		im.Values(psql.Arg(name)),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
}

// InsertMembership adds a user to a workspace with the given role.
func (t *WorkspacesTable) InsertMembership(ctx context.Context, workspaceID, userID uuid.UUID, role string) error {
	q := psql.Insert(
		im.Into("workspace_memberships", "workspace_id", "user_id", "role"),
		im.Values(psql.Arg(workspaceID, userID, role)),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}
