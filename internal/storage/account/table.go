package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ IAccountTable = (*AccountsTable)(nil)

type AccountsTable struct {
	exec bob.Executor
}

func NewAccountsTable(exec bob.Executor) *AccountsTable {
	return &AccountsTable{exec: exec}
}

// FindByID retrieves an account by primary key. Returns nil when absent.
func (t *AccountsTable) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	q := psql.Select(
		sm.Columns("id", "workspace_id", "name", "type", "sub_type", "starting_balance", "created_at"),
		sm.From("accounts"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[Account]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListIDs returns the IDs of every account owned by the workspace.
func (t *AccountsTable) ListIDs(ctx context.Context, workspaceID uuid.UUID) ([]uuid.UUID, error) {
	q := psql.Select(
		sm.Columns("id"),
		sm.From("accounts"),
		sm.Where(psql.Quote("workspace_id").EQ(psql.Arg(workspaceID))),
		sm.OrderBy("created_at").Asc(),
	)
	return bob.All(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
}

// Insert creates a new account and returns its generated ID.
func (t *AccountsTable) Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("accounts", "workspace_id", "name", "type", "sub_type", "starting_balance"),
		im.Values(psql.Arg(
			create.WorkspaceID,
			create.Name,
			int16(create.Type),
			create.SubType,
			create.StartingBalance,
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
}

// List returns a page of the workspace's accounts. The query fetches one row
// beyond the limit so callers can detect whether a next page exists.
func (t *AccountsTable) List(ctx context.Context, filter *AccountFilter) ([]*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("id", "workspace_id", "name", "type", "sub_type", "starting_balance", "created_at"),
		sm.From("accounts"),
		sm.Where(psql.Quote("workspace_id").EQ(psql.Arg(filter.WorkspaceID))),
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}
	queryMods = append(queryMods,
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[Account]())
	if err != nil {
		return nil, err
	}
	result := make([]*Account, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
