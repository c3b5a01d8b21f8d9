package transaction

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
	"github.com/stephenafamo/bob/mods"
	"github.com/stephenafamo/scan"
)

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

func transactionColumns() bob.Mod[*dialect.SelectQuery] {
	return sm.Columns(
		"id", "account_id", "category_id", "amount", "transaction_name",
		"transaction_date", "recurring_rule_id", "created_at",
	)
}

// FindByID retrieves a transaction by primary key. Returns nil when absent.
func (t *TransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		transactionColumns(),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[Transaction]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Insert creates a new transaction and returns its generated ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	columns := []string{"account_id", "category_id", "amount", "transaction_name", "recurring_rule_id"}
	values := []any{create.AccountID, create.CategoryID, create.Amount, create.TransactionName, create.RecurringRuleID}
	if !create.TransactionDate.IsZero() {
		columns = append(columns, "transaction_date")
		values = append(values, create.TransactionDate)
	}
	q := psql.Insert(
		im.Into("transactions", columns...),
		im.Values(psql.Arg(values...)),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
}

// List returns transactions matching the filter. The query fetches one row
// beyond the limit so callers can detect whether a next page exists.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		transactionColumns(),
		sm.From("transactions"),
	}
	if filter != nil {
		var whereMods []mods.Where[*dialect.SelectQuery]
		if len(filter.AccountIDs) > 0 {
			args := make([]any, len(filter.AccountIDs))
			for i, id := range filter.AccountIDs {
				args[i] = id
			}
			whereMods = append(whereMods, sm.Where(psql.Quote("account_id").In(psql.Arg(args...))))
		}
		if filter.RecurringRuleID != nil {
			whereMods = append(whereMods, sm.Where(psql.Quote("recurring_rule_id").EQ(psql.Arg(*filter.RecurringRuleID))))
		}
		if filter.MaxCreationTime != nil {
			whereMods = append(whereMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if len(whereMods) == 1 {
			queryMods = append(queryMods, whereMods[0])
		} else if len(whereMods) > 1 {
			queryMods = append(queryMods, psql.WhereAnd(whereMods...))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)
	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}
	result := make([]*Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
