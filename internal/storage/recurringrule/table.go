package recurringrule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ IRecurringRuleTable = (*RecurringRulesTable)(nil)

type RecurringRulesTable struct {
	exec bob.Executor
}

func NewRecurringRulesTable(exec bob.Executor) *RecurringRulesTable {
	return &RecurringRulesTable{exec: exec}
}

func ruleColumns() bob.Mod[*dialect.SelectQuery] {
	return sm.Columns(
		"id", "account_id", "amount", "description", "frequency",
		"next_date", "category_id", "end_date", "is_active", "created_at",
	)
}

// FindByID retrieves a recurring rule by primary key. Returns nil when absent.
func (t *RecurringRulesTable) FindByID(ctx context.Context, id uuid.UUID) (*RecurringRule, error) {
	return t.findByID(ctx, id, false)
}

// FindByIDForUpdate retrieves a rule and locks its row until the surrounding
// transaction ends.
func (t *RecurringRulesTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*RecurringRule, error) {
	return t.findByID(ctx, id, true)
}

func (t *RecurringRulesTable) findByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*RecurringRule, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		ruleColumns(),
		sm.From("recurring_rules"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}
	row, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[RecurringRule]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListDue returns active rules for the given accounts with next_date <= upTo.
func (t *RecurringRulesTable) ListDue(ctx context.Context, accountIDs []uuid.UUID, upTo time.Time) ([]*RecurringRule, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}
	q := psql.Select(
		ruleColumns(),
		sm.From("recurring_rules"),
		psql.WhereAnd(
			sm.Where(psql.Quote("account_id").In(psql.Arg(uuidArgs(accountIDs)...))),
			sm.Where(psql.Quote("is_active").EQ(psql.Arg(true))),
			sm.Where(psql.Quote("next_date").LTE(psql.Arg(upTo))),
		),
		sm.OrderBy("next_date").Asc(),
		sm.OrderBy("id").Asc(),
	)
	return t.collect(ctx, q)
}

// List returns a page of rules matching the filter. The query fetches one
// row beyond the limit so callers can detect whether a next page exists.
func (t *RecurringRulesTable) List(ctx context.Context, filter *RuleFilter) ([]*RecurringRule, error) {
	if len(filter.AccountIDs) == 0 {
		return nil, nil
	}
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		ruleColumns(),
		sm.From("recurring_rules"),
		sm.Where(psql.Quote("account_id").In(psql.Arg(uuidArgs(filter.AccountIDs)...))),
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}
	queryMods = append(queryMods,
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)
	return t.collect(ctx, psql.Select(queryMods...))
}

// Insert creates a new recurring rule and returns its generated ID.
func (t *RecurringRulesTable) Insert(ctx context.Context, create *RecurringRuleCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("recurring_rules",
			"account_id", "amount", "description", "frequency",
			"next_date", "category_id", "end_date",
		),
		im.Values(psql.Arg(
			create.AccountID,
			create.Amount,
			create.Description,
			int16(create.Frequency),
			create.NextDate,
			create.CategoryID,
			create.EndDate,
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
}

// Update applies the non-nil fields of update to the rule.
func (t *RecurringRulesTable) Update(ctx context.Context, id uuid.UUID, update *RecurringRuleUpdate) error {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("recurring_rules"),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	changed := false
	if update.Amount != nil {
		queryMods = append(queryMods, um.SetCol("amount").ToArg(*update.Amount))
		changed = true
	}
	if update.Description != nil {
		queryMods = append(queryMods, um.SetCol("description").ToArg(*update.Description))
		changed = true
	}
	if update.Frequency != nil {
		queryMods = append(queryMods, um.SetCol("frequency").ToArg(int16(*update.Frequency)))
		changed = true
	}
	if update.EndDate != nil {
		queryMods = append(queryMods, um.SetCol("end_date").ToArg(*update.EndDate))
		changed = true
	}
	if update.IsActive != nil {
		queryMods = append(queryMods, um.SetCol("is_active").ToArg(*update.IsActive))
		changed = true
	}
	if !changed {
		return nil
	}
	_, err := bob.Exec(ctx, t.exec, psql.Update(queryMods...))
	return err
}

// UpdateNextDate advances the cursor with a compare-and-swap so overlapping
// generate runs cannot silently double-advance (and double-generate).
func (t *RecurringRulesTable) UpdateNextDate(ctx context.Context, id uuid.UUID, expected, next time.Time) error {
	q := psql.Update(
		um.Table("recurring_rules"),
		um.SetCol("next_date").ToArg(next),
		psql.WhereAnd(
			um.Where(psql.Quote("id").EQ(psql.Arg(id))),
			um.Where(psql.Quote("next_date").EQ(psql.Arg(expected))),
		),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCursorMoved
	}
	return nil
}

// Delete removes the rule. Transactions it generated keep a nulled-out
// provenance reference rather than being cascaded.
func (t *RecurringRulesTable) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("recurring_rules"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

func (t *RecurringRulesTable) collect(ctx context.Context, q bob.Query) ([]*RecurringRule, error) {
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[RecurringRule]())
	if err != nil {
		return nil, err
	}
	result := make([]*RecurringRule, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func uuidArgs(ids []uuid.UUID) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
