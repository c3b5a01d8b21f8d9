package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/workspace-server/internal/storage/account"
	"github.com/carson-networks/workspace-server/internal/storage/recurringrule"
	"github.com/carson-networks/workspace-server/internal/storage/transaction"
	"github.com/carson-networks/workspace-server/internal/storage/workspace"
)

// Writer exposes the table interfaces bound to a single database transaction.
// Operator actions perform all their reads and writes through one Writer and
// then Commit or Rollback.
type Writer struct {
	Tx             bob.Tx
	Workspaces     workspace.IWorkspaceTable
	Accounts       account.IAccountTable
	RecurringRules recurringrule.IRecurringRuleTable
	Transactions   transaction.ITransactionTable
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		Tx:             tx,
		Workspaces:     workspace.NewWorkspacesTable(tx),
		Accounts:       account.NewAccountsTable(tx),
		RecurringRules: recurringrule.NewRecurringRulesTable(tx),
		Transactions:   transaction.NewTransactionsTable(tx),
	}
}

func (w *Writer) Commit() error {
	return w.Tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.Tx.Rollback(context.Background())
}
