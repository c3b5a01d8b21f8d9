package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/workspace-server/internal/config"
	"github.com/carson-networks/workspace-server/internal/storage/account"
	"github.com/carson-networks/workspace-server/internal/storage/recurringrule"
	"github.com/carson-networks/workspace-server/internal/storage/transaction"
	"github.com/carson-networks/workspace-server/internal/storage/workspace"
)

// Storage aggregates the table interfaces over a shared connection pool.
type Storage struct {
	DB             bob.DB
	Workspaces     workspace.IWorkspaceTable
	Accounts       account.IAccountTable
	RecurringRules recurringrule.IRecurringRuleTable
	Transactions   transaction.ITransactionTable
}

func NewStorage(env *config.Config) (*Storage, error) {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	db := bob.NewDB(sqlDB)
	return &Storage{
		DB:             db,
		Workspaces:     workspace.NewWorkspacesTable(db),
		Accounts:       account.NewAccountsTable(db),
		RecurringRules: recurringrule.NewRecurringRulesTable(db),
		Transactions:   transaction.NewTransactionsTable(db),
	}, nil
}

// Write begins a transaction and returns a Writer whose tables are bound to it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}
