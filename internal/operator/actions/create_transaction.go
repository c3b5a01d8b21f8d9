package actions

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/workspace-server/internal/storage"
	"github.com/carson-networks/workspace-server/internal/storage/transaction"
)

type CreateTransaction struct {
	AccountID       uuid.UUID
	CategoryID      uuid.NullUUID
	Amount          decimal.Decimal
	TransactionName string
	TransactionDate time.Time

	Result uuid.UUID
}

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	acct, err := writer.Accounts.FindByID(ctx, a.AccountID)
	if err != nil {
		return err
	}
	if acct == nil {
		return errors.New("account not found")
	}

	id, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		AccountID:       a.AccountID,
		CategoryID:      a.CategoryID,
		Amount:          a.Amount,
		TransactionName: a.TransactionName,
		TransactionDate: a.TransactionDate,
	})
	if err != nil {
		return err
	}

	a.Result = id
	return nil
}
