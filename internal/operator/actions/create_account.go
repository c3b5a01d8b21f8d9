package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/workspace-server/internal/storage"
	"github.com/carson-networks/workspace-server/internal/storage/account"
)

type CreateAccount struct {
	WorkspaceID     uuid.UUID
	Name            string
	Type            account.AccountType
	SubType         string
	StartingBalance decimal.Decimal

	Result uuid.UUID
}

func (a *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Accounts.Insert(ctx, &account.AccountCreate{
		WorkspaceID:     a.WorkspaceID,
		Name:            a.Name,
		Type:            a.Type,
		SubType:         a.SubType,
		StartingBalance: a.StartingBalance,
	})
	if err != nil {
		return err
	}

	a.Result = id
	return nil
}
