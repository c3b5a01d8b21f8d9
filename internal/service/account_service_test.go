package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/workspace-server/internal/operator/actions"
	"github.com/carson-networks/workspace-server/internal/storage/account"
)

func makeAccountRows(workspaceID uuid.UUID, n int) []*account.Account {
	rows := make([]*account.Account, n)
	for i := range rows {
		rows[i] = &account.Account{
			ID:              uuid.Must(uuid.NewV4()),
			WorkspaceID:     workspaceID,
			Name:            "Checking",
			Type:            account.AccountTypeCash,
			StartingBalance: decimal.RequireFromString("100.00"),
		}
	}
	return rows
}

func TestCreateAccount_Success(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewAccountService(store, mocks.processor)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	expectedID := uuid.Must(uuid.NewV4())

	mocks.expectMember(workspaceID, userID)
	mocks.processor.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.CreateAccount) bool {
		return a.WorkspaceID == workspaceID &&
			a.Name == "Savings" &&
			a.Type == account.AccountTypeCash &&
			a.StartingBalance.Equal(decimal.RequireFromString("250.00"))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.CreateAccount).Result = expectedID
	}).Return(nil)

	id, err := svc.CreateAccount(context.Background(), userID, Account{
		WorkspaceID:     workspaceID,
		Name:            "Savings",
		Type:            AccountTypeCash,
		StartingBalance: decimal.RequireFromString("250.00"),
	})

	assert.NoError(t, err)
	assert.Equal(t, expectedID, id)
	mocks.assertExpectations(t)
}

func TestCreateAccount_AccessDenied(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewAccountService(store, mocks.processor)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	mocks.expectNonMember(workspaceID, userID)

	_, err := svc.CreateAccount(context.Background(), userID, Account{
		WorkspaceID: workspaceID,
		Name:        "Savings",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	mocks.processor.AssertNotCalled(t, "Process")
}

func TestGetAccount_WrongWorkspace(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewAccountService(store, mocks.processor)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())

	mocks.expectMember(workspaceID, userID)
	mocks.accounts.On("FindByID", mock.Anything, accountID).Return(&account.Account{
		ID:          accountID,
		WorkspaceID: uuid.Must(uuid.NewV4()),
	}, nil)

	acct, err := svc.GetAccount(context.Background(), workspaceID, userID, accountID)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, acct)
}

func TestListAccounts_NoResults(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewAccountService(store, mocks.processor)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())

	mocks.expectMember(workspaceID, userID)
	mocks.accounts.On("List", mock.Anything, mock.Anything).Return([]*account.Account{}, nil)

	accounts, nextCursor, err := svc.ListAccounts(context.Background(), workspaceID, userID, nil)

	assert.NoError(t, err)
	assert.Nil(t, accounts)
	assert.Nil(t, nextCursor)
}

func TestListAccounts_HasNextPage(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewAccountService(store, mocks.processor)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	rows := makeAccountRows(workspaceID, defaultAccountLimit+1)

	mocks.expectMember(workspaceID, userID)
	mocks.accounts.On("List", mock.Anything, mock.MatchedBy(func(f *account.AccountFilter) bool {
		return f.WorkspaceID == workspaceID && f.Limit == defaultAccountLimit && f.Offset == 0
	})).Return(rows, nil)

	accounts, nextCursor, err := svc.ListAccounts(context.Background(), workspaceID, userID, nil)

	assert.NoError(t, err)
	assert.Len(t, accounts, defaultAccountLimit, "truncated to default limit")
	assert.NotNil(t, nextCursor)
	assert.Equal(t, defaultAccountLimit, nextCursor.Position)
	assert.Equal(t, defaultAccountLimit, nextCursor.Limit)
}

func TestListAccounts_StorageError(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewAccountService(store, mocks.processor)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())

	mocks.expectMember(workspaceID, userID)
	mocks.accounts.On("List", mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	accounts, nextCursor, err := svc.ListAccounts(context.Background(), workspaceID, userID, nil)

	assert.Error(t, err)
	assert.Nil(t, accounts)
	assert.Nil(t, nextCursor)
}
