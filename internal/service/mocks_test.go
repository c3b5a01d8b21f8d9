package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/workspace-server/internal/operator/actions"
	"github.com/carson-networks/workspace-server/internal/storage"
	"github.com/carson-networks/workspace-server/internal/storage/account"
	"github.com/carson-networks/workspace-server/internal/storage/recurringrule"
	"github.com/carson-networks/workspace-server/internal/storage/transaction"
	"github.com/carson-networks/workspace-server/internal/storage/workspace"
)

type mockWorkspaceTable struct {
	mock.Mock
}

func (m *mockWorkspaceTable) FindMembership(ctx context.Context, workspaceID, userID uuid.UUID) (*workspace.Membership, error) {
	args := m.Called(ctx, workspaceID, userID)
	membership, _ := args.Get(0).(*workspace.Membership)
	return membership, args.Error(1)
}

func (m *mockWorkspaceTable) Insert(ctx context.Context, name string) (uuid.UUID, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockWorkspaceTable) InsertMembership(ctx context.Context, workspaceID, userID uuid.UUID, role string) error {
	args := m.Called(ctx, workspaceID, userID, role)
	return args.Error(0)
}

type mockAccountTable struct {
	mock.Mock
}

func (m *mockAccountTable) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	acc, _ := args.Get(0).(*account.Account)
	return acc, args.Error(1)
}

func (m *mockAccountTable) ListIDs(ctx context.Context, workspaceID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, workspaceID)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *mockAccountTable) Insert(ctx context.Context, create *account.AccountCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockAccountTable) List(ctx context.Context, filter *account.AccountFilter) ([]*account.Account, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*account.Account)
	return rows, args.Error(1)
}

type mockRuleTable struct {
	mock.Mock
}

func (m *mockRuleTable) FindByID(ctx context.Context, id uuid.UUID) (*recurringrule.RecurringRule, error) {
	args := m.Called(ctx, id)
	rule, _ := args.Get(0).(*recurringrule.RecurringRule)
	return rule, args.Error(1)
}

func (m *mockRuleTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*recurringrule.RecurringRule, error) {
	args := m.Called(ctx, id)
	rule, _ := args.Get(0).(*recurringrule.RecurringRule)
	return rule, args.Error(1)
}

func (m *mockRuleTable) ListDue(ctx context.Context, accountIDs []uuid.UUID, upTo time.Time) ([]*recurringrule.RecurringRule, error) {
	args := m.Called(ctx, accountIDs, upTo)
	rules, _ := args.Get(0).([]*recurringrule.RecurringRule)
	return rules, args.Error(1)
}

func (m *mockRuleTable) List(ctx context.Context, filter *recurringrule.RuleFilter) ([]*recurringrule.RecurringRule, error) {
	args := m.Called(ctx, filter)
	rules, _ := args.Get(0).([]*recurringrule.RecurringRule)
	return rules, args.Error(1)
}

func (m *mockRuleTable) Insert(ctx context.Context, create *recurringrule.RecurringRuleCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockRuleTable) Update(ctx context.Context, id uuid.UUID, update *recurringrule.RecurringRuleUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *mockRuleTable) UpdateNextDate(ctx context.Context, id uuid.UUID, expected, next time.Time) error {
	args := m.Called(ctx, id, expected, next)
	return args.Error(0)
}

func (m *mockRuleTable) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockTransactionTable struct {
	mock.Mock
}

func (m *mockTransactionTable) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*transaction.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionTable) Insert(ctx context.Context, create *transaction.TransactionCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockTransactionTable) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}

type mockActionProcessor struct {
	mock.Mock
}

func (m *mockActionProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type serviceMocks struct {
	workspaces   *mockWorkspaceTable
	accounts     *mockAccountTable
	rules        *mockRuleTable
	transactions *mockTransactionTable
	processor    *mockActionProcessor
}

func newMockStorage(t *testing.T) (*storage.Storage, *serviceMocks) {
	t.Helper()
	mocks := &serviceMocks{
		workspaces:   new(mockWorkspaceTable),
		accounts:     new(mockAccountTable),
		rules:        new(mockRuleTable),
		transactions: new(mockTransactionTable),
		processor:    new(mockActionProcessor),
	}
	store := &storage.Storage{
		Workspaces:     mocks.workspaces,
		Accounts:       mocks.accounts,
		RecurringRules: mocks.rules,
		Transactions:   mocks.transactions,
	}
	return store, mocks
}

func (m *serviceMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.workspaces.AssertExpectations(t)
	m.accounts.AssertExpectations(t)
	m.rules.AssertExpectations(t)
	m.transactions.AssertExpectations(t)
	m.processor.AssertExpectations(t)
}

// expectMember stubs a successful membership lookup.
func (m *serviceMocks) expectMember(workspaceID, userID uuid.UUID) {
	m.workspaces.On("FindMembership", mock.Anything, workspaceID, userID).
		Return(&workspace.Membership{
			WorkspaceID: workspaceID,
			UserID:      userID,
			Role:        "owner",
		}, nil)
}

// expectNonMember stubs a membership lookup that finds nothing.
func (m *serviceMocks) expectNonMember(workspaceID, userID uuid.UUID) {
	m.workspaces.On("FindMembership", mock.Anything, workspaceID, userID).
		Return(nil, nil)
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return d
}
