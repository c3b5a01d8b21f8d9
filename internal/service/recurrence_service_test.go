package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/workspace-server/internal/schedule"
	"github.com/carson-networks/workspace-server/internal/storage/recurringrule"
	"github.com/carson-networks/workspace-server/internal/storage/transaction"
)

func newTestRule(accountID uuid.UUID, frequency schedule.Frequency, nextDate time.Time) *recurringrule.RecurringRule {
	return &recurringrule.RecurringRule{
		ID:          uuid.Must(uuid.NewV4()),
		AccountID:   accountID,
		Amount:      decimal.RequireFromString("9.99"),
		Description: "Streaming subscription",
		Frequency:   frequency,
		NextDate:    nextDate,
		IsActive:    true,
	}
}

func TestGenerateTransactions_AccessDenied(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewRecurrenceService(store)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	mocks.expectNonMember(workspaceID, userID)

	result, err := svc.GenerateTransactions(context.Background(), workspaceID, userID, mustDate(t, "2024-06-01"))

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, result)
	mocks.accounts.AssertNotCalled(t, "ListIDs")
	mocks.assertExpectations(t)
}

func TestGenerateTransactions_MembershipLookupError(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewRecurrenceService(store)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	mocks.workspaces.On("FindMembership", mock.Anything, workspaceID, userID).
		Return(nil, errors.New("connection refused"))

	result, err := svc.GenerateTransactions(context.Background(), workspaceID, userID, mustDate(t, "2024-06-01"))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, result)
	mocks.accounts.AssertNotCalled(t, "ListIDs")
}

func TestGenerateTransactions_EmptyWorkspace(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewRecurrenceService(store)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	upTo := mustDate(t, "2024-06-01")

	mocks.expectMember(workspaceID, userID)
	mocks.accounts.On("ListIDs", mock.Anything, workspaceID).Return([]uuid.UUID{}, nil)

	result, err := svc.GenerateTransactions(context.Background(), workspaceID, userID, upTo)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result.Generated)
	assert.Equal(t, 0, result.Count)
	assert.Equal(t, upTo, result.UpToDate)
	mocks.rules.AssertNotCalled(t, "ListDue")
	mocks.assertExpectations(t)
}

func TestGenerateTransactions_AccountLoadError(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewRecurrenceService(store)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	mocks.expectMember(workspaceID, userID)
	mocks.accounts.On("ListIDs", mock.Anything, workspaceID).
		Return(nil, errors.New("database unavailable"))

	result, err := svc.GenerateTransactions(context.Background(), workspaceID, userID, mustDate(t, "2024-06-01"))

	assert.Error(t, err)
	assert.Nil(t, result)
	mocks.rules.AssertNotCalled(t, "ListDue")
}

func TestGenerateTransactions_RuleLoadError(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewRecurrenceService(store)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())

	mocks.expectMember(workspaceID, userID)
	mocks.accounts.On("ListIDs", mock.Anything, workspaceID).Return([]uuid.UUID{accountID}, nil)
	mocks.rules.On("ListDue", mock.Anything, []uuid.UUID{accountID}, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	result, err := svc.GenerateTransactions(context.Background(), workspaceID, userID, mustDate(t, "2024-06-01"))

	assert.Error(t, err)
	assert.Nil(t, result)
	mocks.transactions.AssertNotCalled(t, "Insert")
	mocks.rules.AssertNotCalled(t, "UpdateNextDate")
}

// A daily rule five days behind produces exactly five transactions with
// consecutive dates, and its cursor lands one day past the bound.
func TestGenerateTransactions_DailyCatchUp(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewRecurrenceService(store)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	upTo := mustDate(t, "2024-06-09")
	rule := newTestRule(accountID, schedule.FrequencyDaily, mustDate(t, "2024-06-05"))

	mocks.expectMember(workspaceID, userID)
	mocks.accounts.On("ListIDs", mock.Anything, workspaceID).Return([]uuid.UUID{accountID}, nil)
	mocks.rules.On("ListDue", mock.Anything, []uuid.UUID{accountID}, upTo).
		Return([]*recurringrule.RecurringRule{rule}, nil)

	var insertedDates []time.Time
	mocks.transactions.On("Insert", mock.Anything, mock.MatchedBy(func(c *transaction.TransactionCreate) bool {
		return c.AccountID == accountID &&
			c.Amount.Equal(rule.Amount) &&
			c.TransactionName == rule.Description &&
			c.RecurringRuleID.Valid && c.RecurringRuleID.UUID == rule.ID
	})).Run(func(args mock.Arguments) {
		create := args.Get(1).(*transaction.TransactionCreate)
		insertedDates = append(insertedDates, create.TransactionDate)
	}).Return(uuid.Must(uuid.NewV4()), nil)

	mocks.rules.On("UpdateNextDate", mock.Anything, rule.ID, mustDate(t, "2024-06-05"), mustDate(t, "2024-06-10")).
		Return(nil)

	result, err := svc.GenerateTransactions(context.Background(), workspaceID, userID, upTo)

	assert.NoError(t, err)
	assert.Equal(t, 5, result.Count)
	assert.Len(t, result.Generated, 5)
	assert.Equal(t, []time.Time{
		mustDate(t, "2024-06-05"),
		mustDate(t, "2024-06-06"),
		mustDate(t, "2024-06-07"),
		mustDate(t, "2024-06-08"),
		mustDate(t, "2024-06-09"),
	}, insertedDates)
	mocks.assertExpectations(t)
}

// A rule never produces an occurrence dated after its end date, and the
// cursor parks on the first out-of-range occurrence.
func TestGenerateTransactions_EndDateBoundary(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewRecurrenceService(store)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	upTo := mustDate(t, "2024-04-01")

	rule := newTestRule(accountID, schedule.FrequencyMonthly, mustDate(t, "2024-01-15"))
	rule.EndDate = sql.NullTime{Time: mustDate(t, "2024-03-10"), Valid: true}

	mocks.expectMember(workspaceID, userID)
	mocks.accounts.On("ListIDs", mock.Anything, workspaceID).Return([]uuid.UUID{accountID}, nil)
	mocks.rules.On("ListDue", mock.Anything, []uuid.UUID{accountID}, upTo).
		Return([]*recurringrule.RecurringRule{rule}, nil)

	var insertedDates []time.Time
	mocks.transactions.On("Insert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			create := args.Get(1).(*transaction.TransactionCreate)
			insertedDates = append(insertedDates, create.TransactionDate)
		}).Return(uuid.Must(uuid.NewV4()), nil)

	// 2024-03-15 exceeds the end date, so the cursor parks there.
	mocks.rules.On("UpdateNextDate", mock.Anything, rule.ID, mustDate(t, "2024-01-15"), mustDate(t, "2024-03-15")).
		Return(nil)

	result, err := svc.GenerateTransactions(context.Background(), workspaceID, userID, upTo)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, []time.Time{
		mustDate(t, "2024-01-15"),
		mustDate(t, "2024-02-15"),
	}, insertedDates)
	mocks.assertExpectations(t)
}

// A failed insert is skipped but the cursor still advances past it, so the
// occurrence is never retried.
func TestGenerateTransactions_InsertFailureSkipped(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewRecurrenceService(store)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	upTo := mustDate(t, "2024-06-02")
	rule := newTestRule(accountID, schedule.FrequencyDaily, mustDate(t, "2024-06-01"))

	mocks.expectMember(workspaceID, userID)
	mocks.accounts.On("ListIDs", mock.Anything, workspaceID).Return([]uuid.UUID{accountID}, nil)
	mocks.rules.On("ListDue", mock.Anything, []uuid.UUID{accountID}, upTo).
		Return([]*recurringrule.RecurringRule{rule}, nil)

	firstDate := mustDate(t, "2024-06-01")
	secondDate := mustDate(t, "2024-06-02")
	secondID := uuid.Must(uuid.NewV4())

	mocks.transactions.On("Insert", mock.Anything, mock.MatchedBy(func(c *transaction.TransactionCreate) bool {
		return c.TransactionDate.Equal(firstDate)
	})).Return(uuid.Nil, errors.New("constraint violation"))
	mocks.transactions.On("Insert", mock.Anything, mock.MatchedBy(func(c *transaction.TransactionCreate) bool {
		return c.TransactionDate.Equal(secondDate)
	})).Return(secondID, nil)

	mocks.rules.On("UpdateNextDate", mock.Anything, rule.ID, firstDate, mustDate(t, "2024-06-03")).
		Return(nil)

	result, err := svc.GenerateTransactions(context.Background(), workspaceID, userID, upTo)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, secondID, result.Generated[0].TransactionID)
	assert.Equal(t, secondDate, result.Generated[0].Date)
	mocks.assertExpectations(t)
}

// When a concurrent run already moved a rule's cursor, that rule is left
// alone and the remaining rules are still processed.
func TestGenerateTransactions_CursorMovedByConcurrentRun(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewRecurrenceService(store)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	upTo := mustDate(t, "2024-06-01")

	first := newTestRule(accountID, schedule.FrequencyDaily, mustDate(t, "2024-06-01"))
	second := newTestRule(accountID, schedule.FrequencyDaily, mustDate(t, "2024-06-01"))

	mocks.expectMember(workspaceID, userID)
	mocks.accounts.On("ListIDs", mock.Anything, workspaceID).Return([]uuid.UUID{accountID}, nil)
	mocks.rules.On("ListDue", mock.Anything, []uuid.UUID{accountID}, upTo).
		Return([]*recurringrule.RecurringRule{first, second}, nil)

	mocks.transactions.On("Insert", mock.Anything, mock.Anything).
		Return(uuid.Must(uuid.NewV4()), nil)

	mocks.rules.On("UpdateNextDate", mock.Anything, first.ID, mock.Anything, mock.Anything).
		Return(recurringrule.ErrCursorMoved)
	mocks.rules.On("UpdateNextDate", mock.Anything, second.ID, mock.Anything, mock.Anything).
		Return(nil)

	result, err := svc.GenerateTransactions(context.Background(), workspaceID, userID, upTo)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	mocks.assertExpectations(t)
}

// A rule whose end date already passed generates nothing, but its cursor is
// still persisted so repeated no-op runs cannot drift the schedule.
func TestGenerateTransactions_ExpiredRuleCursorStillPersisted(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewRecurrenceService(store)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	upTo := mustDate(t, "2024-06-01")

	rule := newTestRule(accountID, schedule.FrequencyWeekly, mustDate(t, "2024-05-20"))
	rule.EndDate = sql.NullTime{Time: mustDate(t, "2024-05-01"), Valid: true}

	mocks.expectMember(workspaceID, userID)
	mocks.accounts.On("ListIDs", mock.Anything, workspaceID).Return([]uuid.UUID{accountID}, nil)
	mocks.rules.On("ListDue", mock.Anything, []uuid.UUID{accountID}, upTo).
		Return([]*recurringrule.RecurringRule{rule}, nil)

	mocks.rules.On("UpdateNextDate", mock.Anything, rule.ID, rule.NextDate, rule.NextDate).
		Return(nil)

	result, err := svc.GenerateTransactions(context.Background(), workspaceID, userID, upTo)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	mocks.transactions.AssertNotCalled(t, "Insert")
	mocks.assertExpectations(t)
}

// Calling generate twice with no time passing produces nothing the second
// time: the cursors moved past upTo, so no rule is due anymore.
func TestGenerateTransactions_IdempotentNoOp(t *testing.T) {
	store, mocks := newMockStorage(t)
	svc := NewRecurrenceService(store)

	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	upTo := mustDate(t, "2024-06-01")

	mocks.expectMember(workspaceID, userID)
	mocks.accounts.On("ListIDs", mock.Anything, workspaceID).Return([]uuid.UUID{accountID}, nil)
	mocks.rules.On("ListDue", mock.Anything, []uuid.UUID{accountID}, upTo).
		Return([]*recurringrule.RecurringRule{}, nil)

	result, err := svc.GenerateTransactions(context.Background(), workspaceID, userID, upTo)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Generated)
	mocks.transactions.AssertNotCalled(t, "Insert")
	mocks.rules.AssertNotCalled(t, "UpdateNextDate")
	mocks.assertExpectations(t)
}
