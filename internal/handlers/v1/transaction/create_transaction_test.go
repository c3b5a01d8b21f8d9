package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/workspace-server/internal/service"
)

type mockTransactionCreator struct {
	mock.Mock
}

func (m *mockTransactionCreator) CreateTransaction(ctx context.Context, workspaceID, userID uuid.UUID, tx service.Transaction) (uuid.UUID, error) {
	args := m.Called(ctx, workspaceID, userID, tx)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func newCreateTestAPI(t *testing.T, svc transactionCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransactionHandler(svc).Register(api)
	return api
}

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	txID := uuid.Must(uuid.NewV4())
	txDate := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mockSvc := new(mockTransactionCreator)
	mockSvc.On("CreateTransaction", mock.Anything, workspaceID, userID, mock.MatchedBy(func(tx service.Transaction) bool {
		return tx.AccountID == accountID &&
			tx.CategoryID == nil &&
			tx.Amount.Equal(decimal.RequireFromString("42.50")) &&
			tx.TransactionName == "Groceries" &&
			tx.TransactionDate.Equal(txDate)
	})).Return(txID, nil)

	args := append(identityHeaders(workspaceID, userID), CreateTransactionBody{
		AccountID:       accountID.String(),
		Amount:          "42.50",
		TransactionName: "Groceries",
		TransactionDate: txDate.Format(time.RFC3339),
	})
	resp := newCreateTestAPI(t, mockSvc).Post("/v1/transaction", args...)

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateTransactionResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, txID.String(), body.ID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_DefaultsDateToNow(t *testing.T) {
	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	before := time.Now()

	mockSvc := new(mockTransactionCreator)
	mockSvc.On("CreateTransaction", mock.Anything, workspaceID, userID, mock.MatchedBy(func(tx service.Transaction) bool {
		return !tx.TransactionDate.Before(before)
	})).Return(uuid.Must(uuid.NewV4()), nil)

	args := append(identityHeaders(workspaceID, userID), CreateTransactionBody{
		AccountID:       accountID.String(),
		Amount:          "10.00",
		TransactionName: "Coffee",
	})
	resp := newCreateTestAPI(t, mockSvc).Post("/v1/transaction", args...)

	assert.Equal(t, http.StatusCreated, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_InvalidAmount(t *testing.T) {
	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockTransactionCreator)

	args := append(identityHeaders(workspaceID, userID), CreateTransactionBody{
		AccountID:       uuid.Must(uuid.NewV4()).String(),
		Amount:          "lots",
		TransactionName: "Coffee",
	})
	resp := newCreateTestAPI(t, mockSvc).Post("/v1/transaction", args...)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_AccountNotFound(t *testing.T) {
	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockTransactionCreator)
	mockSvc.On("CreateTransaction", mock.Anything, workspaceID, userID, mock.Anything).
		Return(uuid.Nil, service.ErrNotFound)

	args := append(identityHeaders(workspaceID, userID), CreateTransactionBody{
		AccountID:       uuid.Must(uuid.NewV4()).String(),
		Amount:          "10.00",
		TransactionName: "Coffee",
	})
	resp := newCreateTestAPI(t, mockSvc).Post("/v1/transaction", args...)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
