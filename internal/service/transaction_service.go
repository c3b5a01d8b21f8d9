package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/operator/actions"
	"github.com/carson-networks/workspace-server/internal/storage"
	"github.com/carson-networks/workspace-server/internal/storage/transaction"
)

const defaultLimit = 20

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  *storage.Storage
	operator actionProcessor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, operator actionProcessor) *TransactionService {
	return &TransactionService{storage: store, operator: operator}
}

// CreateTransaction creates a new transaction and returns its ID.
func (s *TransactionService) CreateTransaction(ctx context.Context, workspaceID, userID uuid.UUID, tx Transaction) (uuid.UUID, error) {
	if err := requireMembership(ctx, s.storage, workspaceID, userID); err != nil {
		return uuid.Nil, err
	}
	if _, err := requireWorkspaceAccount(ctx, s.storage, workspaceID, tx.AccountID); err != nil {
		return uuid.Nil, err
	}

	action := &actions.CreateTransaction{
		AccountID:       tx.AccountID,
		CategoryID:      nullUUIDFromPtr(tx.CategoryID),
		Amount:          tx.Amount,
		TransactionName: tx.TransactionName,
		TransactionDate: tx.TransactionDate,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.Result, nil
}

// ListTransactions returns a page of the workspace's transactions using
// cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, workspaceID, userID uuid.UUID, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	if err := requireMembership(ctx, s.storage, workspaceID, userID); err != nil {
		return nil, nil, err
	}

	accountIDs, err := s.storage.Accounts.ListIDs(ctx, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	if len(accountIDs) == 0 {
		return nil, nil, nil
	}

	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	filter := &transaction.TransactionFilter{
		AccountIDs:      accountIDs,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = transactionFromStorage(row)
	}

	return convertedTransactions, nextCursor, nil
}
