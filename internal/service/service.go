package service

import (
	"context"

	"github.com/carson-networks/workspace-server/internal/operator/actions"
	"github.com/carson-networks/workspace-server/internal/storage"
)

// actionProcessor executes mutating actions; satisfied by the operator delegator.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Workspace   *WorkspaceService
	Account     *AccountService
	Transaction *TransactionService
	Rule        *RuleService
	Recurrence  *RecurrenceService
}

// NewService creates a new Service with the given storage and operator.
func NewService(store *storage.Storage, operator actionProcessor) *Service {
	return &Service{
		Workspace:   NewWorkspaceService(store, operator),
		Account:     NewAccountService(store, operator),
		Transaction: NewTransactionService(store, operator),
		Rule:        NewRuleService(store, operator),
		Recurrence:  NewRecurrenceService(store),
	}
}
