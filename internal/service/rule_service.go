package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/operator/actions"
	"github.com/carson-networks/workspace-server/internal/storage"
	"github.com/carson-networks/workspace-server/internal/storage/recurringrule"
)

const defaultRuleLimit = 20

// RuleService handles recurring rule CRUD and the manual skip operation.
// Cursor movement happens in exactly two reviewed places: the engine's
// advance loop and SkipNext below.
type RuleService struct {
	storage  *storage.Storage
	operator actionProcessor
}

// NewRuleService creates a new RuleService.
func NewRuleService(store *storage.Storage, operator actionProcessor) *RuleService {
	return &RuleService{storage: store, operator: operator}
}

// CreateRule creates a recurring rule on an account in the workspace.
func (s *RuleService) CreateRule(ctx context.Context, workspaceID, userID uuid.UUID, create RuleCreate) (uuid.UUID, error) {
	if err := requireMembership(ctx, s.storage, workspaceID, userID); err != nil {
		return uuid.Nil, err
	}
	if _, err := requireWorkspaceAccount(ctx, s.storage, workspaceID, create.AccountID); err != nil {
		return uuid.Nil, err
	}

	action := &actions.CreateRecurringRule{
		AccountID:   create.AccountID,
		Amount:      create.Amount,
		Description: create.Description,
		Frequency:   create.Frequency,
		NextDate:    create.NextDate,
		CategoryID:  nullUUIDFromPtr(create.CategoryID),
		EndDate:     nullTimeFromPtr(create.EndDate),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.Result, nil
}

// GetRule retrieves a rule belonging to the workspace.
func (s *RuleService) GetRule(ctx context.Context, workspaceID, userID, ruleID uuid.UUID) (*RecurringRule, error) {
	row, err := s.requireWorkspaceRule(ctx, workspaceID, userID, ruleID)
	if err != nil {
		return nil, err
	}
	rule := ruleFromStorage(row)
	return &rule, nil
}

// ListRules returns a page of the workspace's rules using cursor pagination.
func (s *RuleService) ListRules(ctx context.Context, workspaceID, userID uuid.UUID, cursor *RuleCursor) ([]RecurringRule, *RuleCursor, error) {
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

	limit := defaultRuleLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.storage.RecurringRules.List(ctx, &recurringrule.RuleFilter{
		AccountIDs: accountIDs,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *RuleCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &RuleCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	rules := make([]RecurringRule, len(rows))
	for i, row := range rows {
		rules[i] = ruleFromStorage(row)
	}
	return rules, nextCursor, nil
}

// UpdateRule applies field edits to a rule in the workspace.
func (s *RuleService) UpdateRule(ctx context.Context, workspaceID, userID, ruleID uuid.UUID, update RuleUpdate) error {
	if _, err := s.requireWorkspaceRule(ctx, workspaceID, userID, ruleID); err != nil {
		return err
	}

	storageUpdate := recurringrule.RecurringRuleUpdate{
		Amount:      update.Amount,
		Description: update.Description,
		Frequency:   update.Frequency,
		IsActive:    update.IsActive,
	}
	if update.ClearEndDate {
		storageUpdate.EndDate = &sql.NullTime{}
	} else if update.EndDate != nil {
		storageUpdate.EndDate = &sql.NullTime{Time: *update.EndDate, Valid: true}
	}

	return s.operator.Process(ctx, &actions.UpdateRecurringRule{
		RuleID: ruleID,
		Update: storageUpdate,
	})
}

// DeleteRule removes a rule from the workspace. Transactions it generated
// are kept; only their provenance reference is nulled out.
func (s *RuleService) DeleteRule(ctx context.Context, workspaceID, userID, ruleID uuid.UUID) error {
	if _, err := s.requireWorkspaceRule(ctx, workspaceID, userID, ruleID); err != nil {
		return err
	}
	return s.operator.Process(ctx, &actions.DeleteRecurringRule{RuleID: ruleID})
}

// SkipNext advances the rule's cursor one period without generating a
// transaction, and returns the new cursor date.
func (s *RuleService) SkipNext(ctx context.Context, workspaceID, userID, ruleID uuid.UUID) (time.Time, error) {
	if _, err := s.requireWorkspaceRule(ctx, workspaceID, userID, ruleID); err != nil {
		return time.Time{}, err
	}

	action := &actions.SkipNextOccurrence{RuleID: ruleID}
	if err := s.operator.Process(ctx, action); err != nil {
		return time.Time{}, err
	}
	return action.Result, nil
}

// requireWorkspaceRule checks membership, then resolves the rule and
// confirms its account belongs to the workspace.
func (s *RuleService) requireWorkspaceRule(ctx context.Context, workspaceID, userID, ruleID uuid.UUID) (*recurringrule.RecurringRule, error) {
	if err := requireMembership(ctx, s.storage, workspaceID, userID); err != nil {
		return nil, err
	}

	rule, err := s.storage.RecurringRules.FindByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrNotFound
	}
	if _, err := requireWorkspaceAccount(ctx, s.storage, workspaceID, rule.AccountID); err != nil {
		return nil, err
	}
	return rule, nil
}
