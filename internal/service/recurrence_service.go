package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/workspace-server/internal/schedule"
	"github.com/carson-networks/workspace-server/internal/storage"
	"github.com/carson-networks/workspace-server/internal/storage/recurringrule"
	"github.com/carson-networks/workspace-server/internal/storage/transaction"
)

// RecurrenceService advances recurring-rule schedules and materializes due
// transactions. Each rule's next_date is a cursor pointing at the earliest
// occurrence not yet discharged; a generate run walks it forward one period
// at a time and leaves it strictly past every date it materialized.
type RecurrenceService struct {
	storage *storage.Storage
}

// NewRecurrenceService creates a new RecurrenceService.
func NewRecurrenceService(store *storage.Storage) *RecurrenceService {
	return &RecurrenceService{storage: store}
}

// GenerateTransactions discharges every due occurrence of every active rule
// in the workspace, producing one transaction per occurrence with date <= upTo.
//
// Occurrence inserts are deliberately independent statements rather than one
// transaction: a single failed insert is logged and skipped, and the rule's
// cursor still advances past it, so generation is best-effort per occurrence.
// The cursor write is a compare-and-swap; when a concurrent run already moved
// it the rule is left alone and the run continues with the remaining rules.
func (s *RecurrenceService) GenerateTransactions(ctx context.Context, workspaceID, userID uuid.UUID, upTo time.Time) (*GenerateResult, error) {
	if err := requireMembership(ctx, s.storage, workspaceID, userID); err != nil {
		return nil, err
	}

	accountIDs, err := s.storage.Accounts.ListIDs(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("loading workspace accounts: %w", err)
	}

	result := &GenerateResult{
		Generated: []GeneratedTransaction{},
		UpToDate:  upTo,
	}

	// A workspace with no accounts has nothing due. Normal outcome, not an error.
	if len(accountIDs) == 0 {
		return result, nil
	}

	rules, err := s.storage.RecurringRules.ListDue(ctx, accountIDs, upTo)
	if err != nil {
		return nil, fmt.Errorf("loading due recurring rules: %w", err)
	}

	for _, rule := range rules {
		currentDate := rule.NextDate
		for {
			// The end-date check runs first: a rule whose end date already
			// passed parks its cursor at the first out-of-range occurrence
			// and never produces anything again.
			if rule.EndDate.Valid && currentDate.After(rule.EndDate.Time) {
				break
			}
			if currentDate.After(upTo) {
				break
			}

			transactionID, err := s.storage.Transactions.Insert(ctx, &transaction.TransactionCreate{
				AccountID:       rule.AccountID,
				CategoryID:      rule.CategoryID,
				Amount:          rule.Amount,
				TransactionName: rule.Description,
				TransactionDate: currentDate,
				RecurringRuleID: uuid.NullUUID{UUID: rule.ID, Valid: true},
			})
			if err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"ruleID":         rule.ID,
					"occurrenceDate": schedule.FormatDate(currentDate),
				}).Warn("RecurrenceService.GenerateTransactions.insert skipped")
			} else {
				result.Generated = append(result.Generated, GeneratedTransaction{
					RuleID:        rule.ID,
					TransactionID: transactionID,
					Date:          currentDate,
					Amount:        rule.Amount,
					Description:   rule.Description,
				})
			}

			currentDate = rule.Frequency.Advance(currentDate)
		}

		// Persist the cursor even when nothing was generated, so repeated
		// no-op runs cannot drift the schedule.
		if err := s.storage.RecurringRules.UpdateNextDate(ctx, rule.ID, rule.NextDate, currentDate); err != nil {
			if errors.Is(err, recurringrule.ErrCursorMoved) {
				logrus.WithField("ruleID", rule.ID).
					Warn("RecurrenceService.GenerateTransactions.cursor moved by concurrent run")
				continue
			}
			logrus.WithError(err).WithField("ruleID", rule.ID).
				Error("RecurrenceService.GenerateTransactions.cursor update failed")
		}
	}

	result.Count = len(result.Generated)
	return result, nil
}
