package recurring

import (
	"github.com/carson-networks/workspace-server/internal/schedule"
	"github.com/carson-networks/workspace-server/internal/service"
)

// Rule is the API response model for a recurring rule.
type Rule struct {
	ID          string `json:"id" doc:"Rule UUID"`
	AccountID   string `json:"accountID" doc:"Account UUID"`
	Amount      string `json:"amount" doc:"Decimal amount applied to each generated transaction"`
	Description string `json:"description" doc:"Name applied to each generated transaction"`
	Frequency   string `json:"frequency" doc:"One of daily, weekly, biweekly, monthly, quarterly, yearly"`
	NextDate    string `json:"nextDate" doc:"Earliest occurrence not yet generated (YYYY-MM-DD)"`
	CategoryID  string `json:"categoryID,omitempty" doc:"Category UUID"`
	EndDate     string `json:"endDate,omitempty" doc:"Last date an occurrence may fall on (YYYY-MM-DD)"`
	IsActive    bool   `json:"isActive" doc:"Whether the rule participates in generation"`
}

func ruleFromService(rule service.RecurringRule) Rule {
	out := Rule{
		ID:          rule.ID.String(),
		AccountID:   rule.AccountID.String(),
		Amount:      rule.Amount.String(),
		Description: rule.Description,
		Frequency:   rule.Frequency.String(),
		NextDate:    schedule.FormatDate(rule.NextDate),
		IsActive:    rule.IsActive,
	}
	if rule.CategoryID != nil {
		out.CategoryID = rule.CategoryID.String()
	}
	if rule.EndDate != nil {
		out.EndDate = schedule.FormatDate(*rule.EndDate)
	}
	return out
}
