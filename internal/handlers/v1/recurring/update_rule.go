package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/workspace-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/workspace-server/internal/handlers/v1/identity"
	"github.com/carson-networks/workspace-server/internal/schedule"
	"github.com/carson-networks/workspace-server/internal/service"
)

// UpdateRuleBody carries optional rule edits. Absent fields are untouched.
// The schedule cursor (nextDate) cannot be edited here; use the skip
// endpoint to advance it.
type UpdateRuleBody struct {
	Amount       *string `json:"amount,omitempty" doc:"New decimal amount"`
	Description  *string `json:"description,omitempty" minLength:"1" doc:"New description"`
	Frequency    *string `json:"frequency,omitempty" enum:"daily,weekly,biweekly,monthly,quarterly,yearly" doc:"New frequency"`
	EndDate      *string `json:"endDate,omitempty" doc:"New end date (YYYY-MM-DD)"`
	ClearEndDate bool    `json:"clearEndDate,omitempty" doc:"Remove the end date; ignored when endDate is set"`
	IsActive     *bool   `json:"isActive,omitempty" doc:"Pause or resume generation"`
}

// UpdateRuleInput is the Huma input for updating a recurring rule.
type UpdateRuleInput struct {
	identity.Identity
	ID   string `path:"id" format:"uuid" doc:"Rule UUID"`
	Body UpdateRuleBody
}

// UpdateRuleOutput is the Huma output for updating a recurring rule.
type UpdateRuleOutput struct {
	Status int
}

// ruleUpdater is the interface for updating recurring rules.
type ruleUpdater interface {
	UpdateRule(ctx context.Context, workspaceID, userID, ruleID uuid.UUID, update service.RuleUpdate) error
}

// UpdateRuleHandler handles PATCH /v1/recurring/{id}.
type UpdateRuleHandler struct {
	RuleService ruleUpdater
}

// NewUpdateRuleHandler creates a new UpdateRuleHandler.
func NewUpdateRuleHandler(svc ruleUpdater) *UpdateRuleHandler {
	return &UpdateRuleHandler{RuleService: svc}
}

// Register registers the update rule endpoint with the Huma API.
func (h *UpdateRuleHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-recurring-rule",
		Method:      http.MethodPatch,
		Path:        "/v1/recurring/{id}",
		Summary:     "Update recurring rule",
		Description: "Applies partial edits to a recurring rule in the workspace.",
		Tags:        []string{"Recurring"},
	}, h.handle)
}

func parseUpdateRuleInput(input *UpdateRuleInput) (service.RuleUpdate, error) {
	update := service.RuleUpdate{
		Description:  input.Body.Description,
		ClearEndDate: input.Body.ClearEndDate,
		IsActive:     input.Body.IsActive,
	}

	if input.Body.Amount != nil {
		amount, err := decimal.NewFromString(*input.Body.Amount)
		if err != nil {
			return service.RuleUpdate{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
		update.Amount = &amount
	}

	if input.Body.Frequency != nil {
		frequency, err := schedule.ParseFrequency(*input.Body.Frequency)
		if err != nil {
			return service.RuleUpdate{}, huma.NewError(http.StatusBadRequest, "invalid frequency", err)
		}
		update.Frequency = &frequency
	}

	if input.Body.EndDate != nil {
		endDate, err := schedule.ParseDate(*input.Body.EndDate)
		if err != nil {
			return service.RuleUpdate{}, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
		}
		update.EndDate = &endDate
		update.ClearEndDate = false
	}

	return update, nil
}

func (h *UpdateRuleHandler) handle(ctx context.Context, input *UpdateRuleInput) (*UpdateRuleOutput, error) {
	workspaceID, userID, err := input.Identity.Parse()
	if err != nil {
		return nil, err
	}
	ruleID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid rule id", err)
	}
	update, err := parseUpdateRuleInput(input)
	if err != nil {
		return nil, err
	}

	if err := h.RuleService.UpdateRule(ctx, workspaceID, userID, ruleID, update); err != nil {
		return nil, apierror.FromService(err, "failed to update recurring rule")
	}

	return &UpdateRuleOutput{Status: http.StatusNoContent}, nil
}
