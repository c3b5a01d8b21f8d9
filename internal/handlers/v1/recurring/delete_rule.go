package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/workspace-server/internal/handlers/v1/identity"
)

// DeleteRuleInput is the Huma input for deleting a recurring rule.
type DeleteRuleInput struct {
	identity.Identity
	ID string `path:"id" format:"uuid" doc:"Rule UUID"`
}

// DeleteRuleOutput is the Huma output for deleting a recurring rule.
type DeleteRuleOutput struct {
	Status int
}

// ruleDeleter is the interface for deleting recurring rules.
type ruleDeleter interface {
	DeleteRule(ctx context.Context, workspaceID, userID, ruleID uuid.UUID) error
}

// DeleteRuleHandler handles DELETE /v1/recurring/{id}.
type DeleteRuleHandler struct {
	RuleService ruleDeleter
}

// NewDeleteRuleHandler creates a new DeleteRuleHandler.
func NewDeleteRuleHandler(svc ruleDeleter) *DeleteRuleHandler {
	return &DeleteRuleHandler{RuleService: svc}
}

// Register registers the delete rule endpoint with the Huma API.
func (h *DeleteRuleHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-recurring-rule",
		Method:      http.MethodDelete,
		Path:        "/v1/recurring/{id}",
		Summary:     "Delete recurring rule",
		Description: "Deletes a recurring rule. Transactions it generated are kept with their rule reference cleared.",
		Tags:        []string{"Recurring"},
	}, h.handle)
}

func (h *DeleteRuleHandler) handle(ctx context.Context, input *DeleteRuleInput) (*DeleteRuleOutput, error) {
	workspaceID, userID, err := input.Identity.Parse()
	if err != nil {
		return nil, err
	}
	ruleID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid rule id", err)
	}

	if err := h.RuleService.DeleteRule(ctx, workspaceID, userID, ruleID); err != nil {
		return nil, apierror.FromService(err, "failed to delete recurring rule")
	}

	return &DeleteRuleOutput{Status: http.StatusNoContent}, nil
}
