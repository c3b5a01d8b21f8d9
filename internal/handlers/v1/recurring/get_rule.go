package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/workspace-server/internal/handlers/v1/identity"
	"github.com/carson-networks/workspace-server/internal/service"
)

// GetRuleInput is the Huma input for fetching a recurring rule.
type GetRuleInput struct {
	identity.Identity
	ID string `path:"id" format:"uuid" doc:"Rule UUID"`
}

// GetRuleOutput is the Huma output for fetching a recurring rule.
type GetRuleOutput struct {
	Body Rule
}

// ruleGetter is the interface for fetching recurring rules.
type ruleGetter interface {
	GetRule(ctx context.Context, workspaceID, userID, ruleID uuid.UUID) (*service.RecurringRule, error)
}

// GetRuleHandler handles GET /v1/recurring/{id}.
type GetRuleHandler struct {
	RuleService ruleGetter
}

// NewGetRuleHandler creates a new GetRuleHandler.
func NewGetRuleHandler(svc ruleGetter) *GetRuleHandler {
	return &GetRuleHandler{RuleService: svc}
}

// Register registers the get rule endpoint with the Huma API.
func (h *GetRuleHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-recurring-rule",
		Method:      http.MethodGet,
		Path:        "/v1/recurring/{id}",
		Summary:     "Get recurring rule",
		Description: "Returns a single recurring rule in the workspace.",
		Tags:        []string{"Recurring"},
	}, h.handle)
}

func (h *GetRuleHandler) handle(ctx context.Context, input *GetRuleInput) (*GetRuleOutput, error) {
	workspaceID, userID, err := input.Identity.Parse()
	if err != nil {
		return nil, err
	}
	ruleID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid rule id", err)
	}

	rule, err := h.RuleService.GetRule(ctx, workspaceID, userID, ruleID)
	if err != nil {
		return nil, apierror.FromService(err, "failed to load recurring rule")
	}

	return &GetRuleOutput{Body: ruleFromService(*rule)}, nil
}
