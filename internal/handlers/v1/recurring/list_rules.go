package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/workspace-server/internal/handlers/v1/identity"
	"github.com/carson-networks/workspace-server/internal/logging"
	"github.com/carson-networks/workspace-server/internal/service"
)

// ListRulesCursor represents a pagination cursor in request and response bodies.
type ListRulesCursor struct {
	Position int `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
}

// ListRulesBody is the request body for listing recurring rules.
type ListRulesBody struct {
	Cursor *ListRulesCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListRulesInput is the Huma input for listing recurring rules.
type ListRulesInput struct {
	identity.Identity
	Body ListRulesBody
}

// ListRulesResponseBody is the response body for listing recurring rules.
type ListRulesResponseBody struct {
	Rules      []Rule           `json:"rules" doc:"Page of recurring rules"`
	NextCursor *ListRulesCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListRulesOutput is the Huma output for listing recurring rules.
type ListRulesOutput struct {
	Body ListRulesResponseBody
}

// ruleLister is the interface for listing recurring rules.
type ruleLister interface {
	ListRules(ctx context.Context, workspaceID, userID uuid.UUID, cursor *service.RuleCursor) ([]service.RecurringRule, *service.RuleCursor, error)
}

// ListRulesHandler handles POST /v1/recurring/list.
type ListRulesHandler struct {
	RuleService ruleLister
}

// NewListRulesHandler creates a new ListRulesHandler.
func NewListRulesHandler(svc ruleLister) *ListRulesHandler {
	return &ListRulesHandler{RuleService: svc}
}

// Register registers the list rules endpoint with the Huma API.
func (h *ListRulesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-recurring-rules",
		Method:      http.MethodPost,
		Path:        "/v1/recurring/list",
		Summary:     "List recurring rules",
		Description: "Returns a paginated list of the workspace's recurring rules using cursor-based pagination.",
		Tags:        []string{"Recurring"},
	}, h.handle)
}

func (h *ListRulesHandler) handle(ctx context.Context, input *ListRulesInput) (*ListRulesOutput, error) {
	logData := logging.GetLogData(ctx)

	workspaceID, userID, err := input.Identity.Parse()
	if err != nil {
		return nil, err
	}

	var requestCursor *service.RuleCursor
	if input.Body.Cursor != nil {
		requestCursor = &service.RuleCursor{
			Position: input.Body.Cursor.Position,
			Limit:    input.Body.Cursor.Limit,
		}
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listRulesMs")
	}
	rules, nextCursor, err := h.RuleService.ListRules(ctx, workspaceID, userID, requestCursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromService(err, "failed to list recurring rules")
	}

	if logData != nil {
		logData.AddData("ruleCount", len(rules))
	}

	resp := ListRulesResponseBody{
		Rules: make([]Rule, len(rules)),
	}
	for i, rule := range rules {
		resp.Rules[i] = ruleFromService(rule)
	}

	if nextCursor != nil {
		resp.NextCursor = &ListRulesCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}

	return &ListRulesOutput{Body: resp}, nil
}
