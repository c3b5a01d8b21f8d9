package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/workspace-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/workspace-server/internal/handlers/v1/identity"
	"github.com/carson-networks/workspace-server/internal/logging"
	"github.com/carson-networks/workspace-server/internal/schedule"
	"github.com/carson-networks/workspace-server/internal/service"
)

// CreateRuleBody is the request body for creating a recurring rule.
type CreateRuleBody struct {
	AccountID   string `json:"accountID" required:"true" format:"uuid" doc:"Account UUID"`
	Amount      string `json:"amount" required:"true" doc:"Decimal amount applied to each generated transaction"`
	Description string `json:"description" required:"true" minLength:"1" doc:"Name applied to each generated transaction"`
	Frequency   string `json:"frequency" required:"true" enum:"daily,weekly,biweekly,monthly,quarterly,yearly" doc:"Occurrence frequency"`
	NextDate    string `json:"nextDate" required:"true" doc:"First occurrence date (YYYY-MM-DD)"`
	CategoryID  string `json:"categoryID,omitempty" format:"uuid" doc:"Category UUID applied to generated transactions"`
	EndDate     string `json:"endDate,omitempty" doc:"Last date an occurrence may fall on (YYYY-MM-DD)"`
}

// CreateRuleInput is the Huma input for creating a recurring rule.
type CreateRuleInput struct {
	identity.Identity
	Body CreateRuleBody
}

// CreateRuleResponse is the response body for creating a recurring rule.
type CreateRuleResponse struct {
	ID string `json:"id" doc:"Created rule UUID"`
}

// CreateRuleOutput is the Huma output for creating a recurring rule.
type CreateRuleOutput struct {
	Status int
	Body   CreateRuleResponse
}

// ruleCreator is the interface for creating recurring rules.
type ruleCreator interface {
	CreateRule(ctx context.Context, workspaceID, userID uuid.UUID, create service.RuleCreate) (uuid.UUID, error)
}

// CreateRuleHandler handles POST /v1/recurring.
type CreateRuleHandler struct {
	RuleService ruleCreator
}

// NewCreateRuleHandler creates a new CreateRuleHandler.
func NewCreateRuleHandler(svc ruleCreator) *CreateRuleHandler {
	return &CreateRuleHandler{RuleService: svc}
}

// Register registers the create rule endpoint with the Huma API.
func (h *CreateRuleHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-recurring-rule",
		Method:      http.MethodPost,
		Path:        "/v1/recurring",
		Summary:     "Create recurring rule",
		Description: "Creates a recurring rule on an account in the workspace. The rule starts generating at nextDate.",
		Tags:        []string{"Recurring"},
	}, h.handle)
}

func parseCreateRuleInput(input *CreateRuleInput) (service.RuleCreate, error) {
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return service.RuleCreate{}, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}

	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.RuleCreate{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	frequency, err := schedule.ParseFrequency(input.Body.Frequency)
	if err != nil {
		return service.RuleCreate{}, huma.NewError(http.StatusBadRequest, "invalid frequency", err)
	}

	nextDate, err := schedule.ParseDate(input.Body.NextDate)
	if err != nil {
		return service.RuleCreate{}, huma.NewError(http.StatusBadRequest, "invalid nextDate", err)
	}

	var categoryID *uuid.UUID
	if input.Body.CategoryID != "" {
		parsed, err := uuid.FromString(input.Body.CategoryID)
		if err != nil {
			return service.RuleCreate{}, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
		}
		categoryID = &parsed
	}

	create := service.RuleCreate{
		AccountID:   accountID,
		Amount:      amount,
		Description: input.Body.Description,
		Frequency:   frequency,
		NextDate:    nextDate,
		CategoryID:  categoryID,
	}

	if input.Body.EndDate != "" {
		endDate, err := schedule.ParseDate(input.Body.EndDate)
		if err != nil {
			return service.RuleCreate{}, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
		}
		create.EndDate = &endDate
	}

	return create, nil
}

func (h *CreateRuleHandler) handle(ctx context.Context, input *CreateRuleInput) (*CreateRuleOutput, error) {
	logData := logging.GetLogData(ctx)

	workspaceID, userID, err := input.Identity.Parse()
	if err != nil {
		return nil, err
	}
	create, err := parseCreateRuleInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createRuleMs")
	}
	id, err := h.RuleService.CreateRule(ctx, workspaceID, userID, create)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromService(err, "failed to create recurring rule")
	}

	if logData != nil {
		logData.AddData("ruleID", id.String())
	}

	return &CreateRuleOutput{
		Status: http.StatusCreated,
		Body:   CreateRuleResponse{ID: id.String()},
	}, nil
}
