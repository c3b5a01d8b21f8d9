package recurring

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/workspace-server/internal/handlers/v1/identity"
	"github.com/carson-networks/workspace-server/internal/logging"
	"github.com/carson-networks/workspace-server/internal/schedule"
	"github.com/carson-networks/workspace-server/internal/service"
)

// GenerateBody is the request body for a generation run.
type GenerateBody struct {
	UpToDate string `json:"upToDate,omitempty" doc:"Generate occurrences dated on or before this date (YYYY-MM-DD), defaults to today"`
}

// GenerateInput is the Huma input for a generation run.
type GenerateInput struct {
	identity.Identity
	Body GenerateBody
}

// GeneratedTransaction is the API model for one materialized occurrence.
type GeneratedTransaction struct {
	RuleID        string `json:"ruleID" doc:"Source rule UUID"`
	TransactionID string `json:"transactionID" doc:"Created transaction UUID"`
	Date          string `json:"date" doc:"Occurrence date (YYYY-MM-DD)"`
	Amount        string `json:"amount" doc:"Decimal amount"`
	Description   string `json:"description" doc:"Transaction name"`
}

// GenerateResponseBody is the response body for a generation run. Count may
// be lower than the number of theoretically due occurrences when individual
// inserts failed; generation is best-effort per occurrence.
type GenerateResponseBody struct {
	Message   string                 `json:"message" doc:"Human-readable summary of the run"`
	Generated []GeneratedTransaction `json:"generated" doc:"Transactions materialized by this run"`
	Count     int                    `json:"count" doc:"Number of transactions generated"`
	UpToDate  string                 `json:"upToDate" doc:"Date bound the run used (YYYY-MM-DD)"`
}

// GenerateOutput is the Huma output for a generation run.
type GenerateOutput struct {
	Body GenerateResponseBody
}

// transactionGenerator is the interface for running the recurrence engine.
type transactionGenerator interface {
	GenerateTransactions(ctx context.Context, workspaceID, userID uuid.UUID, upTo time.Time) (*service.GenerateResult, error)
}

// GenerateHandler handles POST /v1/recurring/generate.
type GenerateHandler struct {
	RecurrenceService transactionGenerator
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(svc transactionGenerator) *GenerateHandler {
	return &GenerateHandler{RecurrenceService: svc}
}

// Register registers the generate endpoint with the Huma API.
func (h *GenerateHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "generate-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/recurring/generate",
		Summary:     "Generate due transactions",
		Description: "Materializes one transaction per due occurrence of every active recurring rule in the workspace, advancing each rule's schedule past the dates it produced.",
		Tags:        []string{"Recurring"},
	}, h.handle)
}

func (h *GenerateHandler) handle(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	logData := logging.GetLogData(ctx)

	workspaceID, userID, err := input.Identity.Parse()
	if err != nil {
		return nil, err
	}

	upTo := time.Now().UTC().Truncate(24 * time.Hour)
	if input.Body.UpToDate != "" {
		upTo, err = schedule.ParseDate(input.Body.UpToDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid upToDate", err)
		}
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("generateTransactionsMs")
	}
	result, err := h.RecurrenceService.GenerateTransactions(ctx, workspaceID, userID, upTo)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromService(err, "failed to generate transactions")
	}

	if logData != nil {
		logData.AddData("generatedCount", result.Count)
	}

	resp := GenerateResponseBody{
		Message:   fmt.Sprintf("generated %d transactions", result.Count),
		Generated: make([]GeneratedTransaction, len(result.Generated)),
		Count:     result.Count,
		UpToDate:  schedule.FormatDate(result.UpToDate),
	}
	for i, generated := range result.Generated {
		resp.Generated[i] = GeneratedTransaction{
			RuleID:        generated.RuleID.String(),
			TransactionID: generated.TransactionID.String(),
			Date:          schedule.FormatDate(generated.Date),
			Amount:        generated.Amount.String(),
			Description:   generated.Description,
		}
	}

	return &GenerateOutput{Body: resp}, nil
}
