package recurring

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/workspace-server/internal/handlers/v1/identity"
	"github.com/carson-networks/workspace-server/internal/schedule"
)

// SkipNextInput is the Huma input for skipping a rule's next occurrence.
type SkipNextInput struct {
	identity.Identity
	ID string `path:"id" format:"uuid" doc:"Rule UUID"`
}

// SkipNextResponse is the response body for skipping the next occurrence.
type SkipNextResponse struct {
	NextDate string `json:"nextDate" doc:"New next occurrence date after the skip (YYYY-MM-DD)"`
}

// SkipNextOutput is the Huma output for skipping the next occurrence.
type SkipNextOutput struct {
	Body SkipNextResponse
}

// ruleSkipper is the interface for skipping a rule's next occurrence.
type ruleSkipper interface {
	SkipNext(ctx context.Context, workspaceID, userID, ruleID uuid.UUID) (time.Time, error)
}

// SkipNextHandler handles POST /v1/recurring/{id}/skip.
type SkipNextHandler struct {
	RuleService ruleSkipper
}

// NewSkipNextHandler creates a new SkipNextHandler.
func NewSkipNextHandler(svc ruleSkipper) *SkipNextHandler {
	return &SkipNextHandler{RuleService: svc}
}

// Register registers the skip endpoint with the Huma API.
func (h *SkipNextHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "skip-next-occurrence",
		Method:      http.MethodPost,
		Path:        "/v1/recurring/{id}/skip",
		Summary:     "Skip next occurrence",
		Description: "Advances the rule's schedule one period without generating a transaction.",
		Tags:        []string{"Recurring"},
	}, h.handle)
}

func (h *SkipNextHandler) handle(ctx context.Context, input *SkipNextInput) (*SkipNextOutput, error) {
	workspaceID, userID, err := input.Identity.Parse()
	if err != nil {
		return nil, err
	}
	ruleID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid rule id", err)
	}

	nextDate, err := h.RuleService.SkipNext(ctx, workspaceID, userID, ruleID)
	if err != nil {
		return nil, apierror.FromService(err, "failed to skip next occurrence")
	}

	return &SkipNextOutput{
		Body: SkipNextResponse{NextDate: schedule.FormatDate(nextDate)},
	}, nil
}
