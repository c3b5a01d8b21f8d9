package workspace

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/handlers/v1/identity"
	"github.com/carson-networks/workspace-server/internal/logging"
)

// CreateWorkspaceBody is the request body for creating a workspace.
type CreateWorkspaceBody struct {
	Name string `json:"name" minLength:"1" doc:"Workspace name"`
}

// CreateWorkspaceInput is the Huma input for creating a workspace.
type CreateWorkspaceInput struct {
	identity.Actor
	Body CreateWorkspaceBody
}

// CreateWorkspaceResponse is the response body for creating a workspace.
type CreateWorkspaceResponse struct {
	ID string `json:"id" doc:"Created workspace UUID"`
}

// CreateWorkspaceOutput is the response for creating a workspace.
type CreateWorkspaceOutput struct {
	Status int
	Body   CreateWorkspaceResponse
}

// workspaceCreator is the interface for creating workspaces.
type workspaceCreator interface {
	CreateWorkspace(ctx context.Context, userID uuid.UUID, name string) (uuid.UUID, error)
}

// CreateWorkspaceHandler handles POST /v1/workspace.
type CreateWorkspaceHandler struct {
	WorkspaceService workspaceCreator
}

// NewCreateWorkspaceHandler creates a new CreateWorkspaceHandler.
func NewCreateWorkspaceHandler(svc workspaceCreator) *CreateWorkspaceHandler {
	return &CreateWorkspaceHandler{WorkspaceService: svc}
}

// Register registers the create workspace endpoint with the Huma API.
func (h *CreateWorkspaceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-workspace",
		Method:      http.MethodPost,
		Path:        "/v1/workspace",
		Summary:     "Create a workspace",
		Description: "Creates a new workspace with the caller as its owner.",
		Tags:        []string{"Workspaces"},
	}, h.handle)
}

func (h *CreateWorkspaceHandler) handle(ctx context.Context, input *CreateWorkspaceInput) (*CreateWorkspaceOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := input.Actor.Parse()
	if err != nil {
		return nil, err
	}

	id, err := h.WorkspaceService.CreateWorkspace(ctx, userID, input.Body.Name)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create workspace", err)
	}

	if logData != nil {
		logData.AddData("workspaceID", id.String())
	}

	return &CreateWorkspaceOutput{
		Status: http.StatusCreated,
		Body:   CreateWorkspaceResponse{ID: id.String()},
	}, nil
}
