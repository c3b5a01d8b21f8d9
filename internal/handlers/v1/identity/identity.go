// Package identity holds the request headers that identify the caller.
// Handlers embed these structs in their Huma inputs.
package identity

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

// Actor identifies the acting user on endpoints that are not scoped to a
// workspace.
type Actor struct {
	UserID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Acting user UUID"`
}

// Parse validates the user header and returns the parsed ID.
func (a Actor) Parse() (uuid.UUID, error) {
	userID, err := uuid.FromString(a.UserID)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid X-User-ID header", err)
	}
	return userID, nil
}

// Identity identifies the acting user and the target workspace. Every
// workspace-scoped endpoint requires both headers.
type Identity struct {
	UserID      string `header:"X-User-ID" required:"true" format:"uuid" doc:"Acting user UUID"`
	WorkspaceID string `header:"X-Workspace-ID" required:"true" format:"uuid" doc:"Workspace UUID"`
}

// Parse validates both headers and returns the parsed IDs.
func (id Identity) Parse() (workspaceID, userID uuid.UUID, err error) {
	userID, err = uuid.FromString(id.UserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid X-User-ID header", err)
	}
	workspaceID, err = uuid.FromString(id.WorkspaceID)
	if err != nil {
		return uuid.Nil, uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid X-Workspace-ID header", err)
	}
	return workspaceID, userID, nil
}
