// Package apierror maps service-layer errors onto HTTP status errors.
package apierror

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/workspace-server/internal/service"
)

// FromService converts a service error into a Huma status error. Access
// failures become 403, missing resources 404, everything else a 500 with
// the given message.
func FromService(err error, message string) error {
	switch {
	case errors.Is(err, service.ErrAccessDenied):
		return huma.NewError(http.StatusForbidden, "access denied")
	case errors.Is(err, service.ErrNotFound):
		return huma.NewError(http.StatusNotFound, "not found")
	default:
		return huma.NewError(http.StatusInternalServerError, message, err)
	}
}
