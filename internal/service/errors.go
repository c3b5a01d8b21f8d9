package service

import "errors"

var (
	// ErrAccessDenied means the acting user has no membership in the target
	// workspace. Nothing is processed when this is returned.
	ErrAccessDenied = errors.New("access to workspace denied")

	// ErrNotFound means the requested record does not exist in the target
	// workspace. Records in other workspaces report the same error.
	ErrNotFound = errors.New("record not found")
)
