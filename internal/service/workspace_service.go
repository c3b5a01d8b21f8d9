package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/workspace-server/internal/operator/actions"
	"github.com/carson-networks/workspace-server/internal/storage"
)

// WorkspaceService handles workspace lifecycle.
type WorkspaceService struct {
	storage  *storage.Storage
	operator actionProcessor
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(store *storage.Storage, operator actionProcessor) *WorkspaceService {
	return &WorkspaceService{storage: store, operator: operator}
}

// CreateWorkspace creates a workspace with the caller as its owner.
func (s *WorkspaceService) CreateWorkspace(ctx context.Context, userID uuid.UUID, name string) (uuid.UUID, error) {
	action := &actions.CreateWorkspace{
		Name:    name,
		OwnerID: userID,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.Result, nil
}
