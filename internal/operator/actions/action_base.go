package actions

import (
	"context"

	"github.com/carson-networks/workspace-server/internal/storage"
)

// IAction is a single unit of mutating work executed inside one database
// transaction. Perform must leave result fields populated on success.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
