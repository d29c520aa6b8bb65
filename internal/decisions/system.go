package decisions

import (
	"context"

	"github.com/google/uuid"

	"github.com/llmaniac/beacon/pkg/pagination"
)

// System defines the public contract for decision domain operations.
type System interface {
	Handler() *Handler

	Record(ctx context.Context, cmd RecordCommand) (*Decision, error)
	Find(ctx context.Context, id uuid.UUID) (*Decision, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Decision], error)
}
