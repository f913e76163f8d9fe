package ports

import (
	"context"

	"github.com/aretw0/flowguard/pkg/domain"
)

// FlowLoader defines how flows are retrieved for validation.
// This allows the storage layer (Loam, FS, Memory, Redis) to be decoupled.
type FlowLoader interface {
	// Load retrieves a flow by ID.
	// Returns domain.ErrFlowNotFound if the flow does not exist.
	Load(ctx context.Context, id string) (*domain.Flow, error)

	// List returns the IDs of all available flows, in a deterministic order.
	List(ctx context.Context) ([]string, error)
}
