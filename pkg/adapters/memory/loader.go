package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/flowguard/pkg/domain"
)

// NewFromFlows creates a Store pre-populated with the given flows.
// This improves DX for tests and demos.
func NewFromFlows(flows ...*domain.Flow) (*Store, error) {
	s := NewStore()
	for _, f := range flows {
		if f == nil || f.ID == "" {
			return nil, fmt.Errorf("flow missing ID")
		}
		if err := s.Save(context.Background(), f); err != nil {
			return nil, fmt.Errorf("failed to store flow %s: %w", f.ID, err)
		}
	}
	return s, nil
}

func cloneFlow(f *domain.Flow) *domain.Flow {
	return f.Clone()
}
