package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/flowguard/pkg/domain"
)

type entry struct {
	flow   *domain.Flow
	status domain.FlowStatus
}

// Store implements ports.FlowStore and ports.ReportStore in memory.
// Safe for concurrent use.
type Store struct {
	flows   map[string]entry
	reports map[string]domain.Report
	mu      sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		flows:   make(map[string]entry),
		reports: make(map[string]domain.Report),
	}
}

// Save persists a copy of the flow. New flows start as drafts.
func (s *Store) Save(ctx context.Context, flow *domain.Flow) error {
	if err := flow.CheckContract(); err != nil {
		return err
	}
	copied := cloneFlow(flow)

	s.mu.Lock()
	defer s.mu.Unlock()

	status := domain.StatusDraft
	if prev, ok := s.flows[flow.ID]; ok {
		status = prev.status
	}
	s.flows[flow.ID] = entry{flow: copied, status: status}
	return nil
}

// Load retrieves a copy of the flow, so callers can't mutate the store through the pointer.
func (s *Store) Load(ctx context.Context, id string) (*domain.Flow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.flows[id]
	if !ok {
		return nil, domain.ErrFlowNotFound
	}
	return cloneFlow(e.flow), nil
}

// List returns all flow IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.flows))
	for id := range s.flows {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order
	return ids, nil
}

// Delete removes the flow, its status and its report.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, id)
	delete(s.reports, id)
	return nil
}

// SetStatus changes the activation status of a stored flow.
func (s *Store) SetStatus(ctx context.Context, id string, status domain.FlowStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.flows[id]
	if !ok {
		return domain.ErrFlowNotFound
	}
	e.status = status
	s.flows[id] = e
	return nil
}

// Status returns the activation status of a stored flow.
func (s *Store) Status(ctx context.Context, id string) (domain.FlowStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.flows[id]
	if !ok {
		return "", domain.ErrFlowNotFound
	}
	return e.status, nil
}

// SaveReport records the latest report of a flow.
func (s *Store) SaveReport(ctx context.Context, report domain.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.FlowID] = report
	return nil
}

// LatestReport returns the latest report of a flow.
func (s *Store) LatestReport(ctx context.Context, flowID string) (domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[flowID]
	if !ok {
		return domain.Report{}, domain.ErrReportNotFound
	}
	return r, nil
}
