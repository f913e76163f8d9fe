package ports

import (
	"context"

	"github.com/aretw0/flowguard/pkg/domain"
)

// FlowStore persists flows together with their activation status.
type FlowStore interface {
	FlowLoader

	// Save persists the flow. New flows start as domain.StatusDraft;
	// saving an existing flow keeps its status.
	Save(ctx context.Context, flow *domain.Flow) error

	// Delete removes the flow and its status.
	Delete(ctx context.Context, id string) error

	// SetStatus changes the activation status of an existing flow.
	// Returns domain.ErrFlowNotFound if the flow does not exist.
	SetStatus(ctx context.Context, id string, status domain.FlowStatus) error

	// Status returns the activation status of a flow.
	Status(ctx context.Context, id string) (domain.FlowStatus, error)
}

// ReportStore persists validation reports.
type ReportStore interface {
	// SaveReport records a report, replacing the previous one of the same flow as "latest".
	SaveReport(ctx context.Context, report domain.Report) error

	// LatestReport returns the most recent report of a flow.
	// Returns domain.ErrReportNotFound if the flow was never validated.
	LatestReport(ctx context.Context, flowID string) (domain.Report, error)
}
