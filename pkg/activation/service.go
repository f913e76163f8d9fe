// Package activation gates the status of stored flows behind validation.
//
// A flow may only become active when the validation engine reports no errors.
// Every check is persisted as a Report so editors can show the latest outcome.
package activation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/flowguard"
	"github.com/aretw0/flowguard/internal/logging"
	"github.com/aretw0/flowguard/pkg/domain"
	"github.com/aretw0/flowguard/pkg/ports"
)

// DefaultLockTTL bounds how long a publish may hold the per-flow lock.
const DefaultLockTTL = 10 * time.Second

// Service validates stored flows and changes their activation status.
type Service struct {
	flows     ports.FlowStore
	reports   ports.ReportStore
	validator *flowguard.Validator
	locker    ports.Locker
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithValidator sets the validator (defaults to flowguard.New()).
func WithValidator(v *flowguard.Validator) Option {
	return func(s *Service) {
		s.validator = v
	}
}

// WithLocker serializes publishes of the same flow across replicas.
func WithLocker(l ports.Locker) Option {
	return func(s *Service) {
		s.locker = l
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source of report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service over the given stores.
func NewService(flows ports.FlowStore, reports ports.ReportStore, opts ...Option) *Service {
	s := &Service{
		flows:   flows,
		reports: reports,
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		s.validator = flowguard.New(flowguard.WithLogger(s.logger))
	}
	return s
}

// Check validates a stored flow and records the report. The flow status is left untouched.
func (s *Service) Check(ctx context.Context, id string) (domain.Report, error) {
	flow, err := s.flows.Load(ctx, id)
	if err != nil {
		return domain.Report{}, err
	}

	res, err := s.validator.Validate(flow)
	if err != nil {
		return domain.Report{}, fmt.Errorf("flow %s: %w", id, err)
	}

	report := domain.Report{
		ID:        uuid.NewString(),
		FlowID:    id,
		Result:    res,
		CheckedAt: s.now().UTC(),
	}
	if err := s.reports.SaveReport(ctx, report); err != nil {
		return report, fmt.Errorf("failed to save report: %w", err)
	}
	return report, nil
}

// Publish validates the flow and marks it active.
// When the report carries errors the status is not changed and an *domain.ActivationError
// (matching domain.ErrFlowInvalid) is returned together with the report.
func (s *Service) Publish(ctx context.Context, id string) (domain.Report, error) {
	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, "publish:"+id, DefaultLockTTL)
		if err != nil {
			return domain.Report{}, fmt.Errorf("failed to lock flow %s: %w", id, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("failed to release publish lock", "flow_id", id, "err", err)
			}
		}()
	}

	report, err := s.Check(ctx, id)
	if err != nil {
		return report, err
	}

	if !report.Result.IsValid {
		s.logger.Info("publish refused", "flow_id", id, "errors", len(report.Result.Errors))
		return report, &domain.ActivationError{FlowID: id, Issues: report.Result.Errors}
	}

	if err := s.flows.SetStatus(ctx, id, domain.StatusActive); err != nil {
		return report, fmt.Errorf("failed to activate flow %s: %w", id, err)
	}
	s.logger.Info("flow published", "flow_id", id, "report_id", report.ID, "warnings", len(report.Result.Warnings))
	return report, nil
}

// Deactivate marks the flow inactive. It never needs validation.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	if err := s.flows.SetStatus(ctx, id, domain.StatusInactive); err != nil {
		return fmt.Errorf("failed to deactivate flow %s: %w", id, err)
	}
	s.logger.Info("flow deactivated", "flow_id", id)
	return nil
}

// Save stores the flow as given. An active flow that is edited into an invalid state
// is demoted to draft, so the store never holds an active flow with errors.
func (s *Service) Save(ctx context.Context, flow *domain.Flow) (domain.Report, error) {
	if err := s.flows.Save(ctx, flow); err != nil {
		return domain.Report{}, err
	}

	report, err := s.Check(ctx, flow.ID)
	if err != nil {
		return report, err
	}

	if !report.Result.IsValid {
		status, err := s.flows.Status(ctx, flow.ID)
		if err != nil {
			return report, err
		}
		if status == domain.StatusActive {
			if err := s.flows.SetStatus(ctx, flow.ID, domain.StatusDraft); err != nil {
				return report, fmt.Errorf("failed to demote flow %s: %w", flow.ID, err)
			}
			s.logger.Warn("active flow demoted to draft", "flow_id", flow.ID)
		}
	}
	return report, nil
}

// Delete removes a stored flow.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.flows.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete flow %s: %w", id, err)
	}
	s.logger.Info("flow deleted", "flow_id", id)
	return nil
}

// LatestReport returns the last recorded report of a flow.
func (s *Service) LatestReport(ctx context.Context, id string) (domain.Report, error) {
	return s.reports.LatestReport(ctx, id)
}

// Status returns the activation status of a flow.
func (s *Service) Status(ctx context.Context, id string) (domain.FlowStatus, error) {
	return s.flows.Status(ctx, id)
}

// Flows lists the stored flow IDs.
func (s *Service) Flows(ctx context.Context) ([]string, error) {
	return s.flows.List(ctx)
}

// Import copies every flow of a loader into the store, keeping existing statuses.
func (s *Service) Import(ctx context.Context, loader ports.FlowLoader) (int, error) {
	ids, err := loader.List(ctx)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, id := range ids {
		flow, err := loader.Load(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrFlowNotFound) {
				continue
			}
			return imported, fmt.Errorf("failed to load flow %s: %w", id, err)
		}
		if _, err := s.Save(ctx, flow); err != nil {
			return imported, err
		}
		imported++
	}
	s.logger.Debug("flows imported", "count", imported)
	return imported, nil
}
