package flowguard

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/flowguard/internal/validator"
	"github.com/aretw0/flowguard/pkg/domain"
)

// Recorder receives the outcome of every validation run (e.g. Prometheus metrics).
type Recorder interface {
	ObserveValidation(flowID string, result domain.Result, elapsed time.Duration)
}

// Validator is the high-level entry point of the library.
// It wraps the internal engine and is safe for concurrent use.
type Validator struct {
	engine   *validator.Engine
	limits   domain.Limits
	logger   *slog.Logger
	recorder Recorder
}

// Option defines a functional option for configuring the Validator.
type Option func(*Validator)

// WithLimits overrides the numeric bounds (block ceiling, message length, delay bounds).
// Zero fields keep their defaults.
func WithLimits(limits domain.Limits) Option {
	return func(v *Validator) {
		v.limits = limits
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// WithRecorder registers an observer for validation outcomes.
func WithRecorder(r Recorder) Option {
	return func(v *Validator) {
		v.recorder = r
	}
}

// New initializes a Validator. Without options it enforces domain.DefaultLimits.
func New(opts ...Option) *Validator {
	v := &Validator{limits: domain.DefaultLimits()}
	for _, opt := range opts {
		opt(v)
	}

	// Ensure logger is initialized so callers never see a nil-pointer on Debug.
	if v.logger == nil {
		v.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	v.engine = validator.New(v.limits)
	v.limits = v.engine.Limits()
	return v
}

// Validate runs every pass over the flow and returns the report.
// The returned error is non-nil only for contract violations (see domain.ErrNilFlow).
func (v *Validator) Validate(flow *domain.Flow) (domain.Result, error) {
	began := time.Now()

	res, err := v.engine.Validate(flow)
	if err != nil {
		v.logger.Error("flow rejected before validation", "err", err)
		return res, err
	}

	elapsed := time.Since(began)
	v.logger.Debug("flow validated",
		"flow_id", flow.ID,
		"valid", res.IsValid,
		"errors", len(res.Errors),
		"warnings", len(res.Warnings),
		"elapsed", elapsed)

	if v.recorder != nil {
		v.recorder.ObserveValidation(flow.ID, res, elapsed)
	}
	return res, nil
}

// Limits returns the effective limits.
func (v *Validator) Limits() domain.Limits {
	return v.limits
}

// Validate checks a flow with the default limits.
func Validate(flow *domain.Flow) (domain.Result, error) {
	return New().Validate(flow)
}

// GroupIssuesByNode returns the nodes carrying at least one error and at least one warning.
func GroupIssuesByNode(result domain.Result) domain.NodeMarkers {
	return domain.GroupIssuesByNode(result)
}
