package validator

import (
	"github.com/aretw0/flowguard/pkg/domain"
)

// Pass is a single validation concern.
// It reads the graph and appends its findings to the collector.
type Pass interface {
	// Name returns the pass identifier (e.g., "structural").
	Name() string
	// Check runs the pass.
	Check(g *Graph, c *Collector)
}

// DefaultPasses returns the built-in passes in emission order.
func DefaultPasses() []Pass {
	return []Pass{
		StructuralPass{},
		ReachabilityPass{},
		ConnectionPass{},
		CyclePass{},
		DataflowPass{},
		ContentPass{},
		WebhookPass{},
	}
}

// Engine runs every pass over a flow. It holds no per-run state and is safe for concurrent use.
type Engine struct {
	limits domain.Limits
	passes []Pass
}

// New creates an engine with the given limits, the built-in passes and any extra passes.
// Zero-valued limits fall back to domain.DefaultLimits.
func New(limits domain.Limits, extra ...Pass) *Engine {
	passes := DefaultPasses()
	passes = append(passes, extra...)
	return &Engine{
		limits: limits.WithDefaults(),
		passes: passes,
	}
}

// Limits returns the effective limits.
func (e *Engine) Limits() domain.Limits {
	return e.limits
}

// Validate checks the flow and returns the assembled report.
// An error is returned only when the flow violates the input contract (nil collections).
func (e *Engine) Validate(flow *domain.Flow) (domain.Result, error) {
	if err := flow.CheckContract(); err != nil {
		return domain.Result{}, err
	}

	g := NewGraph(flow, e.limits)
	c := &Collector{}
	for _, pass := range e.passes {
		pass.Check(g, c)
	}

	return Assemble(c.Issues()), nil
}
