package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNilFlow is returned when the engine receives no flow at all.
var ErrNilFlow = errors.New("flow is nil")

// ErrNilNodes is returned when a flow has no node collection (as opposed to an empty one).
var ErrNilNodes = errors.New("flow node collection is nil")

// ErrNilEdges is returned when a flow has no edge collection (as opposed to an empty one).
var ErrNilEdges = errors.New("flow edge collection is nil")

// ErrFlowNotFound is returned when a flow ID cannot be found in the store.
var ErrFlowNotFound = errors.New("flow not found")

// ErrReportNotFound is returned when a flow has never been validated by the service.
var ErrReportNotFound = errors.New("validation report not found")

// ErrFlowInvalid is returned when a flow cannot be activated because validation failed.
var ErrFlowInvalid = errors.New("flow is invalid")

// ActivationError carries the blocking issues that prevented a flow from being activated.
// It unwraps to ErrFlowInvalid.
type ActivationError struct {
	FlowID string
	Issues []Issue
}

func (e *ActivationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("flow %q cannot be activated: %s", e.FlowID, e.Issues[0].Message)
	}
	msgs := make([]string, 0, len(e.Issues))
	for i, issue := range e.Issues {
		msgs = append(msgs, fmt.Sprintf("  %d. [%s] %s", i+1, issue.Kind, issue.Message))
	}
	return fmt.Sprintf("flow %q cannot be activated: %d errors:\n%s", e.FlowID, len(e.Issues), strings.Join(msgs, "\n"))
}

// Unwrap allows errors.Is(err, ErrFlowInvalid).
func (e *ActivationError) Unwrap() error {
	return ErrFlowInvalid
}
