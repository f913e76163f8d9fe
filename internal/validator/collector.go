package validator

import "github.com/aretw0/flowguard/pkg/domain"

// Collector accumulates the issues emitted by the passes, in emission order.
// A fresh Collector is created for every run.
type Collector struct {
	issues []domain.Issue
}

// Add appends an issue.
func (c *Collector) Add(issue domain.Issue) {
	c.issues = append(c.issues, issue)
}

// Error appends an error-severity issue.
func (c *Collector) Error(kind domain.IssueKind, nodeID, message, suggestion string) {
	c.add(domain.SeverityError, kind, nodeID, message, suggestion)
}

// Warning appends a warning-severity issue.
func (c *Collector) Warning(kind domain.IssueKind, nodeID, message, suggestion string) {
	c.add(domain.SeverityWarning, kind, nodeID, message, suggestion)
}

// Info appends an info-severity issue.
func (c *Collector) Info(kind domain.IssueKind, nodeID, message, suggestion string) {
	c.add(domain.SeverityInfo, kind, nodeID, message, suggestion)
}

func (c *Collector) add(sev domain.Severity, kind domain.IssueKind, nodeID, message, suggestion string) {
	c.Add(domain.Issue{
		Kind:       kind,
		Severity:   sev,
		Message:    message,
		NodeID:     nodeID,
		Suggestion: suggestion,
	})
}

// Issues returns the collected issues.
func (c *Collector) Issues() []domain.Issue {
	return c.issues
}
