package domain

// Severity tiers an issue. Only SeverityError blocks activation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IssueKind is the stable code of a validation finding.
type IssueKind string

const (
	IssueMissingStartBlock IssueKind = "missing_start_block"
	IssueMaxBlocksExceeded IssueKind = "max_blocks_exceeded"
	IssueOrphanBlock       IssueKind = "orphan_block"
	IssueInvalidConnection IssueKind = "invalid_connection"
	IssueMissingVariable   IssueKind = "missing_variable"
	IssueInfiniteLoop      IssueKind = "infinite_loop"
	IssueEmptyMessage      IssueKind = "empty_message"
	IssueInvalidDelay      IssueKind = "invalid_delay"
	IssueInvalidWebhook    IssueKind = "invalid_webhook"
)

// Issue is one validation finding. It is an immutable value.
type Issue struct {
	Kind       IssueKind `json:"type"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	NodeID     string    `json:"nodeId,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// Result is the report produced by a validation run.
// Each bucket keeps the order in which the passes emitted the issues.
type Result struct {
	IsValid  bool    `json:"isValid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
	Infos    []Issue `json:"infos"`
}

// NodeMarkers lists the nodes carrying at least one error and at least one warning.
// Editors use it to draw per-node markers without walking the full issue list.
type NodeMarkers struct {
	ErrorNodes   []string `json:"errorNodes"`
	WarningNodes []string `json:"warningNodes"`
}

// GroupIssuesByNode projects a result into de-duplicated node ID lists, in first-seen order.
// Issues without a node reference are skipped.
func GroupIssuesByNode(r Result) NodeMarkers {
	return NodeMarkers{
		ErrorNodes:   uniqueNodeIDs(r.Errors),
		WarningNodes: uniqueNodeIDs(r.Warnings),
	}
}

func uniqueNodeIDs(issues []Issue) []string {
	ids := make([]string, 0, len(issues))
	seen := make(map[string]bool, len(issues))
	for _, issue := range issues {
		if issue.NodeID == "" || seen[issue.NodeID] {
			continue
		}
		seen[issue.NodeID] = true
		ids = append(ids, issue.NodeID)
	}
	return ids
}

// Count returns the total number of issues across all severities.
func (r Result) Count() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Infos)
}
