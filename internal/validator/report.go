package validator

import "github.com/aretw0/flowguard/pkg/domain"

// Assemble partitions issues by severity, preserving emission order inside each bucket.
// No deduplication is performed.
func Assemble(issues []domain.Issue) domain.Result {
	res := domain.Result{
		Errors:   make([]domain.Issue, 0),
		Warnings: make([]domain.Issue, 0),
		Infos:    make([]domain.Issue, 0),
	}

	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityError:
			res.Errors = append(res.Errors, issue)
		case domain.SeverityWarning:
			res.Warnings = append(res.Warnings, issue)
		default:
			res.Infos = append(res.Infos, issue)
		}
	}

	res.IsValid = len(res.Errors) == 0
	return res
}
