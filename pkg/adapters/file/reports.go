package file

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/aretw0/flowguard/pkg/domain"
)

// ReportStore implements ports.ReportStore using the local filesystem.
// It keeps the latest report of each flow as a JSON file in a configured directory.
type ReportStore struct {
	BasePath string
}

// NewReportStore creates a new ReportStore with the given base path.
// If basePath is empty, it defaults to ".flowguard/reports".
func NewReportStore(basePath string) *ReportStore {
	if basePath == "" {
		basePath = filepath.Join(".flowguard", "reports")
	}
	return &ReportStore{BasePath: basePath}
}

func (s *ReportStore) path(flowID string) string {
	// Flow IDs from hierarchical sources contain slashes.
	return filepath.Join(s.BasePath, url.PathEscape(flowID)+".json")
}

// SaveReport writes the report atomically: temp file, fsync, then rename.
func (s *ReportStore) SaveReport(ctx context.Context, report domain.Report) error {
	if report.FlowID == "" {
		return fmt.Errorf("report flow ID cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure report directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	// Same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := s.path(report.FlowID)
	if _, err := os.Stat(destPath); err == nil {
		// os.Rename fails on Windows if dest exists.
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove previous report: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to report: %w", err)
	}
	return nil
}

// LatestReport reads the stored report of a flow.
func (s *ReportStore) LatestReport(ctx context.Context, flowID string) (domain.Report, error) {
	data, err := os.ReadFile(s.path(flowID))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Report{}, domain.ErrReportNotFound
		}
		return domain.Report{}, fmt.Errorf("failed to read report: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return domain.Report{}, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return report, nil
}
