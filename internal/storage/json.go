package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"wraptest/internal/domain"
)

// NewReport summarizes results into a report
func NewReport(results []domain.FileResult, duration time.Duration, workers int, check bool) *domain.RunReport {
	report := &domain.RunReport{
		Meta: domain.RunMeta{
			RunID:           uuid.NewString(),
			TotalFiles:      len(results),
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Workers:         workers,
			Timestamp:       time.Now().Format(time.RFC3339),
			Check:           check,
		},
		Details: []domain.DiagnosticRecord{},
	}

	for _, r := range results {
		if r.Changed {
			report.Meta.ChangedFiles++
		}
		if r.Failed() {
			report.Meta.FailedFiles++
		}
		report.Meta.RewrittenTests += r.Rewritten
		report.Details = append(report.Details, r.Diagnostics...)
		if r.Error != nil {
			report.Details = append(report.Details, domain.DiagnosticRecord{
				FilePath: r.Path,
				Kind:     "Error",
				Message:  r.Error.Error(),
			})
		}
	}
	report.Meta.Diagnostics = len(report.Details)
	return report
}

// Save writes a report of results to the configured JSON file.
func (s *JSONStorage) Save(results []domain.FileResult, duration time.Duration, workers int, check bool) (*domain.RunReport, error) {
	report := NewReport(results, duration, workers, check)
	if err := s.SaveReport(report); err != nil {
		return nil, err
	}
	return report, nil
}

// Load reads the last report from the configured JSON file.
func (s *JSONStorage) Load() (*domain.RunReport, error) {
	path := s.cfg.GetReportPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &report, nil
}

// SaveReport writes report to the configured JSON file.
func (s *JSONStorage) SaveReport(report *domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	path := s.cfg.GetReportPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
