package storage

import (
	"time"

	"wraptest/internal/config"
	"wraptest/internal/domain"
)

// Storage persists and loads run reports (e.g. for the report viewer).
type Storage interface {
	Save(results []domain.FileResult, duration time.Duration, workers int, check bool) (*domain.RunReport, error)
	Load() (*domain.RunReport, error)
	// SaveReport writes a full report (e.g. after marking diagnostics resolved).
	SaveReport(report *domain.RunReport) error
}

// JSONStorage stores reports in a JSON file under the configured report path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's report path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
