package ui

import "wraptest/internal/domain"

// Viewer displays a run report interactively
type Viewer interface {
	View(report *domain.RunReport) error
}
