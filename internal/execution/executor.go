package execution

import (
	"context"
	"time"

	"wraptest/internal/domain"
)

// Executor processes source files and returns their results
type Executor interface {
	Execute(ctx context.Context, files []string) ([]domain.FileResult, time.Duration, error)
}

// Progress receives updates while files are processed
type Progress interface {
	Update(completed, changed, failed int)
	Finish()
}
