package domain

import "time"

// FileResult is the outcome of expanding one source file
type FileResult struct {
	Path        string             // Path of the processed file
	Changed     bool               // Whether the rendered output differs from the input
	Invocations int                // Invocation attributes expanded
	Rewritten   int                // Test declarations rewritten
	Output      []byte             // Rendered source, nil when diagnostics were reported
	Diagnostics []DiagnosticRecord // Diagnostics, empty on success
	Error       error              // I/O or front-end failure
	Duration    time.Duration      // Time taken to process
}

// Failed reports whether the file produced diagnostics or an error
func (r FileResult) Failed() bool {
	return r.Error != nil || len(r.Diagnostics) > 0
}

// RunMeta contains metadata about an expansion run
type RunMeta struct {
	RunID           string  `json:"run_id"`
	TotalFiles      int     `json:"total_files"`
	ChangedFiles    int     `json:"changed_files"`
	FailedFiles     int     `json:"failed_files"`
	RewrittenTests  int     `json:"rewritten_tests"`
	Diagnostics     int     `json:"diagnostics"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
	Check           bool    `json:"check"`
}

// RunReport is the complete persisted report of a run
type RunReport struct {
	Meta    RunMeta            `json:"meta"`
	Details []DiagnosticRecord `json:"details"`
}
