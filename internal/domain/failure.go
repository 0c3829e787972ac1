package domain

// DiagnosticRecord is the persisted form of a diagnostic
type DiagnosticRecord struct {
	FilePath string `json:"file_path"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Note     string `json:"note,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Snippet  string `json:"snippet,omitempty"`  // Source line the span starts on
	Resolved bool   `json:"resolved,omitempty"` // Marked as handled in the report viewer
}
