package domain

// TestCase is a test declaration found in a source file
type TestCase struct {
	Name     string `json:"name"`
	FilePath string `json:"file_path"`
	Module   string `json:"module,omitempty"` // "::"-joined module path, empty at file scope
	Line     int    `json:"line"`
	Async    bool   `json:"async"`
	Marker   string `json:"marker"` // Path of the marker that matched
}
