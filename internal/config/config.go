package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	SourcePath  string

	// Report settings
	ReportFile string
	ReportDir  string

	// Execution settings
	Workers int

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Async test runner markers recognized in addition to tokio::test
	RunnerMarkers []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Workers    int
	SourcePath string
	NameFilter string
	OutDir     string
	ConfigFile string
	Check      bool
	FailFast   bool
	Watch      bool
	TestCases  bool
	Verbose    bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath: DefaultProjectPath,
		SourcePath:  DefaultSourcePath,
		ReportFile:  DefaultReportFile,
		ReportDir:   DefaultReportDir,
		Workers:     DefaultWorkers,
		Flags:       Flags{Workers: DefaultWorkers},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config from defaults, the project config file, the
// environment and finally flags, each overriding the previous layer.
func Load(flags Flags) (*Config, error) {
	cfg := New()

	path := flags.ConfigFile
	if path == "" {
		path = filepath.Join(cfg.ProjectPath, DefaultConfigFile)
	} else if _, err := os.Stat(path); err != nil {
		// Only the implicit project file may be absent
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.LoadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyFlags(flags)
	return cfg, nil
}

// ApplyFlags stores flags and applies their overrides
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
}

// GetSourcePath returns the source path, using flag if provided
func (c *Config) GetSourcePath() string {
	if c.Flags.SourcePath != "" {
		// Relative flag paths are resolved against the project path
		if filepath.IsAbs(c.Flags.SourcePath) {
			return c.Flags.SourcePath
		}
		return filepath.Join(c.ProjectPath, c.Flags.SourcePath)
	}

	if filepath.IsAbs(c.SourcePath) {
		return c.SourcePath
	}
	return filepath.Join(c.ProjectPath, c.SourcePath)
}

// GetReportPath returns the full path to the report file.
// Resolves to an absolute path so expand and report always use the same file regardless of cwd.
func (c *Config) GetReportPath() string {
	p := filepath.Join(c.ProjectPath, c.ReportDir, c.ReportFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetOutputPath returns where the expansion of source is written: the file
// itself, or its mirror under the output directory. A single-file source
// path is written as OutDir/<base name>.
func (c *Config) GetOutputPath(source string) string {
	if c.Flags.OutDir == "" {
		return source
	}
	rel, err := filepath.Rel(c.GetSourcePath(), source)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(source)
	}
	return filepath.Join(c.Flags.OutDir, rel)
}

// GetWorkers returns the number of workers, at least 1
func (c *Config) GetWorkers() int {
	if c.Workers <= 0 {
		return 1
	}
	return c.Workers
}
