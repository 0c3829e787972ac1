package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the layout of wraptest.yaml
type fileConfig struct {
	SourcePath    string   `yaml:"source_path"`
	Workers       int      `yaml:"workers"`
	Ignore        []string `yaml:"ignore"`
	RunnerMarkers []string `yaml:"runner_markers"`
	ReportDir     string   `yaml:"report_dir"`
}

// LoadFile merges the YAML config file at path into c.
// A missing file leaves c unchanged.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if fc.SourcePath != "" {
		c.SourcePath = fc.SourcePath
	}
	if fc.Workers > 0 {
		c.Workers = fc.Workers
	}
	if fc.ReportDir != "" {
		c.ReportDir = fc.ReportDir
	}
	c.PathsToIgnore = append(c.PathsToIgnore, fc.Ignore...)
	c.RunnerMarkers = append(c.RunnerMarkers, fc.RunnerMarkers...)
	return nil
}
