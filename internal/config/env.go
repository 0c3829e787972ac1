package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv
const (
	EnvWorkers       = "WRAPTEST_WORKERS"
	EnvSourcePath    = "WRAPTEST_SOURCE_PATH"
	EnvRunnerMarkers = "WRAPTEST_RUNNER_MARKERS"
)

// LoadEnv applies WRAPTEST_* overrides, reading the project's .env file first.
// Variables already set in the environment take precedence over .env.
func (c *Config) LoadEnv() error {
	envPath := filepath.Join(c.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", EnvWorkers, v)
		}
		c.Workers = n
	}
	if v := os.Getenv(EnvSourcePath); v != "" {
		c.SourcePath = v
	}
	if v := os.Getenv(EnvRunnerMarkers); v != "" {
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				c.RunnerMarkers = append(c.RunnerMarkers, m)
			}
		}
	}
	return nil
}
