package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_GetSourcePath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default path",
			config:   &Config{ProjectPath: ".", SourcePath: "."},
			expected: ".",
		},
		{
			name: "with source path flag",
			config: &Config{
				ProjectPath: "/project",
				SourcePath:  ".",
				Flags:       Flags{SourcePath: "src"},
			},
			expected: "/project/src",
		},
		{
			name: "absolute flag path",
			config: &Config{
				ProjectPath: "/project",
				SourcePath:  ".",
				Flags:       Flags{SourcePath: "/absolute/path"},
			},
			expected: "/absolute/path",
		},
		{
			name:     "configured path without flag",
			config:   &Config{ProjectPath: "/project", SourcePath: "crates"},
			expected: "/project/crates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetSourcePath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetOutputPath(t *testing.T) {
	tests := []struct {
		name       string
		sourcePath string
		outDir     string
		source     string
		expected   string
	}{
		{"in place", "src", "", "/project/src/lib.rs", "/project/src/lib.rs"},
		{"mirrored under out dir", "src", "/out", "/project/src/api/lib.rs", "/out/api/lib.rs"},
		{"outside the source path", "src", "/out", "/elsewhere/lib.rs", "/out/lib.rs"},
		{"single file source path", "src/lib.rs", "/out", "/project/src/lib.rs", "/out/lib.rs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{ProjectPath: "/project", SourcePath: tt.sourcePath, Flags: Flags{OutDir: tt.outDir}}
			assert.Equal(t, tt.expected, cfg.GetOutputPath(tt.source))
		})
	}
}

func TestConfig_GetWorkers(t *testing.T) {
	tests := []struct {
		workers  int
		expected int
	}{
		{0, 1},
		{-3, 1},
		{1, 1},
		{8, 8},
	}
	for _, tt := range tests {
		cfg := &Config{Workers: tt.workers}
		if got := cfg.GetWorkers(); got != tt.expected {
			t.Errorf("workers %d: expected %d, got %d", tt.workers, tt.expected, got)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultSourcePath, cfg.SourcePath)
	assert.Equal(t, DefaultPathsToIgnore, cfg.PathsToIgnore)

	// The ignore list is a copy
	cfg.PathsToIgnore[0] = "changed"
	assert.NotEqual(t, "changed", DefaultPathsToIgnore[0])
}

func TestConfig_GetReportPath(t *testing.T) {
	cfg := New()
	path := cfg.GetReportPath()

	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, filepath.Join(DefaultReportDir, DefaultReportFile), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}

func TestConfig_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wraptest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source_path: crates
workers: 6
ignore:
  - generated
runner_markers:
  - async_std::test
report_dir: .reports
`), 0644))

	cfg := New()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "crates", cfg.SourcePath)
	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, ".reports", cfg.ReportDir)
	assert.Contains(t, cfg.PathsToIgnore, "generated")
	assert.Contains(t, cfg.PathsToIgnore, "target")
	assert.Equal(t, []string{"async_std::test"}, cfg.RunnerMarkers)
}

func TestConfig_LoadFile_Missing(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Equal(t, New(), cfg)
}

func TestConfig_LoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wraptest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [oops"), 0644))

	err := New().LoadFile(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestConfig_LoadEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WRAPTEST_SOURCE_PATH=from-dotenv\n"), 0644))

	t.Setenv(EnvWorkers, "3")
	t.Setenv(EnvRunnerMarkers, "async_std::test, smol_potat::test")
	t.Setenv(EnvSourcePath, "")
	os.Unsetenv(EnvSourcePath)

	cfg := New()
	cfg.ProjectPath = dir
	require.NoError(t, cfg.LoadEnv())

	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "from-dotenv", cfg.SourcePath)
	assert.Equal(t, []string{"async_std::test", "smol_potat::test"}, cfg.RunnerMarkers)
}

func TestConfig_LoadEnv_InvalidWorkers(t *testing.T) {
	t.Setenv(EnvWorkers, "many")

	cfg := New()
	cfg.ProjectPath = t.TempDir()
	assert.ErrorContains(t, cfg.LoadEnv(), EnvWorkers)
}

func TestLoad_FlagsOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 6\n"), 0644))

	cfg, err := Load(Flags{ConfigFile: path, Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)

	cfg, err = Load(Flags{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Workers)
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	_, err := Load(Flags{ConfigFile: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoad_MissingProjectConfig(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(Flags{})
	require.NoError(t, err)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
}
