package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wraptest/internal/cli"
	"wraptest/internal/config"
	"wraptest/internal/discovery"
	"wraptest/internal/execution"
	"wraptest/internal/logging"
	"wraptest/internal/parser"
	"wraptest/internal/storage"
	"wraptest/internal/ui"
	"wraptest/internal/wrap"
)

// App is the state shared by all commands. It is filled in by Setup once
// cobra has parsed the flags.
type App struct {
	Config *config.Config
	Logger *zap.Logger
}

// Setup loads the layered configuration and builds the logger
func (a *App) Setup(flags *cli.Flags) error {
	cfg, err := config.Load(flags.ToConfigFlags())
	if err != nil {
		return err
	}
	logger, err := logging.New(flags.Verbose)
	if err != nil {
		return err
	}
	a.Config = cfg
	a.Logger = logger
	a.Logger.Debug("configuration loaded",
		zap.String("source", cfg.GetSourcePath()),
		zap.Int("workers", cfg.GetWorkers()),
		zap.Strings("runner_markers", cfg.RunnerMarkers))
	return nil
}

// Sync flushes the logger, if one was built
func (a *App) Sync() {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}

func (a *App) transformer() *wrap.Transformer {
	return wrap.New(
		wrap.WithRunnerMarkers(a.Config.RunnerMarkers...),
		wrap.WithLogger(a.Logger),
	)
}

func (a *App) parser() parser.Parser {
	return parser.NewRustParser()
}

// scanner walks the source tree for files the parser reads
func (a *App) scanner() *discovery.Scanner {
	return discovery.NewScanner(a.Config.PathsToIgnore, a.parser().SupportedExtensions()...)
}

// sources returns the source files under the configured path that pass
// the name filter
func (a *App) sources() ([]string, error) {
	files, err := a.scanner().Scan(a.Config.GetSourcePath())
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", a.Config.GetSourcePath(), err)
	}
	return discovery.NewFilter().FilterByName(files, a.Config.Flags.NameFilter), nil
}

// executor builds the worker pool that expands files
func (a *App) executor() *execution.WorkerPool {
	runner := execution.NewRunner(a.Config, a.parser(), parser.NewRustRenderer(), a.transformer(), a.Logger)
	return execution.NewWorkerPool(a.Config, runner, execution.NewRoundRobinScheduler())
}

func (a *App) storage() storage.Storage {
	return storage.NewJSONStorage(a.Config)
}

func (a *App) formatter() *ui.Formatter {
	return ui.NewFormatter(a.Config)
}

// Commands holds all CLI commands
type Commands struct {
	Expand *ExpandCommand
	List   *ListCommand
	Report *ReportCommand
}

// NewCommands creates all commands sharing app
func NewCommands(app *App) *Commands {
	return &Commands{
		Expand: NewExpandCommand(app),
		List:   NewListCommand(app),
		Report: NewReportCommand(app),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	// Expand command
	expandCmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand wraptest invocations in place",
		Long:  "Rewrite every test covered by #[wrap_tests(...)] or #[wraptest(...)] so its handler runs around the test body",
		Args:  cobra.NoArgs,
		RunE:  c.Expand.Execute,
	}
	expandCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Number of workers to use (default 4)")
	expandCmd.Flags().StringVarP(&flags.SourcePath, "source-path", "s", "", "File or folder to expand")
	expandCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter files by name pattern (supports wildcards, e.g., '*_test.rs' or '*api*')")
	expandCmd.Flags().StringVarP(&flags.OutDir, "out", "o", "", "Write expanded files to this folder instead of in place")
	expandCmd.Flags().BoolVar(&flags.Check, "check", false, "Write nothing; exit non-zero if any file would change")
	expandCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on the first file with diagnostics")
	expandCmd.Flags().BoolVar(&flags.Watch, "watch", false, "Keep running and expand files again when they change")
	rootCmd.AddCommand(expandCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate wraptest invocations",
		Long:  "Report diagnostics for every invocation without writing any file",
		Args:  cobra.NoArgs,
		RunE:  c.Expand.Check,
	}
	checkCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Number of workers to use (default 4)")
	checkCmd.Flags().StringVarP(&flags.SourcePath, "source-path", "s", "", "File or folder to check")
	checkCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter files by name pattern (supports wildcards, e.g., '*_test.rs' or '*api*')")
	rootCmd.AddCommand(checkCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List files with wraptest invocations",
		Long:  "Scan and list source files carrying wraptest invocations without rewriting them",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.SourcePath, "source-path", "s", "", "File or folder to scan")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter files by name pattern (supports wildcards, e.g., '*_test.rs' or '*api*')")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test declarations instead of files")
	rootCmd.AddCommand(listCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "View diagnostics of the last run interactively",
		Long:  "Display the diagnostics saved by the last expand or check run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Report.Execute,
	}
	rootCmd.AddCommand(reportCmd)
}
