package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wraptest/internal/discovery"
	"wraptest/internal/domain"
	"wraptest/internal/execution"
	"wraptest/internal/ui"
)

var (
	// ErrDiagnostics is returned when at least one file was rejected
	ErrDiagnostics = errors.New("expansion reported diagnostics")
	// ErrWouldChange is returned by --check when a file is not expanded yet
	ErrWouldChange = errors.New("files would be rewritten")
)

// ExpandCommand handles the expand and check commands
type ExpandCommand struct {
	app *App
}

// NewExpandCommand creates a new ExpandCommand
func NewExpandCommand(app *App) *ExpandCommand {
	return &ExpandCommand{app: app}
}

// Execute runs the command
func (ec *ExpandCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if ec.app.Config.Flags.Watch {
		return ec.watch(ctx)
	}

	report, err := ec.run(ctx, nil)
	if err != nil {
		return err
	}
	return outcome(report)
}

// Check validates every invocation and writes nothing
func (ec *ExpandCommand) Check(cmd *cobra.Command, args []string) error {
	ec.app.Config.Flags.Check = true
	ec.app.Config.Flags.Watch = false
	ec.app.Config.Flags.OutDir = ""

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := ec.run(ctx, nil)
	if err != nil {
		return err
	}
	if report != nil && report.Meta.FailedFiles > 0 {
		return ErrDiagnostics
	}
	return nil
}

// run expands files, or every source file when files is nil, then saves
// and prints the report. A nil report means there was nothing to do.
func (ec *ExpandCommand) run(ctx context.Context, files []string) (*domain.RunReport, error) {
	cfg := ec.app.Config

	if files == nil {
		var err error
		if files, err = ec.app.sources(); err != nil {
			return nil, err
		}
	}
	if len(files) == 0 {
		color.Yellow("No source files to expand")
		return nil, nil
	}

	executor := ec.app.executor()
	if len(files) > 1 && ui.IsTerminal(os.Stderr) {
		executor.SetProgress(ui.NewProgressBar(len(files)))
	}

	results, duration, err := executor.Execute(ctx, files)
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}

	report, err := ec.app.storage().Save(results, duration, cfg.GetWorkers(), cfg.Flags.Check)
	if err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	formatter := ec.app.formatter()
	formatter.PrintDiagnostics(report.Details)
	formatter.PrintSummary(report)
	return report, nil
}

// outcome maps a finished run to the command's exit status
func outcome(report *domain.RunReport) error {
	if report == nil {
		return nil
	}
	if report.Meta.FailedFiles > 0 {
		return ErrDiagnostics
	}
	if report.Meta.Check && report.Meta.ChangedFiles > 0 {
		return ErrWouldChange
	}
	return nil
}

// watch runs a full expansion, then expands files again as they change
// until ctx is cancelled
func (ec *ExpandCommand) watch(ctx context.Context) error {
	if _, err := ec.run(ctx, nil); err != nil {
		return err
	}

	watcher, err := execution.NewWatcher(ec.app.Config.GetSourcePath(), ec.app.scanner(), ec.app.Logger)
	if err != nil {
		return err
	}

	color.Cyan("Watching %s for changes (Ctrl+C to stop)", ec.app.Config.GetSourcePath())
	return watcher.Run(ctx, func(ctx context.Context, files []string) {
		files = discovery.NewFilter().FilterByName(files, ec.app.Config.Flags.NameFilter)
		if len(files) == 0 {
			return
		}
		ec.app.Logger.Debug("re-expanding", zap.Strings("files", files))
		if _, err := ec.run(ctx, files); err != nil {
			color.Red("✗ %v", err)
		}
	})
}
