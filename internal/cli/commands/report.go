package commands

import (
	"github.com/spf13/cobra"

	"wraptest/internal/ui"
)

// ReportCommand handles the report command
type ReportCommand struct {
	app *App
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{app: app}
}

// Execute runs the command
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	st := rc.app.storage()
	report, err := st.Load()
	if err != nil {
		return err
	}

	var viewer ui.Viewer = ui.NewDiagnosticViewer(st)
	return viewer.View(report)
}
