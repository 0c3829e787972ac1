package commands

import (
	"context"
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wraptest/internal/discovery"
	"wraptest/internal/parser"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new ListCommand
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	files, err := lc.app.sources()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	inspector := discovery.NewInspector(lc.app.parser(), lc.app.transformer().Classifier())
	var summaries []*discovery.Summary
	for _, file := range files {
		summary, err := inspector.Inspect(ctx, file)
		if err != nil {
			var syntaxErr *parser.SyntaxError
			if errors.As(err, &syntaxErr) {
				lc.app.Logger.Warn("skipping file", zap.String("file", file), zap.Error(err))
				continue
			}
			return err
		}
		summaries = append(summaries, summary)
	}

	lc.app.formatter().PrintFileList(summaries, lc.app.Config.Flags.TestCases)
	return nil
}
