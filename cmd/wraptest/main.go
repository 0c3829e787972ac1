package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wraptest/internal/cli"
	"wraptest/internal/cli/commands"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "wraptest",
		Short:         "Wrap Rust tests with setup and teardown handlers",
		Long:          `Expands #[wrap_tests(...)] and #[wraptest(...)] attributes in Rust sources so every covered test runs inside a wrapper function, or between before and after hooks.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Flags are populated by cobra, the app once they are parsed
	var flags cli.Flags
	app := &commands.App{}

	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to the config file (default ./wraptest.yaml)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.Setup(&flags)
	}

	// Register all commands
	commands.NewCommands(app).Register(rootCmd, &flags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	app.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
