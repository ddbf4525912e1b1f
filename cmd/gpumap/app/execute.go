package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/gpumap/cmd/gpumap/cmd/export"
	"github.com/agentstation/gpumap/pkg/constants"
	"github.com/agentstation/gpumap/pkg/logging"
)

// Execute runs the gpumap CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
// Without a subcommand the root command runs the export.
func (a *App) createRootCommand() *cobra.Command {
	var metricsFile string

	rootCmd := &cobra.Command{
		Use:     "gpumap",
		Short:   "GPU catalog exporter",
		Version: a.version,
		Long: `gpumap exports the GPU catalog as a JSON array of GPU models with their
manufacturer, VRAM capacity, architecture and release date.

Run without a subcommand to write the export document to stdout. Progress
and warnings go to stderr, so stdout always carries exactly one document.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setupCommand,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return export.Run(a, cmd.OutOrStdout(), metricsFile)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics of the run to this file")

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/"+constants.ConfigFileName+".yaml)")
	rootCmd.PersistentFlags().StringVar(&a.config.CatalogPath, "catalog", a.config.CatalogPath, "directory of catalog YAML files (default is the embedded catalog)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", a.config.NoColor, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("gpumap {{.Version}}\n")

	if a.stdin != nil {
		rootCmd.SetIn(a.stdin)
	}
	if a.stdout != nil {
		rootCmd.SetOut(a.stdout)
	}

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("config") {
		fileConfig, err := LoadConfig(a.config.ConfigFile)
		if err != nil {
			return err
		}
		a.config.mergeFile(fileConfig, cmd.Flags())
	}

	if !a.loggerFixed {
		logger := NewLogger(a.config)
		a.logger = &logger
		logging.SetDefault(logger)
	}

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
