package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/gpumap/cmd/gpumap/cmd/dbimport"
	"github.com/agentstation/gpumap/cmd/gpumap/cmd/export"
	"github.com/agentstation/gpumap/cmd/gpumap/cmd/list"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(export.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(dbimport.NewCommand(a))
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "gpumap %s\n", a.version)
			if a.config.Verbose {
				fmt.Fprintf(out, "  commit:     %s\n", a.commit)
				fmt.Fprintf(out, "  built:      %s\n", a.date)
				fmt.Fprintf(out, "  built by:   %s\n", a.builtBy)
				fmt.Fprintf(out, "  go version: %s\n", runtime.Version())
				fmt.Fprintf(out, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
