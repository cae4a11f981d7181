package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/routemap/cmd/routemap/cmd/completion"
	"github.com/agentstation/routemap/cmd/routemap/cmd/docs"
	"github.com/agentstation/routemap/cmd/routemap/cmd/extract"
	"github.com/agentstation/routemap/cmd/routemap/cmd/list"
	"github.com/agentstation/routemap/cmd/routemap/cmd/openapi"
	"github.com/agentstation/routemap/cmd/routemap/cmd/routers"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(extract.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(docs.NewCommand(a))
	rootCmd.AddCommand(openapi.NewCommand(a))

	// Information commands
	rootCmd.AddCommand(routers.NewCommand(a))
	rootCmd.AddCommand(a.NewVersionCommand())
	rootCmd.AddCommand(completion.NewCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "info",
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "routemap %s\n", a.version)
			if a.config.Verbose {
				fmt.Fprintf(w, "  commit:   %s\n", a.commit)
				fmt.Fprintf(w, "  built:    %s\n", a.date)
				fmt.Fprintf(w, "  built by: %s\n", a.builtBy)
				fmt.Fprintf(w, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
