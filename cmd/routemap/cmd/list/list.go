// Package list provides the command that lists a router's endpoints.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/routemap/internal/appcontext"
	"github.com/agentstation/routemap/internal/cmd/cmdutil"
	"github.com/agentstation/routemap/internal/cmd/output"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/extract"
)

// NewCommand creates the list command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		routerFlags  *cmdutil.RouterFlags
		extractFlags *cmdutil.ExtractFlags
	)

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "List a router's endpoints",
		Long: `List shows every endpoint of a router in traversal order with its kind
and input and output types. Use -o wide for schema names and descriptions,
or -o json / -o yaml for machine-readable output.`,
		Example: `  routemap list -r users
  routemap list -m api.yaml -o wide
  routemap list -r accounts -o json`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := app.Defaults()
			routerFlags.ApplyDefaults(cmd, d)
			extractFlags.ApplyDefaults(cmd, d)

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			format = output.DetectFormat(string(format))

			g, err := app.LoadRouter(cmd.Context(), routerFlags.Router, routerFlags.Manifest)
			if err != nil {
				return err
			}

			opts, err := extractFlags.Options(app.Logger())
			if err != nil {
				return err
			}
			res, err := extract.Extract(g, opts...)
			if err != nil {
				return errors.WrapResource("extract", "router", routerFlags.Router, err)
			}

			return output.FormatEndpoints(cmd.OutOrStdout(), res.Endpoints, format)
		},
	}

	routerFlags = cmdutil.AddRouterFlags(cmd)
	extractFlags = cmdutil.AddExtractFlags(cmd)

	return cmd
}
