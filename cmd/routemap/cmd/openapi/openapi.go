// Package openapi provides the command that exports a router as an OpenAPI
// 3 document.
package openapi

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/routemap/internal/appcontext"
	"github.com/agentstation/routemap/internal/cmd/cmdutil"
	"github.com/agentstation/routemap/internal/cmd/emoji"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/extract"
	pkgopenapi "github.com/agentstation/routemap/pkg/openapi"
	"github.com/agentstation/routemap/pkg/save"
)

// NewCommand creates the openapi command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		routerFlags  *cmdutil.RouterFlags
		extractFlags *cmdutil.ExtractFlags
		out          string
		encoding     string
		title        string
		apiVersion   string
		description  string
	)

	cmd := &cobra.Command{
		Use:     "openapi",
		GroupID: "core",
		Short:   "Export a router as a validated OpenAPI 3 document",
		Long: `OpenAPI maps queries to GET /<path> operations that take their input as a
JSON-encoded "input" query parameter, and mutations to POST /<path>
operations with a JSON request body. Schema definitions become
components.schemas. The document is validated before it is written.`,
		Example: `  routemap openapi -r users
  routemap openapi -m api.yaml --out openapi.yaml --title "Billing" --api-version 2.1.0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := app.Defaults()
			routerFlags.ApplyDefaults(cmd, d)
			extractFlags.ApplyDefaults(cmd, d)
			title = cmdutil.StringOr(cmd, "title", title, d.OpenAPITitle)
			apiVersion = cmdutil.StringOr(cmd, "api-version", apiVersion, d.OpenAPIVersion)

			format, err := save.ParseFormat(encoding)
			if err != nil {
				return err
			}
			if out != "" {
				format = save.FormatFromPath(out, format)
			}

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

			doc, err := pkgopenapi.Generate(cmd.Context(), res,
				pkgopenapi.WithTitle(title),
				pkgopenapi.WithVersion(apiVersion),
				pkgopenapi.WithDescription(description),
			)
			if err != nil {
				return err
			}

			if out == "" {
				return save.Save(doc, save.WithFormat(format), save.WithWriter(cmd.OutOrStdout()))
			}
			if err := save.Save(doc, save.WithFormat(format), save.WithPath(out)); err != nil {
				return err
			}
			app.Logger().Info().Int("paths", doc.Paths.Len()).Str("file", out).Msg("openapi document written")
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote OpenAPI document with %d operations to %s\n", emoji.Success, res.Count(), out)
			return nil
		},
	}

	routerFlags = cmdutil.AddRouterFlags(cmd)
	extractFlags = cmdutil.AddExtractFlags(cmd)
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout); .yaml/.yml selects YAML")
	cmd.Flags().StringVar(&encoding, "encoding", "", "Encoding: json (default) or yaml")
	cmd.Flags().StringVar(&title, "title", "", "info.title")
	cmd.Flags().StringVar(&apiVersion, "api-version", "", "info.version")
	cmd.Flags().StringVar(&description, "description", "", "info.description")

	return cmd
}
