// Package docs provides the command that writes a Markdown API reference.
package docs

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/routemap/internal/appcontext"
	"github.com/agentstation/routemap/internal/cmd/cmdutil"
	"github.com/agentstation/routemap/internal/cmd/emoji"
	tooldocs "github.com/agentstation/routemap/internal/tools/docs"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/extract"
	"github.com/agentstation/routemap/pkg/save"
)

// NewCommand creates the docs command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		routerFlags  *cmdutil.RouterFlags
		extractFlags *cmdutil.ExtractFlags
		out          string
		title        string
		description  string
		frontMatter  bool
	)

	cmd := &cobra.Command{
		Use:     "docs",
		GroupID: "core",
		Short:   "Write a Markdown API reference for a router",
		Example: `  routemap docs -r users
  routemap docs -m api.yaml --out docs/api.md --title "Billing API" --front-matter`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := app.Defaults()
			routerFlags.ApplyDefaults(cmd, d)
			extractFlags.ApplyDefaults(cmd, d)

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

			gen := tooldocs.New(
				tooldocs.WithTitle(title),
				tooldocs.WithDescription(description),
				tooldocs.WithFrontMatter(frontMatter),
			)

			if out == "" {
				return gen.Generate(cmd.OutOrStdout(), res)
			}

			var buf bytes.Buffer
			if err := gen.Generate(&buf, res); err != nil {
				return err
			}
			if err := save.Write(buf.Bytes(), save.WithPath(out)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote reference for %d endpoints to %s\n", emoji.Success, res.Count(), out)
			return nil
		},
	}

	routerFlags = cmdutil.AddRouterFlags(cmd)
	extractFlags = cmdutil.AddExtractFlags(cmd)
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&title, "title", "", "Document title (default \"API Reference\")")
	cmd.Flags().StringVar(&description, "description", "", "Paragraph under the title")
	cmd.Flags().BoolVar(&frontMatter, "front-matter", false, "Start with a YAML front matter block")

	return cmd
}
