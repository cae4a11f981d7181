// Package extract provides the command that writes a router's route document.
package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/routemap/internal/appcontext"
	"github.com/agentstation/routemap/internal/cmd/cmdutil"
	"github.com/agentstation/routemap/internal/cmd/emoji"
	"github.com/agentstation/routemap/internal/cmd/prompt"
	"github.com/agentstation/routemap/internal/watch"
	"github.com/agentstation/routemap/pkg/document"
	"github.com/agentstation/routemap/pkg/errors"
	pkgextract "github.com/agentstation/routemap/pkg/extract"
	"github.com/agentstation/routemap/pkg/logging"
	"github.com/agentstation/routemap/pkg/save"
)

// Flags holds the extract command's own flags.
type Flags struct {
	Out      string
	Encoding string
	Stdout   bool
	Watch    bool
}

// NewCommand creates the extract command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}
	var (
		routerFlags  *cmdutil.RouterFlags
		extractFlags *cmdutil.ExtractFlags
		layoutFlags  *cmdutil.LayoutFlags
	)

	cmd := &cobra.Command{
		Use:     "extract",
		GroupID: "core",
		Short:   "Write a router's endpoints and schema definitions to a file",
		Long: `Extract walks a router depth-first and writes one descriptor per endpoint,
keyed by its dotted path, together with the JSON Schema definitions the
endpoints share.

When the router, output name or key is missing and stdin is a terminal,
extract asks for them.`,
		Example: `  routemap extract -r users --out api -k routes
  routemap extract -m api.yaml --out build/api.yaml --shape map
  routemap extract -r accounts --stdout --ref-mode always-ref
  routemap extract -m api.yaml --out api --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := app.Defaults()
			routerFlags.ApplyDefaults(cmd, d)
			extractFlags.ApplyDefaults(cmd, d)
			layoutFlags.ApplyDefaults(cmd, d)
			flags.Out = cmdutil.StringOr(cmd, "out", flags.Out, d.Out)
			flags.Encoding = cmdutil.StringOr(cmd, "encoding", flags.Encoding, d.Encoding)

			r := &runner{
				app:     app,
				cmd:     cmd,
				flags:   flags,
				router:  routerFlags,
				extract: extractFlags,
				layout:  layoutFlags,
			}
			return r.run(cmd.Context())
		},
	}

	routerFlags = cmdutil.AddRouterFlags(cmd)
	extractFlags = cmdutil.AddExtractFlags(cmd)
	layoutFlags = cmdutil.AddLayoutFlags(cmd)
	cmd.Flags().StringVar(&flags.Out, "out", "",
		"Output file; .json or .yaml is added when there is no extension")
	cmd.Flags().StringVar(&flags.Encoding, "encoding", "",
		"Document encoding when --out has no extension: json (default) or yaml")
	cmd.Flags().BoolVar(&flags.Stdout, "stdout", false,
		"Write the document to stdout instead of a file")
	cmd.Flags().BoolVar(&flags.Watch, "watch", false,
		"Extract again whenever the manifest changes")

	return cmd
}

type runner struct {
	app     appcontext.Interface
	cmd     *cobra.Command
	flags   *Flags
	router  *cmdutil.RouterFlags
	extract *cmdutil.ExtractFlags
	layout  *cmdutil.LayoutFlags
}

func (r *runner) run(ctx context.Context) error {
	layout, err := r.layout.Layout()
	if err != nil {
		return err
	}
	if err := r.fillMissing(&layout); err != nil {
		return err
	}
	if err := layout.Validate(); err != nil {
		return err
	}

	format, path, err := r.destination()
	if err != nil {
		return err
	}

	opts, err := r.extract.Options(r.app.Logger())
	if err != nil {
		return err
	}

	once := func(ctx context.Context) error {
		return r.once(ctx, layout, format, path, opts)
	}

	if !r.flags.Watch {
		return once(ctx)
	}
	if r.router.Manifest == "" {
		return errors.NewValidationError("watch", r.router.Router, "--watch needs a --manifest to watch")
	}
	return r.watch(ctx, once)
}

// fillMissing prompts for the router, output name and key when they are
// missing and stdin is a terminal. Otherwise a missing key falls back to
// the default layout's key.
func (r *runner) fillMissing(layout *document.Layout) error {
	needKey := layout.Shape == document.ShapeWrapped
	defaults := prompt.Details{Key: document.DefaultLayout().Key}

	details := prompt.Details{Router: r.router.Router, Out: r.flags.Out, Key: layout.Key}
	if r.router.Manifest != "" {
		details.Router = r.router.Manifest
		base := filepath.Base(r.router.Manifest)
		defaults.Out = strings.TrimSuffix(base, filepath.Ext(base)) + "-routes"
	}
	if r.flags.Stdout {
		details.Out = "-"
	}

	missing := details.Router == "" || details.Out == "" || (needKey && details.Key == "")
	if missing && isInteractive(r.cmd.InOrStdin()) {
		p := prompt.New(r.cmd.InOrStdin(), r.cmd.ErrOrStderr())
		if err := p.Fill(&details, defaults, needKey); err != nil {
			return err
		}
		if r.router.Manifest == "" {
			r.router.Router = details.Router
		}
		if !r.flags.Stdout {
			r.flags.Out = details.Out
		}
	}

	layout.Key = details.Key
	if needKey && layout.Key == "" {
		layout.Key = defaults.Key
	}
	return nil
}

// destination resolves the encoding and output path. A path without an
// extension gets the encoding's extension; a known extension picks the
// encoding.
func (r *runner) destination() (save.Format, string, error) {
	format, err := save.ParseFormat(r.flags.Encoding)
	if err != nil {
		return format, "", err
	}
	if r.flags.Stdout {
		return format, "", nil
	}

	path := r.flags.Out
	if path == "" {
		return format, "", errors.NewValidationError("out", path, "an output file (--out) or --stdout is required")
	}
	if filepath.Ext(path) == "" {
		return format, path + format.Extension(), nil
	}
	return save.FormatFromPath(path, format), path, nil
}

func (r *runner) once(ctx context.Context, layout document.Layout, format save.Format, path string, opts []pkgextract.Option) error {
	logger := r.app.Logger()
	name := r.router.Router
	if r.router.Manifest != "" {
		name = r.router.Manifest
	}
	ctx = logging.WithRouter(logging.WithLogger(ctx, logger), name)

	g, err := r.app.LoadRouter(ctx, r.router.Router, r.router.Manifest)
	if err != nil {
		return err
	}

	res, err := pkgextract.Extract(g, opts...)
	if err != nil {
		return errors.WrapResource("extract", "router", name, err)
	}

	data, err := document.Render(res, layout, format)
	if err != nil {
		return errors.WrapResource("render", "document", name, err)
	}

	if r.flags.Stdout {
		return save.Write(data, save.WithWriter(r.cmd.OutOrStdout()))
	}
	if err := save.Write(data, save.WithPath(path)); err != nil {
		return err
	}

	logging.FromContext(ctx).Info().
		Int("endpoints", res.Count()).
		Int("definitions", res.Schemas().Len()).
		Str("file", path).
		Msg("route document written")
	fmt.Fprintf(r.cmd.OutOrStdout(), "%s wrote %d endpoints to %s\n", emoji.Success, res.Count(), path)
	return nil
}

func (r *runner) watch(ctx context.Context, once func(context.Context) error) error {
	if err := once(ctx); err != nil {
		fmt.Fprintf(r.cmd.ErrOrStderr(), "%s %v\n", emoji.Error, err)
	}

	w, err := watch.New(r.router.Manifest, watch.WithLogger(r.app.Logger()))
	if err != nil {
		return err
	}
	fmt.Fprintf(r.cmd.ErrOrStderr(), "%s watching %s (ctrl-c to stop)\n", emoji.Info, w.Path())

	return w.Run(ctx, func(ctx context.Context) error {
		err := once(ctx)
		if err != nil {
			fmt.Fprintf(r.cmd.ErrOrStderr(), "%s %v\n", emoji.Error, err)
		}
		return err
	})
}

func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && prompt.Interactive(f)
}
