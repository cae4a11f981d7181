// Package docs renders an extraction result as a Markdown API reference.
package docs

import (
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/routemap/pkg/extract"
	"github.com/agentstation/routemap/pkg/save"
	"github.com/agentstation/routemap/pkg/schema"
)

// Generator writes Markdown API references.
type Generator struct {
	title       string
	description string
	frontMatter bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		if title != "" {
			g.title = title
		}
	}
}

// WithDescription sets the paragraph under the title.
func WithDescription(description string) Option {
	return func(g *Generator) {
		g.description = description
	}
}

// WithFrontMatter starts the document with a YAML front matter block.
func WithFrontMatter(enabled bool) Option {
	return func(g *Generator) {
		g.frontMatter = enabled
	}
}

// New creates a generator.
func New(opts ...Option) *Generator {
	g := &Generator{title: "API Reference"}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate writes the reference for res to w.
func (g *Generator) Generate(w io.Writer, res *extract.Result) error {
	b := NewMarkdownBuilder(w)
	if g.frontMatter {
		b.FrontMatter(FrontMatter{Title: g.title, Description: g.description})
	}
	b.H1(g.title).Paragraph(g.description)

	if res == nil || res.Count() == 0 {
		b.Paragraph("No endpoints.")
		return b.Build()
	}
	b.Paragraphf("%d endpoints, %d schema definitions.", res.Count(), res.Schemas().Len())

	b.H2("Endpoints")
	rows := make([][]string, 0, res.Count())
	for _, ep := range res.Endpoints {
		rows = append(rows, []string{
			Link(Code(ep.Path), Anchor(ep.Path)),
			ep.Kind.String(),
			refList(ep.Inputs),
			refCell(ep.Output),
		})
	}
	b.Table([]string{"Path", "Type", "Input", "Output"}, rows)

	for _, ep := range res.Endpoints {
		b.H3(ep.Path)
		b.Paragraph(ep.Description)
		items := []string{Bold("Type:") + " " + ep.Kind.String()}
		if len(ep.Inputs) > 0 {
			items = append(items, Bold("Input:")+" "+refList(ep.Inputs)+typeNote(ep.InputTypes))
		}
		if ep.Output != nil {
			items = append(items, Bold("Output:")+" "+refCell(ep.Output)+typeNote([]string{ep.OutputType}))
		}
		b.BulletList(items...)
	}

	b.H2("Definitions")
	for pair := res.Schemas().Oldest(); pair != nil; pair = pair.Next() {
		body, err := save.Marshal(pair.Value, save.FormatJSON)
		if err != nil {
			return err
		}
		b.H3(pair.Key)
		b.CodeBlock(md.SyntaxHighlightJSON, string(body))
	}
	return b.Build()
}

func refCell(ref *schema.Ref) string {
	if ref == nil {
		return "-"
	}
	return Link(Code(ref.Name), Anchor(ref.Name))
}

func refList(refs []schema.Ref) string {
	if len(refs) == 0 {
		return "-"
	}
	cells := make([]string, len(refs))
	for i := range refs {
		cells[i] = refCell(&refs[i])
	}
	return strings.Join(cells, ", ")
}

func typeNote(types []string) string {
	var named []string
	for _, t := range types {
		if t != "" && !strings.Contains(t, " ") {
			named = append(named, Code(t))
		}
	}
	if len(named) == 0 {
		return ""
	}
	return " (" + strings.Join(named, ", ") + ")"
}
