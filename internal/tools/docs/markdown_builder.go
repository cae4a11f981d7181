package docs

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"
)

// MarkdownBuilder wraps the markdown package. Block methods separate blocks
// with a blank line.
type MarkdownBuilder struct {
	md     *md.Markdown
	writer io.Writer
	blocks int
}

// NewMarkdownBuilder creates a new markdown builder
func NewMarkdownBuilder(w io.Writer) *MarkdownBuilder {
	return &MarkdownBuilder{
		md:     md.NewMarkdown(w),
		writer: w,
	}
}

// FrontMatter is a YAML front matter block for static site generators.
type FrontMatter struct {
	Title       string
	Description string
	Weight      int
}

// FrontMatter writes a front matter block. It must be the first call.
func (m *MarkdownBuilder) FrontMatter(fm FrontMatter) *MarkdownBuilder {
	lines := []string{"---", fmt.Sprintf("title: %q", fm.Title)}
	if fm.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %q", fm.Description))
	}
	if fm.Weight != 0 {
		lines = append(lines, fmt.Sprintf("weight: %d", fm.Weight))
	}
	lines = append(lines, "---")
	return m.block(func() { m.md.PlainText(strings.Join(lines, "\n")) })
}

// H1 creates a level 1 header
func (m *MarkdownBuilder) H1(text string) *MarkdownBuilder {
	return m.block(func() { m.md.H1(text) })
}

// H2 creates a level 2 header
func (m *MarkdownBuilder) H2(text string) *MarkdownBuilder {
	return m.block(func() { m.md.H2(text) })
}

// H3 creates a level 3 header
func (m *MarkdownBuilder) H3(text string) *MarkdownBuilder {
	return m.block(func() { m.md.H3(text) })
}

// Paragraph adds a paragraph of plain text
func (m *MarkdownBuilder) Paragraph(text string) *MarkdownBuilder {
	if text == "" {
		return m
	}
	return m.block(func() { m.md.PlainText(text) })
}

// Paragraphf adds a formatted paragraph
func (m *MarkdownBuilder) Paragraphf(format string, args ...any) *MarkdownBuilder {
	return m.Paragraph(fmt.Sprintf(format, args...))
}

// BulletList adds a bullet list
func (m *MarkdownBuilder) BulletList(items ...string) *MarkdownBuilder {
	if len(items) == 0 {
		return m
	}
	return m.block(func() { m.md.BulletList(items...) })
}

// Table adds a markdown table
func (m *MarkdownBuilder) Table(header []string, rows [][]string) *MarkdownBuilder {
	if len(rows) == 0 {
		return m
	}
	return m.block(func() { m.md.Table(md.TableSet{Header: header, Rows: rows}) })
}

// CodeBlock adds a fenced code block
func (m *MarkdownBuilder) CodeBlock(syntax md.SyntaxHighlight, code string) *MarkdownBuilder {
	return m.block(func() { m.md.CodeBlocks(syntax, strings.TrimRight(code, "\n")) })
}

// Build writes the document followed by a newline.
func (m *MarkdownBuilder) Build() error {
	if err := m.md.Build(); err != nil {
		return err
	}
	_, err := io.WriteString(m.writer, "\n")
	return err
}

func (m *MarkdownBuilder) block(write func()) *MarkdownBuilder {
	if m.blocks > 0 {
		m.md.PlainText("")
	}
	write()
	m.blocks++
	return m
}

// Code formats inline code
func Code(text string) string {
	return md.Code(text)
}

// Bold formats bold text
func Bold(text string) string {
	return md.Bold(text)
}

// Link formats a link
func Link(text, url string) string {
	return md.Link(text, url)
}

// Anchor returns the GitHub style heading anchor for text.
func Anchor(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return "#" + b.String()
}
