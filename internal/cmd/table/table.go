// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/routemap/pkg/extract"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// maxDescription caps description cells in wide tables.
const maxDescription = 80

// EndpointsToTableData converts endpoints to table format. Wide adds the
// definition names each endpoint points at and its description.
func EndpointsToTableData(endpoints []*extract.Endpoint, wide bool) Data {
	headers := []string{"Path", "Type", "Input", "Output"}
	if wide {
		headers = append(headers, "Schemas", "Description")
	}

	rows := make([][]string, 0, len(endpoints))
	for _, ep := range endpoints {
		row := []string{
			ep.Path,
			ep.Kind.String(),
			orDash(strings.Join(ep.InputTypes, ", ")),
			orDash(ep.OutputType),
		}

		if wide {
			row = append(row, orDash(SchemaNames(ep)), orDash(Truncate(ep.Description, maxDescription)))
		}

		rows = append(rows, row)
	}

	return Data{
		Headers: headers,
		Rows:    rows,
	}
}

// RouterSummary is one row of the routers listing.
type RouterSummary struct {
	Name      string `json:"name" yaml:"name"`
	Endpoints int    `json:"endpoints" yaml:"endpoints"`
	Groups    int    `json:"groups" yaml:"groups"`
}

// RoutersToTableData converts router summaries to table format.
func RoutersToTableData(routers []RouterSummary) Data {
	rows := make([][]string, 0, len(routers))
	for _, r := range routers {
		rows = append(rows, []string{r.Name, strconv.Itoa(r.Endpoints), strconv.Itoa(r.Groups)})
	}
	return Data{
		Headers:         []string{"Router", "Endpoints", "Groups"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight},
	}
}

// SchemaNames lists the definition names an endpoint's input and output
// refer to, in input then output order.
func SchemaNames(ep *extract.Endpoint) string {
	var names []string
	for _, in := range ep.Inputs {
		names = append(names, in.Name)
	}
	if ep.Output != nil {
		names = append(names, ep.Output.Name)
	}
	return strings.Join(names, ", ")
}

// Truncate shortens s to at most n runes, ending with "..." when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
