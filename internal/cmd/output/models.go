package output

import (
	"io"

	"github.com/agentstation/routemap/internal/cmd/table"
	"github.com/agentstation/routemap/pkg/extract"
)

// EndpointSummary is the json/yaml listing entry for one endpoint.
type EndpointSummary struct {
	Path        string   `json:"path" yaml:"path"`
	Type        string   `json:"type" yaml:"type"`
	Input       []string `json:"input,omitempty" yaml:"input,omitempty"`
	Output      string   `json:"output,omitempty" yaml:"output,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Summarize converts endpoints to listing entries.
func Summarize(endpoints []*extract.Endpoint) []EndpointSummary {
	out := make([]EndpointSummary, 0, len(endpoints))
	for _, ep := range endpoints {
		out = append(out, EndpointSummary{
			Path:        ep.Path,
			Type:        ep.Kind.String(),
			Input:       ep.InputTypes,
			Output:      ep.OutputType,
			Description: ep.Description,
		})
	}
	return out
}

// FormatEndpoints writes endpoints as a table for table formats and as
// EndpointSummary records otherwise.
func FormatEndpoints(w io.Writer, endpoints []*extract.Endpoint, format Format) error {
	if format.IsTable() {
		return NewFormatter(format).Format(w, table.EndpointsToTableData(endpoints, format == FormatWide))
	}
	return NewFormatter(format).Format(w, Summarize(endpoints))
}

// FormatRouters writes router summaries.
func FormatRouters(w io.Writer, routers []table.RouterSummary, format Format) error {
	if format.IsTable() {
		return NewFormatter(format).Format(w, table.RoutersToTableData(routers))
	}
	return NewFormatter(format).Format(w, routers)
}
