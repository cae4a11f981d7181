package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/routemap/internal/cmd/table"
	"github.com/agentstation/routemap/pkg/extract"
	"github.com/agentstation/routemap/pkg/router"
	"github.com/agentstation/routemap/pkg/schema"
)

func sampleEndpoints() []*extract.Endpoint {
	out := schema.Ref{Name: "getUserOutputSchema", Ref: schema.RefTo("getUserOutputSchema")}
	return []*extract.Endpoint{
		{
			Path:        "users.get",
			Name:        "get",
			Kind:        router.KindQuery,
			Inputs:      []schema.Ref{{Name: "getInputSchema"}},
			Output:      &out,
			Description: "Fetch a user",
			InputTypes:  []string{"users.GetUserInput"},
			OutputType:  "users.GetUserOutput",
		},
		{
			Path: "users.ping",
			Name: "ping",
			Kind: router.KindMutation,
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"wide", FormatWide, false},
		{"", "", false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestFormatEndpointsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatEndpoints(&buf, sampleEndpoints(), FormatTable))

	out := buf.String()
	assert.Contains(t, strings.ToLower(out), "path")
	assert.Contains(t, out, "users.get")
	assert.Contains(t, out, "users.GetUserInput")
	assert.Contains(t, out, "mutation")
	assert.NotContains(t, out, "Fetch a user")
}

func TestFormatEndpointsWide(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatEndpoints(&buf, sampleEndpoints(), FormatWide))

	out := buf.String()
	assert.Contains(t, out, "Fetch a user")
	assert.Contains(t, out, "getUserOutputSchema")
}

func TestFormatEndpointsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatEndpoints(&buf, sampleEndpoints(), FormatJSON))

	var got []EndpointSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "users.get", got[0].Path)
	assert.Equal(t, "query", got[0].Type)
	assert.Equal(t, []string{"users.GetUserInput"}, got[0].Input)
	assert.Empty(t, got[1].Output)
}

func TestFormatEndpointsYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatEndpoints(&buf, sampleEndpoints(), FormatYAML))

	out := buf.String()
	assert.Contains(t, out, "path: users.get")
	assert.Contains(t, out, "type: mutation")
}

func TestFormatRouters(t *testing.T) {
	routers := []table.RouterSummary{{Name: "users", Endpoints: 2, Groups: 0}}

	var buf bytes.Buffer
	require.NoError(t, FormatRouters(&buf, routers, FormatTable))
	assert.Contains(t, buf.String(), "users")

	buf.Reset()
	require.NoError(t, FormatRouters(&buf, routers, FormatJSON))
	assert.JSONEq(t, `[{"name":"users","endpoints":2,"groups":0}]`, buf.String())
}

func TestTableFormatterReflection(t *testing.T) {
	type setting struct {
		RefMode string `json:"ref_mode"`
		Shape   string
	}

	t.Run("single struct", func(t *testing.T) {
		var buf bytes.Buffer
		f := &TableFormatter{}
		require.NoError(t, f.Format(&buf, setting{RefMode: "always-ref", Shape: "wrapped"}))
		out := buf.String()
		assert.Contains(t, out, "Ref Mode")
		assert.Contains(t, out, "always-ref")
		assert.Contains(t, out, "wrapped")
	})

	t.Run("struct slice", func(t *testing.T) {
		var buf bytes.Buffer
		f := &TableFormatter{}
		require.NoError(t, f.Format(&buf, []setting{{RefMode: "first-inline"}}))
		assert.Contains(t, buf.String(), "first-inline")
	})

	t.Run("fallback to json", func(t *testing.T) {
		var buf bytes.Buffer
		f := &TableFormatter{}
		require.NoError(t, f.Format(&buf, map[string]int{"endpoints": 3}))
		assert.JSONEq(t, `{"endpoints":3}`, buf.String())
	})
}

func TestFormatIsTable(t *testing.T) {
	assert.True(t, FormatTable.IsTable())
	assert.True(t, FormatWide.IsTable())
	assert.True(t, Format("").IsTable())
	assert.False(t, FormatJSON.IsTable())
	assert.False(t, FormatYAML.IsTable())
}

func TestJSONFormatterKeepsMarkup(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{Indent: "  "}).Format(&buf, map[string]string{"type": "Array<User>"}))
	assert.Contains(t, buf.String(), "Array<User>")
}
