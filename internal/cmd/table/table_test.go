package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/routemap/pkg/extract"
	"github.com/agentstation/routemap/pkg/router"
	"github.com/agentstation/routemap/pkg/schema"
)

func TestEndpointsToTableData(t *testing.T) {
	out := schema.Ref{Name: "getOutputSchema"}
	endpoints := []*extract.Endpoint{
		{
			Path:       "get",
			Kind:       router.KindQuery,
			Inputs:     []schema.Ref{{Name: "getInputSchema"}},
			Output:     &out,
			InputTypes: []string{"a.In", "a.Extra"},
			OutputType: "a.Out",
		},
		{Path: "noop", Kind: router.KindMutation},
	}

	t.Run("narrow", func(t *testing.T) {
		data := EndpointsToTableData(endpoints, false)
		assert.Equal(t, []string{"Path", "Type", "Input", "Output"}, data.Headers)
		assert.Equal(t, []string{"get", "query", "a.In, a.Extra", "a.Out"}, data.Rows[0])
		assert.Equal(t, []string{"noop", "mutation", "-", "-"}, data.Rows[1])
	})

	t.Run("wide", func(t *testing.T) {
		data := EndpointsToTableData(endpoints, true)
		assert.Len(t, data.Headers, 6)
		assert.Equal(t, "getInputSchema, getOutputSchema", data.Rows[0][4])
		assert.Equal(t, "-", data.Rows[1][5])
	})
}

func TestRoutersToTableData(t *testing.T) {
	data := RoutersToTableData([]RouterSummary{{Name: "accounts", Endpoints: 6, Groups: 2}})
	assert.Equal(t, [][]string{{"accounts", "6", "2"}}, data.Rows)
	assert.Equal(t, []Align{AlignLeft, AlignRight, AlignRight}, data.ColumnAlignment)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}
