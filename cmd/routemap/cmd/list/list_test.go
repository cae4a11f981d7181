package list

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/agentstation/routemap/examples/accounts"
	"github.com/agentstation/routemap/internal/appcontext"
	"github.com/agentstation/routemap/internal/cmd/output"
	"github.com/agentstation/routemap/pkg/errors"
)

func execute(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()

	app := &appcontext.Mock{OutputFormatFunc: func() string { return format }}
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListJSON(t *testing.T) {
	out, err := execute(t, "json", "-r", "accounts")
	require.NoError(t, err)

	var got []output.EndpointSummary
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	paths := make([]string, len(got))
	for i, ep := range got {
		paths[i] = ep.Path
	}
	assert.Equal(t, []string{
		"get", "list", "close",
		"billing.charge",
		"billing.invoices.get", "billing.invoices.list",
	}, paths)
	assert.Equal(t, "Charge an account.", got[3].Description)
	assert.Len(t, got[3].Input, 2)
}

func TestListWide(t *testing.T) {
	out, err := execute(t, "wide", "-r", "accounts", "--qualified-names")
	require.NoError(t, err)
	assert.Contains(t, out, "billing.invoices.get")
	assert.Contains(t, out, "billingInvoicesGetInputSchema")
}

func TestListYAML(t *testing.T) {
	out, err := execute(t, "yaml", "-r", "accounts")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "- path: get"), out)
}

func TestListErrors(t *testing.T) {
	_, err := execute(t, "xml", "-r", "accounts")
	assert.Error(t, err)

	_, err = execute(t, "json", "-r", "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestListRouterFlagBeatsConfiguredManifest(t *testing.T) {
	app := &appcontext.Mock{
		OutputFormatFunc: func() string { return "json" },
		DefaultsFunc: func() appcontext.Defaults {
			return appcontext.Defaults{Manifest: "missing-from-config.yaml"}
		},
	}
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-r", "accounts"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var got []output.EndpointSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Len(t, got, 6)
}
