package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/routemap/pkg/errors"
)

func TestAsk(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		def     string
		want    string
		wantErr bool
	}{
		{"answer", "users\n", "", "users", false},
		{"trimmed", "  users  \n", "", "users", false},
		{"default on empty line", "\n", "routes", "routes", false},
		{"answer without newline", "users", "", "users", false},
		{"required", "\n", "", "", true},
		{"eof", "", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out)

			got, err := p.Ask("router", "Router", tt.def)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAskShowsDefault(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("\n"), &out)

	_, err := p.Ask("key", "Key", "routes")
	require.NoError(t, err)
	assert.Equal(t, "Key [routes]: ", out.String())
}

func TestFill(t *testing.T) {
	t.Run("asks for every missing value", func(t *testing.T) {
		var out bytes.Buffer
		p := New(strings.NewReader("users\napi\nendpoints\n"), &out)

		d := &Details{}
		require.NoError(t, p.Fill(d, Details{Key: "routes"}, true))
		assert.Equal(t, Details{Router: "users", Out: "api", Key: "endpoints"}, *d)
		assert.Equal(t, 3, strings.Count(out.String(), ": "))
	})

	t.Run("skips provided values", func(t *testing.T) {
		var out bytes.Buffer
		p := New(strings.NewReader("\n"), &out)

		d := &Details{Router: "users", Out: "api"}
		require.NoError(t, p.Fill(d, Details{Key: "routes"}, true))
		assert.Equal(t, "routes", d.Key)
		assert.NotContains(t, out.String(), "router")
	})

	t.Run("output defaults to router name", func(t *testing.T) {
		p := New(strings.NewReader("\n"), &bytes.Buffer{})

		d := &Details{Router: "accounts"}
		require.NoError(t, p.Fill(d, Details{}, false))
		assert.Equal(t, "accounts", d.Out)
		assert.Empty(t, d.Key)
	})

	t.Run("explicit output default", func(t *testing.T) {
		p := New(strings.NewReader("\n"), &bytes.Buffer{})

		d := &Details{Router: "api.yaml"}
		require.NoError(t, p.Fill(d, Details{Out: "api-routes"}, false))
		assert.Equal(t, "api-routes", d.Out)
	})
}

func TestInteractiveNil(t *testing.T) {
	assert.False(t, Interactive(nil))
}
