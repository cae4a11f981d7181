package appcontext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/router"
)

func TestMockDefaults(t *testing.T) {
	m := &Mock{}
	assert.Equal(t, "dev", m.Version())
	assert.Equal(t, "table", m.OutputFormat())
	assert.False(t, m.Verbose())
	assert.Equal(t, Defaults{}, m.Defaults())
	assert.NotNil(t, m.Logger())
}

func TestMockLoadRouter(t *testing.T) {
	t.Run("custom func", func(t *testing.T) {
		g := router.NewGroup().Handle("ping", router.Query())
		m := &Mock{LoadRouterFunc: func(context.Context, string, string) (*router.Group, error) {
			return g, nil
		}}

		got, err := m.LoadRouter(context.Background(), "x", "")
		require.NoError(t, err)
		assert.Same(t, g, got)
	})

	t.Run("manifest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "api.yaml")
		require.NoError(t, os.WriteFile(path, []byte("procedures:\n  ping:\n    type: query\n"), 0o644))

		got, err := (&Mock{}).LoadRouter(context.Background(), "", path)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Count())
	})

	t.Run("unknown registered router", func(t *testing.T) {
		_, err := (&Mock{}).LoadRouter(context.Background(), "no-such-router", "")
		assert.True(t, errors.IsNotFound(err))
	})
}
