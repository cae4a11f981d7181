package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/routemap/pkg/errors"
)

// isolate keeps the user's home config out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LOG_LEVEL", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "wrapped", config.Shape)
	assert.Equal(t, "map", config.Collection)
	assert.Equal(t, "first-inline", config.RefMode)
	assert.Equal(t, "json", config.Encoding)
	assert.Equal(t, "routemap API", config.OpenAPITitle)
	assert.Equal(t, "1.0.0", config.OpenAPIVersion)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.Empty(t, config.EnvLogLevel)
	assert.Empty(t, config.ConfigFile)
}

func TestLoadConfigEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("ROUTEMAP_ROUTER", "users")
	t.Setenv("ROUTEMAP_REF_MODE", "always-ref")
	t.Setenv("ROUTEMAP_MERGE_INPUTS", "true")
	t.Setenv("ROUTEMAP_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "users", config.Router)
	assert.Equal(t, "always-ref", config.RefMode)
	assert.True(t, config.MergeInputs)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.EnvLogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "routemap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`router: accounts
key: endpoints
qualified_names: true
openapi_title: Accounts API
`), 0o644))

	t.Run("file values", func(t *testing.T) {
		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "accounts", config.Router)
		assert.Equal(t, "endpoints", config.Key)
		assert.True(t, config.QualifiedNames)
		assert.Equal(t, "Accounts API", config.OpenAPITitle)
		assert.Equal(t, "wrapped", config.Shape)
		assert.Equal(t, path, config.ConfigFile)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		t.Setenv("ROUTEMAP_KEY", "routes")
		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "routes", config.Key)
	})
}

func TestLoadConfigHomeFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".routemap.yaml"), []byte("shape: array\n"), 0o644))

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "array", config.Shape)
}

func TestLoadConfigErrors(t *testing.T) {
	isolate(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	var configErr *errors.ConfigError
	assert.ErrorAs(t, err, &configErr)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("router: [unclosed\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.ErrorAs(t, err, &configErr)
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: ""}
	config.UpdateFromFlags(true, false, true, "", "trace")

	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "trace", config.LogLevel)

	config.UpdateFromFlags(false, false, false, "json", "")
	assert.Equal(t, "json", config.Format)
	assert.True(t, config.Verbose)
}

func TestConfigDefaults(t *testing.T) {
	config := &Config{Router: "users", RefMode: "always-ref", MergeInputs: true, OpenAPITitle: "T"}
	d := config.Defaults()
	assert.Equal(t, "users", d.Router)
	assert.Equal(t, "always-ref", d.RefMode)
	assert.True(t, d.MergeInputs)
	assert.Equal(t, "T", d.OpenAPITitle)
}
