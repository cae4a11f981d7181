package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/routemap/pkg/errors"
)

func resetRegistry(t *testing.T) {
	t.Helper()
	routersMu.Lock()
	saved := routers
	routers = make(map[string]*Group)
	routersMu.Unlock()
	t.Cleanup(func() {
		routersMu.Lock()
		routers = saved
		routersMu.Unlock()
	})
}

func TestRegistry(t *testing.T) {
	resetRegistry(t)

	users := NewGroup().Handle("getUser", Query())
	Register("users", users)
	Register("accounts", NewGroup())

	got, err := Lookup("users")
	require.NoError(t, err)
	assert.Same(t, users, got)
	assert.Equal(t, []string{"accounts", "users"}, Names())

	_, err = Lookup("billing")
	assert.True(t, errors.IsNotFound(err))
	assert.EqualError(t, err, `router "billing" not found`)
}

func TestRegisterPanics(t *testing.T) {
	resetRegistry(t)
	Register("users", NewGroup())

	assert.Panics(t, func() { Register("users", NewGroup()) })
	assert.Panics(t, func() { Register("", NewGroup()) })
	assert.Panics(t, func() { Register("nil", nil) })
}
