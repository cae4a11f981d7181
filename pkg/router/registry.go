package router

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agentstation/routemap/pkg/errors"
)

var (
	routersMu sync.RWMutex
	routers   = make(map[string]*Group)
)

// Register makes a router available by name to the CLI. It is meant to be
// called from init functions and panics if name is empty, the group is nil,
// or the name is already taken.
func Register(name string, g *Group) {
	routersMu.Lock()
	defer routersMu.Unlock()
	if name == "" {
		panic("router: Register with empty name")
	}
	if g == nil {
		panic("router: Register group is nil")
	}
	if _, dup := routers[name]; dup {
		panic(fmt.Sprintf("router: Register called twice for %q", name))
	}
	routers[name] = g
}

// Lookup returns the router registered under name.
func Lookup(name string) (*Group, error) {
	routersMu.RLock()
	defer routersMu.RUnlock()
	g, ok := routers[name]
	if !ok {
		return nil, errors.NewNotFoundError("router", name)
	}
	return g, nil
}

// Names returns the registered router names, sorted.
func Names() []string {
	routersMu.RLock()
	defer routersMu.RUnlock()
	names := make([]string, 0, len(routers))
	for name := range routers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
