// Package router describes endpoint trees: groups that own procedures and
// nested groups under unique names.
//
// Trees are built in Go and registered by name, or loaded from a manifest:
//
//	users := router.NewGroup().
//		Handle("getUser", router.Query(router.In[GetUserInput](), router.Out[User]())).
//		Handle("createUser", router.Mutation(router.In[CreateUserInput](), router.Out[User]()))
//
//	root := router.NewGroup().Mount("users", users)
package router

import (
	"fmt"
	"strings"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/schema"
)

// Kind is the kind of a procedure.
type Kind string

const (
	// KindQuery is a read-only procedure.
	KindQuery Kind = "query"
	// KindMutation is a procedure with side effects.
	KindMutation Kind = "mutation"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	return k == KindQuery || k == KindMutation
}

// ParseKind parses "query" or "mutation".
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", errors.NewValidationError("type", s, "must be query or mutation")
	}
	return k, nil
}

// Node is an entry of a group: a *Group or a *Procedure.
type Node interface {
	node()
}

// Procedure is a single callable endpoint.
type Procedure struct {
	Kind        Kind
	Inputs      []schema.Descriptor
	Output      schema.Descriptor
	Description string
}

func (*Procedure) node() {}

// ProcedureOption configures a procedure.
type ProcedureOption func(*Procedure)

// Query creates a query procedure.
func Query(opts ...ProcedureOption) *Procedure {
	return newProcedure(KindQuery, opts)
}

// Mutation creates a mutation procedure.
func Mutation(opts ...ProcedureOption) *Procedure {
	return newProcedure(KindMutation, opts)
}

func newProcedure(kind Kind, opts []ProcedureOption) *Procedure {
	p := &Procedure{Kind: kind}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// In appends T to the procedure's inputs.
func In[T any]() ProcedureOption {
	return WithInput(schema.TypeOf[T]())
}

// Out sets T as the procedure's output.
func Out[T any]() ProcedureOption {
	return WithOutput(schema.TypeOf[T]())
}

// WithInput appends d to the procedure's inputs. Nil is ignored.
func WithInput(d schema.Descriptor) ProcedureOption {
	return func(p *Procedure) {
		if d != nil {
			p.Inputs = append(p.Inputs, d)
		}
	}
}

// WithOutput sets the procedure's output.
func WithOutput(d schema.Descriptor) ProcedureOption {
	return func(p *Procedure) {
		p.Output = d
	}
}

// Describe sets a human readable description.
func Describe(text string) ProcedureOption {
	return func(p *Procedure) {
		p.Description = text
	}
}

// Entry is a named node of a group.
type Entry struct {
	Name string
	Node Node
}

// Group is an ordered set of uniquely named procedures and child groups.
// The zero value is an empty group ready to use.
type Group struct {
	entries []Entry
	names   map[string]struct{}
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{}
}

// Handle registers a procedure under name and returns g. It panics if name
// is empty, contains the path separator, or is already registered. A nil
// procedure is kept as an empty entry.
func (g *Group) Handle(name string, p *Procedure) *Group {
	var n Node
	if p != nil {
		n = p
	}
	g.add(name, n)
	return g
}

// Mount registers a child group under name and returns g. It panics under
// the same conditions as Handle.
func (g *Group) Mount(name string, child *Group) *Group {
	var n Node
	if child != nil {
		n = child
	}
	g.add(name, n)
	return g
}

func (*Group) node() {}

func (g *Group) add(name string, n Node) {
	if name == "" {
		panic("router: empty entry name")
	}
	if strings.Contains(name, constants.PathSeparator) {
		panic(fmt.Sprintf("router: entry name %q contains %q", name, constants.PathSeparator))
	}
	if g.names == nil {
		g.names = make(map[string]struct{})
	}
	if _, dup := g.names[name]; dup {
		panic(fmt.Sprintf("router: duplicate entry %q", name))
	}
	g.names[name] = struct{}{}
	g.entries = append(g.entries, Entry{Name: name, Node: n})
}

// Entries returns all entries in registration order.
func (g *Group) Entries() []Entry {
	if g == nil {
		return nil
	}
	out := make([]Entry, len(g.entries))
	copy(out, g.entries)
	return out
}

// Procedures returns the procedure entries in registration order.
func (g *Group) Procedures() []Entry {
	return g.filter(func(n Node) bool {
		p, ok := n.(*Procedure)
		return ok && p != nil
	})
}

// Groups returns the child group entries in registration order.
func (g *Group) Groups() []Entry {
	return g.filter(func(n Node) bool {
		c, ok := n.(*Group)
		return ok && c != nil
	})
}

func (g *Group) filter(keep func(Node) bool) []Entry {
	if g == nil {
		return nil
	}
	var out []Entry
	for _, e := range g.entries {
		if keep(e.Node) {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of direct entries.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entries)
}

// Count returns the number of procedures in the whole subtree.
func (g *Group) Count() int {
	n := len(g.Procedures())
	for _, e := range g.Groups() {
		n += e.Node.(*Group).Count()
	}
	return n
}
