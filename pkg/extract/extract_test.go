package extract

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/logging"
	"github.com/agentstation/routemap/pkg/router"
	"github.com/agentstation/routemap/pkg/schema"
)

type getUserInput struct {
	ID string `json:"id"`
}

type user struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type createUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type pageInput struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset,omitempty"`
}

type filterInput struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type countingDescriptor struct {
	renders *int
}

func (d countingDescriptor) Name() string { return "counting" }

func (d countingDescriptor) Render(*schema.Renderer) (*jsonschema.Schema, error) {
	*d.renders++
	return &jsonschema.Schema{Type: "object"}, nil
}

func usersRouter() *router.Group {
	return router.NewGroup().
		Handle("getUser", router.Query(router.In[getUserInput](), router.Out[user]())).
		Handle("createUser", router.Mutation(router.In[createUserInput](), router.Out[user]()))
}

func paths(res *Result) []string {
	out := make([]string, 0, res.Count())
	for _, ep := range res.Endpoints {
		out = append(out, ep.Path)
	}
	return out
}

func definitionNames(res *Result) []string {
	var out []string
	for pair := res.Definitions.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func TestExtractRootEndpoints(t *testing.T) {
	res, err := Extract(usersRouter())
	require.NoError(t, err)

	assert.Equal(t, []string{"getUser", "createUser"}, paths(res))
	assert.Equal(t, []string{
		"getUserInputSchema",
		"getUserOutputSchema",
		"createUserInputSchema",
		"createUserOutputSchema",
	}, definitionNames(res))

	getUser, ok := res.Lookup("getUser")
	require.True(t, ok)
	assert.Equal(t, router.KindQuery, getUser.Kind)
	require.Len(t, getUser.Inputs, 1)
	assert.False(t, getUser.Inputs[0].IsRef(), "first use is inlined")
	assert.Equal(t, []string{"extract.getUserInput"}, getUser.InputTypes)
	assert.Equal(t, "extract.user", getUser.OutputType)

	createUser, ok := res.Lookup("createUser")
	require.True(t, ok)
	assert.Equal(t, router.KindMutation, createUser.Kind)
}

func TestExtractNestedPath(t *testing.T) {
	root := router.NewGroup().Mount("user", router.NewGroup().Handle("get", router.Query(router.In[getUserInput]())))

	res, err := Extract(root)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count())
	assert.Equal(t, "user.get", res.Endpoints[0].Path)
	assert.Equal(t, "get", res.Endpoints[0].Name)
	assert.Equal(t, []string{"getInputSchema"}, definitionNames(res))
}

func TestExtractMultipleInputs(t *testing.T) {
	root := router.NewGroup().Handle("search", router.Query(router.In[filterInput](), router.In[pageInput]()))

	res, err := Extract(root)
	require.NoError(t, err)

	ep := res.Endpoints[0]
	assert.True(t, ep.InputList)
	require.Len(t, ep.Inputs, 2)
	assert.Equal(t, "searchInputSchema_0", ep.Inputs[0].Name)
	assert.Equal(t, "searchInputSchema_1", ep.Inputs[1].Name)
	assert.Equal(t, []string{"searchInputSchema_0", "searchInputSchema_1"}, definitionNames(res))

	data, err := json.Marshal(ep)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	input, ok := decoded["input"].([]any)
	require.True(t, ok, "input should be an array")
	assert.Len(t, input, 2)
	assert.NotContains(t, decoded, "output")
}

func TestExtractPreOrder(t *testing.T) {
	root := router.NewGroup().
		Mount("a", router.NewGroup().
			Mount("deep", router.NewGroup().Handle("x", router.Query())).
			Handle("one", router.Query())).
		Handle("top", router.Mutation()).
		Mount("b", router.NewGroup().Handle("two", router.Query()))

	res, err := Extract(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"top", "a.one", "a.deep.x", "b.two"}, paths(res))
}

func TestExtractCountAndUniquePaths(t *testing.T) {
	root := router.NewGroup()
	for i := range 3 {
		g := router.NewGroup()
		for j := range 4 {
			g.Handle(fmt.Sprintf("op%d", j), router.Query())
		}
		inner := router.NewGroup().Handle("leaf", router.Mutation())
		g.Mount("inner", inner)
		root.Mount(fmt.Sprintf("g%d", i), g)
	}
	root.Handle("ping", router.Query())

	res, err := Extract(root)
	require.NoError(t, err)

	assert.Equal(t, root.Count(), res.Count())
	assert.Equal(t, 16, res.Count())
	assert.Equal(t, res.Count(), res.ByPath.Len(), "paths are unique")
	for _, ep := range res.Endpoints {
		assert.True(t, strings.HasSuffix(ep.Path, ep.Name))
		got, ok := res.Lookup(ep.Path)
		require.True(t, ok)
		assert.Same(t, ep, got)
	}
}

func TestExtractNameCollisionReuses(t *testing.T) {
	renders := 0
	d := countingDescriptor{renders: &renders}
	root := router.NewGroup().
		Mount("users", router.NewGroup().Handle("get", router.Query(router.WithInput(d)))).
		Mount("orders", router.NewGroup().Handle("get", router.Query(router.WithInput(d))))

	tl := logging.NewTestLogger(t)
	res, err := Extract(root, WithLogger(tl.Logger))
	require.NoError(t, err)

	assert.Equal(t, 1, renders)
	assert.Equal(t, []string{"getInputSchema"}, definitionNames(res))

	second, ok := res.Lookup("orders.get")
	require.True(t, ok)
	assert.True(t, second.Inputs[0].IsRef())
	assert.Equal(t, "#/definitions/getInputSchema", second.Inputs[0].Ref)
	tl.AssertContains(t, "reusing existing definition")
}

func TestExtractQualifiedNames(t *testing.T) {
	root := router.NewGroup().
		Mount("users", router.NewGroup().Handle("get", router.Query(router.In[getUserInput]()))).
		Mount("orders", router.NewGroup().Handle("get", router.Query(router.In[pageInput](), router.In[filterInput]())))

	res, err := Extract(root, WithQualifiedNames())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"usersGetInputSchema",
		"ordersGetInputSchema_0",
		"ordersGetInputSchema_1",
	}, definitionNames(res))
}

func TestExtractQualifiedNamesStayDistinct(t *testing.T) {
	root := router.NewGroup().
		Handle("userGet", router.Query(router.In[getUserInput]())).
		Mount("user", router.NewGroup().
			Handle("get", router.Query(router.In[pageInput]())).
			Handle("Get", router.Query(router.In[filterInput]())))

	res, err := Extract(root, WithQualifiedNames())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"userGetInputSchema",
		"userGet_2InputSchema",
		"userGet_3InputSchema",
	}, definitionNames(res))

	for _, ep := range res.Endpoints {
		require.Len(t, ep.Inputs, 1)
		assert.False(t, ep.Inputs[0].IsRef(), ep.Path)
	}
}

func TestStemsClaim(t *testing.T) {
	s := stems{}
	assert.Equal(t, "userGet", s.claim("userGet", "user.get"))
	assert.Equal(t, "userGet", s.claim("userGet", "user.get"))
	assert.Equal(t, "userGet_2", s.claim("userGet", "userGet"))
	assert.Equal(t, "userGet_2_2", s.claim("userGet_2", "userGet_2"))
	assert.Equal(t, "other", s.claim("other", "other"))
}

func TestExtractAlwaysRef(t *testing.T) {
	res, err := Extract(usersRouter(), WithRefMode(schema.AlwaysRef))
	require.NoError(t, err)

	data, err := json.Marshal(res.Endpoints[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"path": "getUser",
		"type": "query",
		"input": {"$ref": "#/definitions/getUserInputSchema"},
		"output": {"$ref": "#/definitions/getUserOutputSchema"}
	}`, string(data))
	assert.Equal(t, 4, res.Definitions.Len())
}

func TestExtractMergedInputs(t *testing.T) {
	t.Run("objects merge", func(t *testing.T) {
		root := router.NewGroup().Handle("search", router.Query(router.In[filterInput](), router.In[pageInput]()))

		res, err := Extract(root, WithMergedInputs())
		require.NoError(t, err)

		ep := res.Endpoints[0]
		assert.False(t, ep.InputList)
		require.Len(t, ep.Inputs, 1)
		assert.Equal(t, []string{"searchInputSchema"}, definitionNames(res))

		merged := ep.Inputs[0].Schema
		require.NotNil(t, merged)
		assert.Equal(t, 3, merged.Properties.Len())
		assert.Equal(t, []string{"query", "limit"}, merged.Required)
	})

	t.Run("non objects stay separate", func(t *testing.T) {
		root := router.NewGroup().Handle("rename", router.Mutation(router.In[getUserInput](), router.In[string]()))

		res, err := Extract(root, WithMergedInputs())
		require.NoError(t, err)

		ep := res.Endpoints[0]
		assert.True(t, ep.InputList)
		assert.Equal(t, []string{"renameInputSchema_0", "renameInputSchema_1"}, definitionNames(res))
	})

	t.Run("reuses merged name", func(t *testing.T) {
		renders := 0
		d := countingDescriptor{renders: &renders}
		root := router.NewGroup().
			Mount("a", router.NewGroup().Handle("list", router.Query(router.WithInput(d), router.WithInput(d)))).
			Mount("b", router.NewGroup().Handle("list", router.Query(router.WithInput(d), router.WithInput(d))))

		res, err := Extract(root, WithMergedInputs())
		require.NoError(t, err)
		assert.Equal(t, 2, renders, "second endpoint reuses the merged definition")

		second, _ := res.Lookup("b.list")
		assert.True(t, second.Inputs[0].IsRef())
	})
}

func TestExtractRenderFailureAborts(t *testing.T) {
	root := router.NewGroup().
		Handle("ok", router.Query(router.In[getUserInput]())).
		Handle("stream", router.Query(router.In[chan int]()))

	res, err := Extract(root)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.IsUnsupported(err))

	var schemaErr *errors.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "streamInputSchema", schemaErr.Name)
	assert.Contains(t, err.Error(), "stream")
}

func TestExtractSkipsEmptyEntries(t *testing.T) {
	tl := logging.NewTestLogger(t)
	root := router.NewGroup().
		Handle("missing", nil).
		Handle("getUser", router.Query()).
		Mount("gone", nil).
		Mount("empty", router.NewGroup())

	res, err := Extract(root, WithLogger(tl.Logger))
	require.NoError(t, err)
	assert.Equal(t, []string{"getUser"}, paths(res))
	tl.AssertContains(t, "missing")
	tl.AssertContains(t, "gone")
}

func TestExtractNilRoot(t *testing.T) {
	res, err := Extract(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count())
	assert.Equal(t, 0, res.Definitions.Len())
	assert.Equal(t, 0, res.ByPath.Len())
}

func TestExtractNoInputOrOutput(t *testing.T) {
	res, err := Extract(router.NewGroup().Handle("ping", router.Query()))
	require.NoError(t, err)

	data, err := json.Marshal(res.Endpoints[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"ping","type":"query"}`, string(data))
}

func TestExtractUsesRenderer(t *testing.T) {
	res, err := Extract(usersRouter(), WithRenderer(schema.NewRenderer(schema.WithAdditionalProperties())))
	require.NoError(t, err)

	s, ok := res.Definitions.Get("getUserInputSchema")
	require.True(t, ok)
	assert.Nil(t, s.AdditionalProperties)
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		name, path string
		qualified  bool
		want       string
	}{
		{"get", "user.get", false, "get"},
		{"get", "user.get", true, "userGet"},
		{"getUser", "getUser", true, "getUser"},
		{"charge", "accounts.billing.charge", true, "accountsBillingCharge"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, baseName(tt.name, tt.path, tt.qualified))
		})
	}
}
