package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/dcl/language"
	"github.com/viant/dcl/objectgraph"
	"github.com/viant/dcl/resolution"
	"github.com/viant/dcl/testutil"
)

type topLevel struct {
	Str    string
	I      int
	L      int64
	Flag   bool
	Nested nested
	Cs     []*cObject
	Node   *linkNode

	created int
}

func (t *topLevel) C(x int) *cObject {
	c := &cObject{X: x}
	t.Cs = append(t.Cs, c)
	return c
}

func (t *topLevel) NewD(id string) *dObject {
	return &dObject{ID: id}
}

func (t *topLevel) NewNode() *linkNode {
	t.created++
	return &linkNode{ID: t.created}
}

type linkNode struct {
	ID   int
	Next *linkNode
}

type cObject struct {
	X    int
	D    *dObject
	Name string
}

type dObject struct {
	ID string
}

type nested struct {
	Value string
	count int
	Items []*item
}

func (n *nested) SetCount(count int) {
	n.count = count * 10
}

func (n *nested) Item(name string) *item {
	i := &item{Name: name}
	n.Items = append(n.Items, i)
	return i
}

type item struct {
	Name    string
	Enabled bool `dcl:"enabled"`
}

func resolve(t *testing.T, src string) *resolution.ResolutionResult {
	t.Helper()
	doc, err := language.NewParser().Parse(context.Background(), "test.dcl", []byte(src))
	require.NoError(t, err)
	require.Empty(t, doc.Failures)
	result, _ := resolution.New(testutil.DemoSchema()).Resolve(doc)
	return result
}

func TestExecutor_Apply(t *testing.T) {
	result := resolve(t, `val myD = newD("shared")
val c1 = c(1) {
    withName("first")
}
c1.d = myD
str = c1.d.id
i = 5
l = 6
flag = true
nested {
    value = "v"
    count = 2
    item("a") { enabled = true }
}
`)
	require.Empty(t, result.Errors)
	root := &topLevel{}
	err := New().Apply(result, objectgraph.Trace(result), root)
	require.NoError(t, err)

	assert.EqualValues(t, "shared", root.Str)
	assert.EqualValues(t, 5, root.I)
	assert.EqualValues(t, 6, root.L)
	assert.True(t, root.Flag)
	require.Len(t, root.Cs, 1)
	assert.EqualValues(t, 1, root.Cs[0].X)
	assert.EqualValues(t, "first", root.Cs[0].Name)
	require.NotNil(t, root.Cs[0].D)
	assert.EqualValues(t, "shared", root.Cs[0].D.ID)
	assert.EqualValues(t, "v", root.Nested.Value)
	assert.EqualValues(t, 20, root.Nested.count)
	require.Len(t, root.Nested.Items, 1)
	assert.EqualValues(t, "a", root.Nested.Items[0].Name)
	assert.True(t, root.Nested.Items[0].Enabled)
}

func TestExecutor_Apply_Reassignment(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		expect int
		next   int
	}{
		{
			name:   "reassign to own property",
			src:    "node = newNode()\nnode.next = newNode()\nnode = node.next\n",
			expect: 2,
		},
		{
			name:   "reassign to own property with nested next",
			src:    "node = newNode()\nnode.next = newNode()\nnode.next.next = newNode()\nnode = node.next\n",
			expect: 2,
			next:   3,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := resolve(t, tc.src)
			require.Empty(t, result.Errors)
			root := &topLevel{}
			require.NoError(t, New().Apply(result, nil, root))
			require.NotNil(t, root.Node)
			assert.EqualValues(t, tc.expect, root.Node.ID)
			if tc.next == 0 {
				assert.Nil(t, root.Node.Next)
				return
			}
			require.NotNil(t, root.Node.Next)
			assert.EqualValues(t, tc.next, root.Node.Next.ID)
		})
	}
}

func TestExecutor_Apply_Imports(t *testing.T) {
	result := resolve(t, `import org.example.util.label
import org.example.util.defaultD

val c1 = c(1)
c1.d = label("labeled")
val c2 = c(2)
c2.d = defaultD
`)
	require.Empty(t, result.Errors)
	shared := &dObject{ID: "default"}
	executor := New(
		WithFunction("org.example.util.label", func(id string) *dObject { return &dObject{ID: id} }),
		WithObject("org.example.util.defaultD", shared),
	)
	root := &topLevel{}
	require.NoError(t, executor.Apply(result, nil, root))
	require.Len(t, root.Cs, 2)
	assert.EqualValues(t, "labeled", root.Cs[0].D.ID)
	assert.Same(t, shared, root.Cs[1].D)
}

func TestExecutor_Apply_NotEvaluated(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "resolution error", src: "val c1 = c(1)\nstr = 1"},
		{name: "unassigned value", src: "val c1 = c(1)\nval c2 = c(2)\nc2.d = c1.d"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := resolve(t, tc.src)
			root := &topLevel{}
			err := New().Apply(result, nil, root)
			require.Error(t, err)
			assert.True(t, IsNotEvaluated(err))
			notEvaluated, ok := AsNotEvaluated(err)
			require.True(t, ok)
			assert.Len(t, notEvaluated.Reasons, 1)
			assert.Empty(t, root.Cs)
		})
	}
}

func TestReflection(t *testing.T) {
	r := Reflection{}
	c := &cObject{}
	require.NoError(t, r.SetProperty(c, "x", int32(3)))
	assert.EqualValues(t, 3, c.X)

	value, err := r.GetProperty(c, "x")
	require.NoError(t, err)
	assert.EqualValues(t, 3, value)

	assert.Error(t, r.SetProperty(c, "missing", 1))
	assert.Error(t, r.SetProperty(c, "name", 1))

	n := &nested{}
	created, err := r.Invoke(n, "item", []interface{}{"x"})
	require.NoError(t, err)
	assert.Same(t, n.Items[0], created)

	_, err = r.Invoke(n, "item", nil)
	assert.Error(t, err)
}
