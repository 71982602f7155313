package objectgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/dcl/language"
	"github.com/viant/dcl/resolution"
	"github.com/viant/dcl/testutil"
)

func resolve(t *testing.T, src string) *resolution.ResolutionResult {
	t.Helper()
	doc, err := language.NewParser().Parse(context.Background(), "test.dcl", []byte(src))
	require.NoError(t, err)
	require.Empty(t, doc.Failures)
	result, _ := resolution.New(testutil.DemoSchema()).Resolve(doc)
	require.Empty(t, result.Errors)
	return result
}

func TestTrace(t *testing.T) {
	t.Run("transitive property chain", func(t *testing.T) {
		result := resolve(t, `val myD = newD("shared")
val c1 = c(1)
c1.d = myD
str = c1.d.id
`)
		trace := Trace(result)
		assert.Empty(t, trace.Unassigned())
		value, ok := trace.Value(result.TopLevelReceiver, "str")
		require.True(t, ok)
		constant, ok := value.(*resolution.ConstantOrigin)
		require.True(t, ok)
		assert.EqualValues(t, "shared", constant.Value)
	})

	t.Run("unassigned property read", func(t *testing.T) {
		result := resolve(t, `val c1 = c(1)
val c2 = c(2)
c2.d = c1.d
`)
		trace := Trace(result)
		unassigned := trace.Unassigned()
		require.Len(t, unassigned, 1)
		assert.EqualValues(t, "d", unassigned[0].Property())
		assert.False(t, unassigned[0].InLhs())
		rhs, ok := unassigned[0].Result.(*UnresolvedValueUsedInRhs)
		require.True(t, ok)
		assert.EqualValues(t, "#1.d", rhs.Value.Key)
	})

	t.Run("last writer wins", func(t *testing.T) {
		result := resolve(t, `str = "first"
str = "second"
`)
		trace := Trace(result)
		require.Len(t, trace.Elements, 2)
		assert.False(t, trace.Elements[0].(*RecordedAssignment).Reassigned)
		assert.True(t, trace.Elements[1].(*RecordedAssignment).Reassigned)
		value, ok := trace.Value(result.TopLevelReceiver, "str")
		require.True(t, ok)
		assert.EqualValues(t, "second", value.(*resolution.ConstantOrigin).Value)
	})

	t.Run("configured object keeps identity", func(t *testing.T) {
		result := resolve(t, `nested {
    value = "a"
}
nested {
    count = 2
}
`)
		trace := Trace(result)
		require.Len(t, trace.Elements, 2)
		first := trace.Resolve(result.NestedObjectAccess[0].DataObject).(*ObjectReference)
		second := trace.Resolve(result.NestedObjectAccess[1].DataObject).(*ObjectReference)
		assert.EqualValues(t, "$top.nested", first.Key)
		assert.EqualValues(t, first.Key, second.Key)
		value, ok := trace.Value(result.NestedObjectAccess[1].DataObject, "value")
		require.True(t, ok)
		assert.EqualValues(t, "a", value.(*resolution.ConstantOrigin).Value)
	})

	t.Run("find by operation", func(t *testing.T) {
		result := resolve(t, `val c1 = c(1)
c1.withName("n")
`)
		trace := Trace(result)
		for _, record := range result.Assignments {
			element, ok := trace.Find(record.OperationID)
			require.True(t, ok)
			assert.Same(t, record, element.Record())
		}
		_, ok := trace.Find(1000)
		assert.False(t, ok)
	})

	t.Run("reassignment reads through the reassigned property", func(t *testing.T) {
		tests := []struct {
			name       string
			src        string
			invocation int64
		}{
			{
				name:       "next is unassigned after the store",
				src:        "node = newNode()\nnode.next = newNode()\nnode = node.next\n",
				invocation: 2,
			},
			{
				name:       "next is assigned after the store",
				src:        "node = newNode()\nnode.next = newNode()\nnode.next.next = newNode()\nnode = node.next\n",
				invocation: 2,
			},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				result := resolve(t, tc.src)
				trace := Trace(result)
				assert.Empty(t, trace.Unassigned())

				last, ok := trace.Elements[len(trace.Elements)-1].(*RecordedAssignment)
				require.True(t, ok)
				assert.True(t, last.Reassigned)
				recorded, ok := last.Value.(*resolution.NewObjectFromMemberFunction)
				require.True(t, ok)
				assert.EqualValues(t, tc.invocation, recorded.InvocationID)

				value, ok := trace.Value(result.TopLevelReceiver, "node")
				require.True(t, ok)
				assert.Same(t, last.Value, value)
			})
		}
	})
}

func TestAssignmentResolver_AddAssignment(t *testing.T) {
	result := resolve(t, `val c1 = c(1)
val c2 = c(2)
val shared = newD("shared")
`)
	schema := testutil.DemoSchema()
	cClass, ok := schema.Class(testutil.C)
	require.True(t, ok)
	d := schema.FindProperty(cClass, "d")
	c1 := result.Additions[0].DataObject
	c2 := result.Additions[1].DataObject
	shared := result.Assignments[len(result.Assignments)-1].LHS.Receiver
	readD := &resolution.PropertyReference{Receiver: c1, Property: d}

	resolver := NewAssignmentResolver()
	outcome := resolver.AddAssignment(resolution.PropertyReferenceResolution{Receiver: c2, Property: d}, readD)
	assert.IsType(t, &UnresolvedValueUsedInRhs{}, outcome)

	dClass, ok := schema.Class(testutil.D)
	require.True(t, ok)
	id := dClass.DeclaredProperty("id")
	outcome = resolver.AddAssignment(resolution.PropertyReferenceResolution{Receiver: readD, Property: id}, readD)
	assert.IsType(t, &UnresolvedValueUsedInLhs{}, outcome)

	outcome = resolver.AddAssignment(resolution.PropertyReferenceResolution{Receiver: c1, Property: d}, shared)
	added, ok := outcome.(*AssignmentAdded)
	require.True(t, ok)
	assert.False(t, added.Reassigned)
	assert.Same(t, shared, added.Value.Origin)
	resolved, ok := resolver.Resolve(readD).(*ObjectReference)
	require.True(t, ok)
	assert.Same(t, shared, resolved.Origin)

	outcome = resolver.AddAssignment(resolution.PropertyReferenceResolution{Receiver: c2, Property: d}, readD)
	added, ok = outcome.(*AssignmentAdded)
	require.True(t, ok)
	assert.False(t, added.Reassigned)
	assert.Same(t, shared, added.Value.Origin)

	outcome = resolver.AddAssignment(resolution.PropertyReferenceResolution{Receiver: c2, Property: d}, c1)
	added, ok = outcome.(*AssignmentAdded)
	require.True(t, ok)
	assert.True(t, added.Reassigned)
	assert.EqualValues(t, "#1", added.Value.Key)
}
