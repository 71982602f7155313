package resolution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/dcl/language"
	"github.com/viant/dcl/schema"
	"github.com/viant/dcl/testutil"
)

func parse(t *testing.T, src string) *language.Result {
	t.Helper()
	doc, err := language.NewParser().Parse(context.Background(), "test.dcl", []byte(src))
	require.NoError(t, err)
	require.Empty(t, doc.Failures)
	return doc
}

func reasons(result *ResolutionResult) []ErrorReason {
	var items []ErrorReason
	for _, err := range result.Errors {
		items = append(items, err.Reason)
	}
	return items
}

func TestResolver_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []ErrorReason
	}{
		{
			name:     "int assigned to string property",
			src:      `str = 1`,
			expected: []ErrorReason{AssignmentTypeMismatch{Expected: schema.StringDataType, Actual: schema.IntDataType}},
		},
		{
			name:     "int widens to long",
			src:      `l = 1`,
			expected: nil,
		},
		{
			name:     "unit value in local",
			src:      `val x = nested { }`,
			expected: []ErrorReason{UnitAssignment{}},
		},
		{
			name:     "unit value in property",
			src:      `str = nested { value = "a" }`,
			expected: []ErrorReason{UnitAssignment{}},
		},
		{
			name:     "use before definition",
			src:      "i = b\nval b = 1",
			expected: []ErrorReason{UnresolvedReference{Name: "b"}},
		},
		{
			name:     "unknown function",
			src:      `foo()`,
			expected: []ErrorReason{UnresolvedFunctionCallSignature{Name: "foo"}},
		},
		{
			name:     "wrong arguments",
			src:      `val c1 = c("one")`,
			expected: []ErrorReason{UnresolvedFunctionCallArguments{Name: "c"}},
		},
		{
			name:     "val reassignment",
			src:      "val a = 1\na = 2",
			expected: []ErrorReason{ValReassignment{Name: "a"}},
		},
		{
			name:     "duplicate val",
			src:      "val a = 1\nval a = 2",
			expected: []ErrorReason{DuplicateLocalValue{Name: "a"}},
		},
		{
			name:     "errors in source order",
			src:      "val a = 1\nval a = foo()\nstr = 1",
			expected: []ErrorReason{
				DuplicateLocalValue{Name: "a"},
				UnresolvedFunctionCallSignature{Name: "foo"},
				AssignmentTypeMismatch{Expected: schema.StringDataType, Actual: schema.IntDataType},
			},
		},
		{
			name:     "read-only property",
			src:      "val c1 = c(1)\nc1.x = 2",
			expected: []ErrorReason{ReadOnlyPropertyAssignment{Property: "x"}},
		},
		{
			name:     "missing configure lambda",
			src:      `nested()`,
			expected: []ErrorReason{MissingConfigureLambda{Name: "nested"}},
		},
		{
			name:     "unused configure lambda",
			src:      `val d = newD("a") { }`,
			expected: []ErrorReason{UnusedConfigureLambda{Name: "newD"}},
		},
		{
			name:     "dangling property read",
			src:      `str`,
			expected: []ErrorReason{DanglingPureExpression{}},
		},
		{
			name:     "dangling pure call",
			src:      `newD("a")`,
			expected: []ErrorReason{DanglingPureExpression{}},
		},
		{
			name:     "outer receiver assignment",
			src:      `c(1) { str = "x" }`,
			expected: []ErrorReason{AccessOnCurrentReceiverOnlyViolation{Name: "str"}},
		},
		{
			name:     "outer receiver adding call",
			src:      `c(1) { c(2) }`,
			expected: []ErrorReason{AccessOnCurrentReceiverOnlyViolation{Name: "c"}},
		},
		{
			name:     "outer receiver pure call",
			src:      `c(1) { d = newD("x") }`,
			expected: nil,
		},
		{
			name:     "property on a primitive",
			src:      `i = str.size`,
			expected: []ErrorReason{UnresolvedReference{Name: "size"}},
		},
		{
			name:     "function on a primitive",
			src:      `i = str.size()`,
			expected: []ErrorReason{UnresolvedFunctionCallReceiver{Name: "size"}},
		},
		{
			name:     "function without import",
			src:      `val d = label("a")`,
			expected: []ErrorReason{UnresolvedFunctionCallSignature{Name: "label"}},
		},
		{
			name:     "imported function",
			src:      "import org.example.util.label\nval c1 = c(1)\nc1.d = label(\"a\")",
			expected: nil,
		},
		{
			name:     "unknown import",
			src:      "import org.example.util.missing",
			expected: []ErrorReason{UnresolvedReference{Name: "org.example.util.missing"}},
		},
		{
			name:     "inherited property",
			src:      `nested { item("a") { enabled = true } }`,
			expected: nil,
		},
		{
			name:     "null to a class property",
			src:      "val c1 = c(1)\nc1.d = null",
			expected: nil,
		},
		{
			name:     "null to a string property",
			src:      `str = null`,
			expected: []ErrorReason{AssignmentTypeMismatch{Expected: schema.StringDataType, Actual: schema.NullType}},
		},
	}

	resolver := New(testutil.DemoSchema())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, _ := resolver.Resolve(parse(t, tc.src))
			assert.EqualValues(t, tc.expected, reasons(result))
		})
	}
}

func TestResolver_Records(t *testing.T) {
	resolver := New(testutil.DemoSchema())

	t.Run("adding call stores constructor argument", func(t *testing.T) {
		result, _ := resolver.Resolve(parse(t, `val c1 = c(1)`))
		require.Empty(t, result.Errors)
		require.Len(t, result.Additions, 1)
		addition := result.Additions[0]
		assert.EqualValues(t, "c", addition.DataObject.Function.Name)
		require.Len(t, result.Assignments, 1)
		record := result.Assignments[0]
		assert.EqualValues(t, AsConstructed, record.Method)
		assert.EqualValues(t, "x", record.LHS.Property.Name)
		assert.Same(t, addition.DataObject, record.LHS.Receiver)
		assert.EqualValues(t, int32(1), record.RHS.(*ConstantOrigin).Value)
		assert.Less(t, addition.OperationID, record.OperationID)
	})

	t.Run("builder chain", func(t *testing.T) {
		result, _ := resolver.Resolve(parse(t, `c(1).withName("a").withName("b")`))
		require.Empty(t, result.Errors)
		var builders []*AssignmentRecord
		for _, record := range result.Assignments {
			if record.Method == BuilderFunction {
				builders = append(builders, record)
			}
		}
		require.Len(t, builders, 2)
		assert.IsType(t, &NewObjectFromMemberFunction{}, builders[0].LHS.Receiver)
		second, ok := builders[1].LHS.Receiver.(*BuilderReturnedReceiver)
		require.True(t, ok)
		assert.Same(t, builders[0].LHS.Receiver, second.Receiver)
		assert.EqualValues(t, "b", builders[1].RHS.(*ConstantOrigin).Value)
	})

	t.Run("configuring call", func(t *testing.T) {
		result, _ := resolver.Resolve(parse(t, `nested { value = "v" }`))
		require.Empty(t, result.Errors)
		require.Len(t, result.NestedObjectAccess, 1)
		access := result.NestedObjectAccess[0]
		assert.EqualValues(t, testutil.Nested, access.DataObject.Accessor.ObjectType)
		require.Len(t, result.Assignments, 1)
		this, ok := result.Assignments[0].LHS.Receiver.(*ImplicitThisReceiver)
		require.True(t, ok)
		assert.Same(t, access.DataObject, this.ResolvedTo)
	})

	t.Run("literal leaves match the source", func(t *testing.T) {
		result, _ := resolver.Resolve(parse(t, "str = \"text\"\ni = 7\nl = 8L\nflag = true"))
		require.Empty(t, result.Errors)
		var values []interface{}
		for _, record := range result.Assignments {
			values = append(values, record.RHS.(*ConstantOrigin).Value)
		}
		assert.EqualValues(t, []interface{}{"text", int32(7), int64(8), true}, values)
	})

	t.Run("defined before use", func(t *testing.T) {
		result, _ := resolver.Resolve(parse(t, "val a = \"x\"\nval b = a\nstr = b"))
		require.Empty(t, result.Errors)
		require.Len(t, result.Assignments, 1)
		local, ok := result.Assignments[0].RHS.(*FromLocalValue)
		require.True(t, ok)
		assert.EqualValues(t, "b", local.Name)
		inner, ok := local.Assigned.(*FromLocalValue)
		require.True(t, ok)
		assert.EqualValues(t, "a", inner.Name)
	})

	t.Run("external object", func(t *testing.T) {
		result, _ := resolver.Resolve(parse(t, "import org.example.util.defaultD\nval c1 = c(1)\nc1.d = defaultD"))
		require.Empty(t, result.Errors)
		external, ok := result.Assignments[len(result.Assignments)-1].RHS.(*External)
		require.True(t, ok)
		assert.EqualValues(t, "org.example.util.defaultD", external.Key)
	})
}

func TestResolver_Idempotent(t *testing.T) {
	doc := parse(t, `val myD = newD("shared")
val c1 = c(1) {
    withName("first")
}
c1.d = myD
str = c1.d.id
nested {
    item("a") { enabled = true }
}
str = 1
`)
	resolver := New(testutil.DemoSchema())
	first, _ := resolver.Resolve(doc)
	second, _ := resolver.Resolve(doc)
	assert.Equal(t, first, second)
	assert.Len(t, first.Errors, 1)
}

func TestTrace(t *testing.T) {
	doc := parse(t, "val a = 1\ni = a\nstr = 2")
	result, trace := New(testutil.DemoSchema()).Resolve(doc)
	require.Len(t, result.Errors, 1)

	local := doc.TopLevelBlock.Statements[0].(*language.LocalValue)
	localResult := trace.LocalValue(local)
	assert.IsType(t, &FromLocalValue{}, localResult.Origin)
	assert.Empty(t, localResult.Errors)

	assignment := doc.TopLevelBlock.Statements[1].(*language.Assignment)
	assignmentResult := trace.Assignment(assignment)
	require.NotNil(t, assignmentResult.LHS)
	assert.EqualValues(t, "i", assignmentResult.LHS.Property.Name)
	assert.Same(t, localResult.Origin, assignmentResult.RHS)

	mismatch := doc.TopLevelBlock.Statements[2].(*language.Assignment)
	assert.Len(t, trace.Assignment(mismatch).Errors, 1)
	literal := trace.Expression(mismatch.RHS)
	assert.EqualValues(t, int32(2), literal.Origin.(*ConstantOrigin).Value)

	assert.Panics(t, func() {
		trace.Expression(&language.StringLiteral{Value: "never parsed"})
	})
}

func TestResolve(t *testing.T) {
	doc := parse(t, `str = "a"`)
	result := Resolve(testutil.DemoSchema(), doc.Imports, doc.TopLevelBlock)
	require.Empty(t, result.Errors)
	require.Len(t, result.Assignments, 1)
	this, ok := result.Assignments[0].LHS.Receiver.(*ImplicitThisReceiver)
	require.True(t, ok)
	assert.Same(t, result.TopLevelReceiver, this.ResolvedTo)
}
