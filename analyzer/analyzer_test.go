package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/dcl/executor"
	"github.com/viant/dcl/settings"
	"github.com/viant/dcl/testutil"
)

func TestAnalyzer_AnalyzeSource(t *testing.T) {
	a, err := New(testutil.DemoSchema())
	require.NoError(t, err)

	t.Run("diagnostics are ordered by position", func(t *testing.T) {
		doc, err := a.AnalyzeSource(context.Background(), "test.dcl", []byte(`var x = 1
str = 1
val c1 = c(1)
val c2 = c(2)
c2.d = c1.d
`))
		require.NoError(t, err)
		assert.True(t, doc.HasErrors())
		var kinds []string
		var lines []int
		for _, d := range doc.Diagnostics() {
			kinds = append(kinds, d.Kind)
			lines = append(lines, d.Source.StartLine)
		}
		assert.EqualValues(t, []string{"UnsupportedConstruct", "AssignmentTypeMismatch", "UnassignedValueUsed"}, kinds)
		assert.EqualValues(t, []int{1, 2, 5}, lines)
	})

	t.Run("clean document", func(t *testing.T) {
		doc, err := a.AnalyzeSource(context.Background(), "clean.dcl", []byte(`str = "a"`))
		require.NoError(t, err)
		assert.False(t, doc.HasErrors())
		assert.Empty(t, doc.Diagnostics())
		require.Len(t, doc.Resolution.Assignments, 1)
	})

	t.Run("identical input is parsed once", func(t *testing.T) {
		src := []byte(`i = 1`)
		first, err := a.AnalyzeSource(context.Background(), "cached.dcl", src)
		require.NoError(t, err)
		second, err := a.AnalyzeSource(context.Background(), "cached.dcl", src)
		require.NoError(t, err)
		assert.Same(t, first.Language, second.Language)
		assert.EqualValues(t, first.Resolution, second.Resolution)
	})
}

func TestAnalyzer_Checks(t *testing.T) {
	src := []byte("plugins { }\nplugins { }\n")

	a, err := New(settings.Schema(), WithChecks(settings.BlocksCheck{}))
	require.NoError(t, err)
	doc, err := a.AnalyzeSource(context.Background(), "settings.dcl", src)
	require.NoError(t, err)
	require.Len(t, doc.Failures, 1)
	assert.EqualValues(t, settings.DuplicatePluginsBlock, doc.Failures[0].Reason)

	config := DefaultConfig()
	config.Checks = []string{"settingsBlocks"}
	a, err = New(settings.Schema(), WithConfig(config))
	require.NoError(t, err)
	doc, err = a.AnalyzeSource(context.Background(), "settings.dcl", src)
	require.NoError(t, err)
	assert.Len(t, doc.Failures, 1)

	config.Checks = []string{"unknown"}
	_, err = New(settings.Schema(), WithConfig(config))
	assert.Error(t, err)
}

func TestAnalyzer_AnalyzeDir(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"a.dcl":         `str = "a"`,
		"sub/b.dcl":     `i = "wrong"`,
		"notes.txt":     `ignored`,
		".hidden/c.dcl": `str = "hidden"`,
	}
	for name, content := range files {
		location := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}

	a, err := New(testutil.DemoSchema())
	require.NoError(t, err)
	docs, err := a.AnalyzeDir(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.True(t, strings.HasSuffix(docs[0].Identifier, "a.dcl"))
	assert.False(t, docs[0].HasErrors())
	assert.True(t, strings.HasSuffix(docs[1].Identifier, "b.dcl"))
	assert.True(t, docs[1].HasErrors())

	a, err = New(testutil.DemoSchema(), WithExtensions(".txt"))
	require.NoError(t, err)
	docs, err = a.AnalyzeDir(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.True(t, docs[0].HasErrors())
}

type target struct {
	Str string
	I   int
}

func TestAnalyzer_Apply(t *testing.T) {
	a, err := New(testutil.DemoSchema())
	require.NoError(t, err)
	doc, err := a.AnalyzeSource(context.Background(), "apply.dcl", []byte("str = \"hello\"\ni = 3\n"))
	require.NoError(t, err)
	value := &target{}
	require.NoError(t, a.Apply(doc, value))
	assert.EqualValues(t, "hello", value.Str)
	assert.EqualValues(t, 3, value.I)

	doc, err = a.AnalyzeSource(context.Background(), "dropped.dcl", []byte("var x = 1\nstr = \"a\"\n"))
	require.NoError(t, err)
	require.True(t, doc.Language.HasFailures())
	require.Empty(t, doc.Resolution.Errors)
	value = &target{}
	err = a.Apply(doc, value)
	require.Error(t, err)
	assert.True(t, executor.IsNotEvaluated(err))
	notEvaluated, ok := executor.AsNotEvaluated(err)
	require.True(t, ok)
	require.Len(t, notEvaluated.Reasons, 1)
	assert.Contains(t, notEvaluated.Reasons[0], "var")
	assert.Empty(t, value.Str)
}

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig([]byte("extensions: [.kts]\nchecks: [settingsBlocks]\n"))
	require.NoError(t, err)
	assert.EqualValues(t, []string{".kts"}, config.Extensions)
	assert.EqualValues(t, []string{"settingsBlocks"}, config.Checks)
	assert.EqualValues(t, DefaultConfig().CacheSize, config.CacheSize)
	assert.True(t, config.SkipHidden)

	_, err = LoadConfig([]byte("cacheSize: 0"))
	assert.Error(t, err)
}
