package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/dcl/check"
	"github.com/viant/dcl/language"
	"github.com/viant/dcl/resolution"
	"github.com/viant/dcl/schema"
)

type location struct {
	Reason check.Reason
	Line   int
}

func detect(t *testing.T, src string) []location {
	t.Helper()
	doc, err := language.NewParser().Parse(context.Background(), "settings.dcl", []byte(src))
	require.NoError(t, err)
	require.Empty(t, doc.Failures)
	var result []location
	for _, f := range check.Run(doc, BlocksCheck{}) {
		result = append(result, location{Reason: f.Reason, Line: f.Source.StartLine})
	}
	return result
}

func TestBlocksCheck_Detect(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		expect []location
	}{
		{
			name: "valid order",
			src: `pluginManagement {
    repositories { mavenCentral() }
}
plugins {
    id("org.example.plugin")
}
rootProject.name = "app"
include(":core")
`,
		},
		{
			name: "plugins only",
			src:  "plugins { id(\"a\") }\ninclude(\":core\")\n",
		},
		{
			name: "three plugins blocks",
			src: `plugins { id("a") }
plugins { id("b") }
rootProject.name = "app"
plugins { id("c") }
`,
			expect: []location{
				{Reason: DuplicatePluginsBlock, Line: 2},
				{Reason: DuplicatePluginsBlock, Line: 4},
			},
		},
		{
			name: "duplicate pluginManagement",
			src: `pluginManagement { }
pluginManagement { }
`,
			expect: []location{{Reason: DuplicatePluginManagementBlock, Line: 2}},
		},
		{
			name: "pluginManagement not first",
			src: `rootProject.name = "app"
pluginManagement { }
`,
			expect: []location{{Reason: PluginManagementBlockOrderViolated, Line: 2}},
		},
		{
			name: "pluginManagement after plugins",
			src: `plugins { }
pluginManagement { }
`,
			expect: []location{{Reason: PluginManagementBlockOrderViolated, Line: 2}},
		},
		{
			name: "plugins after other statement",
			src: `pluginManagement { }
include(":core")
plugins { }
plugins { }
`,
			expect: []location{
				{Reason: PluginsBlockOrderViolated, Line: 3},
				{Reason: DuplicatePluginsBlock, Line: 4},
			},
		},
		{
			name: "calls without lambda are not blocks",
			src:  "include(\":core\")\nplugins { }\n",
			expect: []location{
				{Reason: PluginsBlockOrderViolated, Line: 2},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualValues(t, tc.expect, detect(t, tc.src))
		})
	}
}

func TestSchema(t *testing.T) {
	doc, err := language.NewParser().Parse(context.Background(), "settings.dcl", []byte(`pluginManagement {
    repositories {
        mavenCentral()
        maven { url = "https://repo.example.org" }
    }
    includeBuild("build-logic")
}
plugins {
    id("org.example.plugin").version("1.0").apply(false)
}
rootProject.name = "app"
include(":core")
`))
	require.NoError(t, err)
	require.Empty(t, doc.Failures)

	result, _ := resolution.New(Schema()).Resolve(doc)
	assert.Empty(t, result.Errors)
	assert.EqualValues(t, schema.ClassRef(SettingsType), result.TopLevelReceiver.ReceiverType)
	assert.Len(t, result.Additions, 5)
	assert.Len(t, result.NestedObjectAccess, 3)

	var methods []resolution.AssignmentMethod
	for _, a := range result.Assignments {
		methods = append(methods, a.Method)
	}
	assert.Contains(t, methods, resolution.BuilderFunction)
	assert.Contains(t, methods, resolution.Property)
}
