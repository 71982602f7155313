// Package settings defines the settings document schema and its structural checks
package settings

import (
	"github.com/viant/dcl/schema"
)

const (
	SettingsType          schema.FQName = "dcl.settings.Settings"
	ProjectDescriptorType schema.FQName = "dcl.settings.ProjectDescriptor"
	PluginManagementType  schema.FQName = "dcl.settings.PluginManagementSpec"
	RepositoryHandlerType schema.FQName = "dcl.settings.RepositoryHandler"
	RepositoryType        schema.FQName = "dcl.settings.ArtifactRepository"
	PluginsType           schema.FQName = "dcl.settings.PluginsBlock"
	PluginType            schema.FQName = "dcl.settings.PluginDependencySpec"
)

// Schema returns the settings schema:
//
//	rootProject.name = "app"
//	include(":core")
//	pluginManagement { repositories { mavenCentral() } }
//	plugins { id("org.example.plugin").version("1.0").apply(false) }
func Schema() *schema.AnalysisSchema {
	b := schema.NewBuilder(SettingsType)
	b.Class(SettingsType).
		ReadOnlyProperty("rootProject", schema.ClassRef(ProjectDescriptorType)).
		ReadOnlyProperty("pluginManagement", schema.ClassRef(PluginManagementType)).
		ReadOnlyProperty("plugins", schema.ClassRef(PluginsType)).
		Adding("include", ProjectDescriptorType, schema.LambdaOptional, schema.Param("path", schema.StringDataType).Stores("path")).
		Configuring("pluginManagement", schema.ConfigureAccessor{Kind: schema.AccessorProperty, Name: "pluginManagement"}, schema.LambdaRequired).
		Configuring("plugins", schema.ConfigureAccessor{Kind: schema.AccessorProperty, Name: "plugins"}, schema.LambdaRequired)
	b.Class(ProjectDescriptorType).
		Property("name", schema.StringDataType).
		ReadOnlyProperty("path", schema.StringDataType)
	b.Class(PluginManagementType).
		ReadOnlyProperty("repositories", schema.ClassRef(RepositoryHandlerType)).
		Configuring("repositories", schema.ConfigureAccessor{Kind: schema.AccessorProperty, Name: "repositories"}, schema.LambdaRequired).
		Adding("includeBuild", ProjectDescriptorType, schema.LambdaNone, schema.Param("path", schema.StringDataType).Stores("path"))
	b.Class(RepositoryHandlerType).
		Adding("mavenCentral", RepositoryType, schema.LambdaNone).
		Adding("google", RepositoryType, schema.LambdaNone).
		Adding("gradlePluginPortal", RepositoryType, schema.LambdaNone).
		Adding("maven", RepositoryType, schema.LambdaRequired)
	b.Class(RepositoryType).
		Property("name", schema.StringDataType).
		Property("url", schema.StringDataType)
	b.Class(PluginsType).
		Adding("id", PluginType, schema.LambdaNone, schema.Param("id", schema.StringDataType).Stores("id"))
	b.Class(PluginType).
		ReadOnlyProperty("id", schema.StringDataType).
		Property("version", schema.StringDataType).
		Property("apply", schema.BooleanDataType).
		Builder("version", "version").
		Builder("apply", "apply")
	result, err := b.Build()
	if err != nil {
		panic(err)
	}
	return result
}
