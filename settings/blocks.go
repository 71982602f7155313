package settings

import (
	"github.com/viant/dcl/check"
	"github.com/viant/dcl/language"
)

const (
	DuplicatePluginsBlock              check.Reason = "DuplicatePluginsBlock"
	DuplicatePluginManagementBlock     check.Reason = "DuplicatePluginManagementBlock"
	PluginsBlockOrderViolated          check.Reason = "PluginsBlockOrderViolated"
	PluginManagementBlockOrderViolated check.Reason = "PluginManagementBlockOrderViolated"
)

const (
	pluginsBlock          = "plugins"
	pluginManagementBlock = "pluginManagement"
)

// BlocksCheck enforces that pluginManagement comes first, plugins comes right after it,
// and each of them appears once. Only the first occurrence of a block is checked for order.
type BlocksCheck struct{}

func (BlocksCheck) Name() string { return "settingsBlocks" }

func (BlocksCheck) Detect(doc *language.Result) []*check.Failure {
	if doc.TopLevelBlock == nil {
		return nil
	}
	var failures []*check.Failure
	seenPluginManagement := false
	seenPlugins := false
	for i, statement := range doc.TopLevelBlock.Statements {
		switch blockName(statement) {
		case pluginManagementBlock:
			if seenPluginManagement {
				failures = append(failures, &check.Failure{Reason: DuplicatePluginManagementBlock, Source: statement.Source()})
				continue
			}
			seenPluginManagement = true
			if i != 0 {
				failures = append(failures, &check.Failure{
					Reason:  PluginManagementBlockOrderViolated,
					Source:  statement.Source(),
					Message: "pluginManagement must be the first block",
				})
			}
		case pluginsBlock:
			if seenPlugins {
				failures = append(failures, &check.Failure{Reason: DuplicatePluginsBlock, Source: statement.Source()})
				continue
			}
			seenPlugins = true
			if !onlyPluginManagementBefore(doc.TopLevelBlock.Statements[:i]) {
				failures = append(failures, &check.Failure{
					Reason:  PluginsBlockOrderViolated,
					Source:  statement.Source(),
					Message: "plugins may only follow pluginManagement",
				})
			}
		}
	}
	return failures
}

func onlyPluginManagementBefore(statements []language.Element) bool {
	for _, statement := range statements {
		if blockName(statement) != pluginManagementBlock {
			return false
		}
	}
	return true
}

// blockName returns the name of a top-level receiverless call with a lambda
func blockName(statement language.Element) string {
	call, ok := statement.(*language.FunctionCall)
	if !ok || call.Receiver != nil || call.Lambda() == nil {
		return ""
	}
	switch call.Name {
	case pluginsBlock, pluginManagementBlock:
		return call.Name
	}
	return ""
}
