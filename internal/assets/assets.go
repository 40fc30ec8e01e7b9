package assets

import (
	_ "embed"
)

//go:embed sigma-rule.schema.json
var ruleSchema []byte

// RuleSchema returns the JSON Schema rule files are checked against before
// they are handed to the converter.
func RuleSchema() []byte { return ruleSchema }
