package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"python-versions/internal/ports"
	"python-versions/internal/types"
)

// RulesFileAdapter loads family rules and skip-list overrides from YAML.
type RulesFileAdapter struct{}

func NewRulesFileAdapter() RulesFileAdapter {
	return RulesFileAdapter{}
}

func (a RulesFileAdapter) LoadRules(path string) (types.RulesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.RulesFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("rules file not found").
			WithCause(err)
	}
	var rules types.RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return types.RulesFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse rules yaml").
			WithCause(err)
	}
	if len(rules.Rules) == 0 && len(rules.Skip) == 0 {
		return types.RulesFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("rules file defines neither rules nor skip")
	}
	return rules, nil
}

// LoadTemplate reads a report template override.
func (a RulesFileAdapter) LoadTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("template file not found").
			WithCause(err)
	}
	return string(data), nil
}

var _ ports.RulesSourcePort = RulesFileAdapter{}
