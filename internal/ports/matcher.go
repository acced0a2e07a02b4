package ports

import "python-versions/internal/types"

// FamilyMatcherPort maps one requirement string to zero or one version
// family.
type FamilyMatcherPort interface {
	MatchFamily(format types.PackageFormat, requirement string) (types.VersionFamily, bool)
}

// RulesSourcePort loads operator overrides for the family rules, the
// skip-list and the report template.
type RulesSourcePort interface {
	LoadRules(path string) (types.RulesFile, error)
	LoadTemplate(path string) (string, error)
}
