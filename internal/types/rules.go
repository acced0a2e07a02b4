package types

type FamilyRule struct {
	Match   string `yaml:"match"`
	Version string `yaml:"version,omitempty"`
	Family  string `yaml:"family"`
}

type RulesFile struct {
	Rules []FamilyRule `yaml:"rules"`
	Skip  []string     `yaml:"skip,omitempty"`
}
