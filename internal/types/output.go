package types

type ResultsFile struct {
	Results []CheckResult `yaml:"results"`
}

type CheckResult struct {
	Item      string `yaml:"item"`
	Type      string `yaml:"type"`
	CheckName string `yaml:"checkname"`
	Outcome   string `yaml:"outcome"`
	Note      string `yaml:"note,omitempty"`
	Artifact  string `yaml:"artifact,omitempty"`
}

type RequirementReport struct {
	Requirement string
	Family      VersionFamily
}

type PackageReport struct {
	FileName     string
	Name         string
	Format       PackageFormat
	Requirements []RequirementReport
	Error        string
}
