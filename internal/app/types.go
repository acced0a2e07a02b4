package app

import "python-versions/internal/types"

const (
	DefaultWorkDir      = "."
	DefaultArtifactsDir = "artifacts"
	ArtifactFileName    = "output.log"
)

type CheckRequest struct {
	BuildID      string
	ItemType     string
	CheckName    string
	WorkDir      string
	ArtifactsDir string
	OutputPath   string
	RulesPath    string
	Skip         []string
	TemplatePath string
	InfoURL      string
	BugURL       string
}

type CheckResult struct {
	Verdict       types.BuildVerdict
	Results       []byte
	SignaturePath string
}

type InspectRequest struct {
	Paths     []string
	RulesPath string
}

type InspectResult struct {
	Packages []types.PackageReport
}

// ruleset is the effective family rule list and skip-list for one run.
type ruleset struct {
	Rules []types.FamilyRule
	Skip  []string
}
