package types

type ProblemPackage struct {
	FileName string
	Name     string
	Evidence []RequirementEvidence
}

type BuildVerdict struct {
	CheckName  string
	Item       string
	ItemType   string
	Outcome    Outcome
	Problems   []ProblemPackage
	Checked    int
	Skipped    int
	Unreadable int
	Summary    string
	Note       string
	Report     string
	Artifact   string
}

type CheckEvent struct {
	Level   EventLevel
	Package string
	Message string
}
