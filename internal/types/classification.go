package types

type RequirementEvidence struct {
	Family      VersionFamily
	Requirement string
}

// PackageClassification holds at most one evidence entry per family, in
// the order the families were first matched.
type PackageClassification struct {
	Evidence []RequirementEvidence
}

func (c PackageClassification) Lookup(family VersionFamily) (RequirementEvidence, bool) {
	for _, evidence := range c.Evidence {
		if evidence.Family == family {
			return evidence, true
		}
	}
	return RequirementEvidence{}, false
}

func (c PackageClassification) Families() []VersionFamily {
	families := make([]VersionFamily, 0, len(c.Evidence))
	for _, evidence := range c.Evidence {
		families = append(families, evidence.Family)
	}
	return families
}

type PackageMetadata struct {
	Path         string
	Name         string
	Format       PackageFormat
	Requirements []string
}

type ExtractedPackage struct {
	FileName       string
	Name           string
	Format         PackageFormat
	Classification PackageClassification
}
