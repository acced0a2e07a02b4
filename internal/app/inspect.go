package app

import (
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"python-versions/internal/policies"
	"python-versions/internal/types"
)

// Inspect lists every requirement of the given package files together with
// the family it maps to under the effective rules.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	if len(req.Paths) == 0 {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one package file is required")
	}
	rules, err := s.loadRuleset(req.RulesPath)
	if err != nil {
		return InspectResult{}, err
	}
	matcher, err := policies.NewFamilyPolicy(rules.Rules)
	if err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{}
	for _, path := range req.Paths {
		report := types.PackageReport{FileName: filepath.Base(path)}
		meta, err := s.Reader.ReadPackage(path)
		if err != nil {
			report.Error = err.Error()
			result.Packages = append(result.Packages, report)
			continue
		}
		report.Name = meta.Name
		report.Format = meta.Format
		for _, requirement := range meta.Requirements {
			family, _ := matcher.MatchFamily(meta.Format, requirement)
			report.Requirements = append(report.Requirements, types.RequirementReport{
				Requirement: requirement,
				Family:      family,
			})
		}
		result.Packages = append(result.Packages, report)
	}
	return result, nil
}
