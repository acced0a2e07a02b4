package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"python-versions/internal/policies"
	"python-versions/internal/ports"
	"python-versions/internal/types"
)

const (
	DefaultCheckName = "python-versions.two_three"
	DefaultItemType  = "koji_build"
)

type ClassifierConfig struct {
	CheckName string
	Item      string
	ItemType  string
	SkipList  policies.SkipList
	Template  ReportTemplate
}

// Classify folds extracted packages into one build verdict. The verdict
// starts PASSED and becomes FAILED on the first package that carries
// evidence for both families and is not skip-listed. Apart from observer
// events it has no side effects.
func Classify(ctx context.Context, packages []types.ExtractedPackage, cfg ClassifierConfig, observer ports.ObserverPort) (types.BuildVerdict, error) {
	assert.NotEmpty(ctx, cfg.CheckName, "check name must be set")
	assert.NotEmpty(ctx, cfg.Item, "item must be set")

	verdict := types.BuildVerdict{
		CheckName: cfg.CheckName,
		Item:      cfg.Item,
		ItemType:  cfg.ItemType,
		Outcome:   types.OutcomePassed,
	}
	for _, pkg := range packages {
		verdict.Checked++
		if cfg.SkipList.Contains(pkg.Name) {
			verdict.Skipped++
			observe(observer, types.EventLevelWarn, pkg.FileName,
				fmt.Sprintf("%s is excluded from this check", pkg.Name))
			continue
		}
		problem, bad := classifyPackage(pkg, observer)
		if !bad {
			continue
		}
		verdict.Outcome = types.OutcomeFailed
		verdict.Problems = append(verdict.Problems, problem)
	}

	verdict.Summary, verdict.Note = summarize(verdict.Outcome, verdict.Item, verdict.Problems)
	if len(verdict.Problems) > 0 {
		report, err := RenderReport(cfg.Template, verdict.Problems)
		if err != nil {
			return types.BuildVerdict{}, err
		}
		verdict.Report = report
	}
	return verdict, nil
}

func classifyPackage(pkg types.ExtractedPackage, observer ports.ObserverPort) (types.ProblemPackage, bool) {
	var evidence []types.RequirementEvidence
	for _, family := range types.Families {
		if found, ok := pkg.Classification.Lookup(family); ok {
			evidence = append(evidence, found)
		}
	}
	switch len(evidence) {
	case 0:
		observe(observer, types.EventLevelInfo, pkg.FileName,
			fmt.Sprintf("%s does not require Python, that's OK", pkg.FileName))
		return types.ProblemPackage{}, false
	case 1:
		observe(observer, types.EventLevelInfo, pkg.FileName,
			fmt.Sprintf("%s requires %s only, that's OK", pkg.FileName, evidence[0].Family))
		return types.ProblemPackage{}, false
	}
	var dragged []string
	for _, found := range evidence {
		dragged = append(dragged, fmt.Sprintf("%s dragged by %s.", found.Family, found.Requirement))
	}
	observe(observer, types.EventLevelError, pkg.FileName,
		fmt.Sprintf("%s requires both Python 2 and 3, that's usually bad. %s",
			pkg.FileName, strings.Join(dragged, " ")))
	return types.ProblemPackage{
		FileName: pkg.FileName,
		Name:     pkg.Name,
		Evidence: evidence,
	}, true
}
