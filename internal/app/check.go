package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"python-versions/internal/core"
	"python-versions/internal/policies"
	"python-versions/internal/types"
)

// Check runs the dual Python dependency check over the package files of
// one build and exports the verdict.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	req = applyCheckDefaults(req)
	if req.BuildID == "" {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build id is required")
	}

	rules, err := s.loadRuleset(req.RulesPath)
	if err != nil {
		return CheckResult{}, err
	}
	matcher, err := policies.NewFamilyPolicy(rules.Rules)
	if err != nil {
		return CheckResult{}, err
	}
	tpl, err := s.loadTemplate(req)
	if err != nil {
		return CheckResult{}, err
	}

	paths, err := s.Finder.FindPackages(req.WorkDir)
	if err != nil {
		return CheckResult{}, err
	}
	if len(paths) == 0 {
		s.observe(types.EventLevelWarn, "No binary package files found")
	}
	packages, unreadable := core.NewExtractor(s.Reader, matcher).ExtractAll(paths, s.Observer)

	verdict, err := core.Classify(ctx, packages, core.ClassifierConfig{
		CheckName: req.CheckName,
		Item:      req.BuildID,
		ItemType:  req.ItemType,
		SkipList:  policies.NewSkipList(append(rules.Skip, req.Skip...)),
		Template:  tpl,
	}, s.Observer)
	if err != nil {
		return CheckResult{}, err
	}
	verdict.Unreadable = unreadable

	result := CheckResult{}
	if verdict.Outcome == types.OutcomeFailed {
		artifact := filepath.Join(req.ArtifactsDir, ArtifactFileName)
		if err := s.Artifacts.WriteArtifact(artifact, verdict.Report); err != nil {
			return CheckResult{}, err
		}
		verdict.Artifact = artifact
		if s.Signer != nil {
			sigPath, err := s.Signer.SignDetached(artifact)
			if err != nil {
				return CheckResult{}, err
			}
			result.SignaturePath = sigPath
		}
	}
	s.observe(types.EventLevelInfo, verdict.Summary)

	data, err := s.Exporter.Export(verdict)
	if err != nil {
		return CheckResult{}, err
	}
	if req.OutputPath != "" {
		if err := s.Exporter.Write(req.OutputPath, data); err != nil {
			return CheckResult{}, err
		}
	}
	result.Verdict = verdict
	result.Results = data
	return result, nil
}

func applyCheckDefaults(req CheckRequest) CheckRequest {
	req.BuildID = strings.TrimSpace(req.BuildID)
	if strings.TrimSpace(req.CheckName) == "" {
		req.CheckName = core.DefaultCheckName
	}
	if strings.TrimSpace(req.ItemType) == "" {
		req.ItemType = core.DefaultItemType
	}
	if strings.TrimSpace(req.WorkDir) == "" {
		req.WorkDir = DefaultWorkDir
	}
	if strings.TrimSpace(req.ArtifactsDir) == "" {
		req.ArtifactsDir = DefaultArtifactsDir
	}
	return req
}

// loadRuleset returns the built-in rules and skip-list unless a rules file
// overrides them. A file that only lists skip entries keeps the built-in
// rules, and the reverse.
func (s Service) loadRuleset(path string) (ruleset, error) {
	out := ruleset{
		Rules: policies.DefaultFamilyRules,
		Skip:  append([]string(nil), policies.DefaultSkipList...),
	}
	if strings.TrimSpace(path) == "" {
		return out, nil
	}
	if s.RulesSource == nil {
		return ruleset{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("rules source is not configured")
	}
	file, err := s.RulesSource.LoadRules(path)
	if err != nil {
		return ruleset{}, err
	}
	if len(file.Rules) > 0 {
		out.Rules = file.Rules
	}
	if len(file.Skip) > 0 {
		out.Skip = file.Skip
	}
	return out, nil
}

func (s Service) loadTemplate(req CheckRequest) (core.ReportTemplate, error) {
	text := ""
	if strings.TrimSpace(req.TemplatePath) != "" {
		if s.RulesSource == nil {
			return core.ReportTemplate{}, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("template source is not configured")
		}
		loaded, err := s.RulesSource.LoadTemplate(req.TemplatePath)
		if err != nil {
			return core.ReportTemplate{}, err
		}
		text = loaded
	}
	return core.NewReportTemplate(text, req.InfoURL, req.BugURL), nil
}

func (s Service) observe(level types.EventLevel, message string) {
	if s.Observer == nil {
		return
	}
	s.Observer.Observe(types.CheckEvent{Level: level, Message: message})
}
