package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"python-versions/internal/ports"
	"python-versions/internal/types"
)

// ArtifactFileAdapter writes plain-text artifacts, creating parent
// directories as needed.
type ArtifactFileAdapter struct{}

func NewArtifactFileAdapter() ArtifactFileAdapter {
	return ArtifactFileAdapter{}
}

func (a ArtifactFileAdapter) WriteArtifact(path string, text string) error {
	if err := ensureParent(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write artifact").
			WithCause(err)
	}
	return nil
}

// ResultsYAMLAdapter serializes a verdict as a results YAML document.
type ResultsYAMLAdapter struct{}

func NewResultsYAMLAdapter() ResultsYAMLAdapter {
	return ResultsYAMLAdapter{}
}

func (a ResultsYAMLAdapter) Export(verdict types.BuildVerdict) ([]byte, error) {
	doc := types.ResultsFile{Results: []types.CheckResult{{
		Item:      verdict.Item,
		Type:      verdict.ItemType,
		CheckName: verdict.CheckName,
		Outcome:   string(verdict.Outcome),
		Note:      verdict.Note,
		Artifact:  verdict.Artifact,
	}}}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal results").
			WithCause(err)
	}
	return data, nil
}

func (a ResultsYAMLAdapter) Write(path string, data []byte) error {
	if err := ensureParent(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write results").
			WithCause(err)
	}
	return nil
}

// ReadResults parses a results YAML document written by Write.
func (a ResultsYAMLAdapter) ReadResults(path string) (types.ResultsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ResultsFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("results file not found").
			WithCause(err)
	}
	var doc types.ResultsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return types.ResultsFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse results yaml").
			WithCause(err)
	}
	return doc, nil
}

func ensureParent(path string) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return nil
}

var _ ports.ArtifactPort = ArtifactFileAdapter{}
var _ ports.ResultExportPort = ResultsYAMLAdapter{}
