package core

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"python-versions/internal/policies"
	"python-versions/internal/types"
)

func testConfig() ClassifierConfig {
	return ClassifierConfig{
		CheckName: DefaultCheckName,
		Item:      "foo-1.0-1.fc40",
		ItemType:  DefaultItemType,
		SkipList:  policies.NewSkipList(policies.DefaultSkipList),
		Template:  NewReportTemplate("", "", ""),
	}
}

func evidence(family types.VersionFamily, requirement string) types.RequirementEvidence {
	return types.RequirementEvidence{Family: family, Requirement: requirement}
}

func extracted(fileName string, name string, found ...types.RequirementEvidence) types.ExtractedPackage {
	return types.ExtractedPackage{
		FileName:       fileName,
		Name:           name,
		Format:         types.PackageFormatRPM,
		Classification: types.PackageClassification{Evidence: found},
	}
}

func TestClassifySingleFamilyPasses(t *testing.T) {
	verdict, err := Classify(context.Background(), []types.ExtractedPackage{
		extracted("foo.rpm", "foo", evidence(types.FamilyPython2, "/usr/bin/python2")),
		extracted("none.rpm", "none"),
	}, testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, types.OutcomePassed, verdict.Outcome)
	assert.Empty(t, verdict.Problems)
	assert.Empty(t, verdict.Report)
	assert.Equal(t, 2, verdict.Checked)
	assert.Equal(t, "python-versions PASSED for foo-1.0-1.fc40. No problems found.", verdict.Summary)
}

func TestClassifyDualFamilyFails(t *testing.T) {
	observer := &RecordingObserver{}
	verdict, err := Classify(context.Background(), []types.ExtractedPackage{
		extracted("bar.rpm", "bar",
			evidence(types.FamilyPython2, "/usr/bin/python2"),
			evidence(types.FamilyPython3, "python3-libs"),
		),
	}, testConfig(), observer)
	require.NoError(t, err)

	assert.Equal(t, types.OutcomeFailed, verdict.Outcome)
	want := []types.ProblemPackage{{
		FileName: "bar.rpm",
		Name:     "bar",
		Evidence: []types.RequirementEvidence{
			evidence(types.FamilyPython2, "/usr/bin/python2"),
			evidence(types.FamilyPython3, "python3-libs"),
		},
	}}
	if diff := cmp.Diff(want, verdict.Problems); diff != "" {
		t.Fatalf("unexpected problems (-want +got):\n%s", diff)
	}
	assert.Contains(t, verdict.Report, "bar.rpm\n * Python 2 dependency: /usr/bin/python2\n * Python 3 dependency: python3-libs\n")
	assert.Contains(t, verdict.Report, DefaultInfoURL)
	assert.Contains(t, verdict.Report, DefaultBugURL)
	assert.Equal(t, "Problematic packages: bar.rpm", verdict.Note)

	require.NotEmpty(t, observer.Events)
	last := observer.Events[len(observer.Events)-1]
	assert.Equal(t, types.EventLevelError, last.Level)
	assert.Contains(t, last.Message, "Python 2 dragged by /usr/bin/python2.")
	assert.Contains(t, last.Message, "Python 3 dragged by python3-libs.")
}

func TestClassifyEvidenceOrderIndependentOfMatchOrder(t *testing.T) {
	verdict, err := Classify(context.Background(), []types.ExtractedPackage{
		extracted("bar.rpm", "bar",
			evidence(types.FamilyPython3, "python3"),
			evidence(types.FamilyPython2, "python2"),
		),
	}, testConfig(), nil)
	require.NoError(t, err)
	require.Len(t, verdict.Problems, 1)
	assert.Equal(t, types.FamilyPython2, verdict.Problems[0].Evidence[0].Family)
	assert.Equal(t, types.FamilyPython3, verdict.Problems[0].Evidence[1].Family)
}

func TestClassifySkipListedDualFamilyPasses(t *testing.T) {
	observer := &RecordingObserver{}
	verdict, err := Classify(context.Background(), []types.ExtractedPackage{
		extracted("eric.rpm", "eric",
			evidence(types.FamilyPython2, "python2"),
			evidence(types.FamilyPython3, "python3"),
		),
	}, testConfig(), observer)
	require.NoError(t, err)

	assert.Equal(t, types.OutcomePassed, verdict.Outcome)
	assert.Empty(t, verdict.Problems)
	assert.Equal(t, 1, verdict.Skipped)
	require.Len(t, observer.Events, 1)
	assert.Equal(t, types.EventLevelWarn, observer.Events[0].Level)
	assert.Equal(t, "eric is excluded from this check", observer.Events[0].Message)
}

func TestClassifyVerdictNeverReverts(t *testing.T) {
	verdict, err := Classify(context.Background(), []types.ExtractedPackage{
		extracted("a.rpm", "a", evidence(types.FamilyPython2, "python2"), evidence(types.FamilyPython3, "python3")),
		extracted("b.rpm", "b", evidence(types.FamilyPython3, "python3")),
		extracted("c.rpm", "c"),
	}, testConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeFailed, verdict.Outcome)
	assert.Len(t, verdict.Problems, 1)
}

func TestClassifyProblemsKeepProcessingOrder(t *testing.T) {
	dual := []types.RequirementEvidence{evidence(types.FamilyPython2, "python2"), evidence(types.FamilyPython3, "python3")}
	verdict, err := Classify(context.Background(), []types.ExtractedPackage{
		extracted("a.rpm", "a", dual...),
		extracted("b.rpm", "b", dual...),
	}, testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Problematic packages: a.rpm, b.rpm", verdict.Note)
	assert.Less(t, strings.Index(verdict.Report, "a.rpm"), strings.Index(verdict.Report, "b.rpm"))
	assert.Equal(t, "python-versions FAILED for foo-1.0-1.fc40. Problematic packages:\na.rpm, b.rpm", verdict.Summary)
}

func TestClassifyEmptyInputPasses(t *testing.T) {
	verdict, err := Classify(context.Background(), nil, testConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomePassed, verdict.Outcome)
	assert.Equal(t, 0, verdict.Checked)
	assert.Empty(t, verdict.Report)
}

func TestClassifyIdempotent(t *testing.T) {
	packages := []types.ExtractedPackage{
		extracted("a.rpm", "a", evidence(types.FamilyPython2, "python2"), evidence(types.FamilyPython3, "python3")),
		extracted("eric.rpm", "eric", evidence(types.FamilyPython2, "python2"), evidence(types.FamilyPython3, "python3")),
		extracted("b.rpm", "b", evidence(types.FamilyPython3, "python3")),
	}
	first, err := Classify(context.Background(), packages, testConfig(), nil)
	require.NoError(t, err)
	second, err := Classify(context.Background(), packages, testConfig(), nil)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("verdict changed between runs (-first +second):\n%s", diff)
	}
}

func TestClassifyInvalidTemplate(t *testing.T) {
	cfg := testConfig()
	cfg.Template = NewReportTemplate("{{.Missing", "", "")
	_, err := Classify(context.Background(), []types.ExtractedPackage{
		extracted("a.rpm", "a", evidence(types.FamilyPython2, "python2"), evidence(types.FamilyPython3, "python3")),
	}, cfg, nil)
	require.Error(t, err)
}
