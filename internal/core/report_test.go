package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"python-versions/internal/types"
)

func TestRenderReportCustomTemplate(t *testing.T) {
	tpl := NewReportTemplate("{{.Packages}}--\n{{.InfoURL}} {{.BugURL}}\n", "https://info", "https://bugs")
	report, err := RenderReport(tpl, []types.ProblemPackage{{
		FileName: "bar.deb",
		Evidence: []types.RequirementEvidence{
			{Family: types.FamilyPython2, Requirement: "python (>= 2.7)"},
			{Family: types.FamilyPython3, Requirement: "python3:any"},
		},
	}})
	require.NoError(t, err)

	want := "bar.deb\n * Python 2 dependency: python (>= 2.7)\n * Python 3 dependency: python3:any\n--\nhttps://info https://bugs\n"
	if diff := cmp.Diff(want, report); diff != "" {
		t.Fatalf("unexpected report (-want +got):\n%s", diff)
	}
}

func TestNewReportTemplateDefaults(t *testing.T) {
	tpl := NewReportTemplate(" ", "", "")
	if diff := cmp.Diff(ReportTemplate{Text: DefaultReportTemplate, InfoURL: DefaultInfoURL, BugURL: DefaultBugURL}, tpl); diff != "" {
		t.Fatalf("unexpected template (-want +got):\n%s", diff)
	}
}

func TestRenderReportUnknownField(t *testing.T) {
	_, err := RenderReport(NewReportTemplate("{{.Nope}}", "", ""), nil)
	require.Error(t, err)
}
