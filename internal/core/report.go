package core

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"python-versions/internal/types"
)

const (
	DefaultInfoURL = "https://python-rpm-porting.readthedocs.io/en/" +
		"latest/applications.html" +
		"#are-shebangs-dragging-you-down-to-python-2"
	DefaultBugURL = "https://github.com/fedora-python/task-python-versions/issues"
)

const DefaultReportTemplate = `These packages require both Python 2 and Python 3:
{{.Packages}}

Read the following document to find more information and a possible cause:
{{.InfoURL}}
Or ask at #fedora-python IRC channel for help.

If you think the result is false or intentional, file a bug against:
{{.BugURL}}
`

// ReportTemplate is the static text wrapped around the problem list.
type ReportTemplate struct {
	Text    string
	InfoURL string
	BugURL  string
}

// NewReportTemplate fills empty fields with the defaults.
func NewReportTemplate(text string, infoURL string, bugURL string) ReportTemplate {
	tpl := ReportTemplate{Text: text, InfoURL: infoURL, BugURL: bugURL}
	if strings.TrimSpace(tpl.Text) == "" {
		tpl.Text = DefaultReportTemplate
	}
	if strings.TrimSpace(tpl.InfoURL) == "" {
		tpl.InfoURL = DefaultInfoURL
	}
	if strings.TrimSpace(tpl.BugURL) == "" {
		tpl.BugURL = DefaultBugURL
	}
	return tpl
}

type reportData struct {
	Packages string
	InfoURL  string
	BugURL   string
}

// RenderReport renders the diagnostic artifact body for the problematic
// packages, in the order given.
func RenderReport(tpl ReportTemplate, problems []types.ProblemPackage) (string, error) {
	tpl = NewReportTemplate(tpl.Text, tpl.InfoURL, tpl.BugURL)
	parsed, err := template.New("report").Option("missingkey=error").Parse(tpl.Text)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse report template").
			WithCause(err)
	}
	var out strings.Builder
	err = parsed.Execute(&out, reportData{
		Packages: formatProblemBlocks(problems),
		InfoURL:  tpl.InfoURL,
		BugURL:   tpl.BugURL,
	})
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to render report template").
			WithCause(err)
	}
	return out.String(), nil
}

func formatProblemBlocks(problems []types.ProblemPackage) string {
	var out strings.Builder
	for _, problem := range problems {
		out.WriteString(problem.FileName)
		out.WriteString("\n")
		for _, evidence := range problem.Evidence {
			fmt.Fprintf(&out, " * %s dependency: %s\n", evidence.Family, evidence.Requirement)
		}
	}
	return out.String()
}

func summarize(outcome types.Outcome, item string, problems []types.ProblemPackage) (string, string) {
	if len(problems) == 0 {
		note := "No problems found."
		return fmt.Sprintf("python-versions %s for %s. %s", outcome, item, note), note
	}
	names := make([]string, 0, len(problems))
	for _, problem := range problems {
		names = append(names, problem.FileName)
	}
	list := strings.Join(names, ", ")
	summary := fmt.Sprintf("python-versions %s for %s. Problematic packages:\n%s", outcome, item, list)
	return summary, fmt.Sprintf("Problematic packages: %s", list)
}
