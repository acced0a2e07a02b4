package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"python-versions/internal/app"
	"python-versions/internal/types"
)

type inspectOptions struct {
	Rules string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect <package>...",
		Short: "Show how each requirement of a package maps to a Python family",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.Rules, "rules", "", "Family rules file")
	_ = viper.BindPFlag("rules_file", cmd.Flags().Lookup("rules"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions, paths []string) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		Paths:     paths,
		RulesPath: resolveString(cmd, opts.Rules, "rules_file", "rules"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, pkg := range result.Packages {
		if pkg.Error != "" {
			fmt.Fprintf(out, "%s: %s\n", pkg.FileName, pkg.Error)
			continue
		}
		fmt.Fprintf(out, "%s (%s, %s)\n", pkg.FileName, pkg.Name, pkg.Format)
		for _, req := range pkg.Requirements {
			fmt.Fprintf(out, "  %-40s %s\n", req.Requirement, familyLabel(req.Family))
		}
	}
	return nil
}

func familyLabel(family types.VersionFamily) string {
	if family == types.FamilyNone {
		return "-"
	}
	return family.String()
}
