package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"python-versions/internal/app"
	"python-versions/internal/types"
)

type checkOptions struct {
	BuildID      string
	ItemType     string
	WorkDir      string
	ArtifactsDir string
	Output       string
	Rules        string
	Skip         []string
	Template     string
	InfoURL      string
	BugURL       string
	Strict       bool
	GpgKey       string
}

func newCheckCommand() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the binary packages of a build for dual Python requirements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.BuildID, "build", "", "Build identifier (NVR)")
	cmd.Flags().StringVar(&opts.ItemType, "item-type", "koji_build", "Result item type")
	cmd.Flags().StringVar(&opts.WorkDir, "workdir", app.DefaultWorkDir, "Directory holding the package files")
	cmd.Flags().StringVar(&opts.ArtifactsDir, "artifacts", app.DefaultArtifactsDir, "Directory for the failure report")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Results YAML path (stdout when empty)")
	cmd.Flags().StringVar(&opts.Rules, "rules", "", "Family rules file")
	cmd.Flags().StringSliceVar(&opts.Skip, "skip", nil, "Additional package names exempt from the check")
	cmd.Flags().StringVar(&opts.Template, "template", "", "Report template file")
	cmd.Flags().StringVar(&opts.InfoURL, "info-url", "", "Porting guide URL shown in the report")
	cmd.Flags().StringVar(&opts.BugURL, "bug-url", "", "Bug tracker URL shown in the report")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit non-zero when the check fails")
	cmd.Flags().StringVar(&opts.GpgKey, "gpg-key", "", "Armored private key used to sign the report")
	_ = viper.BindPFlag("build", cmd.Flags().Lookup("build"))
	_ = viper.BindPFlag("item_type", cmd.Flags().Lookup("item-type"))
	_ = viper.BindPFlag("workdir", cmd.Flags().Lookup("workdir"))
	_ = viper.BindPFlag("artifacts_dir", cmd.Flags().Lookup("artifacts"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("rules_file", cmd.Flags().Lookup("rules"))
	_ = viper.BindPFlag("skip", cmd.Flags().Lookup("skip"))
	_ = viper.BindPFlag("template_file", cmd.Flags().Lookup("template"))
	_ = viper.BindPFlag("info_url", cmd.Flags().Lookup("info-url"))
	_ = viper.BindPFlag("bug_url", cmd.Flags().Lookup("bug-url"))
	_ = viper.BindPFlag("strict", cmd.Flags().Lookup("strict"))
	_ = viper.BindPFlag("gpg_key", cmd.Flags().Lookup("gpg-key"))
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts checkOptions) error {
	service := newAppService()
	if key := resolveString(cmd, opts.GpgKey, "gpg_key", "gpg-key"); key != "" {
		service = service.WithSigner(key, viper.GetString("gpg_passphrase"))
	}
	req := app.CheckRequest{
		BuildID:      resolveString(cmd, opts.BuildID, "build", "build"),
		ItemType:     resolveString(cmd, opts.ItemType, "item_type", "item-type"),
		WorkDir:      resolveString(cmd, opts.WorkDir, "workdir", "workdir"),
		ArtifactsDir: resolveString(cmd, opts.ArtifactsDir, "artifacts_dir", "artifacts"),
		OutputPath:   resolveString(cmd, opts.Output, "output", "output"),
		RulesPath:    resolveString(cmd, opts.Rules, "rules_file", "rules"),
		Skip:         resolveStrings(cmd, opts.Skip, "skip", "skip"),
		TemplatePath: resolveString(cmd, opts.Template, "template_file", "template"),
		InfoURL:      resolveString(cmd, opts.InfoURL, "info_url", "info-url"),
		BugURL:       resolveString(cmd, opts.BugURL, "bug_url", "bug-url"),
	}
	result, err := service.Check(ctx, req)
	if err != nil {
		return err
	}

	if req.OutputPath == "" {
		if _, err := cmd.OutOrStdout().Write(result.Results); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write results").
				WithCause(err)
		}
	} else {
		log.Info().Str("path", req.OutputPath).Msg("results written")
	}
	if result.SignaturePath != "" {
		log.Info().Str("path", result.SignaturePath).Msg("report signed")
	}
	return strictOutcome(result.Verdict, resolveBool(cmd, opts.Strict, "strict", "strict"))
}

// strictOutcome turns a FAILED verdict into an error when strict mode is on.
func strictOutcome(verdict types.BuildVerdict, strict bool) error {
	if !strict || verdict.Outcome != types.OutcomeFailed {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("check failed for %s: %s", verdict.Item, verdict.Note))
}
