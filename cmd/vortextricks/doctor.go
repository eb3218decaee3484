package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vortextricks/vortextricks/internal/doctor"
	"github.com/vortextricks/vortextricks/internal/heroic"
	"github.com/vortextricks/vortextricks/internal/messages"
	"github.com/vortextricks/vortextricks/internal/plan"
	"github.com/vortextricks/vortextricks/internal/steam"
	"github.com/vortextricks/vortextricks/internal/wine"
)

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			log := opts.logger(cmd.ErrOrStderr())

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, messages.DoctorHealthCheckFmt, cwd)

			var results []doctor.Result
			results = append(results, doctor.CheckRegistry(opts.registryFile()))

			steamRoot, err := resolveSteamRoot()
			if err != nil {
				return err
			}
			results = append(results, doctor.CheckSteam(steam.Library{Root: steamRoot}))

			configDir, err := heroic.DefaultConfigDir()
			if err != nil {
				return err
			}
			prefixesRoot, err := heroic.DefaultPrefixesRoot()
			if err != nil {
				return err
			}
			results = append(results, doctor.CheckHeroic(heroic.Launcher{ConfigDir: configDir, PrefixesRoot: prefixesRoot}))

			results = append(results, doctor.CheckBackend(ctx, wine.RealSystem{}, currentUser(), log))

			if b, _, detectErr := detectBackend(ctx, zerolog.Nop()); detectErr == nil {
				results = append(results, vortexResults(ctx, b)...)
			}

			for _, r := range results {
				printResult(out, r)
			}

			if doctor.HasFailures(results) {
				_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return errors.New(messages.DoctorFailureError)
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			return nil
		},
	}
}

// vortexResults probes the default environment first so a machine that has
// never synced reports a warning instead of a failed probe.
func vortexResults(ctx context.Context, b backend) []doctor.Result {
	target := plan.Target{BottleName: plan.DefaultBottle, Runner: plan.RunnerDefault}
	probed, err := b.Probe(target)
	if err != nil || !probed.EnvironmentExists {
		return []doctor.Result{{
			Status:         doctor.StatusWarn,
			CheckName:      messages.DoctorCheckNameVortex,
			Message:        fmt.Sprintf(messages.DoctorVortexMissingFmt, target.BottleName),
			Recommendation: messages.DoctorVortexRecommend,
		}}
	}
	return doctor.CheckVortex(ctx, []plan.Target{target}, b)
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	lines := strings.Split(recommendation, "\n")
	for i, line := range lines {
		if i == 0 {
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationPrefix, line)
			continue
		}
		if line == "" {
			_, _ = fmt.Fprintf(out, "%s\n", messages.DoctorRecommendationIndent)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationIndent, line)
	}
}
