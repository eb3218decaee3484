package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vortextricks/vortextricks/internal/inventory"
	"github.com/vortextricks/vortextricks/internal/messages"
	"github.com/vortextricks/vortextricks/internal/plan"
	"github.com/vortextricks/vortextricks/internal/provision"
	"github.com/vortextricks/vortextricks/internal/reconcile"
	"github.com/vortextricks/vortextricks/internal/report"
	"github.com/vortextricks/vortextricks/internal/vortex"
	"github.com/vortextricks/vortextricks/internal/wizard"
)

func newSyncCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool
	var prefer string
	var vortexVersion string
	cmd := &cobra.Command{
		Use:   messages.SyncUse,
		Short: messages.SyncShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			log := opts.logger(cmd.ErrOrStderr())

			eng, err := newEngine(ctx, opts, log)
			if err != nil {
				return err
			}

			if prefer == "" {
				prefer = opts.cfg.Prefer
			}
			var prompter reconcile.Prompter
			if prefer == "" {
				prompter = &wizard.Prompter{UI: wizard.NewHuhUI(), AllowSplit: eng.splitOK}
			} else {
				prompter, err = resolvePrompter(prefer, eng.splitOK)
				if err != nil {
					return err
				}
			}

			plans, targets, pending, err := eng.computePlans(ctx, prompter)
			if err != nil {
				return err
			}
			if len(plans) == 0 && len(pending) == 0 {
				_, _ = fmt.Fprintln(out, messages.SyncNoGamesFound)
				return nil
			}

			printPending(out, pending)
			if dryRun {
				printPlans(out, plans)
				return nil
			}

			rep, err := provision.Execute(ctx, plans, eng.backend, log)
			if err != nil {
				return err
			}

			if vortexVersion == "" {
				vortexVersion = opts.cfg.VortexVersion
			}
			fetch := vortex.DefaultFetch(vortexVersion, vortex.DefaultCacheDir())
			vortexRep, err := vortex.Ensure(ctx, targets, eng.backend, fetch, log)
			if err != nil {
				return err
			}
			rep.Merge(vortexRep)

			printReport(out, rep)
			if rep.HasFailures() || rep.HasSkipped() || len(pending) > 0 {
				_, _ = fmt.Fprintln(out, color.YellowString(messages.SyncCompletedWithIssues))
				return &SilentExitError{Code: 1}
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.SyncCompleted))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, messages.FlagDryRun, false, messages.FlagDryRunUsage)
	cmd.Flags().StringVar(&prefer, messages.FlagPrefer, "", messages.FlagPreferUsage)
	cmd.Flags().StringVar(&vortexVersion, messages.FlagVortexVersion, "", messages.FlagVortexVersionUsage)
	return cmd
}

func printPending(out io.Writer, pending []reconcile.Identity) {
	if len(pending) == 0 {
		return
	}
	_, _ = fmt.Fprintln(out, messages.SyncUnresolvedHeader)
	for _, id := range pending {
		steamID, gogID := "-", "-"
		if occ := id.Occurrence(inventory.StoreSteam); occ != nil {
			steamID = occ.LocalID
		}
		if occ := id.Occurrence(inventory.StoreGOG); occ != nil {
			gogID = occ.LocalID
		}
		_, _ = fmt.Fprintln(out, fmt.Sprintf(messages.SyncUnresolvedItemFmt, id.DisplayName(), steamID, gogID))
	}
}

func printPlans(out io.Writer, plans []plan.Plan) {
	for _, p := range plans {
		_, _ = fmt.Fprintln(out, fmt.Sprintf(messages.SyncPlanHeaderFmt, p.Target.BottleName, p.Target.Runner))
		if p.MustCreateEnvironment {
			_, _ = fmt.Fprintln(out, messages.SyncPlanCreateEnv)
		}
		for _, w := range p.MissingRegistryEntries {
			_, _ = fmt.Fprintln(out, fmt.Sprintf(messages.SyncPlanRegistryFmt, w.Key, w.Value, w.Data))
		}
		for _, s := range p.MissingOrStaleSymlinks {
			_, _ = fmt.Fprintln(out, fmt.Sprintf(messages.SyncPlanSymlinkFmt, s.Link, s.Source))
		}
		for _, c := range p.Conflicts {
			_, _ = fmt.Fprintln(out, fmt.Sprintf(messages.SyncPlanConflictFmt, c))
		}
		if !p.MustCreateEnvironment &&
			len(p.MissingRegistryEntries) == 0 && len(p.MissingOrStaleSymlinks) == 0 && len(p.Conflicts) == 0 {
			_, _ = fmt.Fprintln(out, messages.SyncPlanUpToDate)
		}
	}
}

func printReport(out io.Writer, rep *report.Report) {
	for _, item := range rep.Items {
		var label string
		switch item.Status {
		case report.StatusSucceeded:
			label = color.GreenString(messages.SyncStatusOKLabel)
		case report.StatusSkipped:
			label = color.YellowString(messages.SyncStatusSkipLabel)
		case report.StatusFailed:
			label = color.RedString(messages.SyncStatusFailLabel)
		}
		_, _ = fmt.Fprintln(out, fmt.Sprintf(messages.SyncResultLineFmt, label, item.Target, item.Message))
	}
}
