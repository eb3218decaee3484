package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vortextricks/vortextricks/internal/messages"
	"github.com/vortextricks/vortextricks/internal/reconcile"
)

func newPlanCmd(opts *rootOptions) *cobra.Command {
	var prefer string
	cmd := &cobra.Command{
		Use:   messages.PlanUse,
		Short: messages.PlanShort,
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
			// The plan command never prompts; without --prefer, colliding
			// identities are listed as unresolved.
			var prompter reconcile.Prompter
			if prefer != "" {
				prompter, err = resolvePrompter(prefer, eng.splitOK)
				if err != nil {
					return err
				}
			}

			plans, _, pending, err := eng.computePlans(ctx, prompter)
			if err != nil {
				return err
			}
			if len(plans) == 0 && len(pending) == 0 {
				_, _ = fmt.Fprintln(out, messages.SyncNoGamesFound)
				return nil
			}

			printPending(out, pending)
			printPlans(out, plans)
			if len(pending) > 0 {
				return &SilentExitError{Code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&prefer, messages.FlagPrefer, "", messages.FlagPreferUsage)
	return cmd
}
