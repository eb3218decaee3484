// Package provision applies provisioning plans through an injected
// environment capability.
package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vortextricks/vortextricks/internal/messages"
	"github.com/vortextricks/vortextricks/internal/plan"
	"github.com/vortextricks/vortextricks/internal/report"
)

// ErrEnvironmentCreation wraps environment-creation failures. All remaining
// steps for that target are skipped; other targets are unaffected.
var ErrEnvironmentCreation = errors.New("environment creation failed")

// Environment is the capability surface the executor drives. Implementations
// wrap bottles-cli or plain WINE; the executor never touches the OS itself.
type Environment interface {
	CreateEnvironment(ctx context.Context, target plan.Target) error
	WriteRegistryEntry(ctx context.Context, target plan.Target, write plan.RegistryWrite) error
	CreateOrReplaceSymlink(target plan.Target, source string, link string) error
}

// Execute applies each plan in order. Targets are provisioned sequentially
// and independently: a failure inside one target never touches another, and
// within a target the environment must exist before any registry write or
// symlink is attempted. The executor re-does nothing the planner marked as
// already satisfied; the plans are the complete work list.
func Execute(ctx context.Context, plans []plan.Plan, env Environment, log zerolog.Logger) (*report.Report, error) {
	if env == nil {
		return nil, errors.New(messages.ProvisionEnvironmentRequired)
	}
	rep := &report.Report{}
	for _, p := range plans {
		executeTarget(ctx, p, env, rep, log)
	}
	return rep, nil
}

func executeTarget(ctx context.Context, p plan.Plan, env Environment, rep *report.Report, log zerolog.Logger) {
	name := p.Target.BottleName

	if p.MustCreateEnvironment {
		log.Info().Str("bottle", name).Str("runner", string(p.Target.Runner)).Msg("creating environment")
		if err := env.CreateEnvironment(ctx, p.Target); err != nil {
			wrapped := fmt.Errorf("%w: "+messages.ProvisionCreateFailedFmt, ErrEnvironmentCreation, name, err)
			rep.Failed(name, "%v", wrapped)
			// Fail fast for this target: registry writes and symlinks
			// against a half-created prefix would corrupt it.
			skipRemaining(p, rep)
			return
		}
		rep.Succeeded(name, messages.ProvisionCreatedEnvironmentFmt, name)
	}

	for _, conflict := range p.Conflicts {
		rep.Skipped(name, messages.ProvisionRegistrySkippedFmt, name, conflict.String())
	}

	for _, write := range p.MissingRegistryEntries {
		if err := env.WriteRegistryEntry(ctx, p.Target, write); err != nil {
			rep.Failed(name, messages.ProvisionRegistryWriteFmt, write.Key, write.Value, name, err)
			continue
		}
		log.Debug().Str("bottle", name).Str("key", write.Key).Msg("registry entry written")
		rep.Succeeded(name, messages.ProvisionRegistryEntryWroteFmt, write.Key, write.Value, name)
	}

	for _, link := range p.MissingOrStaleSymlinks {
		if err := env.CreateOrReplaceSymlink(p.Target, link.Source, link.Link); err != nil {
			rep.Failed(name, messages.ProvisionSymlinkFmt, link.Link, link.Source, err)
			continue
		}
		log.Debug().Str("bottle", name).Str("link", link.Link).Msg("symlink replaced")
		rep.Succeeded(name, messages.ProvisionSymlinkReplacedFmt, link.Link, link.Source)
	}

	if !p.MustCreateEnvironment && len(p.MissingRegistryEntries) == 0 && len(p.MissingOrStaleSymlinks) == 0 && len(p.Conflicts) == 0 {
		rep.Succeeded(name, messages.ProvisionNothingToDoFmt, name)
	}
}

// skipRemaining records every step that was withheld after the target's
// environment creation failed, so the final report accounts for all of them.
func skipRemaining(p plan.Plan, rep *report.Report) {
	name := p.Target.BottleName
	for _, write := range p.MissingRegistryEntries {
		rep.Skipped(name, messages.ProvisionSkippedAfterCreateFmt, write.Key+`\`+write.Value)
	}
	for _, link := range p.MissingOrStaleSymlinks {
		rep.Skipped(name, messages.ProvisionSkippedAfterCreateFmt, link.Link)
	}
}
