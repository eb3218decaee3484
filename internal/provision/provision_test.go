package provision

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vortextricks/vortextricks/internal/logging"
	"github.com/vortextricks/vortextricks/internal/plan"
	"github.com/vortextricks/vortextricks/internal/report"
)

// fakeEnv records capability calls and fails where instructed.
type fakeEnv struct {
	created      []string
	writes       []string
	links        []string
	failCreate   map[string]bool
	failWriteKey map[string]bool
	failLink     map[string]bool
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{
		failCreate:   map[string]bool{},
		failWriteKey: map[string]bool{},
		failLink:     map[string]bool{},
	}
}

func (f *fakeEnv) CreateEnvironment(_ context.Context, target plan.Target) error {
	if f.failCreate[target.BottleName] {
		return errors.New("bottles-cli exploded")
	}
	f.created = append(f.created, target.BottleName)
	return nil
}

func (f *fakeEnv) WriteRegistryEntry(_ context.Context, target plan.Target, write plan.RegistryWrite) error {
	if f.failWriteKey[write.Key] {
		return errors.New("reg add failed")
	}
	f.writes = append(f.writes, target.BottleName+":"+write.Key)
	return nil
}

func (f *fakeEnv) CreateOrReplaceSymlink(target plan.Target, _ string, link string) error {
	if f.failLink[link] {
		return errors.New("symlink failed")
	}
	f.links = append(f.links, target.BottleName+":"+link)
	return nil
}

func basicPlan(bottle string) plan.Plan {
	return plan.Plan{
		Target:                plan.Target{BottleName: bottle, Runner: plan.RunnerDefault},
		MustCreateEnvironment: true,
		MissingRegistryEntries: []plan.RegistryWrite{
			{GameID: "foo", Key: `HKLM\SOFTWARE\Foo`, Value: "installed path", Data: `z:\games\foo`},
		},
		MissingOrStaleSymlinks: []plan.SymlinkSpec{
			{GameID: "foo", Source: "/compat/1/saves", Link: "/bottles/" + bottle + "/saves"},
		},
	}
}

func TestExecuteHappyPath(t *testing.T) {
	t.Parallel()
	env := newFakeEnv()
	rep, err := Execute(context.Background(), []plan.Plan{basicPlan("Vortex")}, env, logging.Discard())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if rep.HasFailures() || rep.HasSkipped() {
		t.Fatalf("unexpected failures/skips: %+v", rep.Items)
	}
	if len(env.created) != 1 || env.created[0] != "Vortex" {
		t.Fatalf("environment not created: %v", env.created)
	}
	if len(env.writes) != 1 || len(env.links) != 1 {
		t.Fatalf("steps not executed: writes=%v links=%v", env.writes, env.links)
	}
}

func TestExecuteSkipsCreationWhenSatisfied(t *testing.T) {
	t.Parallel()
	p := basicPlan("Vortex")
	p.MustCreateEnvironment = false
	env := newFakeEnv()
	rep, err := Execute(context.Background(), []plan.Plan{p}, env, logging.Discard())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(env.created) != 0 {
		t.Fatalf("executor must never re-create a satisfied environment")
	}
	if rep.HasFailures() {
		t.Fatalf("unexpected failures: %+v", rep.Items)
	}
}

func TestExecuteFailFastPerTarget(t *testing.T) {
	t.Parallel()
	env := newFakeEnv()
	env.failCreate["Vortex-Steam"] = true
	plans := []plan.Plan{basicPlan("Vortex-Steam"), basicPlan("Vortex-GOG")}
	rep, err := Execute(context.Background(), plans, env, logging.Discard())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	// Failed target: no registry/symlink steps attempted, all skipped.
	for _, w := range env.writes {
		if w == "Vortex-Steam:"+`HKLM\SOFTWARE\Foo` {
			t.Fatalf("registry write attempted after creation failure")
		}
	}
	if !rep.HasFailures() || !rep.HasSkipped() {
		t.Fatalf("expected failure and skips recorded: %+v", rep.Items)
	}
	// Other target unaffected.
	if len(env.created) != 1 || env.created[0] != "Vortex-GOG" {
		t.Fatalf("independent target not provisioned: %v", env.created)
	}
	if rep.Count(report.StatusSucceeded) == 0 {
		t.Fatalf("expected successes for the unaffected target")
	}
}

func TestExecutePartialFailureContinues(t *testing.T) {
	t.Parallel()
	p := basicPlan("Vortex")
	p.MissingRegistryEntries = append(p.MissingRegistryEntries,
		plan.RegistryWrite{GameID: "bar", Key: `HKLM\SOFTWARE\Bar`, Value: "installed path", Data: `z:\games\bar`})
	env := newFakeEnv()
	env.failWriteKey[`HKLM\SOFTWARE\Foo`] = true
	rep, err := Execute(context.Background(), []plan.Plan{p}, env, logging.Discard())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !rep.HasFailures() {
		t.Fatalf("expected recorded failure")
	}
	// The second entry and the symlink still ran.
	if len(env.writes) != 1 || env.writes[0] != "Vortex:"+`HKLM\SOFTWARE\Bar` {
		t.Fatalf("remaining registry entries must still execute: %v", env.writes)
	}
	if len(env.links) != 1 {
		t.Fatalf("symlinks must still execute after a registry failure")
	}
}

func TestExecuteReportsConflictsAsSkipped(t *testing.T) {
	t.Parallel()
	p := basicPlan("Vortex")
	p.Conflicts = []plan.Conflict{{Key: `HKLM\SOFTWARE\Foo`, FirstGame: "foo", SecondGame: "clash"}}
	env := newFakeEnv()
	rep, err := Execute(context.Background(), []plan.Plan{p}, env, logging.Discard())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if rep.Count(report.StatusSkipped) != 1 {
		t.Fatalf("conflict must surface as a skipped item: %+v", rep.Items)
	}
	// Non-conflicting entries still execute.
	if len(env.writes) != 1 {
		t.Fatalf("non-conflicting entries must still execute: %v", env.writes)
	}
}

func TestExecuteNothingToDo(t *testing.T) {
	t.Parallel()
	p := plan.Plan{Target: plan.Target{BottleName: "Vortex"}}
	env := newFakeEnv()
	rep, err := Execute(context.Background(), []plan.Plan{p}, env, logging.Discard())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if rep.Count(report.StatusSucceeded) != 1 {
		t.Fatalf("up-to-date target must still be reported: %+v", rep.Items)
	}
}

func TestExecuteRequiresEnvironment(t *testing.T) {
	t.Parallel()
	if _, err := Execute(context.Background(), nil, nil, logging.Discard()); err == nil {
		t.Fatalf("expected error for nil environment")
	}
}

func collect(rep *report.Report, status report.Status) []report.Item {
	var items []report.Item
	for _, item := range rep.Items {
		if item.Status == status {
			items = append(items, item)
		}
	}
	return items
}

func TestExecuteFailureMessagesRenderCause(t *testing.T) {
	t.Parallel()
	env := newFakeEnv()
	env.failWriteKey[`HKLM\SOFTWARE\Foo`] = true
	env.failLink["/bottles/Vortex/saves"] = true

	p := basicPlan("Vortex")
	p.MustCreateEnvironment = false
	rep, err := Execute(context.Background(), []plan.Plan{p}, env, logging.Discard())
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	failed := collect(rep, report.StatusFailed)
	if len(failed) != 2 {
		t.Fatalf("expected 2 failed items, got %+v", failed)
	}
	for _, item := range failed {
		if strings.Contains(item.Message, "%!") {
			t.Errorf("failure message has a bad format directive: %q", item.Message)
		}
	}
	if !strings.Contains(failed[0].Message, "reg add failed") {
		t.Errorf("registry failure must name the cause: %q", failed[0].Message)
	}
	if !strings.Contains(failed[1].Message, "symlink failed") {
		t.Errorf("symlink failure must name the cause: %q", failed[1].Message)
	}
}
