package wine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// System abstracts process execution for the WINE and Bottles backends.
// Tests swap in a recording implementation; everything else in the backends
// works against the real filesystem.
type System interface {
	LookPath(file string) (string, error)
	// Run executes name with args, appending extraEnv to the inherited
	// environment, and returns captured stdout.
	Run(ctx context.Context, extraEnv []string, name string, args ...string) ([]byte, error)
}

// RealSystem implements System with os/exec.
type RealSystem struct{}

// LookPath searches PATH for an executable.
func (RealSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes the command and captures stdout. On a non-zero exit the
// returned error carries the trailing stderr output.
func (RealSystem) Run(ctx context.Context, extraEnv []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), extraEnv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := bytes.TrimSpace(stderr.Bytes())
		if len(detail) > 0 {
			return stdout.Bytes(), fmt.Errorf("%w: %s", err, detail)
		}
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}
