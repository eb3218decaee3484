// Package report collects per-step outcomes of a provisioning run.
//
// Execution uses partial-failure semantics: one failing registry write or
// symlink never blocks the rest, so every step lands here as succeeded,
// skipped, or failed, and the final report enumerates all of them instead
// of a bare non-zero exit.
package report

import "fmt"

// Status classifies one executed (or withheld) step.
type Status int

// Step statuses.
const (
	StatusSucceeded Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "ok"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Item is one step outcome, scoped to the environment it belongs to.
type Item struct {
	Status  Status
	Target  string
	Message string
}

// Report aggregates items in execution order.
type Report struct {
	Items []Item
}

// Succeeded records a successful step.
func (r *Report) Succeeded(target string, format string, args ...any) {
	r.add(StatusSucceeded, target, format, args...)
}

// Skipped records a step withheld pending resolution, conflict fixup, or an
// earlier environment-creation failure.
func (r *Report) Skipped(target string, format string, args ...any) {
	r.add(StatusSkipped, target, format, args...)
}

// Failed records a failed step.
func (r *Report) Failed(target string, format string, args ...any) {
	r.add(StatusFailed, target, format, args...)
}

func (r *Report) add(status Status, target string, format string, args ...any) {
	r.Items = append(r.Items, Item{Status: status, Target: target, Message: fmt.Sprintf(format, args...)})
}

// Merge appends another report's items.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Items = append(r.Items, other.Items...)
}

// HasFailures reports whether any step failed.
func (r *Report) HasFailures() bool {
	return r.Count(StatusFailed) > 0
}

// HasSkipped reports whether any step was withheld.
func (r *Report) HasSkipped() bool {
	return r.Count(StatusSkipped) > 0
}

// Count returns the number of items with the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, item := range r.Items {
		if item.Status == status {
			n++
		}
	}
	return n
}
