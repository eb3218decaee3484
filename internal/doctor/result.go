// Package doctor runs health checks over the registry, the game stores, and
// the provisioning backend.
package doctor

// Status represents the outcome of a diagnostic check.
type Status int

// Check outcomes. Warn marks conditions that limit what sync can do without
// making it unusable, such as a single missing store.
const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

// Result is the outcome of a single diagnostic check.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

// HasFailures reports whether any result failed outright.
func HasFailures(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
