// Package version normalizes release tags and build version strings.
package version

import (
	"fmt"
	"regexp"
	"strings"
)

var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// IsDev reports whether raw identifies an unreleased build.
func IsDev(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || trimmed == "dev"
}

// Normalize strips a leading "v" and validates X.Y.Z form.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	if !semverPattern.MatchString(trimmed) {
		return "", fmt.Errorf("invalid version %q", raw)
	}
	return trimmed, nil
}
