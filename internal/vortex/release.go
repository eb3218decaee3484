package vortex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vortextricks/vortextricks/internal/messages"
	"github.com/vortextricks/vortextricks/internal/version"
)

// Repo identifies the GitHub repository Vortex installers are published to.
const Repo = "Nexus-Mods/Vortex"

// ReleasesBaseURL is the base URL for installer downloads.
const ReleasesBaseURL = "https://github.com/" + Repo + "/releases"

var latestReleaseURL = "https://api.github.com/repos/" + Repo + "/releases/latest"
var releaseClient = &http.Client{Timeout: 10 * time.Second}
var retryDelay = 250 * time.Millisecond

const fetchLatestRetryCount = 1

// RateLimitError indicates GitHub's API rate limit was hit while resolving a release.
type RateLimitError struct {
	StatusCode int
	Status     string
	Remaining  *int
}

func (e *RateLimitError) Error() string {
	remainingText := "unknown"
	if e.Remaining != nil {
		remainingText = fmt.Sprintf("%d", *e.Remaining)
	}
	return fmt.Sprintf("github api rate limit exceeded (%s, remaining=%s)", e.Status, remainingText)
}

// IsRateLimitError reports whether err represents a GitHub API rate-limit condition.
func IsRateLimitError(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// Release describes a concrete Vortex installer to download.
type Release struct {
	Version       string
	InstallerName string
	DownloadURL   string
}

// Resolve returns the installer release for pinned, or the latest published
// release when pinned is empty.
func Resolve(ctx context.Context, pinned string) (Release, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var ver string
	if strings.TrimSpace(pinned) != "" {
		normalized, err := version.Normalize(pinned)
		if err != nil {
			return Release{}, fmt.Errorf(messages.VortexInvalidReleaseTagFmt, pinned, err)
		}
		ver = normalized
	} else {
		latest, err := fetchLatestReleaseVersion(ctx)
		if err != nil {
			return Release{}, err
		}
		ver = latest
	}

	name := "vortex-setup-" + ver + ".exe"
	return Release{
		Version:       ver,
		InstallerName: name,
		DownloadURL:   ReleasesBaseURL + "/download/v" + ver + "/" + name,
	}, nil
}

type latestReleaseResponse struct {
	TagName string `json:"tag_name"`
}

func fetchLatestReleaseVersion(ctx context.Context) (string, error) {
	for attempt := 0; attempt <= fetchLatestRetryCount; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, latestReleaseURL, nil)
		if err != nil {
			return "", fmt.Errorf(messages.VortexCreateRequestErrFmt, err)
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("User-Agent", "vortextricks")

		resp, err := releaseClient.Do(req)
		if err != nil {
			if shouldRetryLatestCheck(err, 0, attempt) {
				time.Sleep(retryDelay)
				continue
			}
			return "", fmt.Errorf(messages.VortexFetchLatestReleaseErrFmt, err)
		}

		if resp.StatusCode != http.StatusOK {
			if rateLimitErr := rateLimitErrorFromResponse(resp); rateLimitErr != nil {
				_ = resp.Body.Close()
				return "", rateLimitErr
			}
			status := resp.StatusCode
			statusText := resp.Status
			_ = resp.Body.Close()
			if shouldRetryLatestCheck(nil, status, attempt) {
				time.Sleep(retryDelay)
				continue
			}
			return "", fmt.Errorf(messages.VortexFetchLatestReleaseStatusFmt, statusText)
		}

		var payload latestReleaseResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			_ = resp.Body.Close()
			return "", fmt.Errorf(messages.VortexDecodeLatestReleaseErrFmt, err)
		}
		_ = resp.Body.Close()
		if strings.TrimSpace(payload.TagName) == "" {
			return "", errors.New(messages.VortexLatestReleaseMissingTag)
		}
		normalized, err := version.Normalize(payload.TagName)
		if err != nil {
			return "", fmt.Errorf(messages.VortexInvalidReleaseTagFmt, payload.TagName, err)
		}
		return normalized, nil
	}

	return "", fmt.Errorf(messages.VortexFetchLatestReleaseErrFmt, errors.New("retry budget exhausted"))
}

func rateLimitErrorFromResponse(resp *http.Response) *RateLimitError {
	if resp == nil {
		return nil
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	// GitHub returns 403 Forbidden for unauthenticated exhaustion; confirm with rate-limit headers.
	if resp.StatusCode == http.StatusForbidden {
		remainingStr := strings.TrimSpace(resp.Header.Get("X-RateLimit-Remaining"))
		if remainingStr == "" {
			return nil
		}
		remaining, err := strconv.Atoi(remainingStr)
		if err != nil {
			return nil
		}
		if remaining == 0 {
			return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status, Remaining: &remaining}
		}
	}
	return nil
}

func shouldRetryLatestCheck(err error, statusCode int, attempt int) bool {
	if attempt >= fetchLatestRetryCount {
		return false
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		var netErr net.Error
		return errors.As(err, &netErr)
	}
	return statusCode >= 500 && statusCode <= 599
}
