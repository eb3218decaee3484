package vortex

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/vortextricks/vortextricks/internal/messages"
)

// downloadClient carries no timeout; installers are large and context
// cancellation governs the request lifetime instead.
var downloadClient = &http.Client{}

const installerPerm = 0o644

// Download fetches the release installer into dir and returns its path.
// An existing file of the same name is reused without re-downloading.
func Download(ctx context.Context, rel Release, dir string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	dest := filepath.Join(dir, rel.InstallerName)
	if info, err := os.Stat(dest); err == nil && info.Size() > 0 {
		return dest, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rel.DownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf(messages.VortexDownloadErrFmt, rel.DownloadURL, err)
	}
	req.Header.Set("User-Agent", "vortextricks")

	resp, err := downloadClient.Do(req)
	if err != nil {
		return "", fmt.Errorf(messages.VortexDownloadErrFmt, rel.DownloadURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(messages.VortexDownloadStatusFmt, rel.DownloadURL, resp.Status)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf(messages.VortexDownloadWriteErrFmt, dest, err)
	}
	tmp, err := os.CreateTemp(dir, rel.InstallerName+".tmp-*")
	if err != nil {
		return "", fmt.Errorf(messages.VortexDownloadWriteErrFmt, dest, err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf(messages.VortexDownloadWriteErrFmt, dest, err)
	}
	if err := tmp.Chmod(installerPerm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf(messages.VortexDownloadWriteErrFmt, dest, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf(messages.VortexDownloadWriteErrFmt, dest, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf(messages.VortexDownloadWriteErrFmt, dest, err)
	}
	return dest, nil
}

// DefaultCacheDir returns the directory installers are cached under.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(os.TempDir(), fmt.Sprintf("vortextricks-%d", time.Now().Unix()))
	}
	return filepath.Join(base, "vortextricks")
}
