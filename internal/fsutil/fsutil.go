// Package fsutil provides filesystem helpers shared by provisioning writers.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/vortextricks/vortextricks/internal/messages"
)

// ExpandHome resolves a leading ~ in path against the invoking user's home
// directory.
func ExpandHome(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.SystemHomeDirErrFmt, err)
	}
	return expanded, nil
}

// WriteFileAtomic writes data to filename by writing a temp file in the same
// directory and renaming it into place, so readers never observe a partial file.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, filename)
}

// ReplaceSymlink points linkPath at target, replacing whatever is there.
// The new link is created under a temporary name and renamed over linkPath,
// so there is no window where linkPath is missing. A pre-existing real
// directory at linkPath is removed first; rename cannot replace it.
func ReplaceSymlink(target string, linkPath string) error {
	if target == "" {
		return errors.New(messages.SystemSymlinkOldEmpty)
	}
	if linkPath == "" {
		return errors.New(messages.SystemSymlinkNewEmpty)
	}
	if err := os.MkdirAll(filepath.Dir(linkPath), 0o755); err != nil {
		return err
	}
	if info, err := os.Lstat(linkPath); err == nil {
		if info.IsDir() && info.Mode()&os.ModeSymlink == 0 {
			if err := os.RemoveAll(linkPath); err != nil {
				return err
			}
		}
	}
	tmp := fmt.Sprintf("%s.tmp-%d", linkPath, os.Getpid())
	_ = os.Remove(tmp)
	if err := os.Symlink(target, tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, linkPath); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
