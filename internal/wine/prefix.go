package wine

import (
	"os"
	"path/filepath"
)

// InspectRegistry reads the string values recorded in a prefix's user.reg
// and system.reg files, keyed by absolute registry address. A prefix that
// has not been booted yet yields an empty map.
func InspectRegistry(prefixPath string) map[string]string {
	entries := map[string]string{}
	for file, hive := range map[string]string{
		"user.reg":   "HKEY_CURRENT_USER",
		"system.reg": "HKEY_LOCAL_MACHINE",
	} {
		data, err := os.ReadFile(filepath.Join(prefixPath, file))
		if err != nil {
			continue
		}
		for address, value := range parseRegFile(data, hive) {
			entries[address] = value
		}
	}
	return entries
}

// InspectSymlinks maps every symlink under the user's My Games and AppData
// folders to its raw target. Regular files and directories are left out so
// the planner treats paths occupied by them as needing replacement.
func InspectSymlinks(prefixPath string, user string) map[string]string {
	links := map[string]string{}
	userRoot := filepath.Join(prefixPath, "drive_c", "users", user)
	for _, dir := range []string{
		filepath.Join(userRoot, "Documents", "My Games"),
		filepath.Join(userRoot, "AppData", "Local"),
	} {
		children, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, child := range children {
			path := filepath.Join(dir, child.Name())
			info, err := os.Lstat(path)
			if err != nil || info.Mode()&os.ModeSymlink == 0 {
				continue
			}
			target, err := os.Readlink(path)
			if err != nil {
				continue
			}
			links[path] = target
		}
	}
	return links
}

// PrefixBooted reports whether a prefix has been initialized by wineboot.
func PrefixBooted(prefixPath string) bool {
	_, err := os.Stat(filepath.Join(prefixPath, "system.reg"))
	return err == nil
}
