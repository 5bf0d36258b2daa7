package fileops

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading ~/ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ResolvePath expands path and makes it absolute relative to base when it is not
// absolute already.
func ResolvePath(path, base string) string {
	path = ExpandPath(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	return filepath.Clean(path)
}
