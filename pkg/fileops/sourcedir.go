package fileops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultMaxFileSize bounds a single source file read through a SourceDir.
const DefaultMaxFileSize int64 = 4 << 20

// ErrFileTooLarge is returned by ReadFile for files above the size limit.
var ErrFileTooLarge = errors.New("file exceeds size limit")

// SourceDir is a read-only view of one directory of source files.
type SourceDir struct {
	root    *os.Root
	path    string
	maxSize int64
}

// OpenSourceDir opens the directory at path. A maxSize of zero or less selects
// DefaultMaxFileSize.
func OpenSourceDir(path string, maxSize int64) (*SourceDir, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("source path cannot be empty")
	}

	absPath, err := filepath.Abs(ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve source path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access source path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source path is not a directory: %s", absPath)
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open source root: %w", err)
	}

	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	return &SourceDir{
		root:    root,
		path:    absPath,
		maxSize: maxSize,
	}, nil
}

// Path returns the absolute directory path.
func (d *SourceDir) Path() string {
	return d.path
}

// Abs returns the absolute path of a file in the directory.
func (d *SourceDir) Abs(name string) string {
	return filepath.Join(d.path, name)
}

// List returns the names of regular files whose extension is one of extensions,
// sorted by name. Hidden files and subdirectories are not listed. An empty
// extension list matches every file.
func (d *SourceDir) List(extensions []string) ([]string, error) {
	if d.root == nil {
		return nil, fmt.Errorf("source directory has been closed")
	}

	dir, err := d.root.Open(".")
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", d.path, err)
	}
	defer dir.Close()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", d.path, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if len(extensions) > 0 && !slices.Contains(extensions, filepath.Ext(name)) {
			continue
		}
		names = append(names, name)
	}

	slices.Sort(names)
	return names, nil
}

// ReadFile reads a file inside the directory.
func (d *SourceDir) ReadFile(name string) ([]byte, error) {
	if d.root == nil {
		return nil, fmt.Errorf("source directory has been closed")
	}

	f, err := d.root.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", name)
	}
	if info.Size() > d.maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, name, info.Size(), d.maxSize)
	}

	data, err := io.ReadAll(io.LimitReader(f, d.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// Close releases the directory handle.
func (d *SourceDir) Close() error {
	if d.root != nil {
		err := d.root.Close()
		d.root = nil
		return err
	}
	return nil
}
