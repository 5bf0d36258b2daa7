// Package fileops provides the filesystem pieces of the extractor: a contained view
// of a source directory and atomic file writes.
//
// # Source Directories
//
// OpenSourceDir opens a directory as an os.Root, so every read stays inside it even
// when names contain traversal sequences or point at symlinks leading elsewhere:
//
//	dir, err := fileops.OpenSourceDir("./src/core/operations", 0)
//	if err != nil {
//	    return fmt.Errorf("open operations: %w", err)
//	}
//	defer dir.Close()
//
//	names, err := dir.List([]string{".mjs", ".js"})
//
// # Atomic Writes
//
// AtomicWriteFile writes to a temporary file in the destination directory, syncs it
// and renames it over the destination, so readers see either the old or the new
// content.
package fileops
