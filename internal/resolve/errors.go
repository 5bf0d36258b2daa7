package resolve

import (
	"errors"
	"fmt"
)

var (
	// ErrCircularImport is returned when a module depends on itself, directly or not.
	ErrCircularImport = errors.New("circular import")

	// ErrExportNotFound is returned when a loaded module has no usable export by the
	// requested name.
	ErrExportNotFound = errors.New("export not found")
)

// Diagnostic describes a placeholder that no tier could resolve.
type Diagnostic struct {
	Symbol string `json:"symbol"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s (%s): %s", d.Symbol, d.Path, d.Reason)
}
