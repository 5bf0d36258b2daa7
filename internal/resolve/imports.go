package resolve

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/christianwengert/mcp-cyberchef/internal/literal"
)

// ImportEntry records where a locally bound identifier comes from.
type ImportEntry struct {
	Local  string
	Path   string
	Export string
}

// ImportMap maps local identifiers to their import entries.
type ImportMap map[string]ImportEntry

// Lookup returns the entry for a local identifier.
func (m ImportMap) Lookup(local string) (ImportEntry, bool) {
	e, ok := m[local]
	return e, ok
}

// namedImportPattern matches `import { A, B as C } from "./x.mjs"`, optionally with a
// leading default binding. Only the braces part is captured.
var namedImportPattern = regexp.MustCompile(`import\s+(?:[A-Za-z_$][\w$]*\s*,\s*)?\{([^}]*)\}\s*from\s*['"]([^'"]+)['"]`)

// moduleExtensions are probed, in order, for specifiers without an extension.
var moduleExtensions = []string{".mjs", ".js"}

// BuildImportMap collects the named imports of fileText whose specifiers are relative.
// Paths are resolved against the directory of filePath. Default and namespace imports
// and bare package specifiers are ignored.
func BuildImportMap(fileText, filePath string) ImportMap {
	dir := filepath.Dir(filePath)
	imports := ImportMap{}

	for _, match := range namedImportPattern.FindAllStringSubmatch(literal.StripComments(fileText), -1) {
		specifier := match[2]
		if !isRelative(specifier) {
			continue
		}
		path := resolveSpecifier(dir, specifier)

		for _, binding := range parseNamedBindings(match[1]) {
			imports[binding.local] = ImportEntry{
				Local:  binding.local,
				Path:   path,
				Export: binding.export,
			}
		}
	}

	return imports
}

type namedBinding struct {
	export string
	local  string
}

// parseNamedBindings splits the inside of `{ A, B as C }`.
func parseNamedBindings(list string) []namedBinding {
	var bindings []namedBinding
	for _, part := range strings.Split(list, ",") {
		fields := strings.Fields(part)
		switch {
		case len(fields) == 1:
			bindings = append(bindings, namedBinding{export: fields[0], local: fields[0]})
		case len(fields) == 3 && fields[1] == "as":
			bindings = append(bindings, namedBinding{export: fields[0], local: fields[2]})
		}
	}
	return bindings
}

func isRelative(specifier string) bool {
	return strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}

// resolveSpecifier returns the absolute path for a relative specifier. A specifier
// without an extension resolves to the first existing candidate; when none exists the
// first candidate is returned so that loading reports the missing file.
func resolveSpecifier(dir, specifier string) string {
	path := filepath.Join(dir, filepath.FromSlash(specifier))
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if filepath.Ext(path) != "" {
		return path
	}
	for _, ext := range moduleExtensions {
		if info, err := os.Stat(path + ext); err == nil && !info.IsDir() {
			return path + ext
		}
	}
	return path + moduleExtensions[0]
}
