package resolve

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/christianwengert/mcp-cyberchef/internal/literal"

	"github.com/dop251/goja"
)

// DefaultEvalTimeout bounds the evaluation of a single module.
const DefaultEvalTimeout = 5 * time.Second

const defaultExportLocal = "__default_export__"

// ScriptLoader evaluates ECMAScript modules in an embedded interpreter and returns
// their exports as value trees.
//
// The interpreter runs plain scripts, so module syntax is rewritten first: import
// declarations become bindings injected from the loaded dependencies and export
// keywords are removed while the exported names are recorded. Imports of bare
// package specifiers are bound to undefined. Functions and other values without a
// literal form are exported as nil.
type ScriptLoader struct {
	timeout time.Duration
}

// NewScriptLoader returns a loader that interrupts evaluation after timeout. A zero
// timeout disables the limit.
func NewScriptLoader(timeout time.Duration) *ScriptLoader {
	return &ScriptLoader{timeout: timeout}
}

// Load implements Loader.
func (l *ScriptLoader) Load(path string, require RequireFunc) (exports Exports, err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module: %w", err)
	}

	mod := lowerModule(string(src))
	dir := filepath.Dir(path)
	vm := goja.New()

	defer func() {
		if r := recover(); r != nil {
			exports, err = nil, fmt.Errorf("module evaluation panicked: %v", r)
		}
	}()

	for _, imp := range mod.imports {
		if err := bindImport(vm, dir, imp, require); err != nil {
			return nil, err
		}
	}

	if l.timeout > 0 {
		timer := time.AfterFunc(l.timeout, func() {
			vm.Interrupt("evaluation timed out")
		})
		defer timer.Stop()
	}

	if _, err := vm.RunScript(path, mod.body); err != nil {
		return nil, fmt.Errorf("failed to evaluate module: %w", err)
	}

	exports = Exports{}
	for _, re := range mod.reexports {
		if err := applyReexport(exports, dir, re, require); err != nil {
			return nil, err
		}
	}
	for _, ex := range mod.exports {
		exports[ex.export] = toTree(vm.Get(ex.local), map[*goja.Object]bool{})
	}

	return exports, nil
}

type importDecl struct {
	specifier   string
	defaultName string
	namespace   string
	named       []namedBinding
}

type reexportDecl struct {
	specifier string
	all       bool
	namespace string
	named     []namedBinding
}

type loweredModule struct {
	body    string
	imports []importDecl
	// exports pairs each public name (export) with the script binding it reads (local).
	exports   []namedBinding
	reexports []reexportDecl
}

var (
	importFromPattern    = regexp.MustCompile(`(?m)^[ \t]*import\s+([\w$*{}\s,]+?)\s*from\s*['"]([^'"]+)['"][ \t]*;?`)
	importEffectPattern  = regexp.MustCompile(`(?m)^[ \t]*import\s*['"][^'"]+['"][ \t]*;?`)
	exportStarPattern    = regexp.MustCompile(`(?m)^[ \t]*export\s*\*\s*(?:as\s+([A-Za-z_$][\w$]*)\s+)?from\s*['"]([^'"]+)['"][ \t]*;?`)
	exportFromPattern    = regexp.MustCompile(`(?m)^[ \t]*export\s*\{([^}]*)\}\s*from\s*['"]([^'"]+)['"][ \t]*;?`)
	exportListPattern    = regexp.MustCompile(`(?m)^[ \t]*export\s*\{([^}]*)\}[ \t]*;?`)
	exportDefaultPattern = regexp.MustCompile(`(?m)^([ \t]*)export\s+default\s+`)
	exportVarPattern     = regexp.MustCompile(`(?m)^([ \t]*)export\s+(const|let|var)\s+([A-Za-z_$][\w$]*)`)
	exportFuncPattern    = regexp.MustCompile(`(?m)^([ \t]*)export\s+((?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*))`)
	exportClassPattern   = regexp.MustCompile(`(?m)^([ \t]*)export\s+class\s+([A-Za-z_$][\w$]*)`)
)

// lowerModule rewrites module syntax into a plain script.
func lowerModule(src string) loweredModule {
	var mod loweredModule

	src = replaceSubmatches(importFromPattern, src, func(m []string) string {
		decl := parseImportClause(m[1])
		decl.specifier = m[2]
		mod.imports = append(mod.imports, decl)
		return ""
	})
	src = importEffectPattern.ReplaceAllString(src, "")

	src = replaceSubmatches(exportStarPattern, src, func(m []string) string {
		mod.reexports = append(mod.reexports, reexportDecl{specifier: m[2], all: m[1] == "", namespace: m[1]})
		return ""
	})
	src = replaceSubmatches(exportFromPattern, src, func(m []string) string {
		mod.reexports = append(mod.reexports, reexportDecl{specifier: m[2], named: parseNamedBindings(m[1])})
		return ""
	})
	src = replaceSubmatches(exportListPattern, src, func(m []string) string {
		for _, b := range parseNamedBindings(m[1]) {
			// parseNamedBindings reads `a as b` as export a, local b; flip it for exports.
			mod.exports = append(mod.exports, namedBinding{export: b.local, local: b.export})
		}
		return ""
	})

	src = replaceSubmatches(exportDefaultPattern, src, func(m []string) string {
		mod.exports = append(mod.exports, namedBinding{export: "default", local: defaultExportLocal})
		return m[1] + "var " + defaultExportLocal + " = "
	})
	src = replaceSubmatches(exportVarPattern, src, func(m []string) string {
		mod.exports = append(mod.exports, namedBinding{export: m[3], local: m[3]})
		return m[1] + m[2] + " " + m[3]
	})
	src = replaceSubmatches(exportFuncPattern, src, func(m []string) string {
		mod.exports = append(mod.exports, namedBinding{export: m[3], local: m[3]})
		return m[1] + m[2]
	})
	src = replaceSubmatches(exportClassPattern, src, func(m []string) string {
		mod.exports = append(mod.exports, namedBinding{export: m[2], local: m[2]})
		return m[1] + "var " + m[2] + " = class " + m[2]
	})

	mod.body = src
	return mod
}

// replaceSubmatches is ReplaceAllStringFunc with access to the capture groups.
func replaceSubmatches(re *regexp.Regexp, src string, repl func([]string) string) string {
	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringSubmatchIndex(src, -1) {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = src[loc[2*i]:loc[2*i+1]]
			}
		}
		b.WriteString(src[last:loc[0]])
		b.WriteString(repl(groups))
		last = loc[1]
	}
	b.WriteString(src[last:])
	return b.String()
}

// parseImportClause splits `D, { a, b as c }` or `* as ns` into its bindings.
func parseImportClause(clause string) importDecl {
	var decl importDecl

	if open := strings.IndexByte(clause, '{'); open >= 0 {
		if end := strings.IndexByte(clause, '}'); end > open {
			decl.named = parseNamedBindings(clause[open+1 : end])
			clause = clause[:open] + clause[end+1:]
		}
	}

	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
		case strings.HasPrefix(part, "*"):
			fields := strings.Fields(strings.TrimPrefix(part, "*"))
			if len(fields) == 2 && fields[0] == "as" {
				decl.namespace = fields[1]
			}
		default:
			decl.defaultName = part
		}
	}

	return decl
}

func bindImport(vm *goja.Runtime, dir string, imp importDecl, require RequireFunc) error {
	var deps Exports
	if isRelative(imp.specifier) {
		var err error
		deps, err = require(resolveSpecifier(dir, imp.specifier))
		if err != nil {
			return fmt.Errorf("failed to load dependency %q: %w", imp.specifier, err)
		}
	}

	bind := func(local, export string) error {
		v, ok := deps[export]
		if !ok {
			return vm.Set(local, goja.Undefined())
		}
		return vm.Set(local, toJS(vm, v))
	}

	if imp.defaultName != "" {
		if err := bind(imp.defaultName, "default"); err != nil {
			return err
		}
	}
	if imp.namespace != "" {
		if err := vm.Set(imp.namespace, toJS(vm, namespaceTree(deps))); err != nil {
			return err
		}
	}
	for _, b := range imp.named {
		if err := bind(b.local, b.export); err != nil {
			return err
		}
	}
	return nil
}

func applyReexport(exports Exports, dir string, re reexportDecl, require RequireFunc) error {
	if !isRelative(re.specifier) {
		return nil
	}

	deps, err := require(resolveSpecifier(dir, re.specifier))
	if err != nil {
		return fmt.Errorf("failed to load re-exported module %q: %w", re.specifier, err)
	}

	switch {
	case re.all:
		for name, v := range deps {
			if name != "default" {
				exports[name] = v
			}
		}
	case re.namespace != "":
		exports[re.namespace] = namespaceTree(deps)
	default:
		for _, b := range re.named {
			// `export { a as b } from` reads export a and publishes it as b.
			if v, ok := deps[b.export]; ok {
				exports[b.local] = v
			}
		}
	}
	return nil
}

// namespaceTree returns the exports as a mapping in name order.
func namespaceTree(deps Exports) *literal.Mapping {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	slices.Sort(names)

	m := literal.NewMapping()
	for _, name := range names {
		m.Set(name, deps[name])
	}
	return m
}

// toTree converts an interpreter value into a value tree. seen guards against
// reference cycles.
func toTree(v goja.Value, seen map[*goja.Object]bool) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}

	obj, ok := v.(*goja.Object)
	if !ok {
		return primitiveTree(v.Export())
	}
	if _, isFunc := goja.AssertFunction(obj); isFunc || seen[obj] {
		return nil
	}
	seen[obj] = true
	defer delete(seen, obj)

	switch obj.ClassName() {
	case "Array":
		n := int(obj.Get("length").ToInteger())
		seq := make([]any, n)
		for i := range n {
			seq[i] = toTree(obj.Get(strconv.Itoa(i)), seen)
		}
		return seq
	case "String", "Number", "Boolean":
		return primitiveTree(obj.Export())
	case "RegExp", "Date":
		return obj.String()
	}

	m := literal.NewMapping()
	for _, key := range obj.Keys() {
		m.Set(key, toTree(obj.Get(key), seen))
	}
	return m
}

func primitiveTree(x any) any {
	switch p := x.(type) {
	case bool, string:
		return p
	case int64:
		return json.Number(strconv.FormatInt(p, 10))
	case float64:
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil
		}
		return json.Number(strconv.FormatFloat(p, 'g', -1, 64))
	case *big.Int:
		return json.Number(p.String())
	default:
		return nil
	}
}

// toJS converts a value tree into an interpreter value.
func toJS(vm *goja.Runtime, tree any) goja.Value {
	switch t := tree.(type) {
	case nil:
		return goja.Null()
	case *literal.Mapping:
		obj := vm.NewObject()
		for _, key := range t.Keys() {
			v, _ := t.Get(key)
			_ = obj.Set(key, toJS(vm, v))
		}
		return obj
	case []any:
		items := make([]any, len(t))
		for i, v := range t {
			items[i] = toJS(vm, v)
		}
		return vm.NewArray(items...)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return vm.ToValue(i)
		}
		f, _ := t.Float64()
		return vm.ToValue(f)
	default:
		return vm.ToValue(t)
	}
}
