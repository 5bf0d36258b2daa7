package resolve

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/christianwengert/mcp-cyberchef/internal/literal"
	"github.com/christianwengert/mcp-cyberchef/internal/logging"

	"golang.org/x/sync/errgroup"
)

// Resolver rewrites value trees, replacing imported placeholders with their values.
// One Resolver serves a whole run and is safe for concurrent use.
type Resolver struct {
	cache  *ModuleCache
	logger *logging.AppLogger

	mu          sync.Mutex
	diagnostics []Diagnostic
}

// NewResolver returns a resolver that loads modules through cache.
func NewResolver(cache *ModuleCache, logger *logging.AppLogger) *Resolver {
	return &Resolver{
		cache:  cache,
		logger: logger,
	}
}

// Resolve returns a copy of tree with every placeholder found in imports replaced.
// Sibling elements are resolved concurrently and written back in source order. The
// only error is the context's.
func (r *Resolver) Resolve(ctx context.Context, tree any, imports ImportMap) (any, error) {
	switch t := tree.(type) {
	case *literal.Mapping:
		keys := t.Keys()
		values := make([]any, len(keys))

		g, gctx := errgroup.WithContext(ctx)
		for i, key := range keys {
			g.Go(func() error {
				v, _ := t.Get(key)
				resolved, err := r.Resolve(gctx, v, imports)
				values[i] = resolved
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		out := literal.NewMapping()
		for i, key := range keys {
			out.Set(key, values[i])
		}
		return out, nil

	case []any:
		out := make([]any, len(t))

		g, gctx := errgroup.WithContext(ctx)
		for i, v := range t {
			g.Go(func() error {
				resolved, err := r.Resolve(gctx, v, imports)
				out[i] = resolved
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return out, nil

	case string:
		if !literal.IsPlaceholder(t) {
			return t, nil
		}
		entry, ok := imports.Lookup(t)
		if !ok {
			return t, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return r.resolveSymbol(t, entry), nil

	default:
		return tree, nil
	}
}

func (r *Resolver) resolveSymbol(placeholder string, entry ImportEntry) any {
	exports, err := r.cache.Load(entry.Path)
	if err == nil {
		if v, ok := exports[entry.Export]; ok && !isEmpty(v) {
			return v
		}
		err = fmt.Errorf("%w: %s", ErrExportNotFound, entry.Export)
	}

	r.logger.Debug("Module load did not yield symbol, trying static extraction",
		"symbol", placeholder, "path", entry.Path, "error", err)

	if source, serr := r.cache.Source(entry.Path); serr == nil {
		if seq, ok := ExtractExportedArray(source, entry.Export); ok {
			return seq
		}
	} else {
		err = errors.Join(err, serr)
	}

	d := Diagnostic{Symbol: placeholder, Path: entry.Path, Reason: err.Error()}
	r.record(d)
	r.logger.Warn("Unresolved symbol", "symbol", d.Symbol, "path", d.Path, "reason", d.Reason)

	return placeholder
}

func (r *Resolver) record(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, d)
}

// Diagnostics returns the unresolved placeholders recorded so far, sorted by path and
// symbol.
func (r *Resolver) Diagnostics() []Diagnostic {
	r.mu.Lock()
	out := slices.Clone(r.diagnostics)
	r.mu.Unlock()

	slices.SortStableFunc(out, func(a, b Diagnostic) int {
		return cmp.Or(cmp.Compare(a.Path, b.Path), cmp.Compare(a.Symbol, b.Symbol))
	})
	return out
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case *literal.Mapping:
		return t.Len() == 0
	default:
		return false
	}
}
