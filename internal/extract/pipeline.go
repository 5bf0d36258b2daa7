package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/christianwengert/mcp-cyberchef/internal/argschema"
	"github.com/christianwengert/mcp-cyberchef/internal/catalog"
	"github.com/christianwengert/mcp-cyberchef/internal/literal"
	"github.com/christianwengert/mcp-cyberchef/internal/logging"
	"github.com/christianwengert/mcp-cyberchef/internal/resolve"
	"github.com/christianwengert/mcp-cyberchef/pkg/fileops"
)

// Options configures an Extractor. Zero values select the defaults.
type Options struct {
	// Extensions selects the source files to read.
	Extensions []string
	// MaxFileSize bounds a single source file.
	MaxFileSize int64
}

// Extractor runs the extraction pipeline over a directory of operation sources.
type Extractor struct {
	resolver *resolve.Resolver
	logger   *logging.AppLogger
	opts     Options
}

// Result summarizes one extraction run.
type Result struct {
	Catalog *catalog.Catalog
	// Files is the number of source files read.
	Files int
	// Skipped lists files that did not yield an operation.
	Skipped []string
	// Duplicates lists operation names that more than one file declared.
	Duplicates []string
	// UnknownTypes lists argument type tags that have no canonical folding.
	UnknownTypes []string
	// Diagnostics lists placeholders that could not be resolved.
	Diagnostics []resolve.Diagnostic
}

// NewExtractor returns an Extractor that resolves placeholders with resolver.
func NewExtractor(resolver *resolve.Resolver, logger *logging.AppLogger, opts Options) *Extractor {
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".mjs", ".js"}
	}
	return &Extractor{
		resolver: resolver,
		logger:   logger,
		opts:     opts,
	}
}

// ExtractAll reads every source file in dir, in name order, and builds the catalog.
// Directory and read failures are returned as errors; files that do not have the
// expected shape are skipped.
func (e *Extractor) ExtractAll(ctx context.Context, dir string) (*Result, error) {
	defer e.logger.LogPerformance("extract", time.Now())

	src, err := fileops.OpenSourceDir(dir, e.opts.MaxFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to open operations directory: %w", err)
	}
	defer src.Close()

	names, err := src.List(e.opts.Extensions)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}

	result := &Result{Catalog: catalog.New()}
	unknown := map[string]bool{}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := src.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read operation source: %w", err)
		}
		result.Files++

		op, err := e.extractSource(ctx, string(data), src.Abs(name))
		if err != nil {
			return nil, err
		}
		if op == nil {
			e.logger.Debug("Skipping file", "file", name)
			result.Skipped = append(result.Skipped, name)
			continue
		}

		for _, arg := range op.Args {
			if _, ok := argschema.FoldType(arg.Type); !ok && !unknown[arg.Type] {
				unknown[arg.Type] = true
				result.UnknownTypes = append(result.UnknownTypes, arg.Type)
				e.logger.Debug("Unknown argument type kept as is", "type", arg.Type, "operation", op.Name, "file", name)
			}
		}

		if result.Catalog.Put(op) {
			e.logger.Warn("Duplicate operation name, keeping the later definition", "name", op.Name, "file", name)
			result.Duplicates = append(result.Duplicates, op.Name)
		}
	}

	result.Diagnostics = e.resolver.Diagnostics()

	e.logger.Info("Extraction completed",
		"files", result.Files,
		"operations", result.Catalog.Len(),
		"skipped", len(result.Skipped),
		"unresolved", len(result.Diagnostics))

	return result, nil
}

// ExtractFile extracts the operation declared in the source text of path. It returns
// nil when the file has no constructor or no name.
func (e *Extractor) ExtractFile(ctx context.Context, text, path string) (*catalog.Operation, error) {
	return e.extractSource(ctx, text, path)
}

func (e *Extractor) extractSource(ctx context.Context, text, path string) (*catalog.Operation, error) {
	body, ok := literal.LocateBlock(text, "constructor(", '{', '}')
	if !ok {
		return nil, nil
	}

	name, ok := ExtractScalarField(body, "name")
	if !ok {
		return nil, nil
	}

	imports := resolve.BuildImportMap(text, path)

	op := &catalog.Operation{
		Name:        name,
		Module:      optionalField(body, "module"),
		Description: optionalField(body, "description"),
		InfoURL:     optionalField(body, "infoURL"),
		InputType:   optionalField(body, "inputType"),
		OutputType:  optionalField(body, "outputType"),
		Args:        []catalog.ArgumentSpec{},
		Checks:      []any{},
	}

	if raw, ok := ExtractArrayField(body, "args"); ok {
		resolved, err := e.resolver.Resolve(ctx, raw, imports)
		if err != nil {
			return nil, err
		}
		for _, arg := range resolved.([]any) {
			if m, ok := arg.(*literal.Mapping); ok {
				op.Args = append(op.Args, argschema.Normalize(m))
			}
		}
	}

	if raw, ok := ExtractArrayField(body, "checks"); ok {
		resolved, err := e.resolver.Resolve(ctx, raw, imports)
		if err != nil {
			return nil, err
		}
		op.Checks = resolved.([]any)
	}

	return op, nil
}

func optionalField(body, field string) *string {
	v, ok := ExtractScalarField(body, field)
	if !ok {
		return nil
	}
	return &v
}

// WriteCatalog writes c to path, replacing any previous file atomically.
func WriteCatalog(path string, c *catalog.Catalog) error {
	data, err := c.Bytes()
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := fileops.AtomicWriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}
