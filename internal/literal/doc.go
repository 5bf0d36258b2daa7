// Package literal turns loosely formatted JavaScript value literals into Go value trees.
//
// Operation definitions keep their metadata in JavaScript source, so the values are
// "almost JSON": keys are unquoted, strings use single quotes, arrays end with a
// trailing comma and constants are referenced by bare upper-case identifiers. This
// package provides the tolerant pieces needed to recover that data without a
// JavaScript parser:
//
//   - LocateBlock and Balanced find a delimited region by counting nesting depth
//   - ToStrictLiteral rewrites a quasi-literal into strict JSON
//   - ParseLiteral decodes strict JSON into a value tree
//
// # Value Trees
//
// A value tree is built from these Go types:
//
//   - *Mapping for objects (source key order is kept)
//   - []any for arrays
//   - string, json.Number, bool and nil for scalars
//
// Bare upper-case identifiers survive as strings (see IsPlaceholder) so that a later
// stage can replace them with the value they stand for.
//
// The rewriting is deliberately lossy. Anything that is not literal-shaped, such as a
// function call or a regular expression literal, makes ParseLiteral report failure and
// callers treat that as "no data".
package literal
