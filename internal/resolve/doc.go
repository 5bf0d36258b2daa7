// Package resolve replaces symbolic constants in value trees with the values they
// name in other modules.
//
// Operation sources often write an argument's option list as a bare identifier that
// is imported from a shared module:
//
//	import { ALPHABET_OPTIONS } from "../lib/Base64.mjs";
//	...
//	this.args = [{ name: "Alphabet", type: "editableOption", value: ALPHABET_OPTIONS }];
//
// Resolution tries three tiers for each such placeholder:
//
//  1. The module is evaluated by ScriptLoader through the shared ModuleCache, which
//     loads every module path at most once per run, and the named export is read.
//  2. If loading fails or the export is empty, ExtractExportedArray looks for an
//     exported array literal with that name in the module text.
//  3. Otherwise a Diagnostic is recorded and the placeholder string is kept.
//
// Placeholders that are not imported are left as they are.
package resolve
