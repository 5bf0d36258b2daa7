// Package extract recovers operation metadata from operation source files and
// assembles the catalog.
//
// Each source file declares one operation class whose constructor assigns the
// metadata:
//
//	constructor() {
//	    super();
//	    this.name = "From Base64";
//	    this.module = "Default";
//	    this.description = "Base64 is a notation for encoding arbitrary byte data " +
//	        "using a restricted set of symbols.";
//	    this.infoURL = "https://wikipedia.org/wiki/Base64";
//	    this.inputType = "string";
//	    this.outputType = "byteArray";
//	    this.args = [{ name: "Alphabet", type: "editableOption", value: ALPHABET_OPTIONS }];
//	    this.checks = [{ pattern: "^[A-Za-z0-9+/=]+$", flags: "i", args: ["A-Za-z0-9+/="] }];
//	}
//
// Scalar fields are read with ExtractScalarField. The args and checks arrays are
// parsed as quasi-literals, their imported placeholders are resolved and every
// argument is folded into the canonical schema. Files without a constructor or
// without a name are skipped.
package extract
