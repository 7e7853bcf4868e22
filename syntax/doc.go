// Package syntax holds the data model shared by the lexer, the grammar table
// and the parser: kinds, tokens with trivia, text spans, the public syntax
// tree and diagnostics.
//
// All offsets are indices into the code points of the source text, not byte
// offsets. Node slots may be nil: constructs with optional parts keep a fixed
// number of slots and leave absent parts empty.
package syntax
