// Package pure provides the dependency-memoization primitives of
// hook_ive_go: DepKey (the explicit equality rule for dependency lists),
// MemoCell (a single-slot cache-or-recompute cell), and the Tableize
// family (bounded multi-entry memo tables for pure functions).
//
// Tableize is not just a utility to add memoization.
// Tableize is a tool that *forces the developer to ask*:
//
//	→ "Is this function really pure?"
//	→ "Do its inputs actually identify its output?"
//
// That question is not about performance—it's about trust and meaning.
// A MemoCell answers it for one call site; Tableize answers it for every
// distinct input the function will ever see, within a bounded table.
//
// The equality rule is the one callers trip over in every memoization bug
// report: primitives by value, references by identity, freshly built
// composites never equal. See DepKey for the full statement.
//
// WARNING: Do not memoize impure functions (e.g., those depending on time,
// I/O, etc).
package pure
