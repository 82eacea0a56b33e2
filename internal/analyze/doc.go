// Package analyze provides the type model shared by every generator pass.
//
// Declared Rust types are represented as a tagged-variant tree instead of text,
// so that classification and where-clause deduplication compare structure, never
// formatting.
//
// Key types:
//   - Type: path (leaf identifier or generic application), qualified
//     associated path, reference, slice, array, tuple, lifetime
//   - Segment: one path segment with its generic arguments and bindings
//   - Generics: generic parameters plus where-clause predicates
//
// The package also contains the type-expression parser used by the schema
// loader and the canonical printer used by the generators.
package analyze
