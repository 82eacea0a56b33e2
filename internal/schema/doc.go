// Package schema loads the YAML description of record declarations and
// resolves it into parsed types, generics and annotated fields.
//
// Every scalar keeps its line and column so that problems found later
// (a malformed type, an unknown annotation key) point at the exact spot in
// the schema file.
package schema
