// Package attr parses the annotation mini-grammar attached to declarations and
// fields.
//
// An annotation is written the way it appears inside #[...]:
//
//	builder(each = "arg")
//	debug = "0b{:08b}"
//	debug(bound = "T::Value: Debug")
//
// Parse returns a Meta tree (path, list or name-value). The package knows
// nothing about which keys are meaningful; callers interpret the tree.
package attr
