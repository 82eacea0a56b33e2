// Package field normalizes declared fields into the uniform record both
// generators work from: optional wrapper stripped, repeat mode resolved from
// the builder annotation and format pattern taken from the debug annotation.
package field
