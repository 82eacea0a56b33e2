// Package diagnostic provides structured errors, warnings and notes for the
// companion generator.
//
// Every diagnostic carries a code, a message and the schema position it points
// at. Generation never stops on a diagnostic: they accumulate alongside the
// generated items and the host decides what to do with them.
package diagnostic
