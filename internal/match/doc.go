// Package match provides edit-distance helpers used to attach "did you mean"
// suggestions to diagnostics.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks near-miss candidates for a misspelled key or name
package match
