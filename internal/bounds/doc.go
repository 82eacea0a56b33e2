// Package bounds infers the Debug obligations a generated implementation
// needs and merges them into a declaration's generic clause.
//
// Every type parameter is classified against every field type:
//
//   - Phantom: the parameter appears only inside a phantom marker field, so
//     no bound is needed.
//   - Associative: the parameter is reached only through associated-type
//     paths such as T::Item; those paths are bounded instead of T.
//   - Same: the parameter is used directly and needs the bound itself.
//   - Different: the parameter does not occur.
//
// Verdicts are folded with Combine, whose priority order is
// Phantom > Associative > Same > Different.
package bounds
