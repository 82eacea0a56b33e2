// Package gen synthesizes Rust companion code for record declarations.
//
// Generation approach uses text/template over normalized field schemas. Each
// declaration yields a Unit holding diagnostics and standalone items:
//   - builder struct with one optional slot per field
//   - typed builder error with Display and Error impls
//   - builder() constructor on the declared type
//   - setters (plain, bulk and element-appending) and build
//   - Debug impl with an inferred or explicit where clause
//
// Declarations are independent; GenerateAll processes them concurrently.
package gen
