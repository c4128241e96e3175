// Package internalcheck holds policy tests over the sealgo source tree.
//
// The tests load packages with golang.org/x/tools/go/packages and inspect
// their syntax: the engine may only be imported by internal/bindings, panics
// may only be recovered there, the public package must not hex-format
// values, and envelope bytes must be compared in constant time.
//
// # Internal Use Only
//
// The package has no API. Applications should use pkg/seal.
package internalcheck
