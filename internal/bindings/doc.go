// Package bindings is the engine boundary of sealgo.
//
// Every homomorphic-encryption object (contexts, plaintexts, ciphertexts,
// keys, encoders, evaluators, memory pools, vectors) lives here, inside a
// process-wide registry, and is reached from the public API only through an
// opaque Handle. The lattice arithmetic itself is delegated to lattigo; this
// package never reimplements NTT, RNS or key-switching math.
//
// # Design Principles
//
//  1. Isolation: this is the only package that imports lattigo. The public
//     package pkg/seal talks to it the way a cgo wrapper talks to C.
//  2. Handles: objects are addressed by Handle values that are never reused.
//     Handle 0 is the empty handle.
//  3. Faults: failures are reported either as a numeric Code or as an
//     *Exception carrying a descriptive message. Engine panics are recovered
//     at the boundary and reported as CodeInternal.
//  4. Validity: scheme, parameter and form checks are made here so that the
//     public layer never short-circuits them.
//
// # Threading
//
// The registry is safe for concurrent use. Individual objects are not: two
// calls must not mutate the same handle at the same time. Contexts and keys
// are read-only after construction, and evaluators and encoders draw their
// scratch buffers from a memory pool, so distinct operands may be processed
// concurrently.
package bindings
