// Package modelartifacts provides resolution of named, versioned binary
// artifacts (model weights, calibration data, compiled program images) for a
// machine-learning runtime, with pluggable local-store and remote-fetch
// backends.
//
// It exposes a Resolver that walks a fixed chain of tiers for each requested
// artifact — a version-namespaced local cache, the literal path on disk, a
// content-addressed local store, and finally a remote endpoint — caching
// remote results locally for subsequent lookups. A Loader fans out over the
// extension set of a model and assembles the results into a bundle.
// Implementations of the content store (DVC-style layout) and remote
// fetchers (HTTP, S3) are provided under subpackages.
//
// Cache Semantics
//
// The version-namespaced cache is append-only: entries are written once via
// an atomic rename and never mutated or evicted by this package. Entries are
// trusted on read because this package wrote them after verifying their
// length against the descriptor's declared size.
package modelartifacts
