// Package authkeep provides an authentication and session-lifecycle engine:
// credential verification over Argon2id hashes, two-tier JWT session tokens
// (standard and elevated), token revocation, and a challenge/response
// protocol for an optional second factor.
//
// The package is designed for concurrent server workloads: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authkeep is the public surface. It exposes [Engine], [Builder], [Config],
// and the public error taxonomy. Value types live in identity; store
// contracts and their Redis/Postgres/in-memory implementations live in
// challenge, revocation, and userstore; signing lives in token.
//
// # What this package must NOT do
//
//   - Parse HTTP requests, manage cookies, or serve routes — callers own the
//     transport (see examples/http-minimal).
//   - Leak store-specific error variants past the Engine boundary.
//   - Report "user not found" and "wrong password" as distinguishable
//     outcomes.
package authkeep
