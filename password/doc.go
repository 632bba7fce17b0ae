// Package password implements password hashing and verification with Argon2id defaults.
//
// # Output format
//
// Hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// [Argon2.NeedsUpgrade] reports whether a stored hash was produced with
// weaker parameters than the current configuration so the caller can re-hash
// on the next successful login.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy (minimum
// length, which operations may replace a hash) is enforced elsewhere. [Pool]
// bounds how many hashing operations run at once; callers that service
// concurrent requests go through it rather than calling [Argon2] directly.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive hashes.
//   - Import any other authkeep package besides identity.
//   - Log plaintext passwords or hash parameters at runtime.
package password
