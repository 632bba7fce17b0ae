// Package revocation tracks token strings that are no longer honorable.
//
// An entry's lifetime equals the remaining signed lifetime of the token it
// came from, so storage is never held past the token's own natural expiry.
// Existence is the only fact stored; revocation is monotonic for the life of
// a given token string.
package revocation
