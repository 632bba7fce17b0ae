// Package token issues and verifies the two classes of signed, time-limited
// session tokens: standard and elevated.
//
// The tiers share nothing but code: each has its own HS256 secret and TTL,
// so a token signed under one tier can never verify under the other. A
// token's tier is determined by which secret verifies it, never inferred
// from its contents.
//
// Verification checks signature and expiry first, then consults the
// revocation store on the canonical re-derived token string — garbage tokens
// never cost a store round trip. Revocation bans that same canonical string
// with a TTL equal to the token's remaining signed lifetime.
package token
