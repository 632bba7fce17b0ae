// Package userstore owns user records and credential verification.
//
// A [Backend] persists records (Postgres for production, an in-memory map
// for tests) while [Credentials] layers the hashing integration on top:
// registration hashes through the bounded pool, authentication verifies
// against the stored hash and reports whether a second factor is required.
package userstore
