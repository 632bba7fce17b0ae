// Package challenge tracks in-flight two-factor login challenges.
//
// Exactly one challenge lives per email at any time: storing a new one
// atomically replaces the old, invalidating its attempt id and code. Entries
// expire after a configured window and are consumed exactly once on
// successful verification.
package challenge
