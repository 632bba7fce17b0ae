// Package identity holds the validated value types the authentication engine
// operates on: Email, Password, TwoFaCode, AttemptID, and the opaque Secret
// holder.
//
// Every constructor validates; once a value exists it is well-formed. The
// package has no dependencies on the stores or the engine, so any layer can
// import it without cycles.
package identity
