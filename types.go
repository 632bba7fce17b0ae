package authkeep

import "github.com/kynelabs/authkeep/identity"

// LoginResult is the tagged outcome of Login. Exactly one of the two shapes
// is populated: a standard token for fully authenticated users, or an
// attempt id when a second factor is still pending (the code has been sent
// out-of-band and no token exists yet). Callers branch on TwoFactorRequired.
type LoginResult struct {
	TwoFactorRequired bool
	AttemptID         identity.AttemptID
	Token             string
}
