package notify

import (
	"context"

	"github.com/kynelabs/authkeep/identity"
)

// Notifier delivers a one-time code to a recipient. Implementations must be
// safe for concurrent use. Delivery mechanics (templates, retries, provider
// APIs) are entirely the implementation's concern.
type Notifier interface {
	SendCode(ctx context.Context, recipient identity.Email, code identity.TwoFaCode) error
}
