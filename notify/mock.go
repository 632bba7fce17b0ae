package notify

import (
	"context"
	"sync"

	"github.com/kynelabs/authkeep/identity"
)

// Sent is one recorded delivery.
type Sent struct {
	Recipient identity.Email
	Code      identity.TwoFaCode
}

// Mock is a Notifier that records every send instead of delivering.
type Mock struct {
	mu   sync.Mutex
	sent []Sent
	// Err, when set, is returned from every SendCode call.
	Err error
}

// NewMock returns an empty recording notifier.
func NewMock() *Mock {
	return &Mock{}
}

// SendCode implements Notifier.
func (m *Mock) SendCode(_ context.Context, recipient identity.Email, code identity.TwoFaCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, Sent{Recipient: recipient, Code: code})
	return nil
}

// Sent returns a copy of everything recorded so far.
func (m *Mock) Sent() []Sent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Sent, len(m.sent))
	copy(out, m.sent)
	return out
}
