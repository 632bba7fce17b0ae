package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kynelabs/authkeep/identity"
)

const (
	// DefaultPostmarkBaseURL is the production Postmark API endpoint.
	DefaultPostmarkBaseURL = "https://api.postmarkapp.com"
	defaultTimeout         = 10 * time.Second
	codeSubject            = "Your verification code"
)

// PostmarkConfig parameterizes the Postmark client.
type PostmarkConfig struct {
	// BaseURL defaults to DefaultPostmarkBaseURL when empty.
	BaseURL string
	// ServerToken authenticates against the Postmark API.
	ServerToken identity.Secret
	// Sender is the configured "from" address.
	Sender identity.Email
	// Timeout bounds each delivery request; defaults to 10s.
	Timeout time.Duration
}

// Postmark sends one-time codes as transactional email through the Postmark
// HTTP API.
type Postmark struct {
	config PostmarkConfig
	client *http.Client
}

// NewPostmark validates the configuration and returns a client.
func NewPostmark(cfg PostmarkConfig) (*Postmark, error) {
	if cfg.ServerToken.IsZero() {
		return nil, errors.New("postmark server token is required")
	}
	if cfg.Sender.IsZero() {
		return nil, errors.New("postmark sender address is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultPostmarkBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Postmark{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type postmarkMessage struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	TextBody string `json:"TextBody"`
}

// SendCode implements Notifier.
func (p *Postmark) SendCode(ctx context.Context, recipient identity.Email, code identity.TwoFaCode) error {
	payload, err := json.Marshal(postmarkMessage{
		From:     p.config.Sender.String(),
		To:       recipient.String(),
		Subject:  codeSubject,
		TextBody: code.String(),
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", p.config.ServerToken.Expose())

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("send code: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("send code: postmark returned status %d", resp.StatusCode)
	}
	return nil
}
