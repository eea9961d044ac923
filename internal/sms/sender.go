package sms

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrDisabled signals that SMS delivery is disabled via configuration.
var ErrDisabled = errors.New("sms: delivery disabled")

// DefaultCountryPrefix is applied to local-format numbers when no prefix is configured.
const DefaultCountryPrefix = "+855"

// Sender delivers a text message to a phone number. The boolean reports
// whether the downstream provider accepted the message.
type Sender interface {
	Send(ctx context.Context, phone, message string) (bool, error)
}

// Settings capture the runtime configuration required by the Twilio sender.
type Settings struct {
	Enabled       bool
	AccountSID    string
	AuthToken     string
	From          string
	CountryPrefix string
	Timeout       time.Duration

	// BaseURL overrides the Twilio API endpoint, primarily for tests.
	BaseURL string
}

// NormalizePhone converts a dialable number into international format. All
// characters other than digits and a leading "+" are stripped; a leading "0"
// is replaced by the country prefix; a number without "+" gets the prefix
// prepended; anything already international passes through unchanged.
func NormalizePhone(raw, prefix string) string {
	if prefix == "" {
		prefix = DefaultCountryPrefix
	}

	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}

	clean := b.String()
	switch {
	case clean == "":
		return clean
	case strings.HasPrefix(clean, "0"):
		return prefix + clean[1:]
	case !strings.HasPrefix(clean, "+"):
		return prefix + clean
	default:
		return clean
	}
}
