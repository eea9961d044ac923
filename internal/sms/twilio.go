package sms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTwilioBaseURL = "https://api.twilio.com"
	defaultSendTimeout   = 10 * time.Second
)

// TwilioSender delivers messages through the Twilio REST API.
type TwilioSender struct {
	cfg    Settings
	client *http.Client
}

// NewTwilioSender validates the settings and builds a sender. A disabled
// sender is still constructable; its Send returns ErrDisabled.
func NewTwilioSender(cfg Settings) (*TwilioSender, error) {
	if cfg.Enabled {
		if strings.TrimSpace(cfg.AccountSID) == "" {
			return nil, errors.New("sms: account sid is required when enabled")
		}
		if strings.TrimSpace(cfg.AuthToken) == "" {
			return nil, errors.New("sms: auth token is required when enabled")
		}
		if strings.TrimSpace(cfg.From) == "" {
			return nil, errors.New("sms: sender number is required when enabled")
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultTwilioBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	return &TwilioSender{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// Send normalises the phone number and posts the message to Twilio. Twilio
// acknowledges accepted messages with 201 Created.
func (s *TwilioSender) Send(ctx context.Context, phone, message string) (bool, error) {
	if !s.cfg.Enabled {
		return false, ErrDisabled
	}

	to := NormalizePhone(phone, s.cfg.CountryPrefix)
	if to == "" {
		return false, errors.New("sms: recipient number is required")
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(s.cfg.BaseURL, "/"), url.PathEscape(s.cfg.AccountSID))

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.cfg.From)
	form.Set("Body", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("sms: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("sms: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return false, fmt.Errorf("sms: provider rejected message: status %d", resp.StatusCode)
	}

	return true, nil
}
