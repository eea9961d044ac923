package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testSettings(baseURL string) Settings {
	return Settings{
		Enabled:       true,
		AccountSID:    "AC123",
		AuthToken:     "token",
		From:          "+15550001111",
		CountryPrefix: "+855",
		Timeout:       time.Second,
		BaseURL:       baseURL,
	}
}

func TestTwilioSendDelivers(t *testing.T) {
	var gotPath, gotTo, gotBody string
	var gotUser, gotPass string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotTo = r.PostForm.Get("To")
		gotBody = r.PostForm.Get("Body")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sender, err := NewTwilioSender(testSettings(srv.URL))
	require.NoError(t, err)

	delivered, err := sender.Send(context.Background(), "012345678", "Your verification code is: 482913")
	require.NoError(t, err)
	require.True(t, delivered)

	require.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	require.Equal(t, "+85512345678", gotTo)
	require.Contains(t, gotBody, "482913")
	require.Equal(t, "AC123", gotUser)
	require.Equal(t, "token", gotPass)
}

func TestTwilioSendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	sender, err := NewTwilioSender(testSettings(srv.URL))
	require.NoError(t, err)

	delivered, err := sender.Send(context.Background(), "012345678", "hello")
	require.Error(t, err)
	require.False(t, delivered)
}

func TestTwilioSendDisabled(t *testing.T) {
	sender, err := NewTwilioSender(Settings{Enabled: false})
	require.NoError(t, err)

	delivered, err := sender.Send(context.Background(), "012345678", "hello")
	require.ErrorIs(t, err, ErrDisabled)
	require.False(t, delivered)
}

func TestNewTwilioSenderValidatesWhenEnabled(t *testing.T) {
	_, err := NewTwilioSender(Settings{Enabled: true})
	require.Error(t, err)

	_, err = NewTwilioSender(Settings{Enabled: true, AccountSID: "AC123", AuthToken: "token"})
	require.Error(t, err)
}
