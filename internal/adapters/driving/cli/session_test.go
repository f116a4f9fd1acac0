package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

func TestLogin_PromptsForMissingValues(t *testing.T) {
	session := &fakeSession{}
	withServices(t, &Services{Session: session})

	out, err := execute(t, "Ada Lovelace\nsk-secret-key\n", "login")

	require.NoError(t, err)
	require.NotNil(t, session.loggedIn)
	assert.Equal(t, "Ada Lovelace", session.loggedIn.UserID)
	assert.Equal(t, "sk-secret-key", session.loggedIn.APIKey)
	assert.Contains(t, out, "Name: ")
	assert.Contains(t, out, "API key: ")
	assert.Contains(t, out, "Logged in as Ada Lovelace (session sess-1)")
}

func TestLogin_UserFlagSkipsNamePrompt(t *testing.T) {
	session := &fakeSession{}
	withServices(t, &Services{Session: session})

	out, err := execute(t, "key-123\n", "login", "--user", "ada")

	require.NoError(t, err)
	assert.NotContains(t, out, "Name: ")
	assert.Equal(t, "ada", session.loggedIn.UserID)
	assert.Equal(t, "key-123", session.loggedIn.APIKey)
}

func TestLogin_UsesDefaults(t *testing.T) {
	session := &fakeSession{}
	withServices(t, &Services{
		Session:       session,
		LoginDefaults: domain.Credentials{UserID: "env-user", APIKey: "env-key"},
	})

	out, err := execute(t, "", "login")

	require.NoError(t, err)
	assert.NotContains(t, out, "API key: ")
	assert.Equal(t, "env-user", session.loggedIn.UserID)
	assert.Equal(t, "env-key", session.loggedIn.APIKey)
}

func TestLogin_EmptyCredentialsFail(t *testing.T) {
	withServices(t, &Services{Session: &fakeSession{}})

	_, err := execute(t, "\n\n", "login")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "login failed")
}

func TestLogin_NoService(t *testing.T) {
	withServices(t, &Services{})

	_, err := execute(t, "", "login")

	assert.EqualError(t, err, "session service not configured")
}

func TestLogout(t *testing.T) {
	session := &fakeSession{session: &domain.Session{ID: "s"}}
	withServices(t, &Services{Session: session})

	out, err := execute(t, "", "logout")

	require.NoError(t, err)
	assert.True(t, session.loggedOut)
	assert.Contains(t, out, "Logged out")
}

func TestLogout_Error(t *testing.T) {
	withServices(t, &Services{Session: &fakeSession{logoutErr: errors.New("disk full")}})

	_, err := execute(t, "", "logout")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "logout failed: disk full")
}

func TestWhoami(t *testing.T) {
	session := &fakeSession{session: &domain.Session{
		ID:          "sess-9",
		Credentials: domain.Credentials{UserID: "ada", APIKey: "sk-1234567890abcdef"},
	}}
	withServices(t, &Services{Session: session, StorePath: "/tmp/data/session.db"})

	out, err := execute(t, "", "whoami")

	require.NoError(t, err)
	assert.Contains(t, out, "User:    ada")
	assert.Contains(t, out, "API key: sk-1...cdef")
	assert.NotContains(t, out, "sk-1234567890abcdef")
	assert.Contains(t, out, "Session: sess-9")
	assert.Contains(t, out, "Store:   /tmp/data/session.db")
}

func TestWhoami_Ephemeral(t *testing.T) {
	session := &fakeSession{session: &domain.Session{ID: "s", Credentials: domain.Credentials{UserID: "ada", APIKey: "k"}}}
	withServices(t, &Services{Session: session})

	out, err := execute(t, "", "whoami")

	require.NoError(t, err)
	assert.Contains(t, out, "memory (ephemeral)")
}

func TestWhoami_NotLoggedIn(t *testing.T) {
	withServices(t, &Services{Session: &fakeSession{}})

	_, err := execute(t, "", "whoami")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resumechat login")
}
