package login

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/resumechat/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/resumechat/internal/core/domain"
)

type mockSession struct {
	creds domain.Credentials
	err   error
	calls int
}

func (m *mockSession) Login(_ context.Context, creds domain.Credentials) (*domain.Session, error) {
	m.calls++
	m.creds = creds
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Session{ID: "s1", Credentials: creds}, nil
}

func (m *mockSession) Logout(context.Context) error { return nil }

func (m *mockSession) Current(context.Context) (*domain.Session, error) {
	return nil, domain.ErrNotLoggedIn
}

func (m *mockSession) LastResult(context.Context, domain.SectionKind) (*domain.SectionResult, error) {
	return nil, domain.ErrNotFound
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(v *View, s string) {
	for _, r := range s {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func newFocusedView(session *mockSession) *View {
	v := NewView(nil, session)
	v.Init()
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, &mockSession{})

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Equal(t, Delay, v.delay)
	assert.False(t, v.Busy())
	assert.False(t, v.CanSubmit())
	assert.True(t, v.fields[fieldKey].IsMasked())
}

func TestView_Init_FocusesUser(t *testing.T) {
	v := NewView(nil, &mockSession{})

	cmd := v.Init()

	assert.NotNil(t, cmd)
	assert.Equal(t, fieldUser, v.Focused())
	assert.True(t, v.fields[fieldUser].Focused())
	assert.False(t, v.fields[fieldKey].Focused())
}

func TestView_FocusCycles(t *testing.T) {
	v := newFocusedView(&mockSession{})

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldKey, v.Focused())
	assert.True(t, v.fields[fieldKey].Focused())
	assert.False(t, v.fields[fieldUser].Focused())

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, fieldUser, v.Focused())

	v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldKey, v.Focused())
}

func TestView_TypingFillsFocusedField(t *testing.T) {
	v := newFocusedView(&mockSession{})

	typeText(v, "ada")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(v, "k-1")

	assert.Equal(t, "ada", v.fields[fieldUser].Value())
	assert.Equal(t, "k-1", v.fields[fieldKey].Value())
	assert.True(t, v.CanSubmit())
}

func TestView_CanSubmit(t *testing.T) {
	tests := []struct {
		name string
		user string
		key  string
		want bool
	}{
		{"both empty", "", "", false},
		{"user only", "ada", "", false},
		{"key only", "", "k", false},
		{"whitespace user", "   ", "k", false},
		{"both set", "ada", "k", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(nil, &mockSession{})
			v.Prefill(domain.Credentials{UserID: tt.user, APIKey: tt.key})

			assert.Equal(t, tt.want, v.CanSubmit())
		})
	}
}

func TestView_Enter_DisabledUntilFilled(t *testing.T) {
	session := &mockSession{}
	v := newFocusedView(session)
	v.Prefill(domain.Credentials{UserID: "ada"})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, v.Busy())
	assert.Zero(t, session.calls)
}

func TestView_Enter_StartsDelayedLogin(t *testing.T) {
	session := &mockSession{}
	v := newFocusedView(session)
	v.Prefill(domain.Credentials{UserID: "ada", APIKey: "k-1"})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, v.Busy())
	assert.False(t, v.CanSubmit())
	// The session is only created once the delay fires.
	assert.Zero(t, session.calls)
	assert.Contains(t, v.View(), "Logging in...")
}

func TestView_LoginReady_CallsSession(t *testing.T) {
	session := &mockSession{}
	v := newFocusedView(session)
	v.busy = true

	_, cmd := v.Update(loginReady{creds: domain.Credentials{UserID: "ada", APIKey: "k-1"}})
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(messages.LoginCompleted)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Equal(t, "ada", done.Session.Credentials.UserID)
	assert.Equal(t, 1, session.calls)
	assert.Equal(t, "k-1", session.creds.APIKey)
}

func TestView_LoginReady_PropagatesError(t *testing.T) {
	session := &mockSession{err: errors.New("store locked")}
	v := newFocusedView(session)

	_, cmd := v.Update(loginReady{creds: domain.Credentials{UserID: "ada", APIKey: "k"}})
	msg := cmd().(messages.LoginCompleted)

	assert.EqualError(t, msg.Err, "store locked")
	assert.Nil(t, msg.Session)
}

func TestView_KeysIgnoredWhileBusy(t *testing.T) {
	v := newFocusedView(&mockSession{})
	v.Prefill(domain.Credentials{UserID: "ada", APIKey: "k"})
	v.busy = true

	_, cmd := v.Update(keyRunes("x"))

	assert.Nil(t, cmd)
	assert.Equal(t, "ada", v.fields[fieldUser].Value())
}

func TestView_LoginCompleted(t *testing.T) {
	t.Run("success clears the key", func(t *testing.T) {
		v := newFocusedView(&mockSession{})
		v.Prefill(domain.Credentials{UserID: "ada", APIKey: "k"})
		v.busy = true

		v.Update(messages.LoginCompleted{Session: &domain.Session{}})

		assert.False(t, v.Busy())
		assert.Equal(t, "", v.fields[fieldKey].Value())
		assert.Equal(t, "ada", v.fields[fieldUser].Value())
	})

	t.Run("failure keeps the form", func(t *testing.T) {
		v := newFocusedView(&mockSession{})
		v.Prefill(domain.Credentials{UserID: "ada", APIKey: "k"})
		v.busy = true

		v.Update(messages.LoginCompleted{Err: errors.New("x")})

		assert.False(t, v.Busy())
		assert.True(t, v.CanSubmit())
	})
}

func TestView_View(t *testing.T) {
	v := NewView(nil, &mockSession{})
	v.SetDimensions(100, 30)

	view := v.View()

	assert.Contains(t, view, "resumechat")
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "API key")
	assert.Contains(t, view, "fill in both fields")
}

func TestView_View_HidesKey(t *testing.T) {
	v := NewView(nil, &mockSession{})
	v.Prefill(domain.Credentials{UserID: "ada", APIKey: "supersecret"})

	view := v.View()

	assert.Contains(t, view, "ada")
	assert.NotContains(t, view, "supersecret")
	assert.NotContains(t, view, "fill in both fields")
}

func TestView_WindowSize(t *testing.T) {
	v := NewView(nil, &mockSession{})

	v.Update(tea.WindowSizeMsg{Width: 200, Height: 50})

	assert.Equal(t, 200, v.width)
	assert.Equal(t, 72, v.fields[fieldUser].Width())
}
