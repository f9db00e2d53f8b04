package login

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdto "wellness/internal/modules/auth/dto"
)

type fakePort struct {
	err     error
	pending bool
	calls   []string
}

func (f *fakePort) SignIn(_ context.Context, email, password string) (authdto.UserOutput, error) {
	f.calls = append(f.calls, "signin:"+email+":"+password)
	if f.err != nil {
		return authdto.UserOutput{}, f.err
	}
	return authdto.UserOutput{ID: "u1", Email: email}, nil
}

func (f *fakePort) SignUp(_ context.Context, email, password string) (authdto.SignUpOutput, error) {
	f.calls = append(f.calls, "signup:"+email+":"+password)
	if f.err != nil {
		return authdto.SignUpOutput{}, f.err
	}
	return authdto.SignUpOutput{
		User:                 authdto.UserOutput{ID: "u1", Email: email},
		ConfirmationRequired: f.pending,
	}, nil
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func fill(t *testing.T, m Model, email, password string) (Model, tea.Cmd) {
	t.Helper()
	m = typeText(m, email)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(m, password)
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func closed(t *testing.T, cmd tea.Cmd) ClosedMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(ClosedMsg)
	require.True(t, ok)
	return msg
}

func TestSignInClosesWithStatus(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m, _ := New(port).Open(SignIn)
	require.True(t, m.Visible())

	m, cmd := fill(t, m, " me@example.com ", "secret1")
	require.NotNil(t, cmd)
	assert.True(t, m.Busy())

	// Keys are ignored while the request is in flight.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, m.Visible())

	m, cmd = m.Update(cmd())
	assert.False(t, m.Visible())
	assert.Equal(t, "signed in as me@example.com", closed(t, cmd).Status)
	assert.Equal(t, []string{"signin:me@example.com:secret1"}, port.calls)
}

func TestFailedSignInKeepsFormOpen(t *testing.T) {
	t.Parallel()
	port := &fakePort{err: errors.New("invalid credentials")}
	m, _ := New(port).Open(SignIn)

	m, cmd := fill(t, m, "me@example.com", "wrong")
	m, _ = m.Update(cmd())
	assert.True(t, m.Visible())
	assert.False(t, m.Busy())
	assert.Equal(t, "invalid credentials", m.Message())
	assert.Contains(t, m.View(), "invalid credentials")

	// The email survives; only the password is cleared for the retry.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_ = cmd()
	assert.Equal(t, "signin:me@example.com:x", port.calls[len(port.calls)-1])
}

func TestSignUpPendingConfirmation(t *testing.T) {
	t.Parallel()
	port := &fakePort{pending: true}
	m, _ := New(port).Open(SignUp)
	assert.Contains(t, m.View(), "Create account")

	m, cmd := fill(t, m, "new@example.com", "secret1")
	m, cmd = m.Update(cmd())
	assert.False(t, m.Visible())
	assert.Equal(t, "check new@example.com to confirm your account, then sign in", closed(t, cmd).Status)
	assert.Equal(t, []string{"signup:new@example.com:secret1"}, port.calls)
}

func TestEmptyFieldsAreRejected(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m, _ := New(port).Open(SignIn)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "email and password are required", m.Message())
	assert.Empty(t, port.calls)
}

func TestEscapeCloses(t *testing.T) {
	t.Parallel()
	m, _ := New(&fakePort{}).Open(SignIn)
	m = typeText(m, "me")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Visible())
	assert.Empty(t, closed(t, cmd).Status)
	assert.Empty(t, m.View())

	m, _ = m.Open(SignIn)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(m, "pw")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "email and password are required", m.Message())
}
