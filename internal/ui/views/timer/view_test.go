package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness/internal/modules/practice/domain"
	practicedto "wellness/internal/modules/practice/dto"
)

type fakePort struct {
	calls []int
	ended []time.Time
	err   error
}

func (f *fakePort) SaveAt(_ context.Context, endedAt time.Time, seconds int) (practicedto.SaveOutput, error) {
	f.calls = append(f.calls, seconds)
	f.ended = append(f.ended, endedAt)
	if f.err != nil {
		return practicedto.SaveOutput{}, f.err
	}
	return practicedto.SaveOutput{DurationSeconds: seconds, Success: domain.ClassifySuccess(seconds)}, nil
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func run(t *testing.T, m Model, seconds int) Model {
	t.Helper()
	m, cmd := m.Update(key(" "))
	require.NotNil(t, cmd)
	gen := m.Timer().Generation()
	for i := 0; i < seconds; i++ {
		m, cmd = m.Update(TickMsg{Generation: gen})
		require.NotNil(t, cmd, "tick %d must reschedule", i)
	}
	m, _ = m.Update(key(" "))
	require.Equal(t, domain.TimerPaused, m.Timer().State())
	return m
}

func TestStartPauseSaveResetsOnSuccess(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := run(t, New(port), 200)
	assert.Equal(t, 200, m.Timer().Seconds())

	m, cmd := m.Save()
	require.NotNil(t, cmd)
	assert.True(t, m.Saving())

	// A second press while saving must not issue another request.
	m, again := m.Save()
	assert.Nil(t, again)

	m, _ = m.Update(cmd())
	assert.Equal(t, []int{200}, port.calls)
	assert.False(t, m.Saving())
	assert.Equal(t, 0, m.Timer().Seconds())
	assert.Equal(t, domain.TimerIdle, m.Timer().State())
	assert.Contains(t, m.Message(), "successful")
}

func TestFailedSaveKeepsTimerForRetry(t *testing.T) {
	t.Parallel()
	port := &fakePort{err: errors.New("network down")}
	m := run(t, New(port), 42)

	m, cmd := m.Save()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.Equal(t, 42, m.Timer().Seconds())
	assert.Equal(t, domain.TimerPaused, m.Timer().State())
	assert.Contains(t, m.Message(), "save failed")

	port.err = nil
	m, cmd = m.Save()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.Equal(t, []int{42, 42}, port.calls)
	assert.Equal(t, 0, m.Timer().Seconds())
}

func TestStaleTicksAreDroppedAfterPauseAndReset(t *testing.T) {
	t.Parallel()
	m, _ := New(&fakePort{}).Update(key(" "))
	first := m.Timer().Generation()
	m, _ = m.Update(TickMsg{Generation: first})
	m, _ = m.Update(key(" "))

	m, cmd := m.Update(TickMsg{Generation: first})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Timer().Seconds())

	m, _ = m.Update(key(" "))
	m, cmd = m.Update(TickMsg{Generation: first})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Timer().Seconds())

	current := m.Timer().Generation()
	m, _ = m.Update(key("r"))
	m, cmd = m.Update(TickMsg{Generation: current})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Timer().Seconds())
}

func TestSaveRequiresPausedTimer(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m, cmd := New(port).Save()
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.Message())

	m, _ = m.Update(key(" "))
	m, cmd = m.Save()
	assert.Nil(t, cmd)
	assert.Empty(t, port.calls)
}

func TestSaveSendsTimerRecord(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := run(t, New(port), 185)
	ended := time.Date(2026, 3, 10, 21, 15, 0, 0, time.Local)
	m.now = func() time.Time { return ended }

	m, cmd := m.Save()
	require.NotNil(t, cmd)
	_, _ = m.Update(cmd())
	assert.Equal(t, []int{185}, port.calls)
	assert.Equal(t, []time.Time{ended}, port.ended)
}
