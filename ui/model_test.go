package ui

import (
	"testing"

	"beeper/speaker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// silentPorts satisfies portio.Ports without touching hardware.
type silentPorts struct{}

func (silentPorts) ReadPort(port uint16) (byte, error) { return 0, nil }

func (silentPorts) WritePort(port uint16, value byte) error { return nil }

func (silentPorts) Close() error { return nil }

// newTestModel builds a model whose player completes instantly.
func newTestModel() *Model {
	player := speaker.NewPlayer(silentPorts{})
	player.NoteDuration = 0
	player.InterNoteGap = 0
	return NewModel(player)
}

func pressEnter(m *Model) (*Model, tea.Cmd) {
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(*Model), cmd
}

func TestSubmitPlaysSequence(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("C4 E4 G4")

	m, cmd := pressEnter(m)
	require.NotNil(t, cmd)
	assert.True(t, m.playing)
	assert.Equal(t, "C4 E4 G4", m.current)
	assert.Empty(t, m.input.Value())

	// Run the playback command and feed its result back.
	msg := cmd()
	done, ok := msg.(playDoneMsg)
	require.True(t, ok)
	assert.NoError(t, done.err)

	m2, _ := m.Update(done)
	m = m2.(*Model)
	assert.False(t, m.playing)
	assert.Empty(t, m.current)
}

func TestSubmitIgnoresEmptyLine(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("   ")

	m, cmd := pressEnter(m)
	assert.Nil(t, cmd)
	assert.False(t, m.playing)
}

func TestExitQuits(t *testing.T) {
	for _, word := range []string{"exit", "quit", "EXIT"} {
		m := newTestModel()
		m.input.SetValue(word)

		_, cmd := pressEnter(m)
		require.NotNil(t, cmd, "input %q", word)
		assert.Equal(t, tea.QuitMsg{}, cmd(), "input %q", word)
	}
}

func TestInputIgnoredWhilePlaying(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("C4")
	m, _ = pressEnter(m)
	require.True(t, m.playing)

	m.input.SetValue("E4")
	m, cmd := pressEnter(m)
	assert.Nil(t, cmd)
	assert.Equal(t, "C4", m.current, "playback in flight must not be replaced")
}

func TestCtrlCQuitsAndCancelsPlayback(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("C4")
	m, playCmd := pressEnter(m)
	require.True(t, m.playing)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	// The in-flight command still completes; cancellation is not an error.
	done, ok := playCmd().(playDoneMsg)
	require.True(t, ok)
	updated, _ := m.Update(done)
	assert.Nil(t, updated.(*Model).err)
}
