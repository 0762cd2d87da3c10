// Package ui implements the interactive note prompt.
package ui

import (
	"context"
	"errors"
	"strings"

	"beeper/logging"
	"beeper/speaker"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(1, 0)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	playingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")) // Green - speaker is sounding

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(1, 0)
)

// playDoneMsg is sent when a sequence has finished sounding.
type playDoneMsg struct {
	err error
}

// Model is the interactive prompt: type a note string, hear it, repeat.
type Model struct {
	player *speaker.Player
	input  textinput.Model

	playing bool
	current string
	err     error
	cancel  context.CancelFunc
}

// NewModel creates the interactive prompt around an already-acquired player.
func NewModel(player *speaker.Player) *Model {
	input := textinput.New()
	input.Prompt = ">> "
	input.Placeholder = "C4 E4 G4 or 440 880"
	input.Focus()

	return &Model{
		player: player,
		input:  input,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			// Stop any sound in flight before leaving; the tone's own
			// disable step clears the gate.
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit

		case tea.KeyEnter:
			return m.submit()
		}

	case playDoneMsg:
		m.playing = false
		m.current = ""
		m.cancel = nil
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit plays the current input line, or quits on exit/quit.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	switch strings.ToLower(line) {
	case "exit", "quit":
		return m, tea.Quit
	}

	if m.playing {
		// One sequence at a time; ignore input until the speaker is free.
		return m, nil
	}

	m.err = nil
	m.playing = true
	m.current = line
	m.input.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	logging.Logger.Info("Playing interactive sequence", "notes", line)
	return m, m.playSequence(ctx, line)
}

// playSequence runs the blocking playback as a command so every tone stays an
// atomic program-enable-wait-disable unit outside the update loop.
func (m *Model) playSequence(ctx context.Context, line string) tea.Cmd {
	player := m.player
	return func() tea.Msg {
		return playDoneMsg{err: player.PlaySequence(ctx, line)}
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("PC Speaker Player"))
	b.WriteString("\n")
	b.WriteString(normalStyle.Render("Enter notes separated by space (e.g. 'C4 E4 G4' or '440 880')."))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.playing {
		b.WriteString(playingStyle.Render("♪ playing: " + m.current))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter: play • exit/quit or ctrl+c: leave"))
	b.WriteString("\n")
	return b.String()
}
