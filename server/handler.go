package server

import (
	"fmt"
	"time"

	"beeper/logging"
	"beeper/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
)

// sessionModel wraps ui.Model to log session lifetime.
type sessionModel struct {
	*ui.Model
	sessionID string
	startTime time.Time
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.QuitMsg); ok {
		logging.Logger.Info("SSH session ended",
			"session_id", s.sessionID,
			"duration", time.Since(s.startTime).String())
	}

	updated, cmd := s.Model.Update(msg)
	if m, ok := updated.(*ui.Model); ok {
		s.Model = m
	}
	return s, cmd
}

// teaHandler creates the prompt model for each SSH session. The player is
// shared: concurrent sessions queue on the speaker, they don't mix.
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	model := &sessionModel{
		Model:     ui.NewModel(s.player),
		sessionID: sessionID,
		startTime: time.Now(),
	}
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}
