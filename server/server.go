// Package server exposes the interactive player over SSH, so remote users can
// play the host machine's speaker.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"beeper/logging"
	"beeper/speaker"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"
	"golang.org/x/sync/errgroup"
)

// Server is the SSH front end. All sessions share one player, which
// serializes access to the speaker.
type Server struct {
	host       string
	port       string
	player     *speaker.Player
	wishServer *ssh.Server
}

// NewServer creates an SSH server handing each session the interactive prompt.
func NewServer(host, port string, player *speaker.Player) (*Server, error) {
	s := &Server{
		host:   host,
		port:   port,
		player: player,
	}

	// Ensure SSH directory exists
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	sshDir := filepath.Join(homeDir, ".beeper", "ssh")
	if err := os.MkdirAll(sshDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create SSH directory: %w", err)
	}

	hostKeyPath := filepath.Join(sshDir, "id_ed25519")

	// Note: Middleware executes in reverse order (last to first)
	wishServer, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf("%s:%s", host, port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			fingerprint := getKeyFingerprint(key)
			user := ctx.User()

			homeDir, err := os.UserHomeDir()
			if err != nil {
				logging.Logger.Error("Failed to get home directory",
					"error", err,
					"user", user,
					"fingerprint", fingerprint)
				return false
			}

			authorizedKeysPath := filepath.Join(homeDir, ".ssh", "authorized_keys")
			authorized := isKeyAuthorized(key, authorizedKeysPath)

			if authorized {
				logging.Logger.Info("SSH key authenticated",
					"user", user,
					"fingerprint", fingerprint,
					"key_type", key.Type())
			} else {
				logging.Logger.Warn("Unauthorized SSH key",
					"user", user,
					"fingerprint", fingerprint,
					"key_type", key.Type())
			}

			return authorized
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(), // Require PTY
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.wishServer = wishServer
	return s, nil
}

// Start runs the SSH server and blocks until an interrupt or a server error.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Logger.Info("Starting SSH server", "address", fmt.Sprintf("%s:%s", s.host, s.port))
	fmt.Printf("SSH jukebox listening on %s:%s\n", s.host, s.port)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.wishServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("SSH server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logging.Logger.Info("Shutting down SSH server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.wishServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("failed to shutdown SSH server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logging.Logger.Info("SSH server stopped")
	return nil
}
