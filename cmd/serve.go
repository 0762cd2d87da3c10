package cmd

import (
	"context"
	"fmt"

	"beeper/logging"
	"beeper/server"
)

// ServeCmd starts the SSH jukebox server
type ServeCmd struct {
	Host string `help:"Host to bind to" default:"localhost"`
	Port string `help:"Port to listen on" default:"23234"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	player, ports, err := cli.openPlayer()
	if err != nil {
		return err
	}
	defer ports.Close()

	logging.Logger.Info("Starting beeper SSH server", "host", s.Host, "port", s.Port)

	srv, err := server.NewServer(s.Host, s.Port, player)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Blocks until shutdown
	return srv.Start(context.Background())
}
