package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beeper/logging"
	"beeper/speaker"
	"beeper/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// PlayCmd plays a note string once or in a loop, or starts the interactive
// prompt when no notes are given.
type PlayCmd struct {
	Notes     string        `help:"Notes to play, e.g. 'C4 E4 G4' or '440 880'"`
	Loop      bool          `help:"Replay the sequence until interrupted"`
	LoopPause time.Duration `help:"Pause between repeats in loop mode" default:"500ms"`
}

// Run executes playback
func (p *PlayCmd) Run(cli *CLI) error {
	if p.LoopPause == speaker.DefaultLoopPause && cli.settings != nil && cli.settings.LoopPauseMS != nil {
		p.LoopPause = time.Duration(*cli.settings.LoopPauseMS) * time.Millisecond
	}

	player, ports, err := cli.openPlayer()
	if err != nil {
		return err
	}
	defer ports.Close()

	if p.Notes == "" {
		return runInteractive(player)
	}

	// Ctrl+C ends playback cleanly with the speaker gate closed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if p.Loop {
		logging.Logger.Info("Playing loop", "notes", p.Notes, "pause", p.LoopPause)
		fmt.Println("Playing loop (press Ctrl+C to stop)...")
		err = player.PlayLoop(ctx, p.Notes, p.LoopPause)
	} else {
		logging.Logger.Info("Playing sequence", "notes", p.Notes)
		err = player.PlaySequence(ctx, p.Notes)
	}

	if errors.Is(err, context.Canceled) {
		return nil // interrupted playback is a clean exit
	}
	return err
}

// runInteractive starts the >> prompt loop.
func runInteractive(player *speaker.Player) error {
	logging.Logger.Info("Starting interactive mode")
	if _, err := tea.NewProgram(ui.NewModel(player)).Run(); err != nil {
		return fmt.Errorf("error running interactive player: %w", err)
	}
	return nil
}
