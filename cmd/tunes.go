package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beeper/config"
	"beeper/logging"
	"beeper/speaker"
	"beeper/storage"

	"github.com/charmbracelet/huh"
)

// TunesCmd manages the saved tune library
type TunesCmd struct {
	Save TunesSaveCmd `cmd:"" help:"Save a named tune"`
	List TunesListCmd `cmd:"" help:"List saved tunes"`
	Del  TunesDelCmd  `cmd:"" help:"Delete a saved tune"`
	Play TunesPlayCmd `cmd:"" help:"Play a saved tune"`
}

// openStore opens the tune library at the configured path
func openStore(cli *CLI) (*storage.Store, error) {
	store, err := storage.NewStore(config.ExpandPath(cli.DBPath))
	if err != nil {
		logging.Logger.Error("Failed to open tune database", "error", err, "path", cli.DBPath)
		return nil, fmt.Errorf("failed to open tune database: %w", err)
	}
	return store, nil
}

// TunesSaveCmd saves a named tune
type TunesSaveCmd struct {
	Name  string `arg:"" help:"Name for the tune"`
	Notes string `arg:"" help:"Notes string, e.g. 'C4 E4 G4'"`
}

// Run executes the save command
func (t *TunesSaveCmd) Run(cli *CLI) error {
	store, err := openStore(cli)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveTune(context.Background(), t.Name, t.Notes); err != nil {
		if errors.Is(err, storage.ErrTuneExists) {
			return fmt.Errorf("tune %q already exists (delete it first to replace it)", t.Name)
		}
		return err
	}

	logging.Logger.Info("Tune saved", "name", t.Name, "notes", t.Notes)
	fmt.Printf("Tune %q saved\n", t.Name)
	return nil
}

// TunesListCmd lists saved tunes
type TunesListCmd struct{}

// Run executes the list command
func (t *TunesListCmd) Run(cli *CLI) error {
	store, err := openStore(cli)
	if err != nil {
		return err
	}
	defer store.Close()

	tunes, err := store.ListTunes(context.Background())
	if err != nil {
		return err
	}

	if len(tunes) == 0 {
		fmt.Println("No tunes saved yet. Try: beeper tunes save triad \"C4 E4 G4\"")
		return nil
	}

	fmt.Printf("%-20s %-8s %s\n", "NAME", "PLAYS", "NOTES")
	for _, tune := range tunes {
		fmt.Printf("%-20s %-8d %s\n", tune.Name, tune.PlayCount, tune.Notes)
	}
	return nil
}

// TunesDelCmd deletes a saved tune
type TunesDelCmd struct {
	Name  string `arg:"" help:"Name of the tune to delete"`
	Force bool   `help:"Delete without confirmation" short:"f"`
}

// Run executes the del command
func (t *TunesDelCmd) Run(cli *CLI) error {
	store, err := openStore(cli)
	if err != nil {
		return err
	}
	defer store.Close()

	if !t.Force {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete tune %q?", t.Name)).
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := store.DeleteTune(context.Background(), t.Name); err != nil {
		if errors.Is(err, storage.ErrTuneNotFound) {
			return fmt.Errorf("tune %q not found", t.Name)
		}
		return err
	}

	logging.Logger.Info("Tune deleted", "name", t.Name)
	fmt.Printf("Tune %q deleted\n", t.Name)
	return nil
}

// TunesPlayCmd plays a saved tune
type TunesPlayCmd struct {
	Name      string        `arg:"" help:"Name of the tune to play"`
	Loop      bool          `help:"Replay the tune until interrupted"`
	LoopPause time.Duration `help:"Pause between repeats in loop mode" default:"500ms"`
}

// Run executes the play command
func (t *TunesPlayCmd) Run(cli *CLI) error {
	store, err := openStore(cli)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	tune, err := store.GetTune(ctx, t.Name)
	if err != nil {
		if errors.Is(err, storage.ErrTuneNotFound) {
			return fmt.Errorf("tune %q not found", t.Name)
		}
		return err
	}

	player, ports, err := cli.openPlayer()
	if err != nil {
		return err
	}
	defer ports.Close()

	if err := store.RecordPlay(ctx, t.Name); err != nil {
		logging.Logger.Warn("Failed to record play", "error", err, "name", t.Name)
	}

	playCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Logger.Info("Playing tune", "name", tune.Name, "notes", tune.Notes, "loop", t.Loop)
	if t.Loop {
		if t.LoopPause == speaker.DefaultLoopPause && cli.settings != nil && cli.settings.LoopPauseMS != nil {
			t.LoopPause = time.Duration(*cli.settings.LoopPauseMS) * time.Millisecond
		}
		fmt.Printf("Playing %q in a loop (press Ctrl+C to stop)...\n", tune.Name)
		err = player.PlayLoop(playCtx, tune.Notes, t.LoopPause)
	} else {
		err = player.PlaySequence(playCtx, tune.Notes)
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
