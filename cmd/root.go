// Package cmd defines the beeper command-line surface.
package cmd

import (
	"fmt"
	"os"
	"time"

	"beeper/config"
	"beeper/logging"
	"beeper/portio"
	"beeper/speaker"

	"github.com/alecthomas/kong"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	DBPath      string           `help:"Path to the tune library database" type:"path" default:"~/.beeper/tunes.db" env:"BEEPER_DB_PATH"`
	Duration    time.Duration    `help:"Length of each note" default:"300ms" env:"BEEPER_NOTE_DURATION"`
	Gap         time.Duration    `help:"Silence between notes" default:"50ms" env:"BEEPER_NOTE_GAP"`

	Play  PlayCmd  `cmd:"" help:"Play notes on the PC speaker (default)" default:"1"`
	Notes NotesCmd `cmd:"" help:"List supported note names and frequencies"`
	Tunes TunesCmd `cmd:"" help:"Manage the saved tune library"`
	Serve ServeCmd `cmd:"" help:"Serve the interactive player over SSH"`

	// Internal field for settings (not a flag)
	settings *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Apply settings with proper precedence: CLI flags > env vars > settings.json > defaults
	// Only apply if flag is at default value and env var is not set

	if c.settings != nil {
		if c.DBPath == "~/.beeper/tunes.db" {
			if _, hasEnv := os.LookupEnv("BEEPER_DB_PATH"); !hasEnv {
				if c.settings.DBPath != "" {
					c.DBPath = c.settings.DBPath
				}
			}
		}

		if c.Duration == speaker.DefaultNoteDuration {
			if _, hasEnv := os.LookupEnv("BEEPER_NOTE_DURATION"); !hasEnv {
				if c.settings.NoteDurationMS != nil {
					c.Duration = time.Duration(*c.settings.NoteDurationMS) * time.Millisecond
				}
			}
		}

		if c.Gap == speaker.DefaultInterNoteGap {
			if _, hasEnv := os.LookupEnv("BEEPER_NOTE_GAP"); !hasEnv {
				if c.settings.GapMS != nil {
					c.Gap = time.Duration(*c.settings.GapMS) * time.Millisecond
				}
			}
		}

		if c.MaxLogFiles == 1000 {
			if _, hasEnv := os.LookupEnv("BEEPER_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("BEEPER_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}
	}

	return logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
}

// openPlayer acquires the hardware port capability and builds a player with
// the configured timings. Acquisition failure is fatal for every command that
// touches the speaker.
func (c *CLI) openPlayer() (*speaker.Player, portio.Ports, error) {
	ports, err := portio.Open()
	if err != nil {
		logging.Logger.Error("Failed to acquire port capability", "error", err)
		return nil, nil, fmt.Errorf("cannot access hardware ports: %w", err)
	}

	player := speaker.NewPlayer(ports)
	player.NoteDuration = c.Duration
	player.InterNoteGap = c.Gap
	return player, ports, nil
}
