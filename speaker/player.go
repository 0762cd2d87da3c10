// Package speaker turns note strings into timed square waves on the PC
// speaker by programming the 8254 PIT through an injected port capability.
package speaker

import (
	"context"
	"sync"
	"time"

	"beeper/logging"
	"beeper/portio"
)

// 8254 PIT and keyboard-controller port assignments, fixed by the PC/AT
// platform.
const (
	pitCommandPort  = 0x43
	pitChannel2Port = 0x42
	speakerGatePort = 0x61

	// pitSquareWave selects channel 2, lobyte/hibyte access, mode 3.
	pitSquareWave = 0xB6

	// pitInputClock is the PIT input clock in Hz (~1.193182 MHz).
	pitInputClock = 1193180

	// minFreq and maxFreq bound the frequencies the 8254 can express as an
	// audible square wave with a 16-bit divisor.
	minFreq = 37
	maxFreq = 32767
)

// Timing defaults used by PlaySequence and PlayLoop.
const (
	DefaultNoteDuration = 300 * time.Millisecond
	DefaultInterNoteGap = 50 * time.Millisecond
	DefaultLoopPause    = 500 * time.Millisecond
)

// sleepFunc blocks for d or until ctx is cancelled. Overridable in tests.
var sleepFunc = func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Player drives the PC speaker through an injected port capability. Playback
// is fully sequential and blocking; an internal mutex serializes callers so
// only one sequence sounds at a time within the process.
type Player struct {
	mu    sync.Mutex
	ports portio.Ports

	NoteDuration time.Duration
	InterNoteGap time.Duration
}

// NewPlayer returns a Player with the default note timings.
func NewPlayer(ports portio.Ports) *Player {
	return &Player{
		ports:        ports,
		NoteDuration: DefaultNoteDuration,
		InterNoteGap: DefaultInterNoteGap,
	}
}

// PlayTone programs the PIT for freq and gates the speaker on for d.
// Frequencies that truncate to an integer outside [37, 32767] are silently
// skipped; out-of-range input is mute, not an error.
func (p *Player) PlayTone(ctx context.Context, freq float64, d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playTone(ctx, freq, d)
}

func (p *Player) playTone(ctx context.Context, freq float64, d time.Duration) error {
	f := int(freq)
	if f < minFreq || f > maxFreq {
		logging.Logger.Debug("Frequency outside playable range, skipping", "freq", freq)
		return nil
	}

	divisor := pitInputClock / f

	if err := p.ports.WritePort(pitCommandPort, pitSquareWave); err != nil {
		return err
	}
	if err := p.ports.WritePort(pitChannel2Port, byte(divisor&0xFF)); err != nil {
		return err
	}
	if err := p.ports.WritePort(pitChannel2Port, byte((divisor>>8)&0xFF)); err != nil {
		return err
	}

	// Gate the speaker on: bits 0 (timer gate) and 1 (speaker data) of the
	// keyboard-controller port.
	val, err := p.ports.ReadPort(speakerGatePort)
	if err != nil {
		return err
	}
	if err := p.ports.WritePort(speakerGatePort, val|0x03); err != nil {
		return err
	}

	waitErr := sleepFunc(ctx, d)

	// The gate is AND'd off unconditionally rather than restored to a
	// snapshot, matching the enable's unconditional OR. It must drop even on
	// cancellation or the tone keeps sounding after the process exits.
	val, err = p.ports.ReadPort(speakerGatePort)
	if err != nil {
		return err
	}
	if err := p.ports.WritePort(speakerGatePort, val&0xFC); err != nil {
		return err
	}
	return waitErr
}

// PlaySequence parses input (see ParseSequence) and plays it token by token:
// NoteDuration plus InterNoteGap per tone, a bare NoteDuration of silence per
// rest. It returns once the whole stream has sounded or ctx is cancelled.
func (p *Player) PlaySequence(ctx context.Context, input string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playSequence(ctx, input)
}

func (p *Player) playSequence(ctx context.Context, input string) error {
	for _, tok := range ParseSequence(input) {
		if tok.Pause || tok.Freq <= 0 {
			if err := sleepFunc(ctx, p.NoteDuration); err != nil {
				return err
			}
			continue
		}
		if err := p.playTone(ctx, tok.Freq, p.NoteDuration); err != nil {
			return err
		}
		if err := sleepFunc(ctx, p.InterNoteGap); err != nil {
			return err
		}
	}
	return nil
}

// PlayLoop replays input until ctx is cancelled, pausing between repeats.
func (p *Player) PlayLoop(ctx context.Context, input string, pause time.Duration) error {
	for {
		if err := p.PlaySequence(ctx, input); err != nil {
			return err
		}
		if err := sleepFunc(ctx, pause); err != nil {
			return err
		}
	}
}
