package speaker

import (
	"strconv"
	"strings"
)

// noteFreq maps note names to equal-tempered frequencies in Hz, tuned to
// A4 = 440. Three chromatic octaves, sharps only (no flats).
var noteFreq = map[string]float64{
	"C3": 130.81, "C#3": 138.59, "D3": 146.83, "D#3": 155.56, "E3": 164.81, "F3": 174.61,
	"F#3": 185.00, "G3": 196.00, "G#3": 207.65, "A3": 220.00, "A#3": 233.08, "B3": 246.94,
	"C4": 261.63, "C#4": 277.18, "D4": 293.66, "D#4": 311.13, "E4": 329.63, "F4": 349.23,
	"F#4": 369.99, "G4": 392.00, "G#4": 415.30, "A4": 440.00, "A#4": 466.16, "B4": 493.88,
	"C5": 523.25, "C#5": 554.37, "D5": 587.33, "D#5": 622.25, "E5": 659.25, "F5": 698.46,
	"F#5": 739.99, "G5": 783.99, "G#5": 830.61, "A5": 880.00, "A#5": 932.33, "B5": 987.77,
}

var semitones = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteNames returns the canonical note names in ascending pitch order.
func NoteNames() []string {
	names := make([]string, 0, len(noteFreq))
	for octave := 3; octave <= 5; octave++ {
		for _, s := range semitones {
			names = append(names, s+strconv.Itoa(octave))
		}
	}
	return names
}

// LookupNote resolves a note name to its frequency in Hz. Lookup is
// case-insensitive; keys are canonically upper-case with '#' for sharps.
func LookupNote(name string) (float64, bool) {
	f, ok := noteFreq[strings.ToUpper(name)]
	return f, ok
}

// Token is one step of a parsed sequence: a tone at a fixed frequency, or a
// rest.
type Token struct {
	Freq  float64
	Pause bool
}

// ParseSequence tokenizes a note string. Commas count as whitespace and
// matching is case-insensitive. Each token resolves in order: known note
// name, then plain decimal number as Hz, otherwise a rest. Unrecognized
// tokens are not errors; a dash or "P" is a deliberate way to write silence.
func ParseSequence(input string) []Token {
	fields := strings.Fields(strings.ReplaceAll(input, ",", " "))
	tokens := make([]Token, 0, len(fields))
	for _, raw := range fields {
		tok := strings.ToUpper(raw)
		if f, ok := noteFreq[tok]; ok {
			tokens = append(tokens, Token{Freq: f})
			continue
		}
		if isDigits(tok) {
			if n, err := strconv.Atoi(tok); err == nil {
				tokens = append(tokens, Token{Freq: float64(n)})
				continue
			}
		}
		tokens = append(tokens, Token{Pause: true})
	}
	return tokens
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
