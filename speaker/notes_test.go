package speaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupNoteCaseInsensitive(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"C4", 261.63},
		{"c4", 261.63},
		{"A4", 440.00},
		{"a4", 440.00},
		{"a#3", 233.08},
		{"f#5", 739.99},
		{"b5", 987.77},
		{"C3", 130.81},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupNote(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupNoteUnknown(t *testing.T) {
	for _, name := range []string{"H4", "C6", "B2", "Cb4", "", "440"} {
		_, ok := LookupNote(name)
		assert.False(t, ok, "expected %q to be unknown", name)
	}
}

func TestNoteNamesCoverTable(t *testing.T) {
	names := NoteNames()
	require.Len(t, names, 36)
	assert.Equal(t, "C3", names[0])
	assert.Equal(t, "B5", names[len(names)-1])

	// Every canonical name must resolve, and in ascending pitch order.
	prev := 0.0
	for _, name := range names {
		freq, ok := LookupNote(name)
		require.True(t, ok, "name %q missing from table", name)
		assert.Greater(t, freq, prev, "table not ascending at %q", name)
		prev = freq
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "notes",
			input: "C4 E4 G4",
			want:  []Token{{Freq: 261.63}, {Freq: 329.63}, {Freq: 392.00}},
		},
		{
			name:  "numeric frequency",
			input: "440",
			want:  []Token{{Freq: 440}},
		},
		{
			name:  "commas as separators",
			input: "c4,e4,,g4",
			want:  []Token{{Freq: 261.63}, {Freq: 329.63}, {Freq: 392.00}},
		},
		{
			name:  "dash is a rest",
			input: "C4 - G4",
			want:  []Token{{Freq: 261.63}, {Pause: true}, {Freq: 392.00}},
		},
		{
			name:  "unknown tokens degrade to rests",
			input: "P Xyz 3.5 -440",
			want:  []Token{{Pause: true}, {Pause: true}, {Pause: true}, {Pause: true}},
		},
		{
			name:  "zero frequency stays numeric",
			input: "0",
			want:  []Token{{Freq: 0}},
		},
		{
			name:  "empty input",
			input: "   ",
			want:  []Token{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSequence(tt.input))
		})
	}
}
