package cmd

import (
	"fmt"
	"strings"

	"beeper/speaker"

	"github.com/charmbracelet/lipgloss"
)

var (
	octaveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	freqStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// NotesCmd prints the supported note names with their frequencies
type NotesCmd struct{}

// Run executes the notes command
func (n *NotesCmd) Run() error {
	names := speaker.NoteNames()

	// One row per octave, 12 semitones each.
	for row := 0; row < len(names); row += 12 {
		octave := names[row][len(names[row])-1:]
		fmt.Println(octaveStyle.Render("Octave " + octave))

		var b strings.Builder
		for _, name := range names[row : row+12] {
			freq, _ := speaker.LookupNote(name)
			b.WriteString(fmt.Sprintf("  %s %s\n",
				noteStyle.Render(fmt.Sprintf("%-4s", name)),
				freqStyle.Render(fmt.Sprintf("%7.2f Hz", freq))))
		}
		fmt.Print(b.String())
	}

	fmt.Println()
	fmt.Println(freqStyle.Render("Bare numbers play as raw frequencies (37-32767 Hz); anything else is a rest."))
	return nil
}
