package terminal

// Prompt prefixes every line the interpreter writes
const Prompt = "> "

// DefaultBanner returns the lines a fresh terminal starts with
func DefaultBanner() []string {
	return []string{
		Prompt + "FakeOS Terminal initialized",
		Prompt + "Type 'help' to list commands",
	}
}

// Transcript is an append-only list of output lines. Clear is the only
// operation that removes lines, and it removes all of them.
type Transcript struct {
	lines []string
}

// NewTranscript creates a transcript holding a copy of lines
func NewTranscript(lines []string) *Transcript {
	return &Transcript{lines: append([]string(nil), lines...)}
}

// Append adds a line at the end
func (t *Transcript) Append(line string) {
	t.lines = append(t.lines, line)
}

// Clear truncates the transcript to empty
func (t *Transcript) Clear() {
	t.lines = nil
}

// Lines returns a copy of every line, oldest first
func (t *Transcript) Lines() []string {
	return append([]string{}, t.lines...)
}

// Len returns the number of lines
func (t *Transcript) Len() int {
	return len(t.lines)
}
