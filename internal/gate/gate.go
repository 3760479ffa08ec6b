package gate

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Gate reads yes/no confirmations from an input stream. The affirmative token
// is "y" (case-insensitive); any other input, including EOF and read errors,
// counts as a decline. There are no retries on malformed input.
type Gate struct {
	reader *bufio.Reader
	out    io.Writer

	// AssumeYes makes every Confirm return true without prompting,
	// backing the --yes flag.
	AssumeYes bool
}

// New creates a Gate reading from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Gate {
	return &Gate{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Confirm prints the question, reads one line, and reports whether the
// operator answered affirmatively.
func (g *Gate) Confirm(question string) bool {
	if g.AssumeYes {
		return true
	}

	fmt.Fprintf(g.out, "%s [y/N]: ", question)

	line, err := g.reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
