package gate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "lowercase y", input: "y\n", want: true},
		{name: "uppercase Y", input: "Y\n", want: true},
		{name: "yes word", input: "yes\n", want: true},
		{name: "surrounding whitespace", input: "  y  \n", want: true},
		{name: "n declines", input: "n\n", want: false},
		{name: "empty line declines", input: "\n", want: false},
		{name: "garbage declines", input: "sure, go ahead\n", want: false},
		{name: "yep is not yes", input: "yep\n", want: false},
		{name: "eof declines", input: "", want: false},
		{name: "y without newline at eof", input: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			g := New(strings.NewReader(tt.input), &out)

			got := g.Confirm("Proceed?")

			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Proceed? [y/N]: ")
		})
	}
}

func TestConfirmSequentialGates(t *testing.T) {
	// First gate accepted, second declined — one reader serves both.
	var out strings.Builder
	g := New(strings.NewReader("y\nn\n"), &out)

	assert.True(t, g.Confirm("First?"))
	assert.False(t, g.Confirm("Second?"))
}

func TestConfirmAssumeYes(t *testing.T) {
	var out strings.Builder
	g := New(strings.NewReader(""), &out)
	g.AssumeYes = true

	assert.True(t, g.Confirm("Anything?"))
	assert.Empty(t, out.String(), "no prompt should be printed with AssumeYes")
}
