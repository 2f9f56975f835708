package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/ghask/internal/ports"
)

// StdinPrompter asks the user for a missing parameter value on the terminal.
type StdinPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter builds a prompter over in/out, defaulting to stdin/stdout.
func NewPrompter(in io.Reader, out io.Writer) *StdinPrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &StdinPrompter{in: bufio.NewReader(in), out: out}
}

// Ask prompts for a single parameter value and returns the trimmed answer.
func (p *StdinPrompter) Ask(name, description string) (string, error) {
	fmt.Fprintf(p.out, "Please provide the %s (%s): ", name, description)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Enabled reports whether interactive prompting is possible.
func (p *StdinPrompter) Enabled() bool {
	return true
}

var _ ports.ParameterPrompter = (*StdinPrompter)(nil)
