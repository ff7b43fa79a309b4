package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/synora-ui/internal/ports"
)

// Prompter implements ConfirmationPrompter using stdin/stdout.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter constructs a prompter referencing stdio. Pass the console's
// *bufio.Reader to share its buffer.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	interactive := true
	if in == nil {
		in = os.Stdin
		interactive = isTerminal(os.Stdin)
	}
	if out == nil {
		out = os.Stdout
	}
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &Prompter{
		in:          br,
		out:         out,
		interactive: interactive,
	}
}

// Enabled reports whether answers can be read. A piped stdin disables the
// prompt, so high-risk actions are cancelled rather than auto-confirmed.
func (p *Prompter) Enabled() bool {
	return p.interactive
}

// Confirm shows the command and blocks until the user answers.
func (p *Prompter) Confirm(risk string, command string, message string) (bool, error) {
	fmt.Fprintf(p.out, "\n!! %s risk\n", strings.ToUpper(risk))
	fmt.Fprintf(p.out, "Command:\n  %s\n", command)
	fmt.Fprintln(p.out, message)
	return p.ask("[y/N]: ")
}

func (p *Prompter) ask(prompt string) (bool, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}

// isTerminal reports whether f is a character device.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
