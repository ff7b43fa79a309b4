package cli

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/doeshing/synora-ui/internal/ports"
)

// Clipboard implements ports.Clipboard using platform-specific tools.
type Clipboard struct{}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Enabled reports whether a clipboard tool is installed.
func (c *Clipboard) Enabled() bool {
	_, err := c.command()
	return err == nil
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	cmd, err := c.command()
	if err != nil {
		return err
	}
	cmd.Stdin = bytes.NewBufferString(text)
	return cmd.Run()
}

func (c *Clipboard) command() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("pbcopy"), nil
	case "windows":
		return exec.Command("clip"), nil
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard"), nil
		}
		if _, err := exec.LookPath("wl-copy"); err == nil {
			return exec.Command("wl-copy"), nil
		}
		return nil, fmt.Errorf("clipboard utilities not found")
	default:
		return nil, fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
}

var _ ports.Clipboard = (*Clipboard)(nil)
