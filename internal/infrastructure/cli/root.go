package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/synora-ui/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose   bool
	Ephemeral bool
	// In and Out default to the process stdio.
	In  io.Reader
	Out io.Writer
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, app.Options{Verbose: opts.Verbose, Ephemeral: opts.Ephemeral})
	if err != nil {
		return nil, err
	}

	in := bufio.NewReader(stdinOr(opts.In))
	prompter := NewPrompter(in, opts.Out)
	if opts.In == nil {
		prompter.interactive = isTerminal(os.Stdin)
	}
	con := container.Attach(prompter, NewClipboard())

	root := &cobra.Command{
		Use:   "synora-ui",
		Short: "Synora result console",
		Long:  "synora-ui searches through the synora UI service, renders result cards and runs their actions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return container.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if opts.Out != nil {
		root.SetOut(opts.Out)
	}

	root.AddCommand(newSearchCommand(container, con))
	root.AddCommand(newRenderCommand(container, con, in))
	root.AddCommand(newFilterCommand(container, con))
	root.AddCommand(newCommandCommand(container, con))
	root.AddCommand(newRunCommand(container, con))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newLangCommand(container, con))
	root.AddCommand(newSettingsCommand(container))
	root.AddCommand(newCapabilitiesCommand(container))
	root.AddCommand(newDoctorCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newConsoleCommand(container, con, in))
	return root, nil
}

func stdinOr(r io.Reader) io.Reader {
	if r == nil {
		return os.Stdin
	}
	return r
}
