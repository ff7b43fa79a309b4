package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/synora-ui/internal/app"
	"github.com/doeshing/synora-ui/internal/application/console"
	"github.com/doeshing/synora-ui/internal/application/render"
	"github.com/doeshing/synora-ui/internal/domain"
)

// ErrUserExit signals that the user asked to leave the console.
var ErrUserExit = errors.New("user requested exit")

// pasteTerminator ends a multi-line :paste block.
const pasteTerminator = "."

// REPL is the interactive result console.
type REPL struct {
	container *app.Container
	console   *console.Console
	in        *bufio.Reader
	out       io.Writer
	presenter *Presenter
}

// NewREPL builds a console session reading lines from in.
func NewREPL(container *app.Container, con *console.Console, in *bufio.Reader, out io.Writer) *REPL {
	return &REPL{
		container: container,
		console:   con,
		in:        in,
		out:       out,
		presenter: NewPresenter(out),
	}
}

func newConsoleCommand(container *app.Container, con *console.Console, in *bufio.Reader) *cobra.Command {
	return &cobra.Command{
		Use:     "console",
		Aliases: []string{"ui"},
		Short:   "Open the interactive result console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewREPL(container, con, in, cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}

// Run reads lines until EOF or :exit.
func (r *REPL) Run(ctx context.Context) error {
	r.restore()
	fmt.Fprintln(r.out, "Type a query to search, :help for commands.")
	for {
		fmt.Fprint(r.out, "synora> ")
		line, err := r.in.ReadString('\n')
		if line != "" {
			if perr := r.ProcessInput(ctx, line); perr != nil {
				if errors.Is(perr, ErrUserExit) {
					return nil
				}
				r.presenter.Error(perr.Error())
			}
		}
		if err == io.EOF {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// restore shows whatever payload the previous session left behind.
func (r *REPL) restore() {
	st := r.console.Snapshot()
	if st.Payload != nil {
		r.presenter.View(st.View)
	}
}

// ProcessInput runs a search for plain text or dispatches a :command.
func (r *REPL) ProcessInput(ctx context.Context, input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if strings.HasPrefix(input, ":") {
		shouldExit, err := r.HandleCommand(ctx, input)
		if err != nil {
			return err
		}
		if shouldExit {
			return ErrUserExit
		}
		return nil
	}
	r.search(ctx, input)
	return nil
}

// HandleCommand executes a colon command and reports whether to exit.
func (r *REPL) HandleCommand(ctx context.Context, input string) (bool, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false, nil
	}
	args := parts[1:]
	loc := r.container.Locale

	switch parts[0] {
	case ":exit", ":quit", ":q":
		return true, nil

	case ":help", ":h":
		r.DisplayHelp()

	case ":quick":
		queries := r.container.Config.GetQuickQueries()
		if len(args) == 0 {
			for i, q := range queries {
				fmt.Fprintf(r.out, "  %d. %s\n", i+1, q)
			}
			return false, nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(queries) {
			return false, fmt.Errorf("quick query must be 1..%d", len(queries))
		}
		r.search(ctx, queries[n-1])

	case ":filter":
		if len(args) == 0 {
			st := r.console.Snapshot()
			fmt.Fprintf(r.out, "risk=%s group=%s\n", st.Filters.Risk, st.Filters.GroupType)
			return false, nil
		}
		group := r.console.Snapshot().Filters.GroupType
		if len(args) > 1 {
			group = args[1]
		}
		st, err := r.console.ApplyFilter(args[0], group)
		if err != nil {
			return false, err
		}
		r.showView(st)

	case ":reset":
		r.showView(r.console.ResetFilters())

	case ":paste":
		text, err := r.readBlock()
		if err != nil {
			return false, err
		}
		r.renderManual(text)

	case ":file":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: :file <path>")
		}
		text, err := readPayload(strings.Join(args, " "), r.in)
		if err != nil {
			return false, err
		}
		r.renderManual(text)

	case ":cmd":
		card, err := r.card(args)
		if err != nil {
			return false, err
		}
		built, err := r.console.BuildCommand(card.Action)
		if err != nil {
			return false, err
		}
		if err := r.console.RecordHistory(built); err != nil {
			return false, err
		}
		r.presenter.Command(built)

	case ":copy":
		card, err := r.card(args)
		if err != nil {
			return false, err
		}
		built, err := r.console.BuildCommand(card.Action)
		if err != nil {
			return false, err
		}
		if err := r.console.CopyToClipboard(built); err != nil {
			return false, err
		}
		r.presenter.Meta(loc.Resolve("prompts.copied"))

	case ":run":
		card, err := r.card(args)
		if err != nil {
			return false, err
		}
		st, outcome, err := r.console.Execute(ctx, card.Action)
		r.presenter.Command(outcome.Command)
		switch {
		case outcome.State == domain.ActionCancelled:
			r.presenter.Meta(loc.Resolve("prompts.actionCancelled"))
		case err != nil:
			r.presenter.Error(st.ActionMeta)
		default:
			r.presenter.Meta(st.ActionMeta)
			printResult(r.out, outcome.Result)
		}

	case ":history":
		r.presenter.History(r.container.HistoryStore.List(), loc)

	case ":lang":
		if len(args) == 0 {
			fmt.Fprintln(r.out, loc.Language())
			return false, nil
		}
		st, err := r.console.SetLanguage(args[0])
		if err != nil {
			return false, err
		}
		r.presenter.Meta(loc.Format("prompts.languageSet", map[string]any{"lang": st.Language}))
		if st.Payload != nil {
			r.presenter.View(st.View)
		}

	case ":caps":
		view := render.RenderCapabilities(render.Capabilities, loc)
		r.presenter.Capabilities(loc.Resolve("capabilityTitle"), view)

	case ":settings":
		r.presenter.Settings(r.container.Settings.Load(), loc)

	case ":json":
		st := r.console.Snapshot()
		if st.Raw == "" {
			r.presenter.Meta(loc.Resolve("prompts.noPayload"))
			return false, nil
		}
		fmt.Fprintln(r.out, st.Raw)

	default:
		return false, fmt.Errorf("unknown command %s (try :help)", parts[0])
	}
	return false, nil
}

// DisplayHelp prints the colon commands.
func (r *REPL) DisplayHelp() {
	help := `
Commands:
  <text>               search for <text>
  :quick [N]           list quick queries or run number N
  :filter risk [group] filter cards (risk: all|low|medium|high)
  :reset               reset filters
  :paste               paste a JSON payload, end with a line containing "."
  :file <path>         render a payload from a file
  :cmd N               show and record the command of card N
  :copy N              copy the command of card N
  :run N               run the action of card N
  :json                print the current raw payload
  :history             recent commands
  :lang zh|en          switch language
  :caps                feature overview
  :settings            policy flags
  :exit, :quit         leave the console
`
	fmt.Fprintln(r.out, help)
}

func (r *REPL) search(ctx context.Context, query string) {
	st, err := runSearch(ctx, r.console, r.container, r.out, query)
	if err != nil {
		r.presenter.Error(st.SearchMeta)
		return
	}
	r.presenter.Meta(st.SearchMeta)
	r.presenter.View(st.View)
}

func (r *REPL) renderManual(text string) {
	st, err := r.console.RenderManual(text)
	if err != nil {
		r.presenter.Error(st.PayloadErr)
		return
	}
	r.presenter.View(st.View)
}

func (r *REPL) showView(st console.State) {
	if st.Payload == nil {
		r.presenter.Meta(r.container.Locale.Resolve("prompts.noPayload"))
		return
	}
	r.presenter.View(st.View)
}

func (r *REPL) card(args []string) (domain.Card, error) {
	if len(args) == 0 {
		return domain.Card{}, fmt.Errorf("a card number is required")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return domain.Card{}, fmt.Errorf("card number must be an integer, got %q", args[0])
	}
	card, ok := r.console.ItemAt(n)
	if !ok {
		return domain.Card{}, fmt.Errorf("no card %d in the current view", n)
	}
	return card, nil
}

// readBlock collects lines until the terminator or EOF.
func (r *REPL) readBlock() (string, error) {
	var b strings.Builder
	for {
		line, err := r.in.ReadString('\n')
		if strings.TrimSpace(line) == pasteTerminator {
			return b.String(), nil
		}
		b.WriteString(line)
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}
