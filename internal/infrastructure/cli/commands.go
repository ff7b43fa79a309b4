package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/doeshing/synora-ui/internal/app"
	"github.com/doeshing/synora-ui/internal/application/console"
	"github.com/doeshing/synora-ui/internal/application/filter"
	"github.com/doeshing/synora-ui/internal/domain"
)

func newSearchCommand(container *app.Container, con *console.Console) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a live search and show the result cards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := NewPresenter(cmd.OutOrStdout())
			st, err := runSearch(cmd.Context(), con, container, cmd.ErrOrStderr(), strings.Join(args, " "))
			if err != nil {
				p.Error(st.SearchMeta)
				return reported(err)
			}
			if asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), st.Raw)
				return nil
			}
			p.Meta(st.SearchMeta)
			p.View(st.View)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw payload instead of cards")
	return cmd
}

// runSearch wraps console.Search with a spinner on interactive stderr.
func runSearch(ctx context.Context, con *console.Console, container *app.Container, errOut io.Writer, query string) (console.State, error) {
	if f, ok := errOut.(*os.File); ok && isTerminal(f) && strings.TrimSpace(query) != "" {
		spinner := StartSpinner(errOut, container.Locale.Resolve("prompts.searching"))
		defer spinner.Stop()
	}
	return con.Search(ctx, query)
}

func newRenderCommand(container *app.Container, con *console.Console, in *bufio.Reader) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "render [--file path|-]",
		Short: "Render a pasted `synora ui search --json` payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readPayload(file, in)
			if err != nil {
				return err
			}
			p := NewPresenter(cmd.OutOrStdout())
			st, err := con.RenderManual(text)
			if err != nil {
				p.Error(st.PayloadErr)
				return reported(err)
			}
			p.View(st.View)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "Payload file, or - for stdin")
	return cmd
}

func readPayload(file string, in io.Reader) (string, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(in)
		return string(data), err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read payload: %w", err)
	}
	return string(data), nil
}

func newFilterCommand(container *app.Container, con *console.Console) *cobra.Command {
	var risk, group string
	var reset bool
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter the last payload by risk level and group type",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := NewPresenter(cmd.OutOrStdout())
			var st console.State
			if reset {
				st = con.ResetFilters()
			} else {
				var err error
				if st, err = con.ApplyFilter(risk, group); err != nil {
					return err
				}
			}
			if st.Payload == nil {
				p.Meta(container.Locale.Resolve("prompts.noPayload"))
				return nil
			}
			p.View(st.View)
			return nil
		},
	}
	cmd.Flags().StringVar(&risk, "risk", domain.FilterAll, "all|low|medium|high")
	cmd.Flags().StringVar(&group, "group", domain.FilterAll, "all or a group type (software, source, update, download, ai)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Reset both filters to all")
	return cmd
}

type targetFlags struct {
	id   string
	risk string
}

func (t *targetFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.id, "id", "", "Action id (instead of a card number)")
	cmd.Flags().StringVar(&t.risk, "risk", domain.RiskLow, "Risk level used with --id")
}

// resolve picks the action from --id or from a card number in the view.
func (t *targetFlags) resolve(con *console.Console, args []string) (domain.ActionRequest, error) {
	if t.id != "" {
		risk, err := filter.ParseRisk(t.risk)
		if err != nil {
			return domain.ActionRequest{}, err
		}
		return domain.ActionRequest{ActionID: t.id, RiskLevel: risk}, nil
	}
	if len(args) == 0 {
		return domain.ActionRequest{}, fmt.Errorf("a card number or --id is required")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return domain.ActionRequest{}, fmt.Errorf("card number must be an integer, got %q", args[0])
	}
	card, ok := con.ItemAt(n)
	if !ok {
		return domain.ActionRequest{}, fmt.Errorf("no card %d in the current view", n)
	}
	return card.Action, nil
}

func newCommandCommand(container *app.Container, con *console.Console) *cobra.Command {
	var target targetFlags
	var copyCmd bool
	cmd := &cobra.Command{
		Use:   "command [card]",
		Short: "Show the synora command for a card and add it to history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := target.resolve(con, args)
			if err != nil {
				return err
			}
			built, err := con.BuildCommand(req)
			if err != nil {
				return err
			}
			if err := con.RecordHistory(built); err != nil {
				return err
			}
			p := NewPresenter(cmd.OutOrStdout())
			p.Command(built)
			if copyCmd {
				if err := con.CopyToClipboard(built); err != nil {
					return err
				}
				p.Meta(container.Locale.Resolve("prompts.copied"))
			}
			return nil
		},
	}
	target.bind(cmd)
	cmd.Flags().BoolVarP(&copyCmd, "copy", "c", false, "Copy the command to the clipboard")
	return cmd
}

func newRunCommand(container *app.Container, con *console.Console) *cobra.Command {
	var target targetFlags
	cmd := &cobra.Command{
		Use:   "run [card]",
		Short: "Run a card's action (high risk asks for confirmation)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := target.resolve(con, args)
			if err != nil {
				return err
			}
			st, outcome, err := con.Execute(cmd.Context(), req)
			p := NewPresenter(cmd.OutOrStdout())
			p.Command(outcome.Command)
			if outcome.State == domain.ActionCancelled {
				p.Meta(container.Locale.Resolve("prompts.actionCancelled"))
				return nil
			}
			if err != nil {
				p.Error(st.ActionMeta)
				return reported(err)
			}
			p.Meta(st.ActionMeta)
			printResult(cmd.OutOrStdout(), outcome.Result)
			return nil
		},
	}
	target.bind(cmd)
	return cmd
}

func printResult(out io.Writer, result json.RawMessage) {
	if len(result) == 0 {
		return
	}
	fmt.Fprint(out, string(pretty.Pretty(result)))
}
