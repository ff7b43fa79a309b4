package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/ports"
)

var (
	colorRed   = lipgloss.Color("#e53935")
	colorAmber = lipgloss.Color("#FFC107")
	colorGreen = lipgloss.Color("#8BC34A")
	colorMuted = lipgloss.Color("#8a8f98")
	colorTeal  = lipgloss.Color("#0f766e")
)

type styles struct {
	summary  lipgloss.Style
	group    lipgloss.Style
	title    lipgloss.Style
	subtitle lipgloss.Style
	chip     lipgloss.Style
	execute  lipgloss.Style
	meta     lipgloss.Style
	errText  lipgloss.Style
	bands    map[domain.RiskBand]lipgloss.Style
}

// Presenter draws views on a terminal. Colours are dropped automatically
// when out is not a TTY.
type Presenter struct {
	out io.Writer
	st  styles
}

// NewPresenter builds a Presenter bound to out.
func NewPresenter(out io.Writer) *Presenter {
	r := lipgloss.NewRenderer(out)
	return &Presenter{
		out: out,
		st: styles{
			summary:  r.NewStyle().Foreground(colorMuted),
			group:    r.NewStyle().Bold(true).Underline(true),
			title:    r.NewStyle().Bold(true),
			subtitle: r.NewStyle().Foreground(colorMuted),
			chip:     r.NewStyle().Foreground(colorMuted),
			execute:  r.NewStyle().Bold(true).Foreground(colorTeal),
			meta:     r.NewStyle().Italic(true),
			errText:  r.NewStyle().Foreground(colorRed),
			bands: map[domain.RiskBand]lipgloss.Style{
				domain.BandRed:   r.NewStyle().Foreground(colorRed).Bold(true),
				domain.BandAmber: r.NewStyle().Foreground(colorAmber),
				domain.BandGreen: r.NewStyle().Foreground(colorGreen),
			},
		},
	}
}

// View prints a full result view. Cards are numbered across groups so that
// `run N` and `:run N` can refer to them.
func (p *Presenter) View(v domain.View) {
	if v.Summary == "" && !v.Empty && len(v.Groups) == 0 {
		return
	}
	fmt.Fprintln(p.out, p.st.summary.Render(v.Summary))
	if v.Empty {
		fmt.Fprintln(p.out, v.EmptyText)
		return
	}
	n := 0
	for _, g := range v.Groups {
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, p.st.group.Render(g.Label))
		for _, c := range g.Cards {
			n++
			p.card(n, c)
		}
	}
}

func (p *Presenter) card(n int, c domain.Card) {
	fmt.Fprintf(p.out, "%3d. %s\n", n, p.st.title.Render(c.Title))
	if c.Subtitle != "" {
		fmt.Fprintf(p.out, "     %s\n", p.st.subtitle.Render(c.Subtitle))
	}
	band, ok := p.st.bands[c.RiskBand]
	if !ok {
		band = p.st.bands[domain.BandGreen]
	}
	chips := []string{band.Render("[" + c.RiskText + "]"), p.st.chip.Render("[" + c.ConfidenceText + "]")}
	if c.Action.ActionID != "" {
		chips = append(chips, p.st.execute.Render("> "+c.ExecuteLabel), p.st.chip.Render(c.Action.ActionID))
	}
	fmt.Fprintf(p.out, "     %s\n", strings.Join(chips, " "))
}

// Meta prints a status line when text is set.
func (p *Presenter) Meta(text string) {
	if text != "" {
		fmt.Fprintln(p.out, p.st.meta.Render(text))
	}
}

// Error prints an error line.
func (p *Presenter) Error(text string) {
	if text != "" {
		fmt.Fprintln(p.out, p.st.errText.Render(text))
	}
}

// Command prints a built command.
func (p *Presenter) Command(cmd string) {
	if cmd != "" {
		fmt.Fprintln(p.out, cmd)
	}
}

// Capabilities prints the feature overview.
func (p *Presenter) Capabilities(title string, cv domain.CapabilityView) {
	fmt.Fprintf(p.out, "%s  %s\n", p.st.title.Render(title), p.st.summary.Render(cv.Meta))
	for _, g := range cv.Groups {
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, p.st.group.Render(g.Label))
		for _, it := range g.Items {
			fmt.Fprintf(p.out, "  - %s %s\n", it.Text, p.st.bands[domain.BandGreen].Render("("+it.Badge+")"))
		}
	}
}

// History prints command records, most recent first.
func (p *Presenter) History(records []domain.CommandRecord, loc ports.LocaleProvider) {
	fmt.Fprintln(p.out, p.st.title.Render(loc.Resolve("historyTitle")))
	if len(records) == 0 {
		fmt.Fprintln(p.out, loc.Resolve("historyEmpty"))
		return
	}
	for i, rec := range records {
		fmt.Fprintf(p.out, "%3d. %s  %s\n", i+1, p.st.summary.Render(rec.IssuedAt.Local().Format(domain.TimestampFormat)), rec.Cmd)
	}
}

// Settings prints the flag table.
func (p *Presenter) Settings(s domain.Settings, loc ports.LocaleProvider) {
	fmt.Fprintln(p.out, p.st.title.Render(loc.Resolve("settingsTitle")))
	for _, name := range domain.KnownFlags {
		state := "off"
		if s.Flags[name] {
			state = "on"
		}
		fmt.Fprintf(p.out, "  %-20s %-4s %s\n", name, state, p.st.subtitle.Render(loc.Resolve("settings."+name)))
	}
}

// Doctor prints a health report.
func (p *Presenter) Doctor(report domain.HealthReport) {
	for _, check := range report.Checks {
		style := p.st.bands[domain.BandGreen]
		switch check.Status {
		case domain.HealthWarn:
			style = p.st.bands[domain.BandAmber]
		case domain.HealthError:
			style = p.st.bands[domain.BandRed]
		}
		fmt.Fprintf(p.out, "%s %s - %s\n", style.Render("["+strings.ToUpper(string(check.Status))+"]"), check.Name, check.Details)
	}
}
