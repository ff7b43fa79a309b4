// Package render projects a filtered payload into a display tree.
//
// Rendering is a pure function of (payload, filters, locale); presenters
// draw the resulting domain.View and replace whatever was shown before.
package render

import (
	"fmt"
	"strconv"

	"github.com/doeshing/synora-ui/internal/application/filter"
	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/ports"
)

// ConfidencePlaceholder is shown when an item has no confidence value.
const ConfidencePlaceholder = "-"

// Render filters p with s and builds the view.
func Render(p domain.ResultPayload, s domain.FilterState, loc ports.LocaleProvider) domain.View {
	groups := filter.Apply(p, s)

	view := domain.View{
		Summary: loc.Format("prompts.resultMeta", map[string]any{
			"query": p.Query,
			"count": len(groups),
		}),
	}
	if len(groups) == 0 {
		view.Empty = true
		view.EmptyText = loc.Resolve("prompts.resultEmpty")
		return view
	}

	view.Groups = make([]domain.GroupView, 0, len(groups))
	for _, g := range groups {
		gv := domain.GroupView{
			Type:  g.Type,
			Label: GroupLabel(g, loc),
			Cards: make([]domain.Card, 0, len(g.Items)),
		}
		for _, it := range g.Items {
			gv.Cards = append(gv.Cards, card(it, loc))
		}
		view.Groups = append(view.Groups, gv)
	}
	return view
}

// GroupLabel resolves the localized group name, falling back to "unknown".
func GroupLabel(g domain.ResultGroup, loc ports.LocaleProvider) string {
	return loc.Resolve("groupNames." + string(g.Kind()))
}

func card(it domain.ResultItem, loc ports.LocaleProvider) domain.Card {
	title := it.Title
	if title == "" {
		title = loc.Resolve("prompts.unnamed")
	}
	return domain.Card{
		Title:          title,
		Subtitle:       it.Subtitle,
		RiskText:       fmt.Sprintf("%s: %s", loc.Resolve("labels.risk"), RiskLabel(it.RiskLevel, loc)),
		RiskBand:       domain.BandFor(it.RiskLevel),
		ConfidenceText: fmt.Sprintf("%s: %s", loc.Resolve("labels.confidence"), ConfidenceText(it.Confidence)),
		ExecuteLabel:   loc.Resolve("labels.execute"),
		Action: domain.ActionRequest{
			ActionID:  it.ActionID,
			RiskLevel: it.Risk(),
		},
	}
}

// RiskLabel localizes a risk level; unrecognized levels read as low.
func RiskLabel(risk string, loc ports.LocaleProvider) string {
	switch risk {
	case domain.RiskLow, domain.RiskMedium, domain.RiskHigh:
		return loc.Resolve("riskOptions." + risk)
	default:
		return loc.Resolve("riskOptions." + domain.RiskLow)
	}
}

// ConfidenceText formats a confidence value or the placeholder.
func ConfidenceText(c *float64) string {
	if c == nil {
		return ConfidencePlaceholder
	}
	return strconv.FormatFloat(*c, 'f', -1, 64)
}
