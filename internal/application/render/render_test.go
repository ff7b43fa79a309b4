package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/synora-ui/internal/application/payload"
	"github.com/doeshing/synora-ui/internal/domain"
)

type stubLocale map[string]string

func (s stubLocale) Language() string { return "en" }

func (s stubLocale) Resolve(key string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return key
}

func (s stubLocale) Format(key string, vars map[string]any) string {
	out := s.Resolve(key)
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{"+k+"}", fmt.Sprint(v))
	}
	return out
}

func englishStub() stubLocale {
	return stubLocale{
		"prompts.resultMeta":      `query="{query}" | groups={count}`,
		"prompts.resultEmpty":     "No matching results. Try another query.",
		"prompts.unnamed":         "(Untitled)",
		"prompts.capabilityMeta":  "{count} features",
		"prompts.statusAvailable": "Available",
		"groupNames.software":     "Software",
		"groupNames.update":       "Update",
		"groupNames.unknown":      "Unknown",
		"riskOptions.low":         "Low",
		"riskOptions.medium":      "Medium",
		"riskOptions.high":        "High",
		"labels.risk":             "risk",
		"labels.confidence":       "conf",
		"labels.execute":          "Run",
		"capabilityGroups.ai":     "AI Capabilities",
	}
}

func TestRenderPowerToysScenario(t *testing.T) {
	p := payload.Normalize([]byte(`{"query":"PowerToys","groups":[{"type":"software","items":[{"title":"PowerToys","risk_level":"low","action_id":"software.show:111"}]}]}`))

	view := Render(p, domain.DefaultFilterState(), englishStub())

	assert.False(t, view.Empty)
	assert.Equal(t, `query="PowerToys" | groups=1`, view.Summary)
	require.Len(t, view.Groups, 1)
	assert.Equal(t, "Software", view.Groups[0].Label)
	require.Len(t, view.Groups[0].Cards, 1)

	card := view.Groups[0].Cards[0]
	assert.Equal(t, "PowerToys", card.Title)
	assert.Equal(t, "software.show:111", card.Action.ActionID)
	assert.Equal(t, domain.RiskLow, card.Action.RiskLevel)
	assert.Equal(t, domain.BandGreen, card.RiskBand)
	assert.Equal(t, "risk: Low", card.RiskText)
	assert.Equal(t, "conf: -", card.ConfidenceText)
	assert.Equal(t, "Run", card.ExecuteLabel)
}

func TestRenderEmptyStateWhenFilterMatchesNothing(t *testing.T) {
	p := domain.ResultPayload{Query: "git", Groups: []domain.ResultGroup{
		{Type: "software", Items: []domain.ResultItem{{Title: "Git", RiskLevel: "low"}, {Title: "Git LFS", RiskLevel: "medium"}}},
	}}

	view := Render(p, domain.FilterState{Risk: domain.RiskHigh, GroupType: domain.FilterAll}, englishStub())

	assert.True(t, view.Empty)
	assert.Empty(t, view.Groups)
	assert.Equal(t, "No matching results. Try another query.", view.EmptyText)
	assert.Equal(t, `query="git" | groups=0`, view.Summary)
}

func TestRenderPlaceholdersAndBands(t *testing.T) {
	conf := 72.5
	p := domain.ResultPayload{Groups: []domain.ResultGroup{
		{Type: "mystery", Items: []domain.ResultItem{
			{RiskLevel: "high", Confidence: &conf, ActionID: "software.uninstall:1"},
			{Title: "Medium thing", RiskLevel: "medium"},
			{Title: "Critical?", RiskLevel: "critical"},
		}},
	}}

	view := Render(p, domain.DefaultFilterState(), englishStub())
	require.Len(t, view.Groups, 1)
	assert.Equal(t, "Unknown", view.Groups[0].Label)

	cards := view.Groups[0].Cards
	require.Len(t, cards, 3)
	assert.Equal(t, "(Untitled)", cards[0].Title)
	assert.Equal(t, domain.BandRed, cards[0].RiskBand)
	assert.Equal(t, "conf: 72.5", cards[0].ConfidenceText)
	assert.Equal(t, domain.RiskHigh, cards[0].Action.RiskLevel)

	assert.Equal(t, domain.BandAmber, cards[1].RiskBand)
	assert.Equal(t, domain.BandGreen, cards[2].RiskBand)
	assert.Equal(t, "risk: Low", cards[2].RiskText, "unknown levels display as low")
}

func TestRenderCapabilities(t *testing.T) {
	view := RenderCapabilities(Capabilities, englishStub())

	assert.Equal(t, "15 features", view.Meta)
	require.Len(t, view.Groups, 5)
	assert.Equal(t, "capabilityGroups.operations", view.Groups[0].Label)
	assert.Equal(t, "AI Capabilities", view.Groups[2].Label)

	total := 0
	for _, g := range view.Groups {
		total += len(g.Items)
		for _, it := range g.Items {
			assert.Equal(t, "Available", it.Badge)
		}
	}
	assert.Equal(t, len(Capabilities), total)
}
