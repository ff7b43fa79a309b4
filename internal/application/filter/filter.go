// Package filter derives the visible subset of a payload.
package filter

import (
	"fmt"
	"strings"

	"github.com/doeshing/synora-ui/internal/domain"
)

// Apply keeps groups whose raw type matches, then items whose risk matches,
// and drops groups left empty. Relative order is preserved and the payload
// is never modified.
func Apply(p domain.ResultPayload, s domain.FilterState) []domain.ResultGroup {
	out := make([]domain.ResultGroup, 0, len(p.Groups))
	for _, g := range p.Groups {
		if !s.MatchesGroup(g) {
			continue
		}
		items := make([]domain.ResultItem, 0, len(g.Items))
		for _, it := range g.Items {
			if s.MatchesItem(it) {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, domain.ResultGroup{Type: g.Type, Items: items})
	}
	return out
}

// View wraps Apply, returning a payload that can be filtered again.
func View(p domain.ResultPayload, s domain.FilterState) domain.ResultPayload {
	return domain.ResultPayload{Query: p.Query, Groups: Apply(p, s)}
}

// ParseState validates user-supplied filter values. Blank values mean "all".
// Group types are free-form since filtering matches the raw type.
func ParseState(risk, groupType string) (domain.FilterState, error) {
	s := domain.DefaultFilterState()
	switch r := strings.ToLower(strings.TrimSpace(risk)); r {
	case "", domain.FilterAll:
	default:
		level, err := ParseRisk(r)
		if err != nil {
			return s, domain.NewError(domain.ErrKindValidation,
				fmt.Sprintf("risk filter must be all|low|medium|high, got %q", r), nil)
		}
		s.Risk = level
	}
	if gt := strings.TrimSpace(groupType); gt != "" {
		s.GroupType = gt
	}
	return s, nil
}

// ParseRisk normalizes a declared risk level to low, medium or high.
func ParseRisk(risk string) (string, error) {
	switch r := strings.ToLower(strings.TrimSpace(risk)); r {
	case domain.RiskLow, domain.RiskMedium, domain.RiskHigh:
		return r, nil
	default:
		return "", domain.NewError(domain.ErrKindValidation,
			fmt.Sprintf("risk must be low|medium|high, got %q", risk), nil)
	}
}
