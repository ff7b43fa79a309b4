// Package domain defines the core entities of the synora result console.
//
// The types in this file describe a search-result payload as produced by
// `synora ui search --json`. Payloads arrive untrusted; the payload package
// normalizes them into these shapes so that filter and render code can use
// them without further checks.
package domain

// Risk levels declared by the search backend on each item.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// GroupKind is the normalized display category of a result group.
type GroupKind string

const (
	GroupSoftware GroupKind = "software"
	GroupSource   GroupKind = "source"
	GroupUpdate   GroupKind = "update"
	GroupDownload GroupKind = "download"
	GroupAI       GroupKind = "ai"
	GroupUnknown  GroupKind = "unknown"
)

// KnownGroupKinds lists the recognized group types in display order.
var KnownGroupKinds = []GroupKind{GroupSoftware, GroupSource, GroupUpdate, GroupDownload, GroupAI}

// ResultPayload is a normalized search result. It is replaced wholesale and
// never partially mutated.
type ResultPayload struct {
	Query  string        `json:"query"`
	Groups []ResultGroup `json:"groups"`
}

// ResultGroup keeps the raw type string; filtering matches on it verbatim.
type ResultGroup struct {
	Type  string       `json:"type,omitempty"`
	Items []ResultItem `json:"items"`
}

// ResultItem is a single actionable entry.
type ResultItem struct {
	Title      string   `json:"title,omitempty"`
	Subtitle   string   `json:"subtitle,omitempty"`
	RiskLevel  string   `json:"risk_level,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	ActionID   string   `json:"action_id,omitempty"`
}

// Kind maps the raw group type onto a known display category.
func (g ResultGroup) Kind() GroupKind {
	for _, kind := range KnownGroupKinds {
		if string(kind) == g.Type {
			return kind
		}
	}
	return GroupUnknown
}

// Risk returns the declared risk level, defaulting to low when absent.
func (i ResultItem) Risk() string {
	if i.RiskLevel == "" {
		return RiskLow
	}
	return i.RiskLevel
}

// Executable reports whether the item carries an action identifier.
func (i ResultItem) Executable() bool {
	return i.ActionID != ""
}

// RequiresConfirmation reports whether a risk level is gated behind the
// confirmation prompt.
func RequiresConfirmation(risk string) bool {
	return risk == RiskHigh
}

// ItemCount returns the total number of items across groups.
func (p ResultPayload) ItemCount() int {
	total := 0
	for _, g := range p.Groups {
		total += len(g.Items)
	}
	return total
}
