package domain

// RiskBand is the colour band of a risk badge.
type RiskBand string

const (
	BandRed   RiskBand = "red"
	BandAmber RiskBand = "amber"
	BandGreen RiskBand = "green"
)

// BandFor maps a risk level onto its badge colour.
func BandFor(risk string) RiskBand {
	switch risk {
	case RiskHigh:
		return BandRed
	case RiskMedium:
		return BandAmber
	default:
		return BandGreen
	}
}

// View is the full display tree for one render pass. A render replaces the
// previous View entirely.
type View struct {
	Summary   string
	Empty     bool
	EmptyText string
	Groups    []GroupView
}

// GroupView is one result container.
type GroupView struct {
	Type  string
	Label string
	Cards []Card
}

// Card is the display form of one ResultItem.
type Card struct {
	Title          string
	Subtitle       string
	RiskText       string
	RiskBand       RiskBand
	ConfidenceText string
	ExecuteLabel   string
	Action         ActionRequest
}

// CardCount returns the number of cards across all groups.
func (v View) CardCount() int {
	total := 0
	for _, g := range v.Groups {
		total += len(g.Cards)
	}
	return total
}

// Capability is one entry of the feature overview.
type Capability struct {
	Group string
	Key   string
}

// CapabilityGroupView is a localized capability section.
type CapabilityGroupView struct {
	Label string
	Items []CapabilityItemView
}

// CapabilityItemView is a localized capability row.
type CapabilityItemView struct {
	Text  string
	Badge string
}

// CapabilityView is the rendered feature overview.
type CapabilityView struct {
	Meta   string
	Groups []CapabilityGroupView
}
