package domain

// FilterAll matches every risk level or group type.
const FilterAll = "all"

// FilterState is transient UI state selecting which groups and items are shown.
type FilterState struct {
	Risk      string `json:"risk"`
	GroupType string `json:"group_type"`
}

// DefaultFilterState shows everything.
func DefaultFilterState() FilterState {
	return FilterState{Risk: FilterAll, GroupType: FilterAll}
}

// IsDefault reports whether no filter is active.
func (s FilterState) IsDefault() bool {
	return s.riskOrAll() == FilterAll && s.groupOrAll() == FilterAll
}

// MatchesGroup compares against the raw group type.
func (s FilterState) MatchesGroup(g ResultGroup) bool {
	want := s.groupOrAll()
	return want == FilterAll || want == g.Type
}

// MatchesItem compares against the item risk, absent risk counting as low.
func (s FilterState) MatchesItem(i ResultItem) bool {
	want := s.riskOrAll()
	return want == FilterAll || want == i.Risk()
}

func (s FilterState) riskOrAll() string {
	if s.Risk == "" {
		return FilterAll
	}
	return s.Risk
}

func (s FilterState) groupOrAll() string {
	if s.GroupType == "" {
		return FilterAll
	}
	return s.GroupType
}
