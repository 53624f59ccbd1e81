package model

// SearchItem is what the keyword matcher evaluates. An empty Tooltip means
// the item has none.
type SearchItem struct {
	ID      string
	Label   string
	Tooltip string
	Enabled bool
}

// Section is a rank bucket for displaying results. Lower sections are
// shown first.
type Section int

const (
	SectionHistory Section = iota
	SectionStart
	SectionOrdered
	SectionUnordered
	SectionTooltip
	SectionMixed
)

func (s Section) String() string {
	switch s {
	case SectionHistory:
		return "history"
	case SectionStart:
		return "start"
	case SectionOrdered:
		return "ordered"
	case SectionUnordered:
		return "unordered"
	case SectionTooltip:
		return "tooltip"
	case SectionMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

type MatchResult struct {
	Action  Action
	Section Section
}
