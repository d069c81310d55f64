package search

// Phase marks where a search state sits in its lifecycle.
type Phase int

const (
	// PhaseNew is the seed state; nothing has been fetched yet.
	PhaseNew Phase = iota

	// PhaseHasItems means the state holds a non-empty page.
	PhaseHasItems

	// PhaseDone is terminal: the last page computed was empty.
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNew:
		return "new"
	case PhaseHasItems:
		return "has_items"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// State is one step of a search. States are values; each transition builds
// a new one and never shares the Items backing array with its predecessor.
type State struct {
	// SearchTerm is fixed for the lifetime of a search.
	SearchTerm string

	// PageNumber is the number of pages computed so far.
	PageNumber int

	// Items is the current page. Empty for the seed and the terminal state.
	Items []string

	Phase Phase
}

// NewState returns the seed state for term.
func NewState(term string) State {
	return State{
		SearchTerm: term,
		Phase:      PhaseNew,
	}
}

// with returns a copy of s with the page fields replaced.
func (s State) with(pageNumber int, items []string, phase Phase) State {
	s.PageNumber = pageNumber
	s.Items = items
	s.Phase = phase
	return s
}

// Result is an element of a search stream: StreamStarting or PageReady.
type Result interface {
	// Term returns the search term the result belongs to.
	Term() string

	isResult()
}

// StreamStarting is always the first result of a stream.
type StreamStarting struct {
	SearchTerm string
}

// Term implements Result.
func (r StreamStarting) Term() string { return r.SearchTerm }

func (StreamStarting) isResult() {}

// PageReady carries one non-empty page of matches.
type PageReady struct {
	SearchTerm string
	PageNumber int
	Items      []string
}

// Term implements Result.
func (r PageReady) Term() string { return r.SearchTerm }

func (PageReady) isResult() {}
