package domain

// Session is the per-conversation state. It is owned by exactly one session
// id and mutated only under the session manager's lock, one turn at a time.
type Session struct {
	// Step is the current dialog state.
	Step Step `json:"step"`

	// Preferences collected so far in the funnel.
	Preferences Preferences `json:"preferences"`

	// History is a stack of shortlists, append-only except for an explicit
	// "go back" pop. Shortlist is always an alias of the top entry.
	History [][]Product `json:"history,omitempty"`

	// Shortlist is the most recent recommendation set, at most three items,
	// ordered by the selected sort key.
	Shortlist []Product `json:"shortlist,omitempty"`

	// Selected is the product chosen at the select step, if any.
	Selected *Product `json:"selected,omitempty"`

	// Cart holds products added so far. Duplicates are allowed.
	Cart []Product `json:"cart,omitempty"`
}

// NewSession creates a session at the top of the funnel.
func NewSession() *Session {
	return &Session{Step: StepCategory}
}

// Clone returns a deep copy so callers can mutate freely without aliasing
// stored state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	next := *s
	if s.Preferences.Budget != nil {
		b := *s.Preferences.Budget
		next.Preferences.Budget = &b
	}
	if s.History != nil {
		next.History = make([][]Product, len(s.History))
		for i, list := range s.History {
			next.History[i] = append([]Product(nil), list...)
		}
	}
	next.Shortlist = append([]Product(nil), s.Shortlist...)
	if len(next.History) > 0 {
		next.Shortlist = next.History[len(next.History)-1]
	}
	if s.Selected != nil {
		sel := *s.Selected
		next.Selected = &sel
	}
	next.Cart = append([]Product(nil), s.Cart...)
	return &next
}

// PushShortlist appends items to the history stack and realigns Shortlist
// with the new top.
func (s *Session) PushShortlist(items []Product) {
	s.History = append(s.History, items)
	s.Shortlist = items
}

// PopShortlist removes the top of the history stack when there is a previous
// entry to return to. It reports whether a pop happened.
func (s *Session) PopShortlist() bool {
	if len(s.History) < 2 {
		return false
	}
	s.History = s.History[:len(s.History)-1]
	s.Shortlist = s.History[len(s.History)-1]
	return true
}

// ClearPreferences rewinds the funnel without touching history or cart.
// Used by "explore more" and the reset keyword.
func (s *Session) ClearPreferences() {
	s.Preferences = Preferences{}
	s.Step = StepCategory
}

// Reset clears preferences and history and rewinds to the top of the funnel.
// Shortlist goes with the history: it must stay an alias of the stack top.
// Used by "stop".
func (s *Session) Reset() {
	s.Preferences = Preferences{}
	s.History = nil
	s.Shortlist = nil
	s.Step = StepCategory
}

// ClampStep rewinds Step when it has outrun the collected preferences.
// A later funnel field may only be set once the preceding one is; sessions
// rebuilt from a client-echoed context can violate that, and the budget and
// sort handlers rely on it.
func (s *Session) ClampStep() {
	reached := StepFinalize
	switch {
	case s.Preferences.Category == "":
		reached = StepCategory
	case s.Preferences.Brand == "":
		reached = StepBrand
	case s.Preferences.Budget == nil:
		reached = StepBudget
	case s.Preferences.Sort == "":
		reached = StepSort
	}
	if stepIndex(s.Step) > stepIndex(reached) {
		s.Step = reached
	}
}

// Checkout empties the whole session after a finalized order.
func (s *Session) Checkout() {
	s.Reset()
	s.Cart = nil
	s.Selected = nil
}
