package combat

// State is the whole tracker's externally visible state.
// A nil *State means no combat is active.
type State struct {
	EncounterID      string   `json:"encounterId"`
	Status           Status   `json:"status"`
	Round            int      `json:"round"`
	CurrentTurnIndex int      `json:"currentTurnIndex"`
	InitiativeOrder  []*Entry `json:"initiativeOrder"`
}

// Clone returns a deep copy of the state
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}

	out := *s
	out.InitiativeOrder = make([]*Entry, len(s.InitiativeOrder))
	for i, e := range s.InitiativeOrder {
		out.InitiativeOrder[i] = e.Clone()
	}
	return &out
}

// Current returns the entry whose turn it is, or nil for an empty order
func (s *State) Current() *Entry {
	if s == nil || s.CurrentTurnIndex < 0 || s.CurrentTurnIndex >= len(s.InitiativeOrder) {
		return nil
	}
	return s.InitiativeOrder[s.CurrentTurnIndex]
}

// IndexOf returns the position of the entry with the given ID, or -1
func (s *State) IndexOf(entryID string) int {
	if s == nil {
		return -1
	}
	for i, e := range s.InitiativeOrder {
		if e.ID == entryID {
			return i
		}
	}
	return -1
}

// Entry returns the entry with the given ID, or nil
func (s *State) Entry(entryID string) *Entry {
	idx := s.IndexOf(entryID)
	if idx < 0 {
		return nil
	}
	return s.InitiativeOrder[idx]
}

// Normalize repairs what a best-effort restore can: a round below 1, nil or
// blank entries, repeated IDs (later copies are dropped), repeated conditions
// and a turn index outside the order. Status is left for IsValid to judge.
func (s *State) Normalize() {
	if s == nil {
		return
	}
	s.Round = max(s.Round, 1)

	seen := make(map[string]struct{}, len(s.InitiativeOrder))
	order := make([]*Entry, 0, len(s.InitiativeOrder))
	for _, e := range s.InitiativeOrder {
		if e == nil || e.ID == "" {
			continue
		}
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		e.Conditions = dedupeConditions(e.Conditions)
		order = append(order, e)
	}
	s.InitiativeOrder = order

	s.CurrentTurnIndex = max(0, min(s.CurrentTurnIndex, len(order)-1))
}

// IsValid checks the structural invariants a restored snapshot must meet:
// known status, positive round, unique non-empty IDs and an index inside the order.
func (s *State) IsValid() bool {
	if s == nil || !s.Status.IsValid() || s.Round < 1 {
		return false
	}

	seen := make(map[string]struct{}, len(s.InitiativeOrder))
	for _, e := range s.InitiativeOrder {
		if e == nil || e.ID == "" {
			return false
		}
		if _, dup := seen[e.ID]; dup {
			return false
		}
		seen[e.ID] = struct{}{}
	}

	if len(s.InitiativeOrder) == 0 {
		return s.CurrentTurnIndex == 0
	}
	return s.CurrentTurnIndex >= 0 && s.CurrentTurnIndex < len(s.InitiativeOrder)
}
