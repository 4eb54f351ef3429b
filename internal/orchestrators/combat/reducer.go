package combat

import (
	"maps"
	"slices"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/engine/initiative"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/engine/turns"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
)

// Reduce applies an intent to a state and returns the next state.
//
// It never fails and never mutates its input. When the intent does not apply
// (wrong status, unknown entry ID, nothing to change) the same pointer is
// returned, so callers can detect a no-op with ==. A nil result means no
// combat is active.
func Reduce(state *combat.State, intent Intent) *combat.State {
	switch in := intent.(type) {
	case StartCombat:
		return startCombat(state, in)
	case EndCombat, *EndCombat:
		return nil
	case SetInitiative:
		return setInitiative(state, in)
	case NextTurn:
		return nextTurn(state)
	case PreviousTurn:
		return previousTurn(state)
	case UpdateEntry:
		return updateEntry(state, in)
	case AddEntry:
		return addEntry(state, in)
	case RemoveEntry:
		return removeEntry(state, in)
	case AddCondition:
		return editEntry(state, in.EntryID, func(e *combat.Entry) bool {
			return e.AddCondition(in.Condition)
		})
	case RemoveCondition:
		return editEntry(state, in.EntryID, func(e *combat.Entry) bool {
			return e.RemoveCondition(in.Condition)
		})
	case SpendAction:
		return editEntry(state, in.EntryID, func(e *combat.Entry) bool {
			return turns.Spend(e.AvailableActions, in.Category, in.Count)
		})
	case Restore:
		return restore(in.Snapshot)
	default:
		return reducePtr(state, intent)
	}
}

// reducePtr lets callers pass intents by pointer
func reducePtr(state *combat.State, intent Intent) *combat.State {
	switch in := intent.(type) {
	case *StartCombat:
		return startCombat(state, *in)
	case *SetInitiative:
		return setInitiative(state, *in)
	case *NextTurn:
		return nextTurn(state)
	case *PreviousTurn:
		return previousTurn(state)
	case *UpdateEntry:
		return updateEntry(state, *in)
	case *AddEntry:
		return addEntry(state, *in)
	case *RemoveEntry:
		return removeEntry(state, *in)
	case *AddCondition:
		return Reduce(state, *in)
	case *RemoveCondition:
		return Reduce(state, *in)
	case *SpendAction:
		return Reduce(state, *in)
	case *Restore:
		return restore(in.Snapshot)
	default:
		return state
	}
}

func startCombat(state *combat.State, in StartCombat) *combat.State {
	if state != nil {
		return state
	}

	order := make([]*combat.Entry, 0, len(in.InitiativeOrder))
	seen := make(map[string]struct{}, len(in.InitiativeOrder))
	for _, e := range in.InitiativeOrder {
		if e == nil || e.ID == "" {
			continue
		}
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		order = append(order, e.Clone())
	}

	next := &combat.State{
		EncounterID:      in.EncounterID,
		Status:           combat.StatusRollingInitiative,
		Round:            1,
		CurrentTurnIndex: 0,
		InitiativeOrder:  order,
	}

	// Nobody left to roll, e.g. an ambush with no players
	beginIfResolved(next)
	return next
}

func setInitiative(state *combat.State, in SetInitiative) *combat.State {
	if state == nil || state.IndexOf(in.EntryID) < 0 {
		return state
	}

	next := state.Clone()
	idx := next.IndexOf(in.EntryID)
	entry := next.InitiativeOrder[idx]

	if next.Status == combat.StatusInProgress {
		// Re-rank only this entry; everyone else keeps their slot
		acting := currentID(next)
		entry.Initiative = combat.Rolled(in.Value)
		rest := slices.Delete(next.InitiativeOrder, idx, idx+1)
		next.InitiativeOrder = initiative.Insert(rest, entry)
		relocate(next, acting)
		return next
	}

	entry.Initiative = combat.Rolled(in.Value)
	beginIfResolved(next)
	return next
}

func nextTurn(state *combat.State) *combat.State {
	if state == nil || state.Status != combat.StatusInProgress {
		return state
	}

	res := turns.Advance(state.InitiativeOrder, state.CurrentTurnIndex, turns.Forward)
	if res.Index == state.CurrentTurnIndex && !res.Wrapped {
		return state
	}

	next := state.Clone()
	next.CurrentTurnIndex = res.Index
	if res.CrossedRoundBoundary {
		next.Round++
	}
	next.Current().AvailableActions = turns.DefaultBudget()
	return next
}

func previousTurn(state *combat.State) *combat.State {
	if state == nil || state.Status != combat.StatusInProgress {
		return state
	}

	res := turns.Advance(state.InitiativeOrder, state.CurrentTurnIndex, turns.Backward)
	if res.Index == state.CurrentTurnIndex && !res.Wrapped {
		return state
	}

	next := state.Clone()
	next.CurrentTurnIndex = res.Index
	next.Round = turns.RewindRound(next.Round, res.Wrapped)
	return next
}

// updateEntry merges the patch; it is a no-op when nothing in it differs
func updateEntry(state *combat.State, in UpdateEntry) *combat.State {
	return editEntry(state, in.EntryID, func(e *combat.Entry) bool {
		p := in.Patch
		changed := false
		if p.DisplayName != nil && e.DisplayName != *p.DisplayName {
			e.DisplayName = *p.DisplayName
			changed = true
		}
		if p.CurrentHealth != nil && !sameInt(e.CurrentHealth, *p.CurrentHealth) {
			e.CurrentHealth = combat.IntPtr(*p.CurrentHealth)
			changed = true
		}
		if p.MaxHealth != nil && !sameInt(e.MaxHealth, *p.MaxHealth) {
			e.MaxHealth = combat.IntPtr(*p.MaxHealth)
			changed = true
		}
		if p.ArmorValue != nil && !sameInt(e.ArmorValue, *p.ArmorValue) {
			e.ArmorValue = combat.IntPtr(*p.ArmorValue)
			changed = true
		}
		if p.IsDefeated != nil && e.IsDefeated != *p.IsDefeated {
			e.IsDefeated = *p.IsDefeated
			changed = true
		}
		if p.Conditions != nil && !combat.SameConditions(e.Conditions, p.Conditions) {
			e.SetConditions(p.Conditions)
			changed = true
		}
		if p.AvailableActions != nil && !maps.Equal(e.AvailableActions, p.AvailableActions) {
			e.AvailableActions = p.AvailableActions.Clone()
			changed = true
		}
		return changed
	})
}

func sameInt(current *int, v int) bool {
	return current != nil && *current == v
}

// editEntry clones the state and applies fn to the named entry.
// Returns the original state when the entry is missing or fn reports no change.
func editEntry(state *combat.State, entryID string, fn func(*combat.Entry) bool) *combat.State {
	if state == nil || state.IndexOf(entryID) < 0 {
		return state
	}

	next := state.Clone()
	if !fn(next.Entry(entryID)) {
		return state
	}
	return next
}

func addEntry(state *combat.State, in AddEntry) *combat.State {
	if state == nil || in.Entry == nil || in.Entry.ID == "" || state.IndexOf(in.Entry.ID) >= 0 {
		return state
	}

	next := state.Clone()
	wasEmpty := len(next.InitiativeOrder) == 0
	acting := currentID(next)

	next.InitiativeOrder = initiative.Insert(next.InitiativeOrder, in.Entry.Clone())

	if next.Status == combat.StatusInProgress && wasEmpty {
		next.CurrentTurnIndex = turns.FirstActive(next.InitiativeOrder)
		startTurn(next)
		return next
	}

	relocate(next, acting)
	return next
}

func removeEntry(state *combat.State, in RemoveEntry) *combat.State {
	if state == nil {
		return state
	}
	removed := state.IndexOf(in.EntryID)
	if removed < 0 {
		return state
	}

	next := state.Clone()
	acting := currentID(state)
	next.InitiativeOrder = slices.Delete(next.InitiativeOrder, removed, removed+1)
	next.CurrentTurnIndex = max(0, min(next.CurrentTurnIndex, len(next.InitiativeOrder)-1))

	if next.Status == combat.StatusRollingInitiative {
		beginIfResolved(next)
		return next
	}

	if len(next.InitiativeOrder) > 0 && currentID(next) != acting {
		// The turn passes to whoever now holds the slot
		if current := next.Current(); current.IsDefeated {
			res := turns.Advance(next.InitiativeOrder, next.CurrentTurnIndex, turns.Forward)
			next.CurrentTurnIndex = res.Index
		}
		startTurn(next)
	}
	return next
}

func restore(snapshot *combat.State) *combat.State {
	if snapshot == nil || !snapshot.IsValid() {
		return nil
	}

	next := snapshot.Clone()
	turns.Backfill(next)
	return next
}

// beginIfResolved moves a rolling state to in progress once every roll is in.
// The order is sorted and the cursor reset to the top.
func beginIfResolved(state *combat.State) {
	if state.Status != combat.StatusRollingInitiative {
		return
	}
	if initiative.UnresolvedCount(state.InitiativeOrder) > 0 {
		return
	}

	state.InitiativeOrder = initiative.Sort(state.InitiativeOrder)
	state.Status = combat.StatusInProgress
	state.CurrentTurnIndex = turns.FirstActive(state.InitiativeOrder)
	startTurn(state)
}

// startTurn grants the current entry a fresh action budget
func startTurn(state *combat.State) {
	if current := state.Current(); current != nil {
		current.AvailableActions = turns.DefaultBudget()
	}
}

func currentID(state *combat.State) string {
	if current := state.Current(); current != nil {
		return current.ID
	}
	return ""
}

// relocate points the cursor back at the entry that was acting before the
// order changed shape
func relocate(state *combat.State, entryID string) {
	if idx := state.IndexOf(entryID); idx >= 0 {
		state.CurrentTurnIndex = idx
		return
	}
	state.CurrentTurnIndex = min(max(state.CurrentTurnIndex, 0), max(len(state.InitiativeOrder)-1, 0))
}
