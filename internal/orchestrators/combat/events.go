package combat

import (
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
)

// diffEvents derives the game events implied by a state change.
// Entities attached to events are copies and safe to hold on to.
func diffEvents(prev, next *combat.State) []events.Event {
	switch {
	case prev == nil && next == nil:
		return nil
	case next == nil:
		return []events.Event{
			rpgtoolkit.NewCombatEvent(rpgtoolkit.EventCombatEnded, rpgtoolkit.WrapEncounter(prev.EncounterID), nil),
		}
	}

	encounter := rpgtoolkit.WrapEncounter(next.EncounterID)
	var out []events.Event

	if prev == nil {
		out = append(out, rpgtoolkit.NewCombatEvent(rpgtoolkit.EventCombatStarted, encounter, nil))
	} else {
		for _, e := range next.InitiativeOrder {
			if prev.IndexOf(e.ID) < 0 {
				out = append(out, rpgtoolkit.NewCombatEvent(rpgtoolkit.EventEntryAdded, encounter, rpgtoolkit.WrapEntry(e.Clone())))
			}
		}
		for _, e := range prev.InitiativeOrder {
			if next.IndexOf(e.ID) < 0 {
				out = append(out, rpgtoolkit.NewCombatEvent(rpgtoolkit.EventEntryRemoved, encounter, rpgtoolkit.WrapEntry(e.Clone())))
			}
		}
	}

	if next.Status != combat.StatusInProgress {
		return out
	}

	began := prev == nil || prev.Status != combat.StatusInProgress
	if began {
		out = append(out,
			rpgtoolkit.NewCombatEvent(rpgtoolkit.EventInitiativeResolved, encounter, nil),
			rpgtoolkit.NewCombatEvent(rpgtoolkit.EventRoundStarted, encounter, nil),
		)
	} else if next.Round > prev.Round {
		out = append(out, rpgtoolkit.NewCombatEvent(rpgtoolkit.EventRoundStarted, encounter, nil))
	}

	current := next.Current()
	if current == nil {
		return out
	}
	if began || next.Round != prev.Round || currentID(prev) != current.ID {
		out = append(out, rpgtoolkit.NewCombatEvent(rpgtoolkit.EventTurnStarted, rpgtoolkit.WrapEntry(current.Clone()), encounter))
	}

	return out
}

func isRestore(intent Intent) bool {
	switch intent.(type) {
	case Restore, *Restore:
		return true
	}
	return false
}
