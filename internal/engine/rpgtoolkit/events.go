package rpgtoolkit

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Event types published by the combat store
const (
	EventCombatStarted      = "combat.started"
	EventCombatEnded        = "combat.ended"
	EventInitiativeResolved = "combat.initiative.resolved"
	EventTurnStarted        = "combat.turn.started"
	EventRoundStarted       = "combat.round.started"
	EventEntryAdded         = "combat.entry.added"
	EventEntryRemoved       = "combat.entry.removed"
)

// NewCombatEvent builds a game event for the given source and target.
// Either entity may be nil.
func NewCombatEvent(eventType string, source, target core.Entity) events.Event {
	return events.NewGameEvent(eventType, source, target)
}
