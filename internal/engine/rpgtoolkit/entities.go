package rpgtoolkit

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
)

// Entity type names used as event sources and targets
const (
	EntityTypeEncounter = "encounter"
	EntityTypeCombatant = "combatant"
)

// CombatantEntity wraps combat.Entry to implement core.Entity
type CombatantEntity struct {
	*combat.Entry
}

// GetID returns the entry ID
func (c *CombatantEntity) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *CombatantEntity) GetType() string {
	return EntityTypeCombatant
}

// EncounterEntity identifies a whole encounter for rpg-toolkit
type EncounterEntity struct {
	ID string
}

// GetID returns the encounter ID
func (e *EncounterEntity) GetID() string {
	return e.ID
}

// GetType returns the entity type for rpg-toolkit
func (e *EncounterEntity) GetType() string {
	return EntityTypeEncounter
}

// WrapEntry converts an entry to a core.Entity. A nil entry yields nil.
func WrapEntry(entry *combat.Entry) core.Entity {
	if entry == nil {
		return nil
	}
	return &CombatantEntity{Entry: entry}
}

// WrapEncounter converts an encounter ID to a core.Entity
func WrapEncounter(encounterID string) core.Entity {
	return &EncounterEntity{ID: encounterID}
}

var (
	_ core.Entity = (*CombatantEntity)(nil)
	_ core.Entity = (*EncounterEntity)(nil)
)
