// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
)

// EntryBuilder provides a fluent interface for building test Entry instances
type EntryBuilder struct {
	entry *combat.Entry
}

// NewEntryBuilder creates a new builder for an enemy with minimal defaults
func NewEntryBuilder(id string) *EntryBuilder {
	return &EntryBuilder{
		entry: &combat.Entry{
			ID:          id,
			DisplayName: id,
			Kind:        combat.KindEnemy,
			Initiative:  combat.Unresolved(),
			SourceID:    id,
			Conditions:  []string{},
			Enemy:       &combat.EnemyDetails{},
		},
	}
}

// WithName sets the display name
func (b *EntryBuilder) WithName(name string) *EntryBuilder {
	b.entry.DisplayName = name
	return b
}

// AsPlayer marks the entry as a player character
func (b *EntryBuilder) AsPlayer(playerName string) *EntryBuilder {
	b.entry.Kind = combat.KindPlayer
	b.entry.Player = &combat.PlayerDetails{PlayerName: playerName}
	b.entry.Enemy = nil
	b.entry.NPC = nil
	return b
}

// AsNPC marks the entry as an allied NPC
func (b *EntryBuilder) AsNPC(role string) *EntryBuilder {
	b.entry.Kind = combat.KindNPC
	b.entry.NPC = &combat.NPCDetails{Role: role}
	b.entry.Player = nil
	b.entry.Enemy = nil
	return b
}

// WithInitiative resolves the entry's initiative
func (b *EntryBuilder) WithInitiative(value int) *EntryBuilder {
	b.entry.Initiative = combat.Rolled(value)
	return b
}

// WithHealth sets current and max health
func (b *EntryBuilder) WithHealth(current, maxHealth int) *EntryBuilder {
	b.entry.CurrentHealth = combat.IntPtr(current)
	b.entry.MaxHealth = combat.IntPtr(maxHealth)
	return b
}

// WithArmor sets the armor value
func (b *EntryBuilder) WithArmor(armor int) *EntryBuilder {
	b.entry.ArmorValue = combat.IntPtr(armor)
	return b
}

// Defeated marks the entry as out of the fight
func (b *EntryBuilder) Defeated() *EntryBuilder {
	b.entry.IsDefeated = true
	return b
}

// WithConditions sets the condition labels
func (b *EntryBuilder) WithConditions(conditions ...string) *EntryBuilder {
	b.entry.Conditions = append([]string{}, conditions...)
	return b
}

// WithBudget sets the remaining actions
func (b *EntryBuilder) WithBudget(budget combat.ActionBudget) *EntryBuilder {
	b.entry.AvailableActions = budget
	return b
}

// Build returns the built entry
func (b *EntryBuilder) Build() *combat.Entry {
	return b.entry
}

// StateBuilder provides a fluent interface for building test State instances
type StateBuilder struct {
	state *combat.State
}

// NewStateBuilder creates an in-progress state at round 1 with an empty order
func NewStateBuilder() *StateBuilder {
	return &StateBuilder{
		state: &combat.State{
			EncounterID:     "encounter-test-001",
			Status:          combat.StatusInProgress,
			Round:           1,
			InitiativeOrder: []*combat.Entry{},
		},
	}
}

// WithEncounterID sets the encounter ID
func (b *StateBuilder) WithEncounterID(id string) *StateBuilder {
	b.state.EncounterID = id
	return b
}

// Rolling puts the state in the initiative rolling phase
func (b *StateBuilder) Rolling() *StateBuilder {
	b.state.Status = combat.StatusRollingInitiative
	return b
}

// WithRound sets the round
func (b *StateBuilder) WithRound(round int) *StateBuilder {
	b.state.Round = round
	return b
}

// WithTurn sets the current turn index
func (b *StateBuilder) WithTurn(index int) *StateBuilder {
	b.state.CurrentTurnIndex = index
	return b
}

// WithEntries appends entries to the order as given, without sorting
func (b *StateBuilder) WithEntries(entries ...*combat.Entry) *StateBuilder {
	b.state.InitiativeOrder = append(b.state.InitiativeOrder, entries...)
	return b
}

// Build returns the built state
func (b *StateBuilder) Build() *combat.State {
	return b.state
}
