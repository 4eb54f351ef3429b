package rpgtoolkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
)

func TestCombatantEntity(t *testing.T) {
	entry := &combat.Entry{
		ID:   "combat-enemy-goblin",
		Kind: combat.KindEnemy,
	}

	entity := WrapEntry(entry)

	require.NotNil(t, entity)
	assert.Equal(t, "combat-enemy-goblin", entity.GetID())
	assert.Equal(t, "combatant", entity.GetType())
	assert.Same(t, entry, entity.(*CombatantEntity).Entry)
}

func TestEncounterEntity(t *testing.T) {
	entity := WrapEncounter("enc-42")

	assert.Equal(t, "enc-42", entity.GetID())
	assert.Equal(t, "encounter", entity.GetType())
}

func TestEntityWrappers(t *testing.T) {
	t.Run("nil entry wraps to nil", func(t *testing.T) {
		assert.Nil(t, WrapEntry(nil))
	})

	t.Run("combat event carries source and target", func(t *testing.T) {
		source := WrapEntry(&combat.Entry{ID: "combat-player-aria"})
		target := WrapEncounter("enc-42")

		event := NewCombatEvent(EventTurnStarted, source, target)

		assert.Equal(t, EventTurnStarted, event.Type())
		assert.Equal(t, "combat-player-aria", event.Source().GetID())
		assert.Equal(t, "enc-42", event.Target().GetID())
	})
}
