package testutils

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/testutils/builders"
)

// Fixture IDs shared across tests
const (
	TestSessionID   = "session-test-001"
	TestEncounterID = "encounter-test-001"
)

// CreateTestSkirmish creates an in-progress fight with three combatants:
// a goblin (18), a player (15) and a guard NPC (12). The goblin is acting.
func CreateTestSkirmish() *combat.State {
	return builders.NewStateBuilder().
		WithEncounterID(TestEncounterID).
		WithEntries(
			builders.NewEntryBuilder("combat-enemy-goblin").
				WithName("Goblin").
				WithInitiative(18).
				WithHealth(7, 7).
				WithArmor(15).
				WithBudget(combat.ActionBudget{
					combat.ActionStandard: 1,
					combat.ActionMovement: 1,
					combat.ActionFree:     3,
				}).
				Build(),
			builders.NewEntryBuilder("combat-player-aria").
				WithName("Aria").
				AsPlayer("sam").
				WithInitiative(15).
				Build(),
			builders.NewEntryBuilder("combat-npc-guard").
				WithName("Guard").
				AsNPC("ally").
				WithInitiative(12).
				WithHealth(11, 11).
				Build(),
		).
		Build()
}

// CreateTestRollingOrder creates a freshly started fight where only the
// player still needs to roll
func CreateTestRollingOrder() *combat.State {
	return builders.NewStateBuilder().
		WithEncounterID(TestEncounterID).
		Rolling().
		WithEntries(
			builders.NewEntryBuilder("combat-enemy-goblin").WithInitiative(18).Build(),
			builders.NewEntryBuilder("combat-npc-guard").AsNPC("ally").WithInitiative(12).Build(),
			builders.NewEntryBuilder("combat-player-aria").AsPlayer("sam").Build(),
		).
		Build()
}

// SequenceRoller returns canned dice results in order, for deterministic tests.
// It fails once the sequence is exhausted.
type SequenceRoller struct {
	mu    sync.Mutex
	rolls []int
	calls []int
}

// NewSequenceRoller creates a roller that yields the given results
func NewSequenceRoller(rolls ...int) *SequenceRoller {
	return &SequenceRoller{rolls: rolls}
}

// Roll returns the next canned result, ignoring size
func (r *SequenceRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, size)
	if len(r.rolls) == 0 {
		return 0, fmt.Errorf("sequence roller exhausted after %d rolls", len(r.calls)-1)
	}
	next := r.rolls[0]
	r.rolls = r.rolls[1:]
	return next, nil
}

// RollN returns the next count canned results
func (r *SequenceRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for range count {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Sizes returns the die sizes requested so far
func (r *SequenceRoller) Sizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]int(nil), r.calls...)
}

var _ dice.Roller = (*SequenceRoller)(nil)
