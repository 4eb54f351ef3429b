package turns

import "github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"

// Default per-turn allotment
const (
	DefaultStandardActions = 1
	DefaultMovementActions = 1
	DefaultFreeActions     = 3
)

// DefaultBudget returns a fresh copy of the allotment granted at turn start.
// Custom per-character action types live with the character sheet, not here.
func DefaultBudget() combat.ActionBudget {
	return combat.ActionBudget{
		combat.ActionStandard: DefaultStandardActions,
		combat.ActionMovement: DefaultMovementActions,
		combat.ActionFree:     DefaultFreeActions,
	}
}

// NeedsBackfill reports whether an in-progress state's current entry is
// missing its budget, as in snapshots written before budgets were persisted
func NeedsBackfill(state *combat.State) bool {
	if state == nil || state.Status != combat.StatusInProgress {
		return false
	}
	current := state.Current()
	return current != nil && current.AvailableActions == nil
}

// Backfill grants the default budget to the current entry when it has none.
// Returns whether anything changed; applying it twice is a no-op.
func Backfill(state *combat.State) bool {
	if !NeedsBackfill(state) {
		return false
	}
	state.Current().AvailableActions = DefaultBudget()
	return true
}

// Spend removes count actions of a category, flooring at zero.
// Returns false when the budget has no such category or count is not positive.
func Spend(budget combat.ActionBudget, category combat.ActionCategory, count int) bool {
	remaining, ok := budget[category]
	if !ok || count <= 0 {
		return false
	}

	remaining -= count
	if remaining < 0 {
		remaining = 0
	}
	budget[category] = remaining
	return true
}
