package combat

import (
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
)

// DispatchInput defines the request for applying an intent
type DispatchInput struct {
	Intent Intent
}

// DispatchOutput defines the response after applying an intent
type DispatchOutput struct {
	// Nil when no combat is active
	State *combat.State

	// False when the intent did not apply
	Changed bool
}

// HydrateOutput defines the response after loading the persisted snapshot
type HydrateOutput struct {
	State *combat.State

	// True when a usable snapshot was found
	Restored bool
}
