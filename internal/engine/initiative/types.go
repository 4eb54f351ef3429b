package initiative

import "github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"

// Stats are the display and bookkeeping numbers copied onto an entry.
// Any of them may be unknown.
type Stats struct {
	CurrentHealth *int `json:"currentHealth,omitempty"`
	MaxHealth     *int `json:"maxHealth,omitempty"`
	ArmorValue    *int `json:"armorValue,omitempty"`
}

// EnemySource is an enemy record from the encounter roster
type EnemySource struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DexterityScore  int    `json:"dexterityScore"`
	ChallengeRating string `json:"challengeRating,omitempty"`
	Stats
}

// PlayerSource is a player character from the party roster
type PlayerSource struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PlayerName string `json:"playerName,omitempty"`
	Stats
}

// NPCSource is an allied NPC scoped to the encounter.
// Only NPCs with a combat statblock take part in initiative.
type NPCSource struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Role           string `json:"role,omitempty"`
	HasStatblock   bool   `json:"hasStatblock"`
	DexterityScore int    `json:"dexterityScore"`
	Stats
}

// BuildInput is the roster for one encounter
type BuildInput struct {
	Enemies []EnemySource  `json:"enemies"`
	Players []PlayerSource `json:"players"`
	NPCs    []NPCSource    `json:"npcs"`
}

// BuildOutput holds the entries in starting order
type BuildOutput struct {
	Entries []*combat.Entry
}

// BuildEntryInput holds exactly one source record
type BuildEntryInput struct {
	Enemy  *EnemySource
	Player *PlayerSource
	NPC    *NPCSource
}

// BuildEntryOutput holds the created entry
type BuildEntryOutput struct {
	Entry *combat.Entry
}
