package combat

import (
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
)

// Intent is a request to change the combat state.
// The set of intents is closed; see the types below.
type Intent interface {
	// Name is the wire name of the intent, e.g. "next_turn"
	Name() string

	isIntent()
}

// StartCombat begins rolling initiative for a freshly built order
type StartCombat struct {
	EncounterID     string
	InitiativeOrder []*combat.Entry
}

// EndCombat removes the combat entirely
type EndCombat struct{}

// SetInitiative resolves one entry's roll
type SetInitiative struct {
	EntryID string
	Value   int
}

// NextTurn moves the cursor forward to the next combatant still standing
type NextTurn struct{}

// PreviousTurn moves the cursor back, undoing a mistaken advance
type PreviousTurn struct{}

// UpdateEntry shallow-merges Patch into the named entry
type UpdateEntry struct {
	EntryID string
	Patch   EntryPatch
}

// EntryPatch lists the fields to overwrite. Nil fields are left alone.
type EntryPatch struct {
	DisplayName      *string
	CurrentHealth    *int
	MaxHealth        *int
	ArmorValue       *int
	IsDefeated       *bool
	Conditions       []string
	AvailableActions combat.ActionBudget
}

// AddEntry inserts a combatant at its initiative rank, e.g. a summoned creature
type AddEntry struct {
	Entry *combat.Entry
}

// RemoveEntry deletes a combatant from the order
type RemoveEntry struct {
	EntryID string
}

// AddCondition attaches a status label to an entry
type AddCondition struct {
	EntryID   string
	Condition string
}

// RemoveCondition detaches a status label from an entry
type RemoveCondition struct {
	EntryID   string
	Condition string
}

// SpendAction uses up actions from the entry's budget for this turn
type SpendAction struct {
	EntryID  string
	Category combat.ActionCategory
	Count    int
}

// Restore replaces the whole state with a snapshot. A nil snapshot means no combat.
type Restore struct {
	Snapshot *combat.State
}

// Intent names
const (
	IntentStartCombat     = "start_combat"
	IntentEndCombat       = "end_combat"
	IntentSetInitiative   = "set_initiative"
	IntentNextTurn        = "next_turn"
	IntentPreviousTurn    = "previous_turn"
	IntentUpdateEntry     = "update_entry"
	IntentAddEntry        = "add_entry"
	IntentRemoveEntry     = "remove_entry"
	IntentAddCondition    = "add_condition"
	IntentRemoveCondition = "remove_condition"
	IntentSpendAction     = "spend_action"
	IntentRestore         = "restore"
)

func (StartCombat) Name() string     { return IntentStartCombat }
func (EndCombat) Name() string       { return IntentEndCombat }
func (SetInitiative) Name() string   { return IntentSetInitiative }
func (NextTurn) Name() string        { return IntentNextTurn }
func (PreviousTurn) Name() string    { return IntentPreviousTurn }
func (UpdateEntry) Name() string     { return IntentUpdateEntry }
func (AddEntry) Name() string        { return IntentAddEntry }
func (RemoveEntry) Name() string     { return IntentRemoveEntry }
func (AddCondition) Name() string    { return IntentAddCondition }
func (RemoveCondition) Name() string { return IntentRemoveCondition }
func (SpendAction) Name() string     { return IntentSpendAction }
func (Restore) Name() string         { return IntentRestore }

func (StartCombat) isIntent()     {}
func (EndCombat) isIntent()       {}
func (SetInitiative) isIntent()   {}
func (NextTurn) isIntent()        {}
func (PreviousTurn) isIntent()    {}
func (UpdateEntry) isIntent()     {}
func (AddEntry) isIntent()        {}
func (RemoveEntry) isIntent()     {}
func (AddCondition) isIntent()    {}
func (RemoveCondition) isIntent() {}
func (SpendAction) isIntent()     {}
func (Restore) isIntent()         {}
