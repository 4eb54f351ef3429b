package combat

import "slices"

// Entry is one row in the initiative order
type Entry struct {
	// Namespaced by source kind, e.g. "combat-enemy-goblin-1"
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Kind        Kind       `json:"kind"`
	Initiative  Initiative `json:"initiative"`

	// Roster record this entry was built from. The tracker never writes back to it.
	SourceID string `json:"sourceId"`

	// Snapshotted at creation, changed only through explicit updates
	CurrentHealth *int `json:"currentHealth,omitempty"`
	MaxHealth     *int `json:"maxHealth,omitempty"`
	ArmorValue    *int `json:"armorValue,omitempty"`

	IsDefeated bool `json:"isDefeated"`

	// Set semantics, kept in insertion order for display
	Conditions []string `json:"conditions"`

	// Present once the entry's first turn has started
	AvailableActions ActionBudget `json:"availableActions,omitempty"`

	// Exactly one of these is set, matching Kind
	Player *PlayerDetails `json:"player,omitempty"`
	Enemy  *EnemyDetails  `json:"enemy,omitempty"`
	NPC    *NPCDetails    `json:"npc,omitempty"`
}

// PlayerDetails holds fields only meaningful for player characters
type PlayerDetails struct {
	PlayerName string `json:"playerName,omitempty"`
}

// EnemyDetails holds fields only meaningful for enemies
type EnemyDetails struct {
	ChallengeRating string `json:"challengeRating,omitempty"`
}

// NPCDetails holds fields only meaningful for allied NPCs
type NPCDetails struct {
	Role string `json:"role,omitempty"`
}

// GetID returns the entry ID
func (e *Entry) GetID() string {
	return e.ID
}

// GetType returns the entry kind as a string
func (e *Entry) GetType() string {
	return string(e.Kind)
}

// HasCondition reports whether the condition label is present
func (e *Entry) HasCondition(condition string) bool {
	return slices.Contains(e.Conditions, condition)
}

// AddCondition appends the condition unless it is already present.
// Returns false when nothing changed.
func (e *Entry) AddCondition(condition string) bool {
	if condition == "" || e.HasCondition(condition) {
		return false
	}
	e.Conditions = append(e.Conditions, condition)
	return true
}

// RemoveCondition deletes the condition. Returns false when it was absent.
func (e *Entry) RemoveCondition(condition string) bool {
	idx := slices.Index(e.Conditions, condition)
	if idx < 0 {
		return false
	}
	e.Conditions = slices.Delete(e.Conditions, idx, idx+1)
	return true
}

// SetConditions replaces the condition list, dropping blanks and repeats
func (e *Entry) SetConditions(conditions []string) {
	e.Conditions = dedupeConditions(conditions)
}

// Clone returns a deep copy of the entry
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}

	out := *e
	out.CurrentHealth = cloneInt(e.CurrentHealth)
	out.MaxHealth = cloneInt(e.MaxHealth)
	out.ArmorValue = cloneInt(e.ArmorValue)
	out.Conditions = dedupeConditions(e.Conditions)
	out.AvailableActions = e.AvailableActions.Clone()

	if e.Player != nil {
		p := *e.Player
		out.Player = &p
	}
	if e.Enemy != nil {
		en := *e.Enemy
		out.Enemy = &en
	}
	if e.NPC != nil {
		n := *e.NPC
		out.NPC = &n
	}

	return &out
}

// SameConditions compares two condition lists ignoring order
func SameConditions(a, b []string) bool {
	a = dedupeConditions(a)
	b = dedupeConditions(b)
	if len(a) != len(b) {
		return false
	}
	for _, c := range a {
		if !slices.Contains(b, c) {
			return false
		}
	}
	return true
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// dedupeConditions copies the list, dropping blanks and repeats
func dedupeConditions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		if c == "" || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}
