// Package combat holds the combat tracker's data model: the initiative order,
// its entries and the snapshot format persisted between reloads.
package combat

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind identifies which roster a combatant came from
type Kind string

// Combatant kinds
const (
	KindPlayer Kind = "player"
	KindNPC    Kind = "npc"
	KindEnemy  Kind = "enemy"
)

// Priority returns the tie-break rank of the kind. Lower acts first.
func (k Kind) Priority() int {
	switch k {
	case KindPlayer:
		return 0
	case KindNPC:
		return 1
	case KindEnemy:
		return 2
	default:
		return 3
	}
}

// IsValid reports whether k is one of the known kinds
func (k Kind) IsValid() bool {
	switch k {
	case KindPlayer, KindNPC, KindEnemy:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// Status is the lifecycle stage of an active combat.
// An ended combat has no State at all.
type Status string

// Combat statuses
const (
	StatusRollingInitiative Status = "rolling_initiative"
	StatusInProgress        Status = "in_progress"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	return s == StatusRollingInitiative || s == StatusInProgress
}

// ActionCategory names one of the universal per-turn action pools
type ActionCategory string

// Action categories tracked by the engine
const (
	ActionStandard ActionCategory = "standard"
	ActionMovement ActionCategory = "movement"
	ActionFree     ActionCategory = "free"
)

// ActionBudget maps an action category to the count remaining this turn.
// A nil budget means none has been recorded for the entry yet.
type ActionBudget map[ActionCategory]int

// Clone returns a copy of the budget, preserving nil
func (b ActionBudget) Clone() ActionBudget {
	if b == nil {
		return nil
	}
	out := make(ActionBudget, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Initiative is an initiative value that may not have been rolled yet.
// It encodes to JSON as a number, or null while unresolved.
type Initiative struct {
	Value    int
	Resolved bool
}

// Unresolved returns an initiative with no roll
func Unresolved() Initiative {
	return Initiative{}
}

// Rolled returns a resolved initiative with the given value
func Rolled(value int) Initiative {
	return Initiative{Value: value, Resolved: true}
}

// String renders the value, or "-" when unresolved
func (i Initiative) String() string {
	if !i.Resolved {
		return "-"
	}
	return strconv.Itoa(i.Value)
}

// MarshalJSON implements json.Marshaler
func (i Initiative) MarshalJSON() ([]byte, error) {
	if !i.Resolved {
		return []byte("null"), nil
	}
	return json.Marshal(i.Value)
}

// UnmarshalJSON implements json.Unmarshaler
func (i *Initiative) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*i = Unresolved()
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*i = Rolled(v)
	return nil
}
