package combat

import (
	"encoding/json"
	"strings"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

// MarshalSnapshot encodes the state as the persisted JSON snapshot
func MarshalSnapshot(state *State) (string, error) {
	if state == nil {
		return "", errors.InvalidArgument("state is required")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal combat snapshot")
	}
	return string(data), nil
}

// UnmarshalSnapshot decodes a persisted snapshot, repairing what Normalize can.
// Blank or unparseable payloads, and ones with an unknown status, decode to nil (no combat).
func UnmarshalSnapshot(raw string) *State {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil
	}

	state.Normalize()
	if !state.IsValid() {
		return nil
	}
	return &state
}
