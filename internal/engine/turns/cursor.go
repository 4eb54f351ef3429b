// Package turns moves the turn cursor through an initiative order and
// manages the per-turn action budget.
package turns

import "github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"

// Direction is the way the cursor walks the order
type Direction int

// Cursor directions
const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Result is where the cursor landed
type Result struct {
	Index int

	// True only for a forward walk that passed the end of the order
	CrossedRoundBoundary bool

	// True when the walk passed either end of the order
	Wrapped bool
}

// Advance walks from the given index one step at a time, wrapping at either
// end, until it reaches an entry that is not defeated. When every entry is
// defeated it stays put. An empty order always yields index 0.
func Advance(order []*combat.Entry, from int, dir Direction) Result {
	n := len(order)
	if n == 0 {
		return Result{}
	}

	if dir != Backward {
		dir = Forward
	}
	from = clamp(from, n)

	idx := from
	wrapped := false
	for range n {
		idx += int(dir)
		switch {
		case idx >= n:
			idx = 0
			wrapped = true
		case idx < 0:
			idx = n - 1
			wrapped = true
		}

		if active(order[idx]) {
			return Result{
				Index:                idx,
				CrossedRoundBoundary: wrapped && dir == Forward,
				Wrapped:              wrapped,
			}
		}
	}

	return Result{Index: from}
}

// FirstActive returns the index of the first entry that is not defeated,
// or 0 when there is none
func FirstActive(order []*combat.Entry) int {
	for i, e := range order {
		if active(e) {
			return i
		}
	}
	return 0
}

// RewindRound applies the rewind rule: a backward wrap steps the round back
// by one, never below round 1
func RewindRound(round int, wrapped bool) int {
	if wrapped {
		round--
	}
	if round < 1 {
		return 1
	}
	return round
}

func active(e *combat.Entry) bool {
	return e != nil && !e.IsDefeated
}

func clamp(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
