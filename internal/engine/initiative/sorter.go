package initiative

import (
	"slices"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
)

// compare orders a before b when negative. Resolved initiative beats
// unresolved, higher values act first and ties fall back to kind priority
// (players, then NPCs, then enemies).
func compare(a, b *combat.Entry) int {
	if a.Initiative.Resolved != b.Initiative.Resolved {
		if a.Initiative.Resolved {
			return -1
		}
		return 1
	}

	if a.Initiative.Resolved && a.Initiative.Value != b.Initiative.Value {
		if a.Initiative.Value > b.Initiative.Value {
			return -1
		}
		return 1
	}

	return a.Kind.Priority() - b.Kind.Priority()
}

// Sort returns a new slice holding the entries in turn order.
// Equal entries keep their input order. Nil entries are dropped.
func Sort(entries []*combat.Entry) []*combat.Entry {
	out := make([]*combat.Entry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			out = append(out, e)
		}
	}

	slices.SortStableFunc(out, compare)
	return out
}

// Insert returns a new slice with entry placed at its rank.
// Existing entries keep their relative order; the new entry goes after
// any entry it ties with.
func Insert(order []*combat.Entry, entry *combat.Entry) []*combat.Entry {
	if entry == nil {
		return slices.Clone(order)
	}

	pos := len(order)
	for i, existing := range order {
		if existing != nil && compare(entry, existing) < 0 {
			pos = i
			break
		}
	}

	out := make([]*combat.Entry, 0, len(order)+1)
	out = append(out, order[:pos]...)
	out = append(out, entry)
	out = append(out, order[pos:]...)
	return out
}

// UnresolvedCount returns how many entries still wait on an initiative roll
func UnresolvedCount(entries []*combat.Entry) int {
	count := 0
	for _, e := range entries {
		if e != nil && !e.Initiative.Resolved {
			count++
		}
	}
	return count
}
