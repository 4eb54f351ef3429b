package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
)

// printer renders tracker output for humans or as JSON
type printer struct {
	w        io.Writer
	jsonMode bool
}

func newPrinter(w io.Writer, jsonMode bool) printer {
	return printer{w: w, jsonMode: jsonMode}
}

func (p printer) notef(format string, args ...any) {
	if p.jsonMode {
		return
	}
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

// announce prints round and turn changes as the store publishes them
func (p printer) announce(bus events.EventBus) {
	bus.SubscribeFunc(rpgtoolkit.EventRoundStarted, 0, func(_ context.Context, _ events.Event) error {
		p.notef("=== New round ===")
		return nil
	})
	bus.SubscribeFunc(rpgtoolkit.EventTurnStarted, 0, func(_ context.Context, e events.Event) error {
		if c, ok := e.Source().(*rpgtoolkit.CombatantEntity); ok {
			p.notef(">>> %s's turn", c.DisplayName)
		}
		return nil
	})
	bus.SubscribeFunc(rpgtoolkit.EventCombatEnded, 0, func(_ context.Context, _ events.Event) error {
		p.notef("Combat ended")
		return nil
	})
}

func (p printer) state(state *combat.State) error {
	if p.jsonMode {
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal state: %w", err)
		}
		_, err = fmt.Fprintln(p.w, string(data))
		return err
	}

	if state == nil {
		_, err := fmt.Fprintln(p.w, "No combat in progress")
		return err
	}

	header := "Round %d"
	if state.Status == combat.StatusRollingInitiative {
		header = "Rolling initiative (round %d)"
	}
	_, _ = fmt.Fprintf(p.w, "Encounter: %s\n"+header+"\n\n", state.EncounterID, state.Round)

	for i, e := range state.InitiativeOrder {
		marker := "  "
		if state.Status == combat.StatusInProgress && i == state.CurrentTurnIndex {
			marker = "->"
		}
		_, _ = fmt.Fprintf(p.w, "%s %2d. %-24s %-6s init %-3s%s\n",
			marker, i+1, e.DisplayName, e.Kind, e.Initiative, details(e))
	}

	if current := state.Current(); current != nil && state.Status == combat.StatusInProgress {
		_, _ = fmt.Fprintf(p.w, "\nActions left for %s: %s\n", current.DisplayName, budget(current.AvailableActions))
	}
	return nil
}

func details(e *combat.Entry) string {
	var parts []string
	if e.CurrentHealth != nil {
		hp := fmt.Sprintf("hp %d", *e.CurrentHealth)
		if e.MaxHealth != nil {
			hp += fmt.Sprintf("/%d", *e.MaxHealth)
		}
		parts = append(parts, hp)
	}
	if e.ArmorValue != nil {
		parts = append(parts, fmt.Sprintf("ac %d", *e.ArmorValue))
	}
	if len(e.Conditions) > 0 {
		parts = append(parts, "["+strings.Join(e.Conditions, ", ")+"]")
	}
	if e.IsDefeated {
		parts = append(parts, "DEFEATED")
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + strings.Join(parts, "  ")
}

func budget(b combat.ActionBudget) string {
	if b == nil {
		return "-"
	}

	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, b[combat.ActionCategory(k)]))
	}
	return strings.Join(parts, ", ")
}
