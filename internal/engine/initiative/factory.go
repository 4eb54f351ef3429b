// Package initiative builds combatant entries from roster records and
// orders them by initiative.
package initiative

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

const (
	// Entry ID prefixes, one per source roster
	enemyIDPrefix  = "combat-enemy-"
	playerIDPrefix = "combat-player-"
	npcIDPrefix    = "combat-npc-"

	initiativeDie = 20
)

// Factory converts roster records into combatant entries
type Factory interface {
	// Build creates one entry per participant, sorted into a starting order
	Build(ctx context.Context, input *BuildInput) (*BuildOutput, error)

	// BuildEntry creates a single entry, e.g. for a creature summoned mid-fight
	BuildEntry(ctx context.Context, input *BuildEntryInput) (*BuildEntryOutput, error)
}

// Config holds the dependencies for the entry factory
type Config struct {
	DiceRoller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}
	return vb.Build()
}

type factory struct {
	roller dice.Roller
}

// NewFactory creates an entry factory with the provided dependencies
func NewFactory(cfg *Config) (Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &factory{roller: cfg.DiceRoller}, nil
}

// Build creates entries for every enemy, statted NPC and player.
// The roster records are never modified.
func (f *factory) Build(ctx context.Context, input *BuildInput) (*BuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	entries := make([]*combat.Entry, 0, len(input.Enemies)+len(input.NPCs)+len(input.Players))

	for i := range input.Enemies {
		entries = append(entries, f.enemyEntry(ctx, &input.Enemies[i]))
	}

	skipped := 0
	for i := range input.NPCs {
		if !input.NPCs[i].HasStatblock {
			skipped++
			continue
		}
		entries = append(entries, f.npcEntry(ctx, &input.NPCs[i]))
	}

	for i := range input.Players {
		entries = append(entries, playerEntry(&input.Players[i]))
	}

	slog.Info("Built initiative entries",
		"enemy_count", len(input.Enemies),
		"npc_count", len(input.NPCs)-skipped,
		"player_count", len(input.Players),
		"npcs_without_statblock", skipped,
	)

	return &BuildOutput{Entries: Sort(entries)}, nil
}

// BuildEntry creates a single entry from exactly one source record
func (f *factory) BuildEntry(ctx context.Context, input *BuildEntryInput) (*BuildEntryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	set := 0
	for _, present := range []bool{input.Enemy != nil, input.NPC != nil, input.Player != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, errors.InvalidArgumentf("exactly one source is required, got %d", set)
	}

	var entry *combat.Entry
	switch {
	case input.Enemy != nil:
		entry = f.enemyEntry(ctx, input.Enemy)
	case input.NPC != nil:
		entry = f.npcEntry(ctx, input.NPC)
	default:
		entry = playerEntry(input.Player)
	}

	return &BuildEntryOutput{Entry: entry}, nil
}

func (f *factory) enemyEntry(ctx context.Context, src *EnemySource) *combat.Entry {
	entry := baseEntry(enemyIDPrefix, combat.KindEnemy, src.ID, src.Name, src.Stats)
	entry.Enemy = &combat.EnemyDetails{ChallengeRating: src.ChallengeRating}
	entry.Initiative = f.rollFor(ctx, entry.ID, src.DexterityScore)
	return entry
}

func (f *factory) npcEntry(ctx context.Context, src *NPCSource) *combat.Entry {
	entry := baseEntry(npcIDPrefix, combat.KindNPC, src.ID, src.Name, src.Stats)
	entry.NPC = &combat.NPCDetails{Role: src.Role}
	entry.Initiative = f.rollFor(ctx, entry.ID, src.DexterityScore)
	return entry
}

// playerEntry leaves initiative unresolved; the player submits their own roll
func playerEntry(src *PlayerSource) *combat.Entry {
	entry := baseEntry(playerIDPrefix, combat.KindPlayer, src.ID, src.Name, src.Stats)
	entry.Player = &combat.PlayerDetails{PlayerName: src.PlayerName}
	return entry
}

func baseEntry(prefix string, kind combat.Kind, sourceID, name string, stats Stats) *combat.Entry {
	entry := &combat.Entry{
		ID:            prefix + sourceID,
		DisplayName:   name,
		Kind:          kind,
		Initiative:    combat.Unresolved(),
		SourceID:      sourceID,
		CurrentHealth: copyInt(stats.CurrentHealth),
		MaxHealth:     copyInt(stats.MaxHealth),
		ArmorValue:    copyInt(stats.ArmorValue),
		Conditions:    []string{},
	}

	// Only seeded here; later health changes never flip this on their own
	if entry.CurrentHealth != nil && *entry.CurrentHealth <= 0 {
		entry.IsDefeated = true
	}

	return entry
}

// rollFor rolls d20 + dexterity modifier. A roller failure leaves the
// entry unresolved so the GM can enter the value by hand.
func (f *factory) rollFor(ctx context.Context, entryID string, dexterity int) combat.Initiative {
	initiative, err := Roll(f.roller, dexterity)
	if err != nil {
		slog.WarnContext(ctx, "Failed to roll initiative, leaving unresolved",
			"entry_id", entryID,
			"error", err,
		)
		return combat.Unresolved()
	}
	return initiative
}

// Roll rolls a single initiative: 1d20 + floor((dexterity - 10) / 2)
func Roll(roller dice.Roller, dexterity int) (combat.Initiative, error) {
	if roller == nil {
		return combat.Unresolved(), errors.InvalidArgument("dice roller is required")
	}

	roll, err := roller.Roll(initiativeDie)
	if err != nil {
		return combat.Unresolved(), errors.Wrap(err, "failed to roll d20")
	}

	return combat.Rolled(roll + AbilityModifier(dexterity)), nil
}

// AbilityModifier returns floor((score - 10) / 2)
func AbilityModifier(score int) int {
	// Go division truncates toward zero; step down for negative odd results
	modifier := (score - 10) / 2
	if score < 10 && (score-10)%2 != 0 {
		modifier--
	}
	return modifier
}

// EntryID returns the namespaced entry ID for a roster record
func EntryID(kind combat.Kind, sourceID string) string {
	switch kind {
	case combat.KindEnemy:
		return enemyIDPrefix + sourceID
	case combat.KindNPC:
		return npcIDPrefix + sourceID
	default:
		return playerIDPrefix + sourceID
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
