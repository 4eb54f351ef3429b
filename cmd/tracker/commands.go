package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/engine/initiative"
	entities "github.com/KirkDiggler/rpg-combat-tracker/internal/entities/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/idgen"
)

var encounterFlag string

var startCmd = &cobra.Command{
	Use:   "start <roster.json|->",
	Short: "Start combat from an encounter roster",
	Long: `Start builds the initiative order from a JSON roster with "enemies", "players" and "npcs".
Enemies and statted NPCs roll initiative automatically; players submit theirs with "tracker initiative".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roster, err := readRoster(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}

		return withApp(cmd, func(ctx context.Context, a *app, out printer) error {
			if a.store.Current() != nil {
				return errors.FailedPrecondition("a combat is already running; end it first")
			}

			built, err := a.factory.Build(ctx, roster)
			if err != nil {
				return errors.Wrap(err, "failed to build initiative order")
			}

			encounterID := encounterFlag
			if encounterID == "" {
				encounterID = idgen.NewUUID("encounter").Generate()
			}

			return a.dispatch(ctx, out, combat.StartCombat{
				EncounterID:     encounterID,
				InitiativeOrder: built.Entries,
			})
		})
	},
}

var initiativeCmd = &cobra.Command{
	Use:   "initiative <entry> <value>",
	Short: "Record an initiative roll",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.InvalidArgumentf("initiative must be a whole number: %q", args[1])
		}

		return withApp(cmd, func(ctx context.Context, a *app, out printer) error {
			return a.dispatch(ctx, out, combat.SetInitiative{
				EntryID: resolveEntryID(a.store.Current(), args[0]),
				Value:   value,
			})
		})
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Advance to the next combatant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, out printer) error {
			return a.dispatch(ctx, out, combat.NextTurn{})
		})
	},
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Go back to the previous combatant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, out printer) error {
			return a.dispatch(ctx, out, combat.PreviousTurn{})
		})
	},
}

var updateFlags struct {
	name     string
	hp       int
	maxHP    int
	armor    int
	defeated bool
}

var updateCmd = &cobra.Command{
	Use:   "update <entry>",
	Short: "Change an entry's name, health, armor or defeat flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch combat.EntryPatch
		flags := cmd.Flags()
		if !flags.Changed("name") && !flags.Changed("hp") && !flags.Changed("max-hp") &&
			!flags.Changed("armor") && !flags.Changed("defeated") {
			return errors.InvalidArgument("nothing to update; pass at least one flag")
		}
		if flags.Changed("name") {
			patch.DisplayName = &updateFlags.name
		}
		if flags.Changed("hp") {
			patch.CurrentHealth = &updateFlags.hp
		}
		if flags.Changed("max-hp") {
			patch.MaxHealth = &updateFlags.maxHP
		}
		if flags.Changed("armor") {
			patch.ArmorValue = &updateFlags.armor
		}
		if flags.Changed("defeated") {
			patch.IsDefeated = &updateFlags.defeated
		}

		return withApp(cmd, func(ctx context.Context, a *app, out printer) error {
			return a.dispatch(ctx, out, combat.UpdateEntry{
				EntryID: resolveEntryID(a.store.Current(), args[0]),
				Patch:   patch,
			})
		})
	},
}

var conditionCmd = &cobra.Command{
	Use:   "condition",
	Short: "Manage status conditions",
}

var conditionAddCmd = &cobra.Command{
	Use:   "add <entry> <condition>",
	Short: "Attach a condition such as prone or stunned",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, out printer) error {
			return a.dispatch(ctx, out, combat.AddCondition{
				EntryID:   resolveEntryID(a.store.Current(), args[0]),
				Condition: args[1],
			})
		})
	},
}

var conditionRemoveCmd = &cobra.Command{
	Use:   "remove <entry> <condition>",
	Short: "Clear a condition",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, out printer) error {
			return a.dispatch(ctx, out, combat.RemoveCondition{
				EntryID:   resolveEntryID(a.store.Current(), args[0]),
				Condition: args[1],
			})
		})
	},
}

var spendCmd = &cobra.Command{
	Use:   "spend <standard|movement|free> [count]",
	Short: "Use actions from the current combatant's budget",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		count := 1
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return errors.InvalidArgumentf("count must be a positive number: %q", args[1])
			}
			count = n
		}

		return withApp(cmd, func(ctx context.Context, a *app, out printer) error {
			current := a.store.CurrentEntry()
			if current == nil {
				return errors.FailedPrecondition("no one is acting right now")
			}
			return a.dispatch(ctx, out, combat.SpendAction{
				EntryID:  current.ID,
				Category: entities.ActionCategory(args[0]),
				Count:    count,
			})
		})
	},
}

var addFlags struct {
	kind       string
	id         string
	name       string
	dex        int
	hp         int
	armor      int
	initiative int
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a combatant mid-fight, such as a summon or reinforcement",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if addFlags.name == "" {
			return errors.InvalidArgument("--name is required")
		}

		sourceID := addFlags.id
		if sourceID == "" {
			sourceID = idgen.NewUUID("summon").Generate()
		}

		var stats initiative.Stats
		if cmd.Flags().Changed("hp") {
			stats.CurrentHealth = entities.IntPtr(addFlags.hp)
			stats.MaxHealth = entities.IntPtr(addFlags.hp)
		}
		if cmd.Flags().Changed("armor") {
			stats.ArmorValue = entities.IntPtr(addFlags.armor)
		}

		var input initiative.BuildEntryInput
		switch entities.Kind(addFlags.kind) {
		case entities.KindEnemy:
			input.Enemy = &initiative.EnemySource{ID: sourceID, Name: addFlags.name, DexterityScore: addFlags.dex, Stats: stats}
		case entities.KindNPC:
			input.NPC = &initiative.NPCSource{ID: sourceID, Name: addFlags.name, HasStatblock: true, DexterityScore: addFlags.dex, Stats: stats}
		case entities.KindPlayer:
			input.Player = &initiative.PlayerSource{ID: sourceID, Name: addFlags.name, Stats: stats}
		default:
			return errors.InvalidArgumentf("unknown kind %q", addFlags.kind)
		}

		return withApp(cmd, func(ctx context.Context, a *app, out printer) error {
			built, err := a.factory.BuildEntry(ctx, &input)
			if err != nil {
				return errors.Wrap(err, "failed to build entry")
			}

			entry := built.Entry
			if cmd.Flags().Changed("initiative") {
				entry.Initiative = entities.Rolled(addFlags.initiative)
			}

			return a.dispatch(ctx, out, combat.AddEntry{Entry: entry})
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <entry>",
	Short: "Take a combatant out of the initiative order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, out printer) error {
			return a.dispatch(ctx, out, combat.RemoveEntry{
				EntryID: resolveEntryID(a.store.Current(), args[0]),
			})
		})
	},
}

var endCmd = &cobra.Command{
	Use:   "end",
	Short: "End the combat and discard its state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app, out printer) error {
			return a.dispatch(ctx, out, combat.EndCombat{})
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current combat",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(_ context.Context, a *app, out printer) error {
			return out.state(a.store.Current())
		})
	},
}

func init() {
	startCmd.Flags().StringVar(&encounterFlag, "encounter", "", "encounter ID (generated when empty)")

	updateCmd.Flags().StringVar(&updateFlags.name, "name", "", "display name")
	updateCmd.Flags().IntVar(&updateFlags.hp, "hp", 0, "current health")
	updateCmd.Flags().IntVar(&updateFlags.maxHP, "max-hp", 0, "maximum health")
	updateCmd.Flags().IntVar(&updateFlags.armor, "armor", 0, "armor value")
	updateCmd.Flags().BoolVar(&updateFlags.defeated, "defeated", false, "mark as out of the fight (use --defeated=false to revive)")

	conditionCmd.AddCommand(conditionAddCmd)
	conditionCmd.AddCommand(conditionRemoveCmd)

	addCmd.Flags().StringVar(&addFlags.kind, "kind", string(entities.KindEnemy), "enemy, npc or player")
	addCmd.Flags().StringVar(&addFlags.id, "id", "", "roster ID (generated when empty)")
	addCmd.Flags().StringVar(&addFlags.name, "name", "", "display name")
	addCmd.Flags().IntVar(&addFlags.dex, "dex", 10, "dexterity score for the initiative roll")
	addCmd.Flags().IntVar(&addFlags.hp, "hp", 0, "starting health")
	addCmd.Flags().IntVar(&addFlags.armor, "armor", 0, "armor value")
	addCmd.Flags().IntVar(&addFlags.initiative, "initiative", 0, "use this initiative instead of rolling")
}

// readRoster decodes an encounter roster from a file, or stdin for "-"
func readRoster(stdin io.Reader, path string) (*initiative.BuildInput, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path) // #nosec G304 -- path comes from the operator
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open roster %s", path)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var roster initiative.BuildInput
	if err := json.NewDecoder(r).Decode(&roster); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to parse roster %s", path)
	}
	return &roster, nil
}

// resolveEntryID accepts either a full entry ID or the roster ID it was built from
func resolveEntryID(state *entities.State, arg string) string {
	if state == nil || state.IndexOf(arg) >= 0 {
		return arg
	}
	for _, kind := range []entities.Kind{entities.KindPlayer, entities.KindNPC, entities.KindEnemy} {
		if id := initiative.EntryID(kind, arg); state.IndexOf(id) >= 0 {
			return id
		}
	}
	return arg
}
