// Package main is the entry point for the combat tracker CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

var (
	storeFlag      string
	sessionFlag    string
	redisAddrFlag  string
	sqlitePathFlag string
	seedFlag       int64
	jsonOutput     bool
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Turn-based combat tracker",
	Long: `Tracker runs the initiative order for a tabletop combat encounter.
Every command applies one change and saves the result, so the fight survives restarts.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error's code to the process exit status
func exitCode(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeOK:
		return 0
	case errors.CodeInvalidArgument:
		return 2
	case errors.CodeFailedPrecondition:
		return 3
	case errors.CodeUnavailable:
		return 4
	default:
		return 1
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "snapshot backend: memory, redis or sqlite (env TRACKER_STORE)")
	rootCmd.PersistentFlags().StringVar(&sessionFlag, "session", "", "session whose combat to use (env TRACKER_SESSION)")
	rootCmd.PersistentFlags().StringVar(&redisAddrFlag, "redis-addr", "", "redis address (env TRACKER_REDIS_ADDR)")
	rootCmd.PersistentFlags().StringVar(&sqlitePathFlag, "sqlite-path", "", "sqlite database file (env TRACKER_SQLITE_PATH)")
	rootCmd.PersistentFlags().Int64Var(&seedFlag, "seed", 0, "seed for initiative rolls, 0 for random (env TRACKER_SEED)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the state as JSON")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(initiativeCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(conditionCmd)
	rootCmd.AddCommand(spendCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(endCmd)
	rootCmd.AddCommand(showCmd)
}
