// Package main is the entry point for the chronicles command line driver
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-chronicles/internal/config"
)

var (
	redisAddr string
	dataDir   string
	seed      int64
	logLevel  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "chronicles",
	Short: "Quest Chronicles rules engine",
	Long: `Chronicles drives the Quest Chronicles rules engine: create characters,
shop, equip gear, take quests and fight. Characters are kept in Redis when
--redis is set, otherwise they only live for the duration of one command.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "Redis address for character storage (env CHRONICLES_REDIS_ADDR)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding quests.txt and items.txt (env CHRONICLES_DATA_DIR)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "dice seed, 0 seeds from the clock (env CHRONICLES_SEED)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (env CHRONICLES_LOG_LEVEL)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(characterCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(equipCmd)
	rootCmd.AddCommand(unequipCmd)
	rootCmd.AddCommand(questCmd)
	rootCmd.AddCommand(fightCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(demoCmd)
}

// loadConfig reads the environment, applies flag overrides and installs the
// logger
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("redis") {
		loaded.RedisAddr = redisAddr
	}
	if flags.Changed("data-dir") {
		loaded.DataDir = dataDir
	}
	if flags.Changed("seed") {
		loaded.Seed = seed
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: loaded.SlogLevel(),
	})))

	cfg = loaded
	return nil
}
