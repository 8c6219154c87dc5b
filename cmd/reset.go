package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/m0rozov/versetrack/config"
	"github.com/m0rozov/versetrack/database"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all per-user reading state",
	Long:  `This command clears every user's read marks and pinned poems. Accounts and the anthology itself are left untouched.`,
	Run:   reset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func reset(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.URL, cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	log.Info("clearing per-user reading state...")
	if err := db.ResetUserState(cmd.Context()); err != nil {
		log.Fatalf("failed to reset user state: %v", err)
	}
	log.Info("successfully cleared all read marks and pins")
}
