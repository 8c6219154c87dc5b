package cmd

import (
	"fmt"

	"github.com/m0rozov/versetrack/config"
	"github.com/m0rozov/versetrack/database"
	"github.com/spf13/cobra"
)

var dbStatsCmd = &cobra.Command{
	Use:   "db-stats",
	Short: "Show database statistics",
	Long:  `Display the number of registered accounts and anthology poems in the backing store.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.New(cfg.Database.URL, cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}

		users, err := db.CountUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		poems, err := db.CountPoems(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count poems: %w", err)
		}

		fmt.Println("Database Statistics:")
		fmt.Printf("Registered Users: %d\n", users)
		fmt.Printf("Poems: %d\n", poems)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbStatsCmd)
}
