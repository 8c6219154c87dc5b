package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/m0rozov/versetrack/api"
	"github.com/m0rozov/versetrack/auth"
	"github.com/m0rozov/versetrack/config"
	"github.com/m0rozov/versetrack/database"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the versetrack server",
	Long:  `Start the versetrack server: opens the backing store, seeds the anthology on first run, makes sure the admin account exists and serves the web UI.`,
	Example: `versetrack serve --config config.yml
versetrack serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.URL, cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := db.SeedPoems(ctx); err != nil {
		log.Fatalf("failed to seed anthology: %v", err)
	}

	adminHash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}
	if err := db.EnsureAdmin(ctx, cfg.Admin.Username, adminHash); err != nil {
		log.Fatalf("failed to ensure admin account: %v", err)
	}

	server := api.New(cfg, db, log.GetLevel() == log.DebugLevel)

	go func() {
		log.Info("starting server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("versetrack started successfully")
	<-c
	log.Info("shutting down gracefully...")

	cancel()
	time.Sleep(2 * time.Second)
}
