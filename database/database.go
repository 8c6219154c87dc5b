package database

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
// If url is set it is used as a postgres connection string, otherwise
// the embedded sqlite store at path is used.
func New(url, path string) (*Client, error) {
	var dialector gorm.Dialector
	if url != "" {
		dialector = postgres.Open(url)
		log.Debug("using postgres database")
	} else {
		dialector = sqlite.Open(path)
		log.Debug("using embedded sqlite database", "path", path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&ReadPoem{},
		&Poem{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db}, nil
}
