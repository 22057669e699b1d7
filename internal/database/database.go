package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

type Options struct {
	// Quiet silences gorm's SQL logging (tests, seeding).
	Quiet bool
}

// Connect opens postgres for postgres:// DSNs and sqlite (pure Go driver)
// for everything else.
func Connect(dsn string, opts ...Options) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	for _, o := range opts {
		if o.Quiet {
			cfg.Logger = logger.Default.LogMode(logger.Silent)
		}
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite:", dsn)

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}
	return db, nil
}
