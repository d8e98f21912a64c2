package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/folio-labs/folio-backend/internal/config"
)

var DB *gorm.DB

// Connect opens the Postgres connection. DATABASE_URL wins when set;
// otherwise a local development DSN is built from the database name.
func Connect(cfg *config.Config) error {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = fmt.Sprintf("host=localhost user=postgres dbname=%s port=5432 sslmode=disable", cfg.DBName)
		log.Println("DATABASE_URL not set, connecting to local PostgreSQL")
	}

	var err error
	// TranslateError turns unique index violations into gorm.ErrDuplicatedKey,
	// which the storage layer relies on for the email uniqueness precondition.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connected successfully")
	return nil
}
