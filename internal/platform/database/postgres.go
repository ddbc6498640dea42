package database

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	"blogapi/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schemaSQL string

var DB *sql.DB

func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening database")
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err = DB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	log.Info().Msg("Successfully connected to PostgreSQL database")
}

// Migrate applies the embedded schema. Statements are idempotent, so running
// at every startup is safe.
func Migrate(ctx context.Context) {
	if _, err := DB.ExecContext(ctx, schemaSQL); err != nil {
		log.Fatal().Err(err).Msg("Error applying database schema")
	}
	log.Info().Msg("Database schema up to date")
}

func Close() {
	if DB != nil {
		DB.Close()
		log.Info().Msg("Database connection closed")
	}
}
