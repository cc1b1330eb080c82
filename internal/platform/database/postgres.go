package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewPostgresDB ouvre la connexion PostgreSQL et vérifie qu'elle répond.
func NewPostgresDB(url string) (*sql.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// EnsureSchema crée les tables si elles n'existent pas.
// Le schéma relationnel complet (migrations) est géré hors de ce service.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS agents (
			id SERIAL PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			matricule TEXT NOT NULL UNIQUE,
			rank TEXT NOT NULL,
			phone TEXT,
			photo_url TEXT,
			yearly_training_goal INTEGER NOT NULL DEFAULT 35,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS trainings (
			id SERIAL PRIMARY KEY,
			code TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			category TEXT NOT NULL DEFAULT 'autre',
			documents TEXT,
			date TEXT,
			duration_hours DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS participations (
			id SERIAL PRIMARY KEY,
			agent_id INTEGER NOT NULL,
			training_id INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'present',
			validation_status TEXT NOT NULL DEFAULT 'validated',
			custom_hours DOUBLE PRECISION,
			completion_date TEXT,
			supervisor TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
