// Command create-schema creates the database tables. Run it once
// against a fresh database:
//
//	DATABASE_URL=postgres://... go run ./cmd/create-schema
package main

import (
	"context"
	"log"
	"time"

	"lexassist-backend/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

var statements = []struct {
	name string
	sql  string
}{
	{
		name: "users table",
		sql: `CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'litigant',
			stats JSONB NOT NULL DEFAULT '{"cases": 0, "documents": 0}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "cases table",
		sql: `CREATE TABLE IF NOT EXISTS cases (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			summary TEXT NOT NULL DEFAULT '',
			facts TEXT NOT NULL DEFAULT '',
			judgments JSONB NOT NULL DEFAULT '[]',
			next_steps JSONB NOT NULL DEFAULT '[]',
			status TEXT NOT NULL DEFAULT 'Submitted',
			hearing_date TIMESTAMPTZ,
			notes JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "cases user index",
		sql:  `CREATE INDEX IF NOT EXISTS idx_cases_user_id ON cases(user_id)`,
	},
	{
		name: "documents table",
		sql: `CREATE TABLE IF NOT EXISTS documents (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			case_id UUID REFERENCES cases(id) ON DELETE SET NULL,
			filename TEXT NOT NULL,
			mime_type TEXT NOT NULL DEFAULT '',
			size BIGINT NOT NULL DEFAULT 0,
			storage_path TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "documents user index",
		sql:  `CREATE INDEX IF NOT EXISTS idx_documents_user_id ON documents(user_id)`,
	},
}

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt.sql); err != nil {
			log.Fatalf("Failed to create %s: %v", stmt.name, err)
		}
		log.Printf("Created %s", stmt.name)
	}

	log.Println("Schema created successfully")
}
