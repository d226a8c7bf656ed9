package db

import (
	"context"
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		CONSTRAINT players_name_team_key UNIQUE (name, team_id)
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id SERIAL PRIMARY KEY,
		group_name TEXT NOT NULL CHECK (group_name IN ('A', 'B')),
		team1_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		team2_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		score1 INTEGER NOT NULL DEFAULT 0 CHECK (score1 >= 0),
		score2 INTEGER NOT NULL DEFAULT 0 CHECK (score2 >= 0),
		played BOOLEAN NOT NULL DEFAULT FALSE,
		CHECK (team1_id <> team2_id)
	)`,
	`CREATE TABLE IF NOT EXISTS goals (
		id SERIAL PRIMARY KEY,
		match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
		player_id INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_player_id ON goals (player_id)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_match_id ON goals (match_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		UNIQUE (name, team_id)
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		group_name TEXT NOT NULL CHECK (group_name IN ('A', 'B')),
		team1_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		team2_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		score1 INTEGER NOT NULL DEFAULT 0 CHECK (score1 >= 0),
		score2 INTEGER NOT NULL DEFAULT 0 CHECK (score2 >= 0),
		played BOOLEAN NOT NULL DEFAULT 0,
		CHECK (team1_id <> team2_id)
	)`,
	`CREATE TABLE IF NOT EXISTS goals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
		player_id INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_player_id ON goals (player_id)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_match_id ON goals (match_id)`,
}

// InitSchema creates the teams, players, matches and goals tables if they are absent.
func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	statements := sqliteSchema
	if dialect == DialectPostgres {
		statements = postgresSchema
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}
