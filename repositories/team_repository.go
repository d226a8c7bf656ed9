package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/group-stage/db"
	"github.com/Dosada05/group-stage/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name already exists")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Team, error)
	Count(ctx context.Context, exec SQLExecutor) (int, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Team, error)
	ListNames(ctx context.Context, exec SQLExecutor) ([]string, error)
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type sqlTeamRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewSQLTeamRepository(conn *sql.DB, dialect db.Dialect) TeamRepository {
	return &sqlTeamRepository{db: conn, dialect: dialect}
}

func (r *sqlTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.Team) error {
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`INSERT INTO teams (name) VALUES (?) RETURNING id`)

	err := executor.QueryRowContext(ctx, query, team.Name).Scan(&team.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrTeamNameConflict
		}
		return fmt.Errorf("failed to create team %q: %w", team.Name, err)
	}
	return nil
}

func (r *sqlTeamRepository) GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Team, error) {
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`SELECT id, name FROM teams WHERE name = ?`)

	var team models.Team
	err := executor.QueryRowContext(ctx, query, name).Scan(&team.ID, &team.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *sqlTeamRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	if err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return count, nil
}

// List returns every team ordered by id.
func (r *sqlTeamRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Team, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx, `SELECT id, name FROM teams ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, &team)
	}
	return teams, rows.Err()
}

// ListNames returns team names in byte-wise lexicographic order, independent of the database collation.
func (r *sqlTeamRepository) ListNames(ctx context.Context, exec SQLExecutor) ([]string, error) {
	teams, err := r.List(ctx, exec)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the team together with its players, the matches it takes part in and every goal
// attached to either. Foreign keys cascade the same way; the explicit statements keep the result
// identical when a store runs with foreign keys disabled.
func (r *sqlTeamRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)

	cascade := []string{
		`DELETE FROM goals WHERE player_id IN (SELECT id FROM players WHERE team_id = ?)
			OR match_id IN (SELECT id FROM matches WHERE team1_id = ? OR team2_id = ?)`,
		`DELETE FROM matches WHERE team1_id = ? OR team2_id = ?`,
		`DELETE FROM players WHERE team_id = ?`,
	}
	for _, stmt := range cascade {
		args := make([]interface{}, 0, 3)
		for i := 0; i < countPlaceholders(stmt); i++ {
			args = append(args, id)
		}
		if _, err := executor.ExecContext(ctx, r.dialect.Rebind(stmt), args...); err != nil {
			return fmt.Errorf("failed to delete dependants of team %d: %w", id, err)
		}
	}

	result, err := executor.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM teams WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func countPlaceholders(query string) int {
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
		}
	}
	return n
}
