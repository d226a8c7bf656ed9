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
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player already exists in this team")
	ErrPlayerTeamInvalid  = errors.New("player team conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByNameAndTeam(ctx context.Context, exec SQLExecutor, name string, teamID int) (*models.Player, error)
	ListNamesByTeam(ctx context.Context, exec SQLExecutor, teamID int) ([]string, error)
}

type sqlPlayerRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewSQLPlayerRepository(conn *sql.DB, dialect db.Dialect) PlayerRepository {
	return &sqlPlayerRepository{db: conn, dialect: dialect}
}

func (r *sqlPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`INSERT INTO players (name, team_id) VALUES (?, ?) RETURNING id`)

	err := executor.QueryRowContext(ctx, query, player.Name, player.TeamID).Scan(&player.ID)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return ErrPlayerNameConflict
	case isForeignKeyViolation(err):
		return ErrPlayerTeamInvalid
	default:
		return fmt.Errorf("failed to create player %q for team %d: %w", player.Name, player.TeamID, err)
	}
}

func (r *sqlPlayerRepository) GetByNameAndTeam(ctx context.Context, exec SQLExecutor, name string, teamID int) (*models.Player, error) {
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`
		SELECT p.id, p.name, p.team_id, t.name
		FROM players p
		JOIN teams t ON t.id = p.team_id
		WHERE p.name = ? AND p.team_id = ?`)

	var player models.Player
	err := executor.QueryRowContext(ctx, query, name, teamID).Scan(&player.ID, &player.Name, &player.TeamID, &player.TeamName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (r *sqlPlayerRepository) ListNamesByTeam(ctx context.Context, exec SQLExecutor, teamID int) ([]string, error) {
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`SELECT name FROM players WHERE team_id = ?`)

	rows, err := executor.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of team %d: %w", teamID, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan player name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
