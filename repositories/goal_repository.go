package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/group-stage/db"
	"github.com/Dosada05/group-stage/models"
)

var ErrGoalReferenceInvalid = errors.New("goal match or player conflict or invalid")

type GoalRepository interface {
	Create(ctx context.Context, exec SQLExecutor, goal *models.Goal) error
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]models.Goal, error)
	TopScorers(ctx context.Context, exec SQLExecutor, limit int) ([]models.TopScorer, error)
}

type sqlGoalRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewSQLGoalRepository(conn *sql.DB, dialect db.Dialect) GoalRepository {
	return &sqlGoalRepository{db: conn, dialect: dialect}
}

func (r *sqlGoalRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlGoalRepository) Create(ctx context.Context, exec SQLExecutor, goal *models.Goal) error {
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`INSERT INTO goals (match_id, player_id) VALUES (?, ?) RETURNING id`)

	err := executor.QueryRowContext(ctx, query, goal.MatchID, goal.PlayerID).Scan(&goal.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrGoalReferenceInvalid
		}
		return fmt.Errorf("failed to create goal for match %d: %w", goal.MatchID, err)
	}
	return nil
}

func (r *sqlGoalRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]models.Goal, error) {
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`
		SELECT g.id, g.match_id, g.player_id, p.name, t.name
		FROM goals g
		JOIN players p ON p.id = g.player_id
		JOIN teams t ON t.id = p.team_id
		WHERE g.match_id = ?
		ORDER BY g.id ASC`)

	rows, err := executor.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals of match %d: %w", matchID, err)
	}
	defer rows.Close()

	goals := make([]models.Goal, 0)
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.MatchID, &g.PlayerID, &g.PlayerName, &g.TeamName); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// TopScorers counts goals for every player, scorers or not, and returns the first limit rows.
// Equal counts keep player insertion order.
func (r *sqlGoalRepository) TopScorers(ctx context.Context, exec SQLExecutor, limit int) ([]models.TopScorer, error) {
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`
		SELECT p.id, p.name, t.name, COUNT(g.id) AS goals
		FROM players p
		JOIN teams t ON t.id = p.team_id
		LEFT JOIN goals g ON g.player_id = p.id
		GROUP BY p.id, p.name, t.name
		ORDER BY goals DESC, p.id ASC
		LIMIT ?`)

	rows, err := executor.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top scorers: %w", err)
	}
	defer rows.Close()

	scorers := make([]models.TopScorer, 0)
	for rows.Next() {
		var s models.TopScorer
		if err := rows.Scan(&s.PlayerID, &s.Name, &s.TeamName, &s.Goals); err != nil {
			return nil, fmt.Errorf("failed to scan top scorer: %w", err)
		}
		scorers = append(scorers, s)
	}
	return scorers, rows.Err()
}
