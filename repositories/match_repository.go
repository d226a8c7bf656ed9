package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/group-stage/db"
	"github.com/Dosada05/group-stage/models"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchAlreadyPlayed = errors.New("match result already recorded")
	ErrMatchTeamInvalid   = errors.New("match team conflict or invalid")
)

type MatchRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Match, error)
	RecordResult(ctx context.Context, exec SQLExecutor, id, score1, score2 int) error
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type sqlMatchRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewSQLMatchRepository(conn *sql.DB, dialect db.Dialect) MatchRepository {
	return &sqlMatchRepository{db: conn, dialect: dialect}
}

func (r *sqlMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const selectMatchColumns = `
	SELECT m.id, m.group_name, m.team1_id, m.team2_id, t1.name, t2.name, m.score1, m.score2, m.played
	FROM matches m
	JOIN teams t1 ON t1.id = m.team1_id
	JOIN teams t2 ON t2.id = m.team2_id`

func (r *sqlMatchRepository) scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := rowScanner.Scan(&m.ID, &m.Group, &m.Team1ID, &m.Team2ID, &m.Team1Name, &m.Team2Name, &m.Score1, &m.Score2, &m.Played)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

// CreateBatch inserts the fixtures through one prepared statement and fills in their ids.
// Callers are expected to pass a transaction so that a failure leaves no partial fixture list.
func (r *sqlMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	executor := r.getExecutor(exec)
	if len(matches) == 0 {
		return nil
	}

	stmt, err := executor.PrepareContext(ctx, r.dialect.Rebind(`
		INSERT INTO matches (group_name, team1_id, team2_id, score1, score2, played)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`))
	if err != nil {
		return fmt.Errorf("CreateBatch failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		err = stmt.QueryRowContext(ctx, m.Group, m.Team1ID, m.Team2ID, m.Score1, m.Score2, m.Played).Scan(&m.ID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return ErrMatchTeamInvalid
			}
			return fmt.Errorf("CreateBatch failed for teams %d vs %d: %w", m.Team1ID, m.Team2ID, err)
		}
	}
	return nil
}

func (r *sqlMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	row := executor.QueryRowContext(ctx, r.dialect.Rebind(selectMatchColumns+` WHERE m.id = ?`), id)
	return r.scanMatch(row)
}

func (r *sqlMatchRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Match, error) {
	executor := r.getExecutor(exec)
	rows, err := executor.QueryContext(ctx, selectMatchColumns+` ORDER BY m.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, errScan := r.scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

// RecordResult writes both scores and flips played in a single statement that only matches an
// unplayed row, so a result can never be overwritten.
func (r *sqlMatchRepository) RecordResult(ctx context.Context, exec SQLExecutor, id, score1, score2 int) error {
	executor := r.getExecutor(exec)
	query := r.dialect.Rebind(`UPDATE matches SET score1 = ?, score2 = ?, played = ? WHERE id = ? AND played = ?`)

	result, err := executor.ExecContext(ctx, query, score1, score2, true, id, false)
	if err != nil {
		return fmt.Errorf("failed to record result of match %d: %w", id, err)
	}
	if err := checkAffectedRows(result, ErrMatchAlreadyPlayed); err != nil {
		if !errors.Is(err, ErrMatchAlreadyPlayed) {
			return err
		}
		if _, getErr := r.GetByID(ctx, executor, id); getErr != nil {
			return getErr
		}
		return ErrMatchAlreadyPlayed
	}
	return nil
}

// DeleteAll wipes every goal and match.
func (r *sqlMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx, `DELETE FROM goals`); err != nil {
		return fmt.Errorf("failed to delete goals: %w", err)
	}
	if _, err := executor.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}
