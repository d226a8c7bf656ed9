package services

import (
	"context"
	"database/sql"
	"sort"

	"github.com/Dosada05/group-stage/models"
	"github.com/Dosada05/group-stage/repositories"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

type StandingsService interface {
	Standings(ctx context.Context) (map[string][]models.Standing, error)
	TopScorers(ctx context.Context, limit int) ([]models.TopScorer, error)
}

type standingsService struct {
	tx        *TxManager
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	goalRepo  repositories.GoalRepository
}

func NewStandingsService(
	tx *TxManager,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	goalRepo repositories.GoalRepository,
) StandingsService {
	return &standingsService{
		tx:        tx,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		goalRepo:  goalRepo,
	}
}

func (s *standingsService) Standings(ctx context.Context) (map[string][]models.Standing, error) {
	var (
		teams   []*models.Team
		matches []*models.Match
	)
	err := s.tx.Read(ctx, func(tx *sql.Tx) error {
		var err error
		if teams, err = s.teamRepo.List(ctx, tx); err != nil {
			return storeFailure("list teams", err)
		}
		if matches, err = s.matchRepo.List(ctx, tx); err != nil {
			return storeFailure("list matches", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ComputeStandings(teams, matches), nil
}

func (s *standingsService) TopScorers(ctx context.Context, limit int) ([]models.TopScorer, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}
	var scorers []models.TopScorer
	err := s.tx.Read(ctx, func(tx *sql.Tx) error {
		var err error
		scorers, err = s.goalRepo.TopScorers(ctx, tx, limit)
		if err != nil {
			return storeFailure("top scorers", err)
		}
		return nil
	})
	return scorers, err
}

// ComputeStandings builds the group tables from played matches.
//
// A team belongs to the group its matches are labelled with; teams without any match are left out.
// Rows start in the order of teams (id ascending) and are stably sorted by points, then goal difference.
// Both group keys are always present.
func ComputeStandings(teams []*models.Team, matches []*models.Match) map[string][]models.Standing {
	groupOf := make(map[int]string, len(teams))
	for _, m := range matches {
		groupOf[m.Team1ID] = m.Group
		groupOf[m.Team2ID] = m.Group
	}

	rows := make(map[int]*models.Standing, len(teams))
	for _, t := range teams {
		if _, ok := groupOf[t.ID]; ok {
			rows[t.ID] = &models.Standing{TeamID: t.ID, Name: t.Name}
		}
	}

	for _, m := range matches {
		if !m.Played {
			continue
		}
		home, away := rows[m.Team1ID], rows[m.Team2ID]
		if home == nil || away == nil {
			continue
		}
		applyResult(home, m.Score1, m.Score2)
		applyResult(away, m.Score2, m.Score1)
	}

	table := make(map[string][]models.Standing, len(models.Groups))
	for _, g := range models.Groups {
		table[g] = make([]models.Standing, 0)
	}
	for _, t := range teams {
		row, ok := rows[t.ID]
		if !ok {
			continue
		}
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		g := groupOf[t.ID]
		table[g] = append(table[g], *row)
	}

	for _, standings := range table {
		sort.SliceStable(standings, func(i, j int) bool {
			if standings[i].Points != standings[j].Points {
				return standings[i].Points > standings[j].Points
			}
			return standings[i].GoalDifference > standings[j].GoalDifference
		})
	}
	return table
}

func applyResult(row *models.Standing, scored, conceded int) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		row.Wins++
		row.Points += pointsForWin
	case scored == conceded:
		row.Draws++
		row.Points += pointsForDraw
	default:
		row.Losses++
	}
}
