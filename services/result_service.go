package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/Dosada05/group-stage/brackets"
	"github.com/Dosada05/group-stage/models"
	"github.com/Dosada05/group-stage/repositories"
)

type ResultService interface {
	ListMatches(ctx context.Context) ([]*models.Match, error)
	GetMatch(ctx context.Context, matchID int) (*models.MatchDetails, error)
	SetScore(ctx context.Context, matchID, score1, score2 int) (*models.Match, error)
	AddGoal(ctx context.Context, matchID int, playerName string) (*models.Goal, error)
}

type resultService struct {
	tx         *TxManager
	matchRepo  repositories.MatchRepository
	playerRepo repositories.PlayerRepository
	goalRepo   repositories.GoalRepository
	events     EventPublisher
	logger     *slog.Logger
}

func NewResultService(
	tx *TxManager,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	goalRepo repositories.GoalRepository,
	events EventPublisher,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		tx:         tx,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		goalRepo:   goalRepo,
		events:     publisherOrNoop(events),
		logger:     logger,
	}
}

// MaxScore is the largest score a side can be credited with; it matches the INTEGER column in both dialects.
const MaxScore = math.MaxInt32

// ParseScore converts user input into a score. Anything that is not an integer in [0, MaxScore] is ErrInvalidScore.
func ParseScore(raw string) (int, error) {
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !validScore(score) {
		return 0, ErrInvalidScore
	}
	return score, nil
}

func validScore(score int) bool {
	return score >= 0 && score <= MaxScore
}

func (s *resultService) ListMatches(ctx context.Context) ([]*models.Match, error) {
	var matches []*models.Match
	err := s.tx.Read(ctx, func(tx *sql.Tx) error {
		var err error
		matches, err = s.matchRepo.List(ctx, tx)
		if err != nil {
			return storeFailure("list matches", err)
		}
		return nil
	})
	return matches, err
}

func (s *resultService) GetMatch(ctx context.Context, matchID int) (*models.MatchDetails, error) {
	details := &models.MatchDetails{}
	err := s.tx.Read(ctx, func(tx *sql.Tx) error {
		match, err := s.getMatch(ctx, tx, matchID)
		if err != nil {
			return err
		}
		details.Match = match
		details.Goals, err = s.goalRepo.ListByMatch(ctx, tx, matchID)
		if err != nil {
			return storeFailure("list goals", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}

// SetScore records the final score and moves the match into the played state. A played match is terminal.
func (s *resultService) SetScore(ctx context.Context, matchID, score1, score2 int) (*models.Match, error) {
	var match *models.Match
	err := s.tx.Write(ctx, func(tx *sql.Tx) error {
		var err error
		match, err = s.getMatch(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if match.Played {
			return ErrMatchAlreadyPlayed
		}
		if !validScore(score1) || !validScore(score2) {
			return ErrInvalidScore
		}

		err = s.matchRepo.RecordResult(ctx, tx, matchID, score1, score2)
		switch {
		case err == nil:
		case errors.Is(err, repositories.ErrMatchNotFound):
			return ErrMatchNotFound
		case errors.Is(err, repositories.ErrMatchAlreadyPlayed):
			return ErrMatchAlreadyPlayed
		default:
			return storeFailure("record result", err)
		}

		match.Score1, match.Score2, match.Played = score1, score2, true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "score recorded",
		slog.Int("match_id", match.ID),
		slog.String("team1", match.Team1Name),
		slog.String("team2", match.Team2Name),
		slog.Int("score1", match.Score1),
		slog.Int("score2", match.Score2),
	)
	s.events.Publish(brackets.EventScoreSet, match)
	return match, nil
}

// AddGoal attributes one goal to a player of either team. When both rosters contain the name,
// the team1 player gets the goal. The goal count is not checked against the recorded score.
func (s *resultService) AddGoal(ctx context.Context, matchID int, playerName string) (*models.Goal, error) {
	playerName = strings.TrimSpace(playerName)
	var goal *models.Goal
	err := s.tx.Write(ctx, func(tx *sql.Tx) error {
		match, err := s.getMatch(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if !match.Played {
			return ErrMatchNotPlayed
		}

		player, err := s.findMatchPlayer(ctx, tx, match, playerName)
		if err != nil {
			return err
		}

		goal = &models.Goal{
			MatchID:    match.ID,
			PlayerID:   player.ID,
			PlayerName: player.Name,
			TeamName:   player.TeamName,
		}
		if err := s.goalRepo.Create(ctx, tx, goal); err != nil {
			return storeFailure("create goal", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "goal added", slog.Int("match_id", goal.MatchID), slog.String("player", goal.PlayerName), slog.String("team", goal.TeamName))
	s.events.Publish(brackets.EventGoalAdded, goal)
	return goal, nil
}

func (s *resultService) findMatchPlayer(ctx context.Context, tx *sql.Tx, match *models.Match, name string) (*models.Player, error) {
	if name == "" {
		return nil, ErrPlayerNotInMatch
	}
	for _, teamID := range []int{match.Team1ID, match.Team2ID} {
		player, err := s.playerRepo.GetByNameAndTeam(ctx, tx, name, teamID)
		if err == nil {
			return player, nil
		}
		if !errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, storeFailure("find player", err)
		}
	}
	return nil, ErrPlayerNotInMatch
}

func (s *resultService) getMatch(ctx context.Context, tx *sql.Tx, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, tx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, storeFailure("get match", err)
	}
	return match, nil
}
