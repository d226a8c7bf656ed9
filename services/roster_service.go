package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/Dosada05/group-stage/brackets"
	"github.com/Dosada05/group-stage/models"
	"github.com/Dosada05/group-stage/repositories"
)

type RosterService interface {
	AddTeam(ctx context.Context, name string) (*models.Team, error)
	DeleteTeam(ctx context.Context, name string) error
	AddPlayer(ctx context.Context, teamName, playerName string) (*models.Player, error)
	ListTeams(ctx context.Context) ([]string, error)
	ListPlayers(ctx context.Context, teamName string) ([]string, error)
}

type rosterService struct {
	tx         *TxManager
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	events     EventPublisher
	logger     *slog.Logger
}

func NewRosterService(
	tx *TxManager,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	events EventPublisher,
	logger *slog.Logger,
) RosterService {
	return &rosterService{
		tx:         tx,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		events:     publisherOrNoop(events),
		logger:     logger,
	}
}

func (s *rosterService) AddTeam(ctx context.Context, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{Name: name}
	err := s.tx.Write(ctx, func(tx *sql.Tx) error {
		count, err := s.teamRepo.Count(ctx, tx)
		if err != nil {
			return storeFailure("count teams", err)
		}
		if count >= models.MaxTeams {
			return ErrTeamLimitReached
		}
		if err := s.teamRepo.Create(ctx, tx, team); err != nil {
			if errors.Is(err, repositories.ErrTeamNameConflict) {
				return ErrTeamNameConflict
			}
			return storeFailure("create team", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "team added", slog.Int("team_id", team.ID), slog.String("team", team.Name))
	s.events.Publish(brackets.EventTeamAdded, team)
	return team, nil
}

// DeleteTeam removes the team, its players and every match it appears in.
func (s *rosterService) DeleteTeam(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	var team *models.Team
	err := s.tx.Write(ctx, func(tx *sql.Tx) error {
		var err error
		team, err = s.teamRepo.GetByName(ctx, tx, name)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return storeFailure("get team", err)
		}
		if err := s.teamRepo.Delete(ctx, tx, team.ID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return storeFailure("delete team", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "team deleted", slog.Int("team_id", team.ID), slog.String("team", team.Name))
	s.events.Publish(brackets.EventTeamDeleted, team)
	return nil
}

func (s *rosterService) AddPlayer(ctx context.Context, teamName, playerName string) (*models.Player, error) {
	teamName = strings.TrimSpace(teamName)
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, ErrPlayerNameRequired
	}

	player := &models.Player{Name: playerName}
	err := s.tx.Write(ctx, func(tx *sql.Tx) error {
		team, err := s.teamRepo.GetByName(ctx, tx, teamName)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return storeFailure("get team", err)
		}
		player.TeamID = team.ID
		player.TeamName = team.Name

		err = s.playerRepo.Create(ctx, tx, player)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, repositories.ErrPlayerNameConflict):
			return ErrPlayerNameConflict
		case errors.Is(err, repositories.ErrPlayerTeamInvalid):
			return ErrTeamNotFound
		default:
			return storeFailure("create player", err)
		}
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "player added", slog.Int("player_id", player.ID), slog.String("player", player.Name), slog.String("team", player.TeamName))
	s.events.Publish(brackets.EventPlayerAdded, player)
	return player, nil
}

func (s *rosterService) ListTeams(ctx context.Context) ([]string, error) {
	var names []string
	err := s.tx.Read(ctx, func(tx *sql.Tx) error {
		var err error
		names, err = s.teamRepo.ListNames(ctx, tx)
		if err != nil {
			return storeFailure("list teams", err)
		}
		return nil
	})
	return names, err
}

func (s *rosterService) ListPlayers(ctx context.Context, teamName string) ([]string, error) {
	teamName = strings.TrimSpace(teamName)
	var names []string
	err := s.tx.Read(ctx, func(tx *sql.Tx) error {
		team, err := s.teamRepo.GetByName(ctx, tx, teamName)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return storeFailure("get team", err)
		}
		names, err = s.playerRepo.ListNamesByTeam(ctx, tx, team.ID)
		if err != nil {
			return storeFailure("list players", err)
		}
		return nil
	})
	return names, err
}
