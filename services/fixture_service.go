package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/Dosada05/group-stage/brackets"
	"github.com/Dosada05/group-stage/models"
	"github.com/Dosada05/group-stage/repositories"
)

type FixtureService interface {
	// CreateTournament draws both groups from the current roster and replaces every existing
	// match (and goal) with a fresh round-robin schedule.
	CreateTournament(ctx context.Context) (*models.GroupDraw, error)
}

type fixtureService struct {
	tx        *TxManager
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	rng       *rand.Rand // guarded by the TxManager writer lock
	events    EventPublisher
	logger    *slog.Logger
}

// NewFixtureService builds the fixture generator. rng drives the group draw; pass a seeded
// generator to make draws reproducible. A nil rng is replaced by a time-seeded one.
func NewFixtureService(
	tx *TxManager,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	rng *rand.Rand,
	events EventPublisher,
	logger *slog.Logger,
) FixtureService {
	return &fixtureService{
		tx:        tx,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		rng:       rngOrDefault(rng),
		events:    publisherOrNoop(events),
		logger:    logger,
	}
}

func (s *fixtureService) CreateTournament(ctx context.Context) (*models.GroupDraw, error) {
	var draw *models.GroupDraw
	err := s.tx.Write(ctx, func(tx *sql.Tx) error {
		teams, err := s.teamRepo.List(ctx, tx)
		if err != nil {
			return storeFailure("list teams", err)
		}

		byID := make(map[int]models.Team, len(teams))
		ids := make([]int, 0, len(teams))
		for _, t := range teams {
			byID[t.ID] = *t
			ids = append(ids, t.ID)
		}

		groupA, groupB, err := brackets.DrawGroups(ids, s.rng)
		if err != nil {
			if errors.Is(err, brackets.ErrNotEnoughTeams) {
				return ErrNotEnoughTeams
			}
			return err
		}

		fixtures := append(brackets.RoundRobinPairs(models.GroupA, groupA), brackets.RoundRobinPairs(models.GroupB, groupB)...)
		matches := make([]*models.Match, 0, len(fixtures))
		for _, f := range fixtures {
			matches = append(matches, &models.Match{
				Group:     f.Group,
				Team1ID:   f.Team1ID,
				Team2ID:   f.Team2ID,
				Team1Name: byID[f.Team1ID].Name,
				Team2Name: byID[f.Team2ID].Name,
			})
		}

		if err := s.matchRepo.DeleteAll(ctx, tx); err != nil {
			return storeFailure("clear fixtures", err)
		}
		if err := s.matchRepo.CreateBatch(ctx, tx, matches); err != nil {
			return storeFailure("insert fixtures", err)
		}

		draw = &models.GroupDraw{
			GroupA:  teamsByIDs(byID, groupA),
			GroupB:  teamsByIDs(byID, groupB),
			Matches: make([]models.Match, 0, len(matches)),
		}
		for _, m := range matches {
			draw.Matches = append(draw.Matches, *m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tournament created",
		slog.Int("group_a", len(draw.GroupA)),
		slog.Int("group_b", len(draw.GroupB)),
		slog.Int("matches", len(draw.Matches)),
	)
	s.events.Publish(brackets.EventTournamentCreated, draw)
	return draw, nil
}

func rngOrDefault(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
}

func teamsByIDs(byID map[int]models.Team, ids []int) []models.Team {
	teams := make([]models.Team, 0, len(ids))
	for _, id := range ids {
		teams = append(teams, byID[id])
	}
	return teams
}
