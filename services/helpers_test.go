package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/group-stage/db"
	"github.com/Dosada05/group-stage/models"
	"github.com/Dosada05/group-stage/repositories"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(eventType string, _ interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type testEnv struct {
	conn       *sql.DB
	tx         *TxManager
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	goalRepo   repositories.GoalRepository
	events     *recordingPublisher
	logger     *slog.Logger

	roster    RosterService
	fixtures  FixtureService
	results   ResultService
	standings StandingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn, err := db.Connect("sqlite", filepath.Join(t.TempDir(), "tournament.db"), time.Second)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.InitSchema(context.Background(), conn, db.DialectSQLite); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}

	env := &testEnv{
		conn:       conn,
		tx:         NewTxManager(conn, db.DialectSQLite),
		teamRepo:   repositories.NewSQLTeamRepository(conn, db.DialectSQLite),
		playerRepo: repositories.NewSQLPlayerRepository(conn, db.DialectSQLite),
		matchRepo:  repositories.NewSQLMatchRepository(conn, db.DialectSQLite),
		goalRepo:   repositories.NewSQLGoalRepository(conn, db.DialectSQLite),
		events:     &recordingPublisher{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	env.roster = NewRosterService(env.tx, env.teamRepo, env.playerRepo, env.events, env.logger)
	env.fixtures = env.fixtureService(1)
	env.results = NewResultService(env.tx, env.matchRepo, env.playerRepo, env.goalRepo, env.events, env.logger)
	env.standings = NewStandingsService(env.tx, env.teamRepo, env.matchRepo, env.goalRepo)
	return env
}

func (e *testEnv) fixtureService(seed uint64) FixtureService {
	return NewFixtureService(e.tx, e.teamRepo, e.matchRepo, rand.New(rand.NewPCG(seed, seed)), e.events, e.logger)
}

func (e *testEnv) mustAddTeams(t *testing.T, names ...string) []*models.Team {
	t.Helper()
	teams := make([]*models.Team, 0, len(names))
	for _, name := range names {
		team, err := e.roster.AddTeam(context.Background(), name)
		if err != nil {
			t.Fatalf("AddTeam(%q): %v", name, err)
		}
		teams = append(teams, team)
	}
	return teams
}

func (e *testEnv) mustAddPlayer(t *testing.T, team, player string) *models.Player {
	t.Helper()
	p, err := e.roster.AddPlayer(context.Background(), team, player)
	if err != nil {
		t.Fatalf("AddPlayer(%q, %q): %v", team, player, err)
	}
	return p
}

// mustInsertMatch schedules a single fixture directly, bypassing the group draw.
func (e *testEnv) mustInsertMatch(t *testing.T, group string, team1, team2 *models.Team) *models.Match {
	t.Helper()
	m := &models.Match{Group: group, Team1ID: team1.ID, Team2ID: team2.ID}
	err := e.tx.Write(context.Background(), func(tx *sql.Tx) error {
		return e.matchRepo.CreateBatch(context.Background(), tx, []*models.Match{m})
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	return m
}
