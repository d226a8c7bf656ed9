package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Dosada05/group-stage/models"
)

func TestCreateTournamentPartitionsTeams(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	names := []string{"T1", "T2", "T3", "T4", "T5", "T6"}
	env.mustAddTeams(t, names...)

	for seed := uint64(1); seed <= 20; seed++ {
		draw, err := env.fixtureService(seed).CreateTournament(ctx)
		if err != nil {
			t.Fatalf("seed %d: CreateTournament: %v", seed, err)
		}
		if len(draw.GroupA) != 3 || len(draw.GroupB) != 3 {
			t.Fatalf("seed %d: group sizes %d/%d, want 3/3", seed, len(draw.GroupA), len(draw.GroupB))
		}

		groupOf := make(map[int]string)
		for _, team := range draw.GroupA {
			groupOf[team.ID] = models.GroupA
		}
		for _, team := range draw.GroupB {
			if _, dup := groupOf[team.ID]; dup {
				t.Fatalf("seed %d: team %q drawn into both groups", seed, team.Name)
			}
			groupOf[team.ID] = models.GroupB
		}
		if len(groupOf) != len(names) {
			t.Fatalf("seed %d: %d distinct teams drawn, want %d", seed, len(groupOf), len(names))
		}

		matches, err := env.results.ListMatches(ctx)
		if err != nil {
			t.Fatalf("ListMatches: %v", err)
		}
		if len(matches) != 6 {
			t.Fatalf("seed %d: %d matches stored, want 6 (3 per group)", seed, len(matches))
		}

		pairs := make(map[[2]int]bool)
		for _, m := range matches {
			if m.Played || m.Score1 != 0 || m.Score2 != 0 {
				t.Errorf("seed %d: fixture %+v is not a fresh 0-0", seed, m)
			}
			if groupOf[m.Team1ID] != m.Group || groupOf[m.Team2ID] != m.Group {
				t.Errorf("seed %d: fixture %d crosses groups", seed, m.ID)
			}
			key := [2]int{min(m.Team1ID, m.Team2ID), max(m.Team1ID, m.Team2ID)}
			if pairs[key] {
				t.Errorf("seed %d: pair %v scheduled twice", seed, key)
			}
			pairs[key] = true
		}
	}
}

func TestCreateTournamentOddTeamCount(t *testing.T) {
	env := newTestEnv(t)
	env.mustAddTeams(t, "T1", "T2", "T3", "T4", "T5")

	draw, err := env.fixtures.CreateTournament(context.Background())
	if err != nil {
		t.Fatalf("CreateTournament: %v", err)
	}
	// ceil(5/2) = 3 в группе A: 3 + 1 матч
	if len(draw.GroupA) != 3 || len(draw.GroupB) != 2 || len(draw.Matches) != 4 {
		t.Errorf("draw sizes A=%d B=%d matches=%d, want 3, 2, 4", len(draw.GroupA), len(draw.GroupB), len(draw.Matches))
	}
}

func TestCreateTournamentRequiresTwoTeams(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.fixtures.CreateTournament(ctx); !errors.Is(err, ErrNotEnoughTeams) {
		t.Errorf("no teams: error = %v, want %v", err, ErrNotEnoughTeams)
	}
	env.mustAddTeams(t, "Solo")
	if _, err := env.fixtures.CreateTournament(ctx); !errors.Is(err, ErrNotEnoughTeams) {
		t.Errorf("one team: error = %v, want %v", err, ErrNotEnoughTeams)
	}
}

func TestCreateTournamentReplacesPreviousResults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustAddTeams(t, "T1", "T2", "T3", "T4")
	env.mustAddPlayer(t, "T1", "P1")
	env.mustAddPlayer(t, "T2", "P2")
	env.mustAddPlayer(t, "T3", "P3")
	env.mustAddPlayer(t, "T4", "P4")

	first, err := env.fixtures.CreateTournament(ctx)
	if err != nil {
		t.Fatalf("CreateTournament: %v", err)
	}
	m := first.Matches[0]
	if _, err := env.results.SetScore(ctx, m.ID, 2, 1); err != nil {
		t.Fatalf("SetScore: %v", err)
	}
	scorer := map[string]string{"T1": "P1", "T2": "P2", "T3": "P3", "T4": "P4"}[m.Team1Name]
	if _, err := env.results.AddGoal(ctx, m.ID, scorer); err != nil {
		t.Fatalf("AddGoal: %v", err)
	}

	if _, err := env.fixtures.CreateTournament(ctx); err != nil {
		t.Fatalf("second CreateTournament: %v", err)
	}

	matches, err := env.results.ListMatches(ctx)
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches after regeneration = %d, want 2", len(matches))
	}
	for _, m := range matches {
		if m.Played {
			t.Errorf("match %d survived regeneration as played", m.ID)
		}
	}
	scorers, err := env.standings.TopScorers(ctx, 10)
	if err != nil {
		t.Fatalf("TopScorers: %v", err)
	}
	for _, s := range scorers {
		if s.Goals != 0 {
			t.Errorf("goal of %s survived regeneration", s.Name)
		}
	}
}

func TestCreateTournamentIsReproducibleWithSeed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustAddTeams(t, "T1", "T2", "T3", "T4", "T5", "T6", "T7", "T8")

	first, err := env.fixtureService(42).CreateTournament(ctx)
	if err != nil {
		t.Fatalf("CreateTournament: %v", err)
	}
	second, err := env.fixtureService(42).CreateTournament(ctx)
	if err != nil {
		t.Fatalf("CreateTournament: %v", err)
	}
	if !reflect.DeepEqual(first.GroupA, second.GroupA) || !reflect.DeepEqual(first.GroupB, second.GroupB) {
		t.Errorf("same seed drew different groups: %v/%v vs %v/%v", first.GroupA, first.GroupB, second.GroupA, second.GroupB)
	}
}

func TestCreateTournamentWithoutRNG(t *testing.T) {
	env := newTestEnv(t)
	env.mustAddTeams(t, "T1", "T2", "T3", "T4")

	svc := NewFixtureService(env.tx, env.teamRepo, env.matchRepo, nil, env.events, env.logger)
	draw, err := svc.CreateTournament(context.Background())
	if err != nil {
		t.Fatalf("CreateTournament: %v", err)
	}
	if len(draw.GroupA) != 2 || len(draw.GroupB) != 2 || len(draw.Matches) != 2 {
		t.Errorf("draw sizes A=%d B=%d matches=%d, want 2, 2, 2", len(draw.GroupA), len(draw.GroupB), len(draw.Matches))
	}
}
