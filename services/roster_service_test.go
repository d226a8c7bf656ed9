package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"testing"

	"github.com/Dosada05/group-stage/brackets"
	"github.com/Dosada05/group-stage/models"
)

func TestAddTeamListsSortedAndRejectsNinth(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	names := []string{"Spartak", "Arsenal", "Zenit", "Dynamo", "Benfica", "Lokomotiv", "Ajax", "Celtic"}
	env.mustAddTeams(t, names...)

	got, err := env.roster.ListTeams(ctx)
	if err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	want := append([]string(nil), names...)
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListTeams() = %v, want %v", got, want)
	}

	if _, err := env.roster.AddTeam(ctx, "Porto"); !errors.Is(err, ErrTeamLimitReached) {
		t.Fatalf("AddTeam 9th error = %v, want %v", err, ErrTeamLimitReached)
	}
	got, _ = env.roster.ListTeams(ctx)
	if len(got) != models.MaxTeams {
		t.Errorf("team count after rejected add = %d, want %d", len(got), models.MaxTeams)
	}
}

func TestAddTeamDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustAddTeams(t, "X")
	if _, err := env.roster.AddTeam(ctx, "X"); !errors.Is(err, ErrTeamNameConflict) {
		t.Fatalf("second AddTeam error = %v, want %v", err, ErrTeamNameConflict)
	}
	got, _ := env.roster.ListTeams(ctx)
	if len(got) != 1 {
		t.Errorf("ListTeams() = %v, want one team", got)
	}

	// сравнение имён регистрозависимое
	if _, err := env.roster.AddTeam(ctx, "x"); err != nil {
		t.Errorf("AddTeam(\"x\") error = %v, want nil", err)
	}
}

func TestAddTeamRequiresName(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.roster.AddTeam(context.Background(), "   "); !errors.Is(err, ErrTeamNameRequired) {
		t.Fatalf("AddTeam(blank) error = %v, want %v", err, ErrTeamNameRequired)
	}
}

func TestConcurrentAddTeamRespectsCapacity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const attempts = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, full int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := env.roster.AddTeam(ctx, fmt.Sprintf("Team %02d", i))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrTeamLimitReached):
				full++
			default:
				t.Errorf("AddTeam: unexpected error %v", err)
			}
		}(i)
	}
	wg.Wait()

	if ok != models.MaxTeams || full != attempts-models.MaxTeams {
		t.Errorf("accepted %d, rejected %d; want %d and %d", ok, full, models.MaxTeams, attempts-models.MaxTeams)
	}
}

func TestAddPlayer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustAddTeams(t, "Alpha", "Beta")

	if _, err := env.roster.AddPlayer(ctx, "Gamma", "Ivan"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("AddPlayer(unknown team) error = %v, want %v", err, ErrTeamNotFound)
	}
	if _, err := env.roster.AddPlayer(ctx, "Alpha", ""); !errors.Is(err, ErrPlayerNameRequired) {
		t.Errorf("AddPlayer(blank) error = %v, want %v", err, ErrPlayerNameRequired)
	}

	p := env.mustAddPlayer(t, "Alpha", "Petrov")
	if p.ID == 0 || p.TeamName != "Alpha" {
		t.Errorf("AddPlayer() = %+v, want id and team name filled", p)
	}
	env.mustAddPlayer(t, "Alpha", "Abramov")
	env.mustAddPlayer(t, "Beta", "Petrov")

	if _, err := env.roster.AddPlayer(ctx, "Alpha", "Petrov"); !errors.Is(err, ErrPlayerNameConflict) {
		t.Errorf("duplicate AddPlayer error = %v, want %v", err, ErrPlayerNameConflict)
	}

	got, err := env.roster.ListPlayers(ctx, "Alpha")
	if err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if want := []string{"Abramov", "Petrov"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ListPlayers(Alpha) = %v, want %v", got, want)
	}

	if _, err := env.roster.ListPlayers(ctx, "Gamma"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("ListPlayers(unknown) error = %v, want %v", err, ErrTeamNotFound)
	}
}

func TestDeleteTeamCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	teams := env.mustAddTeams(t, "Alpha", "Beta", "Gamma")
	alpha, beta, gamma := teams[0], teams[1], teams[2]
	env.mustAddPlayer(t, "Alpha", "A1")
	env.mustAddPlayer(t, "Beta", "B1")
	env.mustAddPlayer(t, "Gamma", "G1")

	ab := env.mustInsertMatch(t, models.GroupA, alpha, beta)
	bg := env.mustInsertMatch(t, models.GroupA, beta, gamma)
	for _, m := range []*models.Match{ab, bg} {
		if _, err := env.results.SetScore(ctx, m.ID, 1, 0); err != nil {
			t.Fatalf("SetScore: %v", err)
		}
	}
	if _, err := env.results.AddGoal(ctx, ab.ID, "A1"); err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	if _, err := env.results.AddGoal(ctx, bg.ID, "B1"); err != nil {
		t.Fatalf("AddGoal: %v", err)
	}

	if err := env.roster.DeleteTeam(ctx, "Alpha"); err != nil {
		t.Fatalf("DeleteTeam: %v", err)
	}

	if _, err := env.roster.ListPlayers(ctx, "Alpha"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("ListPlayers(deleted) error = %v, want %v", err, ErrTeamNotFound)
	}
	if _, err := env.results.GetMatch(ctx, ab.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("GetMatch(match of deleted team) error = %v, want %v", err, ErrMatchNotFound)
	}
	details, err := env.results.GetMatch(ctx, bg.ID)
	if err != nil {
		t.Fatalf("GetMatch(untouched match): %v", err)
	}
	if len(details.Goals) != 1 {
		t.Errorf("untouched match goals = %d, want 1", len(details.Goals))
	}

	scorers, err := env.standings.TopScorers(ctx, 10)
	if err != nil {
		t.Fatalf("TopScorers: %v", err)
	}
	for _, s := range scorers {
		if s.Name == "A1" {
			t.Errorf("deleted team's player still ranked: %+v", s)
		}
	}

	if err := env.roster.DeleteTeam(ctx, "Alpha"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("second DeleteTeam error = %v, want %v", err, ErrTeamNotFound)
	}
}

func TestRosterPublishesEvents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustAddTeams(t, "Alpha")
	env.mustAddPlayer(t, "Alpha", "A1")
	if _, err := env.roster.AddTeam(ctx, "Alpha"); err == nil {
		t.Fatal("duplicate AddTeam succeeded")
	}
	if err := env.roster.DeleteTeam(ctx, "Alpha"); err != nil {
		t.Fatalf("DeleteTeam: %v", err)
	}

	want := []string{brackets.EventTeamAdded, brackets.EventPlayerAdded, brackets.EventTeamDeleted}
	if got := env.events.types(); !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}
