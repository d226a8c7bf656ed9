package brackets

import (
	"errors"
	"math/rand/v2"
)

var ErrNotEnoughTeams = errors.New("at least two teams are required to create groups")

// Fixture is a generated pairing before it is persisted.
type Fixture struct {
	Group   string
	Team1ID int
	Team2ID int
}

// DrawGroups shuffles a copy of teamIDs with rng and splits it in two: group A receives the first
// ceil(n/2) teams, group B the rest. Every id lands in exactly one group.
func DrawGroups(teamIDs []int, rng *rand.Rand) (groupA, groupB []int, err error) {
	if len(teamIDs) < 2 {
		return nil, nil, ErrNotEnoughTeams
	}

	shuffled := make([]int, len(teamIDs))
	copy(shuffled, teamIDs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	mid := (len(shuffled) + 1) / 2
	return shuffled[:mid], shuffled[mid:], nil
}
