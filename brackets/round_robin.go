package brackets

// RoundRobinPairs returns one fixture for every unordered pair of teamIDs, each team meeting every
// other exactly once. Pairs follow enumeration order: the earlier team in the slice is Team1.
// A group of k teams yields k*(k-1)/2 fixtures; groups of fewer than two teams yield none.
func RoundRobinPairs(group string, teamIDs []int) []Fixture {
	n := len(teamIDs)
	if n < 2 {
		return []Fixture{}
	}

	fixtures := make([]Fixture, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			fixtures = append(fixtures, Fixture{
				Group:   group,
				Team1ID: teamIDs[i],
				Team2ID: teamIDs[j],
			})
		}
	}
	return fixtures
}
