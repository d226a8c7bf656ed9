package models

const (
	GroupA = "A"
	GroupB = "B"
)

// Groups lists every group label in display order.
var Groups = []string{GroupA, GroupB}

// Match is a group-stage fixture. Played flips to true exactly once, together with the scores.
type Match struct {
	ID        int    `json:"id" db:"id"`
	Group     string `json:"group" db:"group_name"`
	Team1ID   int    `json:"team1_id" db:"team1_id"`
	Team2ID   int    `json:"team2_id" db:"team2_id"`
	Team1Name string `json:"team1" db:"-"`
	Team2Name string `json:"team2" db:"-"`
	Score1    int    `json:"score1" db:"score1"`
	Score2    int    `json:"score2" db:"score2"`
	Played    bool   `json:"played" db:"played"`
}

type Goal struct {
	ID         int    `json:"id" db:"id"`
	MatchID    int    `json:"match_id" db:"match_id"`
	PlayerID   int    `json:"player_id" db:"player_id"`
	PlayerName string `json:"player" db:"-"`
	TeamName   string `json:"team" db:"-"`
}

// MatchDetails is a match together with the goals attributed in it.
type MatchDetails struct {
	Match *Match `json:"match"`
	Goals []Goal `json:"goals"`
}

// GroupDraw is the outcome of creating a tournament.
type GroupDraw struct {
	GroupA  []Team  `json:"group_a"`
	GroupB  []Team  `json:"group_b"`
	Matches []Match `json:"matches"`
}
