package models

// Standing is one row of a group table. It is always derived from played matches, never stored.
type Standing struct {
	TeamID         int    `json:"team_id"`
	Name           string `json:"name"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	Points         int    `json:"points"`
	GoalDifference int    `json:"goal_difference"`
}

type TopScorer struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	TeamName string `json:"team"`
	Goals    int    `json:"goals"`
}

// Report is the document uploaded by the report exporter.
type Report struct {
	GeneratedAt string                `json:"generated_at"`
	Standings   map[string][]Standing `json:"standings"`
	TopScorers  []TopScorer           `json:"top_scorers"`
	Matches     []Match               `json:"matches"`
}
