package models

// MaxTeams is the number of teams a tournament can hold.
const MaxTeams = 8

type Team struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Player belongs to exactly one team; its name is unique within that team only.
type Player struct {
	ID       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	TeamID   int    `json:"team_id" db:"team_id"`
	TeamName string `json:"team_name,omitempty" db:"-"`
}
