package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	GameScheduled  = "scheduled"
	GameInProgress = "in_progress"
	GameFinal      = "final"

	SeasonRegular = "regular"
	SeasonPlayoff = "playoff"
)

// Game rows are written by the ingestion side; the rating pipeline only reads
// them. Scores stay nil until the game goes final.
type Game struct {
	gorm.Model
	ID             uint   `gorm:"primaryKey"`
	Season         int    `gorm:"uniqueIndex:game_matchup_idx"`
	Week           int    `gorm:"uniqueIndex:game_matchup_idx"`
	SeasonType     string `gorm:"size:16; default:regular"`
	HomeTeam       string `gorm:"uniqueIndex:game_matchup_idx; size:64"`
	AwayTeam       string `gorm:"uniqueIndex:game_matchup_idx; size:64"`
	HomeConference string `gorm:"size:64"`
	AwayConference string `gorm:"size:64"`
	HomeScore      *int
	AwayScore      *int
	Status         string `gorm:"size:16; default:scheduled"`
	StartDate      *time.Time
}

// Playable reports whether the game can move a rating: final status with both
// scores recorded. Final-without-scores games are skipped by the engine.
func (g *Game) Playable() bool {
	return g.Status == GameFinal && g.HomeScore != nil && g.AwayScore != nil
}

func (g *Game) Involves(team string) bool {
	return g.HomeTeam == team || g.AwayTeam == team
}

// Opponent returns the other side of the matchup, or "" if the team did not
// play in this game.
func (g *Game) Opponent(team string) string {
	switch team {
	case g.HomeTeam:
		return g.AwayTeam
	case g.AwayTeam:
		return g.HomeTeam
	}
	return ""
}

func (g *Game) SameConference() bool {
	return g.HomeConference != "" && g.HomeConference == g.AwayConference
}
