package models

import "gorm.io/gorm"

// RatingSnapshot is an append-only audit row, one per applied Elo update. It
// records the inputs the update saw, not the current state of the world.
type RatingSnapshot struct {
	gorm.Model
	ID          uint   `gorm:"primaryKey"`
	RunID       string `gorm:"size:36; index"`
	Season      int
	Week        int
	Team        string `gorm:"size:64; index"`
	Opponent    string `gorm:"size:64"`
	TeamElo     float64
	OpponentElo float64
	Expected    float64
	Margin      int
	Sos         float64
	NewElo      float64
}
