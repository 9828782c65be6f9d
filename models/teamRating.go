package models

import "gorm.io/gorm"

type TeamRating struct {
	gorm.Model
	ID       uint    `gorm:"primaryKey"`
	Team     string  `gorm:"uniqueIndex:team_season_idx; size:64"`
	Season   int     `gorm:"uniqueIndex:team_season_idx"`
	Elo      float64 `gorm:"default:1500"`
	LastWeek int
}
