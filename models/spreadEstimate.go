package models

import "gorm.io/gorm"

// SpreadEstimate holds one blended spread per game. Recomputation overwrites
// the row in place; there is no history, the persistence side would have to
// add versioning if point-in-time audit were ever needed.
type SpreadEstimate struct {
	gorm.Model
	ID                uint `gorm:"primaryKey"`
	GameID            uint `gorm:"uniqueIndex"`
	Season            int
	Week              int
	PowerSpread       float64
	EloSpread         float64
	IndependentSpread float64
	AdvancedSpread    float64
	Spread            float64
	InConference      bool
}
