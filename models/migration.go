package models

import (
	"gorm.io/gorm"
	"time"
)

// Migration marks one-shot data backfills (like the rating seed) as done.
type Migration struct {
	gorm.Model
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"uniqueIndex; size:255"`
	ExecutedAt time.Time
}
