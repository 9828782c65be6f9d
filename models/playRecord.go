package models

import "gorm.io/gorm"

// PlayRecord starts life as raw narration from the play feed. The scoring
// batch fills in the parsed fields and the EPA value; a nil EPA marks a play
// as not yet scored.
type PlayRecord struct {
	gorm.Model
	ID          uint    `gorm:"primaryKey"`
	GameID      uint    `gorm:"index"`
	Offense     string  `gorm:"size:64"`
	PeriodText  string  `gorm:"size:16"`
	Clock       string  `gorm:"size:16"`
	Description string  `gorm:"size:1024"`
	PlayTypeRaw *string `gorm:"size:64"`
	StartYards  int
	EndYards    int

	Quarter   int
	Down      *int
	Distance  *int
	YardLine  *int
	Drive     int
	PlayType  string `gorm:"size:16"`
	Yards     int
	FirstDown bool
	Touchdown bool
	Turnover  bool
	EPA       *float64
}
