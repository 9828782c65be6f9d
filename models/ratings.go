package models

import "gorm.io/gorm"

// Externally supplied per-team ratings, written by the ingestion side. Fields
// are pointers because a missing value must stay visibly missing: the spread
// blender refuses to run on an incomplete set rather than defaulting.

type PowerRating struct {
	gorm.Model
	ID           uint   `gorm:"primaryKey"`
	Team         string `gorm:"uniqueIndex:power_team_season_idx; size:64"`
	Season       int    `gorm:"uniqueIndex:power_team_season_idx"`
	Rating       *float64
	SpecialTeams *float64
	Sos          *float64
}

type IndependentRating struct {
	gorm.Model
	ID     uint   `gorm:"primaryKey"`
	Team   string `gorm:"uniqueIndex:ind_team_season_idx; size:64"`
	Season int    `gorm:"uniqueIndex:ind_team_season_idx"`
	Rating *float64
}

type AdvancedStat struct {
	gorm.Model
	ID               uint   `gorm:"primaryKey"`
	Team             string `gorm:"uniqueIndex:adv_team_season_idx; size:64"`
	Season           int    `gorm:"uniqueIndex:adv_team_season_idx"`
	OffPPA           *float64
	DefPPA           *float64
	OffSuccessRate   *float64
	DefSuccessRate   *float64
	OffExplosiveness *float64
	DefExplosiveness *float64
	OffRushingPPA    *float64
	DefRushingPPA    *float64
	OffPassingPPA    *float64
	DefPassingPPA    *float64
	OffLineYards     *float64
	DefLineYards     *float64
}

func (a *AdvancedStat) Complete() bool {
	for _, v := range []*float64{
		a.OffPPA, a.DefPPA,
		a.OffSuccessRate, a.DefSuccessRate,
		a.OffExplosiveness, a.DefExplosiveness,
		a.OffRushingPPA, a.DefRushingPPA,
		a.OffPassingPPA, a.DefPassingPPA,
		a.OffLineYards, a.DefLineYards,
	} {
		if v == nil {
			return false
		}
	}
	return true
}
