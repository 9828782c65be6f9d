package storeService

import (
	"gridironMetrics/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Upserts are keyed by natural identifiers so a partial batch can simply be
// re-run: team+season for ratings, game for spread estimates.

func UpsertTeamRating(db *gorm.DB, rating *models.TeamRating) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team"}, {Name: "season"}},
		DoUpdates: clause.AssignmentColumns([]string{"elo", "last_week", "updated_at"}),
	}).Create(rating).Error
}

func UpsertSpreadEstimate(db *gorm.DB, estimate *models.SpreadEstimate) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"season", "week",
			"power_spread", "elo_spread", "independent_spread", "advanced_spread",
			"spread", "in_conference", "updated_at",
		}),
	}).Create(estimate).Error
}

func SaveSnapshots(db *gorm.DB, snapshots []models.RatingSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	return db.CreateInBatches(snapshots, 100).Error
}
