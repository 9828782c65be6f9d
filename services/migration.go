package services

import (
	"fmt"
	"log"
	"time"

	"gridironMetrics/models"
	"gridironMetrics/services/eloService"

	"gorm.io/gorm"
)

// RunRatingSeedMigration creates a starting-rating row for every team that
// appears in the games table but has no rating yet. One-shot: the migrations
// table remembers that it ran.
func RunRatingSeedMigration(db *gorm.DB) error {
	var existingMigration models.Migration
	result := db.Where("name = ?", "seed_team_ratings").First(&existingMigration)
	if result.Error == nil && existingMigration.ID != 0 {
		log.Println("Team rating seed migration has already been executed. Skipping.")
		return nil
	}

	log.Println("Starting team rating seed migration...")

	var games []models.Game
	if err := db.Find(&games).Error; err != nil {
		return fmt.Errorf("error fetching games: %v", err)
	}

	seeded := 0
	seen := make(map[string]bool)
	for _, game := range games {
		for _, team := range []string{game.HomeTeam, game.AwayTeam} {
			key := fmt.Sprintf("%s|%d", team, game.Season)
			if seen[key] {
				continue
			}
			seen[key] = true

			var rating models.TeamRating
			res := db.FirstOrCreate(&rating, models.TeamRating{Team: team, Season: game.Season})
			if res.Error != nil {
				log.Printf("Error seeding rating for %s: %v", team, res.Error)
				continue
			}
			if res.RowsAffected > 0 {
				rating.Elo = eloService.StartingElo
				if err := db.Save(&rating).Error; err != nil {
					log.Printf("Error saving seeded rating for %s: %v", team, err)
					continue
				}
				seeded++
			}
		}
	}

	migration := models.Migration{
		Name:       "seed_team_ratings",
		ExecutedAt: time.Now(),
	}
	if err := db.Create(&migration).Error; err != nil {
		return fmt.Errorf("error marking migration as complete: %v", err)
	}

	log.Printf("Team rating seed migration completed. Seeded %d ratings.", seeded)
	return nil
}
