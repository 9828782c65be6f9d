package scheduler_jobs

import (
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"gridironMetrics/services"
	"gridironMetrics/services/eloService"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func RunRatings(db *gorm.DB) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in RunRatings", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in RunRatings: %v", r)
		}
	}()

	season := services.SeasonForDate(time.Now())
	cfg := eloService.ConfigFromEnv()

	rated, err := services.RunSeasonRatings(db, season, cfg, uuid.NewString())
	if err != nil {
		return err
	}

	log.Printf("RunRatings: updated %d team ratings for season %d", rated, season)
	return nil
}
