package scheduler_jobs

import (
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"gridironMetrics/services"

	"gorm.io/gorm"
)

func RunSpreads(db *gorm.DB) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in RunSpreads", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in RunSpreads: %v", r)
		}
	}()

	season := services.SeasonForDate(time.Now())

	computed, skipped, err := services.RunSpreadBlends(db, season)
	if err != nil {
		return err
	}

	log.Printf("RunSpreads: computed %d spread estimates, skipped %d incomplete matchups", computed, skipped)
	return nil
}
