package scheduler_jobs

import (
	"fmt"
	"log"
	"runtime/debug"

	"gridironMetrics/services"

	"gorm.io/gorm"
)

func ScorePlays(db *gorm.DB) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in ScorePlays", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in ScorePlays: %v", r)
		}
	}()

	scored, err := services.ScorePlays(db)
	if err != nil {
		return err
	}

	if scored > 0 {
		log.Printf("ScorePlays: scored %d new plays", scored)
	}
	return nil
}
