package scheduler

import (
	"fmt"

	"gridironMetrics/models"
	"gridironMetrics/scheduler/scheduler_jobs"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func SetupCron(s *discordgo.Session, db *gorm.DB) {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc("0 0 */1 * 8-12 *", func() {
		// // Every hour, August through December
		err := scheduler_jobs.ScorePlays(db)
		if err != nil {
			fmt.Println(err)
		}
	})
	_, err = cronService.AddFunc("0 0 */1 * 1 *", func() {
		// // Every hour through the January playoff
		err := scheduler_jobs.ScorePlays(db)
		if err != nil {
			fmt.Println(err)
		}
	})

	_, err = cronService.AddFunc("0 0 5 * 8-12 *", func() {
		// // At 5am every day, August through December
		err := scheduler_jobs.RunRatings(db)
		if err != nil {
			fmt.Println(err)
		}
	})
	_, err = cronService.AddFunc("0 0 5 * 1 *", func() {
		// // At 5am every day in January
		err := scheduler_jobs.RunRatings(db)
		if err != nil {
			fmt.Println(err)
		}
	})

	_, err = cronService.AddFunc("0 0 7 * 8-12 *", func() {
		// // At 7am every day, after ratings have settled
		err := scheduler_jobs.RunSpreads(db)
		if err != nil {
			fmt.Println(err)
		}
	})
	_, err = cronService.AddFunc("0 0 7 * 1 *", func() {
		// // At 7am every day in January
		err := scheduler_jobs.RunSpreads(db)
		if err != nil {
			fmt.Println(err)
		}
	})

	_, err = cronService.AddFunc("0 0 4 * 8-12 1", func() {
		// // Monday 4am full pass, once the weekend's games are final
		err := scheduler_jobs.RunWeeklyPipeline(s, db)
		if err != nil {
			fmt.Println(err)
		}
	})
	_, err = cronService.AddFunc("0 0 4 * 1 1", func() {
		// // Monday 4am full pass through the January playoff
		err := scheduler_jobs.RunWeeklyPipeline(s, db)
		if err != nil {
			fmt.Println(err)
		}
	})

	if err != nil {
		errLog := models.ErrorLog{
			Scope:   "CRON ERR",
			Message: fmt.Sprintf("%v", err),
		}
		db.Create(&errLog)
	}

	cronService.Start()
}
