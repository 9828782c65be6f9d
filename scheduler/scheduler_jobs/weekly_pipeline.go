package scheduler_jobs

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"gridironMetrics/services"
	"gridironMetrics/services/eloService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func RunWeeklyPipeline(s *discordgo.Session, db *gorm.DB) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in RunWeeklyPipeline", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in RunWeeklyPipeline: %v", r)
		}
	}()

	pipeline := services.Pipeline{
		DB:              db,
		Session:         s,
		ReportChannelID: os.Getenv("REPORT_CHANNEL_ID"),
		Season:          services.SeasonForDate(time.Now()),
		Elo:             eloService.ConfigFromEnv(),
	}

	return pipeline.RunWeekly()
}
