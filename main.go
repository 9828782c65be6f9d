package main

import (
	"log"
	"os"

	"gridironMetrics/models"
	"gridironMetrics/scheduler"
	"gridironMetrics/services"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file")
	}

	connString := os.Getenv("MYSQL_URL")
	if connString == "" {
		log.Fatalf("MYSQL_URL not set in environment variables")
	}

	db, err = gorm.Open(mysql.Open(connString+"?charset=utf8mb4&parseTime=True&loc=Local"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Game{},
		&models.PlayRecord{},
		&models.TeamRating{},
		&models.RatingSnapshot{},
		&models.PowerRating{},
		&models.IndependentRating{},
		&models.AdvancedStat{},
		&models.SpreadEstimate{},
		&models.ErrorLog{},
		&models.Migration{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func main() {
	var dg *discordgo.Session

	token := os.Getenv("DISCORD_BOT_TOKEN")
	if token == "" {
		log.Println("DISCORD_BOT_TOKEN not set, run reports will only be logged")
	} else {
		var err error
		dg, err = discordgo.New("Bot " + token)
		if err != nil {
			log.Fatalf("Error creating Discord session: %v", err)
		}

		err = dg.Open()
		if err != nil {
			log.Fatalf("Error opening Discord session: %v", err)
		}
		defer func(dg *discordgo.Session) {
			err := dg.Close()
			if err != nil {

			}
		}(dg)
	}

	if err := services.RunRatingSeedMigration(db); err != nil {
		log.Printf("Error running rating seed migration: %v", err)
	}

	scheduler.SetupCron(dg, db)

	log.Println("Rating pipeline is running. Press CTRL+C to exit.")
	select {}
}
