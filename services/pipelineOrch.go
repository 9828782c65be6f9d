package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gridironMetrics/models"
	"gridironMetrics/services/common"
	"gridironMetrics/services/eloService"
	"gridironMetrics/services/epaService"
	"gridironMetrics/services/messageService"
	"gridironMetrics/services/playService"
	"gridironMetrics/services/spreadService"
	"gridironMetrics/services/storeService"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pipeline wires the batch stages together for one season. The cron jobs run
// stages individually during the week and the whole thing after the games.
type Pipeline struct {
	DB              *gorm.DB
	Session         *discordgo.Session
	ReportChannelID string
	Season          int
	Elo             eloService.Config
}

// SeasonForDate maps a date to its football season: January games still
// belong to the prior fall's season.
func SeasonForDate(t time.Time) int {
	if t.Month() < time.August {
		return t.Year() - 1
	}
	return t.Year()
}

// RunWeekly runs the full pass: score new plays, resimulate every team's
// season, blend spreads for the upcoming games. Stage failures are logged and
// the run keeps going; every write is an idempotent upsert, so a partial run
// is repaired by the next one.
func (p *Pipeline) RunWeekly() error {
	runID := uuid.NewString()
	started := time.Now()
	log.Printf("pipeline: starting weekly run %s for season %d", runID, p.Season)

	summary := messageService.RunSummary{
		RunID:   runID,
		Season:  p.Season,
		Started: started,
	}

	scored, err := ScorePlays(p.DB)
	if err != nil {
		common.LogError(p.DB, "pipeline.ScorePlays", err)
		summary.Failures++
	}
	summary.PlaysScored = scored

	rated, err := RunSeasonRatings(p.DB, p.Season, p.Elo, runID)
	if err != nil {
		common.LogError(p.DB, "pipeline.RunSeasonRatings", err)
		summary.Failures++
	}
	summary.TeamsRated = rated

	computed, skipped, err := RunSpreadBlends(p.DB, p.Season)
	if err != nil {
		common.LogError(p.DB, "pipeline.RunSpreadBlends", err)
		summary.Failures++
	}
	summary.SpreadsComputed = computed
	summary.SpreadsSkipped = skipped

	summary.Duration = time.Since(started)
	messageService.PostRunReport(p.Session, p.ReportChannelID, summary)

	log.Printf("pipeline: run %s done in %s (%d plays, %d teams, %d spreads, %d skipped)",
		runID, summary.Duration.Round(time.Second), scored, rated, computed, skipped)

	if summary.Failures > 0 {
		return fmt.Errorf("weekly run %s finished with %d stage failures", runID, summary.Failures)
	}
	return nil
}

// ScorePlays classifies and values every play that has not been scored yet.
// One bad play is logged and skipped, never fatal to the batch.
func ScorePlays(db *gorm.DB) (int, error) {
	var plays []models.PlayRecord
	result := db.Where("epa IS NULL").Order("game_id, id").Find(&plays)
	if result.Error != nil {
		return 0, result.Error
	}

	drives := make(map[uint]*playService.DriveTracker)
	scored := 0

	for i := range plays {
		play := &plays[i]

		parsed := playService.Parse(play.PeriodText, play.Clock, play.Description)
		play.Quarter = parsed.Quarter
		play.Down = parsed.Down
		play.Distance = parsed.Distance
		play.YardLine = parsed.YardLine
		play.PlayType = parsed.PlayType
		play.Yards = parsed.Yards
		play.FirstDown = parsed.FirstDown
		play.Touchdown = parsed.Touchdown
		play.Turnover = parsed.Turnover

		if drives[play.GameID] == nil {
			drives[play.GameID] = resumeTracker(db, play.GameID)
		}
		play.Drive = drives[play.GameID].Next(play.Offense)

		epa := epaService.CalculateEPA(toEPAPlay(play, &parsed))
		play.EPA = &epa

		if err := db.Save(play).Error; err != nil {
			common.LogError(db, "pipeline.ScorePlays", fmt.Errorf("saving play %d: %w", play.ID, err))
			continue
		}
		scored++
	}

	return scored, nil
}

// resumeTracker seeds a game's drive numbering from its last scored play, so
// the hourly batches during a live game share one continuous sequence.
func resumeTracker(db *gorm.DB, gameID uint) *playService.DriveTracker {
	var last models.PlayRecord
	result := db.Where("game_id = ? AND epa IS NOT NULL", gameID).Order("id DESC").Limit(1).Find(&last)
	if result.Error != nil {
		common.LogError(db, "pipeline.ScorePlays", fmt.Errorf("loading last scored play for game %d: %w", gameID, result.Error))
		return &playService.DriveTracker{}
	}
	if result.RowsAffected == 0 {
		return &playService.DriveTracker{}
	}
	return playService.ResumeDriveTracker(last.Drive, last.Offense)
}

func toEPAPlay(record *models.PlayRecord, parsed *playService.StructuredPlay) epaService.Play {
	lowered := strings.ToLower(record.Description)

	typeName := parsed.PlayType
	if record.PlayTypeRaw != nil && *record.PlayTypeRaw != "" {
		typeName = *record.PlayTypeRaw
	} else if parsed.PlayType == playService.PlayKick {
		// The classifier folds punts and kickoffs into one kick type; the
		// calculator values them differently, so recover the distinction
		// from the narration when the feed gave no type of its own.
		switch {
		case strings.Contains(lowered, "punt"):
			typeName = "punt"
		case strings.Contains(lowered, "kicks off") || strings.Contains(lowered, "kickoff"):
			typeName = "kickoff"
		}
	}

	// Safeties carry no touchdown flag and no classifier type of their own.
	// The narration check wants the capitalized scoring callout, a lowercase
	// "safety" is a defender's position.
	safety := !parsed.Touchdown &&
		(strings.Contains(strings.ToLower(typeName), "safety") || strings.Contains(record.Description, "SAFETY"))
	if safety {
		typeName = "safety"
	}

	down, distance := 0, 0
	if parsed.Down != nil {
		down = *parsed.Down
	}
	if parsed.Distance != nil {
		distance = *parsed.Distance
	}

	return epaService.Play{
		Type:       typeName,
		Down:       down,
		Distance:   distance,
		StartYards: record.StartYards,
		EndYards:   record.EndYards,
		Scoring:    parsed.Touchdown || safety || (parsed.PlayType == playService.PlayFieldGoal && !parsed.Turnover),
		Touchdown:  parsed.Touchdown,
		Turnover:   parsed.Turnover,
	}
}

// RunSeasonRatings resimulates every team's season from scratch and upserts
// the resulting rating. Each team gets a fresh context: the trajectory is
// recomputed from the full game list, the stored row is just the latest
// output, not a source of truth.
func RunSeasonRatings(db *gorm.DB, season int, cfg eloService.Config, runID string) (int, error) {
	var games []models.Game
	result := db.Where("season = ?", season).Order("start_date, week").Find(&games)
	if result.Error != nil {
		return 0, result.Error
	}

	teams := make([]string, 0)
	seen := make(map[string]bool)
	for _, g := range games {
		for _, team := range []string{g.HomeTeam, g.AwayTeam} {
			if !seen[team] {
				seen[team] = true
				teams = append(teams, team)
			}
		}
	}

	rated := 0
	for _, team := range teams {
		rc := eloService.NewRatingContext(season)

		var schedule []models.Game
		for _, g := range games {
			if g.Involves(team) {
				schedule = append(schedule, g)
			}
		}

		finalElo := eloService.SimulateSeason(rc, cfg, team, schedule)

		lastWeek := 0
		for _, g := range schedule {
			if g.Playable() && g.Week > lastWeek {
				lastWeek = g.Week
			}
		}

		rating := models.TeamRating{Team: team, Season: season, Elo: finalElo, LastWeek: lastWeek}
		if err := storeService.UpsertTeamRating(db, &rating); err != nil {
			common.LogError(db, "pipeline.RunSeasonRatings", fmt.Errorf("upserting %s: %w", team, err))
			continue
		}

		snapshots := rc.Snapshots()
		for i := range snapshots {
			snapshots[i].RunID = runID
		}
		if err := storeService.SaveSnapshots(db, snapshots); err != nil {
			common.LogError(db, "pipeline.RunSeasonRatings", fmt.Errorf("saving snapshots for %s: %w", team, err))
		}

		rated++
	}

	return rated, nil
}

// RunSpreadBlends computes a blended spread for every game still to be
// played. Matchups with incomplete rating bundles are skipped outright, the
// blender never fills in a missing signal.
func RunSpreadBlends(db *gorm.DB, season int) (int, int, error) {
	var games []models.Game
	result := db.Where("season = ?", season).Find(&games)
	if result.Error != nil {
		return 0, 0, result.Error
	}

	blendable := []string{models.GameScheduled, models.GameInProgress}

	computed, skipped := 0, 0
	for i := range games {
		game := &games[i]
		if !common.Contains(blendable, game.Status) {
			continue
		}

		bundle, err := spreadService.BuildBundle(db, game)
		if err != nil {
			common.LogError(db, "pipeline.RunSpreadBlends", fmt.Errorf("bundle for game %d: %w", game.ID, err))
			skipped++
			continue
		}

		estimate, err := spreadService.Blend(bundle)
		if err != nil {
			log.Printf("pipeline: no estimate for %s @ %s week %d: %v", game.AwayTeam, game.HomeTeam, game.Week, err)
			skipped++
			continue
		}

		if err := storeService.UpsertSpreadEstimate(db, &estimate); err != nil {
			common.LogError(db, "pipeline.RunSpreadBlends", fmt.Errorf("upserting estimate for game %d: %w", game.ID, err))
			skipped++
			continue
		}
		computed++
	}

	return computed, skipped, nil
}
