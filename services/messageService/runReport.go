package messageService

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

type RunSummary struct {
	RunID           string
	Season          int
	PlaysScored     int
	TeamsRated      int
	SpreadsComputed int
	SpreadsSkipped  int
	Failures        int
	Started         time.Time
	Duration        time.Duration
}

func BuildRunReportEmbed(summary RunSummary) *discordgo.MessageEmbed {
	color := 0x2ECC71
	if summary.Failures > 0 {
		color = 0xE74C3C
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📊 Rating Run Complete: %d Season", summary.Season),
		Description: fmt.Sprintf("Run `%s` finished in %s", summary.RunID, summary.Duration.Round(time.Second)),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Plays Scored", Value: fmt.Sprintf("%d", summary.PlaysScored), Inline: true},
			{Name: "Teams Rated", Value: fmt.Sprintf("%d", summary.TeamsRated), Inline: true},
			{Name: "Spreads", Value: fmt.Sprintf("%d computed / %d skipped", summary.SpreadsComputed, summary.SpreadsSkipped), Inline: true},
			{Name: "Stage Failures", Value: fmt.Sprintf("%d", summary.Failures), Inline: true},
		},
		Timestamp: summary.Started.Format(time.RFC3339),
	}
}

// PostRunReport sends the run summary to the configured channel. Without a
// session or channel the summary only goes to the log; the pipeline itself
// never depends on Discord being up.
func PostRunReport(s *discordgo.Session, channelID string, summary RunSummary) {
	if s == nil || channelID == "" {
		log.Printf("messageService: run %s summary: %d plays, %d teams, %d/%d spreads, %d failures",
			summary.RunID, summary.PlaysScored, summary.TeamsRated,
			summary.SpreadsComputed, summary.SpreadsSkipped, summary.Failures)
		return
	}

	_, err := s.ChannelMessageSendEmbed(channelID, BuildRunReportEmbed(summary))
	if err != nil {
		log.Printf("messageService: error posting run report: %v", err)
	}
}
