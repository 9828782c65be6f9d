package eloService

import (
	"log"
	"math"
	"os"
	"strconv"

	"gridironMetrics/models"
	"gridironMetrics/services/common"

	"gorm.io/gorm"
)

const (
	StartingElo      = 1500.0
	DefaultKFactor   = 32.0
	PlayoffKFactor   = 40.0
	DefaultHomeBonus = 1.3
)

type Config struct {
	KFactor   float64
	PlayoffK  float64
	HomeBonus float64
}

func DefaultConfig() Config {
	return Config{
		KFactor:   DefaultKFactor,
		PlayoffK:  PlayoffKFactor,
		HomeBonus: DefaultHomeBonus,
	}
}

// ConfigFromEnv starts from the defaults and applies ELO_K_FACTOR and
// ELO_HOME_BONUS overrides when they parse.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("ELO_K_FACTOR"); v != "" {
		if k, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.KFactor = k
		}
	}
	if v := os.Getenv("ELO_HOME_BONUS"); v != "" {
		if b, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.HomeBonus = b
		}
	}
	return cfg
}

// RatingContext is the working set for one season simulation. The caller owns
// it; there is no package-level rating state, so independent team-season runs
// can go in parallel with a context each.
type RatingContext struct {
	Season    int
	ratings   map[string]float64
	opponents map[string][]float64
	snapshots []models.RatingSnapshot
}

func NewRatingContext(season int) *RatingContext {
	return &RatingContext{
		Season:    season,
		ratings:   make(map[string]float64),
		opponents: make(map[string][]float64),
	}
}

// Rating returns the team's working Elo, or the starting value for a team the
// run has not touched yet.
func (rc *RatingContext) Rating(team string) float64 {
	if r, ok := rc.ratings[team]; ok {
		return r
	}
	return StartingElo
}

func (rc *RatingContext) Snapshots() []models.RatingSnapshot {
	return rc.snapshots
}

// sosFactor is the average Elo of the opponents a team has faced so far this
// run, relative to the starting rating. A team with no games yet is neutral.
func (rc *RatingContext) sosFactor(team string) float64 {
	opps := rc.opponents[team]
	if len(opps) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, elo := range opps {
		sum += elo
	}
	return (sum / float64(len(opps))) / StartingElo
}

// SimulateSeason walks the team's games in chronological order and returns
// the rating at the end of the trajectory. Final games move both sides'
// ratings in the working set; non-final games only produce a logged forecast.
// Order matters here, each update builds on the accumulated rating, so the
// caller must not reorder or shard a single team's games.
func SimulateSeason(rc *RatingContext, cfg Config, team string, games []models.Game) float64 {
	if len(games) == 0 {
		log.Printf("eloService: no games for %s in %d, keeping starting rating", team, rc.Season)
		return rc.Rating(team)
	}

	for _, game := range games {
		opponent := game.Opponent(team)
		if opponent == "" {
			log.Printf("eloService: %s not in game %d, skipping", team, game.ID)
			continue
		}

		if game.Status != models.GameFinal {
			prob := ExpectedOutcome(rc.Rating(team), rc.Rating(opponent))
			log.Printf("eloService: forecast %s vs %s week %d: win prob %.3f, spread %.1f",
				team, opponent, game.Week, prob, PredictSpread(rc.Rating(team), rc.Rating(opponent)))
			continue
		}
		if game.HomeScore == nil || game.AwayScore == nil {
			log.Printf("eloService: game %d is final without scores, skipping rating update", game.ID)
			continue
		}

		applyGame(rc, cfg, team, opponent, &game)
	}

	return rc.Rating(team)
}

func applyGame(rc *RatingContext, cfg Config, team, opponent string, game *models.Game) {
	teamScore, oppScore := *game.HomeScore, *game.AwayScore
	if game.AwayTeam == team {
		teamScore, oppScore = oppScore, teamScore
	}

	result := 0.5
	switch {
	case teamScore > oppScore:
		result = 1.0
	case teamScore < oppScore:
		result = 0.0
	}

	k := cfg.KFactor
	if game.SeasonType == models.SeasonPlayoff {
		k = cfg.PlayoffK
	}

	// The home bonus feeds the expectation and MOV math but is not baked
	// into the stored rating: a zero-magnitude update leaves both sides
	// where they were.
	baseTeam := rc.Rating(team)
	teamElo := baseTeam
	if game.HomeTeam == team {
		teamElo += cfg.HomeBonus
	}
	oppElo := rc.Rating(opponent)

	expected := ExpectedOutcome(teamElo, oppElo)
	margin := teamScore - oppScore
	if margin < 0 {
		margin = -margin
	}
	mov := math.Log(float64(margin)+1) * (2.2 / (0.001*(teamElo-oppElo) + 2.2))
	sosTeam := rc.sosFactor(team)
	sosOpp := rc.sosFactor(opponent)

	newTeam := baseTeam + k*(result-expected)*mov*sosTeam
	newOpp := oppElo + k*(expected-result)*mov*sosOpp

	rc.snapshots = append(rc.snapshots, models.RatingSnapshot{
		Season:      rc.Season,
		Week:        game.Week,
		Team:        team,
		Opponent:    opponent,
		TeamElo:     teamElo,
		OpponentElo: oppElo,
		Expected:    expected,
		Margin:      margin,
		Sos:         sosTeam,
		NewElo:      newTeam,
	})

	// Record pre-game opponent strength before the new ratings land.
	rc.opponents[team] = append(rc.opponents[team], oppElo)
	rc.opponents[opponent] = append(rc.opponents[opponent], teamElo)

	rc.ratings[team] = newTeam
	rc.ratings[opponent] = newOpp
}

// SimulateTeamSeason loads the team's schedule from the database and runs the
// trajectory over it.
func SimulateTeamSeason(db *gorm.DB, rc *RatingContext, cfg Config, team string, season int) (float64, error) {
	var games []models.Game
	result := db.
		Where("season = ? AND (home_team = ? OR away_team = ?)", season, team, team).
		Order("start_date, week").
		Find(&games)
	if result.Error != nil {
		return rc.Rating(team), result.Error
	}

	return SimulateSeason(rc, cfg, team, games), nil
}

func ExpectedOutcome(eloA, eloB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (eloB-eloA)/400.0))
}

// PredictSpread converts a rating gap into points, one decimal.
func PredictSpread(eloA, eloB float64) float64 {
	return common.Round((eloA-eloB)/25.0, 1)
}
