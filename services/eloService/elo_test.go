package eloService

import (
	"math"
	"testing"
	"time"

	"gridironMetrics/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func intPtr(v int) *int { return &v }

func finalGame(week int, home, away string, homeScore, awayScore int) models.Game {
	start := time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, 7*week)
	return models.Game{
		Season:     2025,
		Week:       week,
		SeasonType: models.SeasonRegular,
		HomeTeam:   home,
		AwayTeam:   away,
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
		Status:     models.GameFinal,
		StartDate:  &start,
	}
}

func TestExpectedOutcome(t *testing.T) {
	if got := ExpectedOutcome(1500, 1500); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("equal ratings: expected 0.5, got %v", got)
	}

	// A 400-point edge is worth 10:1.
	if got := ExpectedOutcome(1900, 1500); math.Abs(got-10.0/11.0) > 1e-9 {
		t.Errorf("400-point edge: expected %v, got %v", 10.0/11.0, got)
	}

	if got := ExpectedOutcome(1500, 1900) + ExpectedOutcome(1900, 1500); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("probabilities must sum to 1, got %v", got)
	}
}

func TestPredictSpreadMonotonic(t *testing.T) {
	prev := math.Inf(-1)
	for diff := -200.0; diff <= 200.0; diff += 25.0 {
		spread := PredictSpread(1500+diff, 1500)
		if spread <= prev {
			t.Fatalf("spread not strictly increasing: %v after %v at diff %v", spread, prev, diff)
		}
		prev = spread
	}

	if got := PredictSpread(1525, 1500); got != 1.0 {
		t.Errorf("25-point gap: expected 1.0, got %v", got)
	}
}

func TestSimulateSeasonNoGames(t *testing.T) {
	rc := NewRatingContext(2025)

	if got := SimulateSeason(rc, DefaultConfig(), "Akron", nil); got != StartingElo {
		t.Errorf("team with no games: expected %v, got %v", StartingElo, got)
	}
	if len(rc.Snapshots()) != 0 {
		t.Errorf("expected no snapshots, got %d", len(rc.Snapshots()))
	}
}

func TestTieLeavesRatingsUnchanged(t *testing.T) {
	rc := NewRatingContext(2025)
	games := []models.Game{finalGame(1, "Georgia", "Alabama", 21, 21)}

	got := SimulateSeason(rc, DefaultConfig(), "Georgia", games)
	if got != StartingElo {
		t.Errorf("tied game: expected home rating %v, got %v", StartingElo, got)
	}
	if rc.Rating("Alabama") != StartingElo {
		t.Errorf("tied game: expected away rating %v, got %v", StartingElo, rc.Rating("Alabama"))
	}
}

func TestHeadToHeadUpdateIsZeroSum(t *testing.T) {
	rc := NewRatingContext(2025)
	games := []models.Game{finalGame(1, "Georgia", "Alabama", 31, 21)}

	SimulateSeason(rc, DefaultConfig(), "Georgia", games)

	winnerDelta := rc.Rating("Georgia") - StartingElo
	loserDelta := rc.Rating("Alabama") - StartingElo
	if winnerDelta <= 0 {
		t.Errorf("winner must gain rating, delta %v", winnerDelta)
	}
	// First game of the season for both: SOS factors are both neutral, so
	// the exchange is exactly symmetric.
	if math.Abs(winnerDelta+loserDelta) > 1e-9 {
		t.Errorf("expected zero-sum exchange, got %v and %v", winnerDelta, loserDelta)
	}
}

func TestUndefeatedHomeTrajectoryIncreases(t *testing.T) {
	rc := NewRatingContext(2025)
	games := []models.Game{
		finalGame(1, "Georgia", "Clemson", 35, 10),
		finalGame(2, "Georgia", "Auburn", 42, 14),
		finalGame(3, "Georgia", "Tennessee", 31, 3),
		finalGame(4, "Georgia", "Florida", 45, 17),
	}

	final := SimulateSeason(rc, DefaultConfig(), "Georgia", games)
	if final <= StartingElo {
		t.Fatalf("undefeated team must finish above %v, got %v", StartingElo, final)
	}

	snapshots := rc.Snapshots()
	if len(snapshots) != 4 {
		t.Fatalf("expected 4 snapshots, got %d", len(snapshots))
	}

	prev := StartingElo
	for i, snap := range snapshots {
		if snap.NewElo <= prev {
			t.Errorf("week %d: rating must increase, %v after %v", i+1, snap.NewElo, prev)
		}
		if snap.Expected >= 1.0 {
			t.Errorf("week %d: expected outcome must stay below 1, got %v", i+1, snap.Expected)
		}
		prev = snap.NewElo
	}
}

func TestPlayoffKFactorSwingsHarder(t *testing.T) {
	regular := NewRatingContext(2025)
	SimulateSeason(regular, DefaultConfig(), "Georgia", []models.Game{
		finalGame(1, "Georgia", "Alabama", 27, 20),
	})

	playoffGame := finalGame(1, "Georgia", "Alabama", 27, 20)
	playoffGame.SeasonType = models.SeasonPlayoff
	playoff := NewRatingContext(2025)
	SimulateSeason(playoff, DefaultConfig(), "Georgia", []models.Game{playoffGame})

	regularGain := regular.Rating("Georgia") - StartingElo
	playoffGain := playoff.Rating("Georgia") - StartingElo
	if playoffGain <= regularGain {
		t.Errorf("playoff K must swing harder: regular %v, playoff %v", regularGain, playoffGain)
	}
}

func TestNonFinalGameIsForecastOnly(t *testing.T) {
	rc := NewRatingContext(2025)
	scheduled := finalGame(1, "Georgia", "Alabama", 0, 0)
	scheduled.Status = models.GameScheduled
	scheduled.HomeScore = nil
	scheduled.AwayScore = nil

	got := SimulateSeason(rc, DefaultConfig(), "Georgia", []models.Game{scheduled})
	if got != StartingElo {
		t.Errorf("scheduled game must not move the rating, got %v", got)
	}
	if len(rc.Snapshots()) != 0 {
		t.Errorf("forecast branch must not write snapshots, got %d", len(rc.Snapshots()))
	}
}

func TestSimulateTeamSeasonLoadsSchedule(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	if err := db.AutoMigrate(&models.Game{}); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}

	games := []models.Game{
		finalGame(1, "Georgia", "Clemson", 35, 10),
		finalGame(2, "Auburn", "Georgia", 13, 24),
		finalGame(2, "Clemson", "Florida", 21, 20), // not Georgia's game
	}
	for i := range games {
		if err := db.Create(&games[i]).Error; err != nil {
			t.Fatalf("seeding game: %v", err)
		}
	}

	rc := NewRatingContext(2025)
	final, err := SimulateTeamSeason(db, rc, DefaultConfig(), "Georgia", 2025)
	if err != nil {
		t.Fatalf("SimulateTeamSeason: %v", err)
	}

	if final <= StartingElo {
		t.Errorf("two wins must finish above %v, got %v", StartingElo, final)
	}
	if len(rc.Snapshots()) != 2 {
		t.Errorf("expected 2 snapshots, got %d", len(rc.Snapshots()))
	}
}

func TestFinalGameWithoutScoresIsSkipped(t *testing.T) {
	rc := NewRatingContext(2025)
	broken := finalGame(1, "Georgia", "Alabama", 0, 0)
	broken.HomeScore = nil
	broken.AwayScore = nil

	games := []models.Game{
		broken,
		finalGame(2, "Georgia", "Auburn", 28, 7),
	}

	got := SimulateSeason(rc, DefaultConfig(), "Georgia", games)
	if got <= StartingElo {
		t.Errorf("the playable game should still apply, got %v", got)
	}
	if len(rc.Snapshots()) != 1 {
		t.Errorf("expected 1 snapshot from the playable game, got %d", len(rc.Snapshots()))
	}
	if rc.Rating("Alabama") != StartingElo {
		t.Errorf("opponent of the skipped game must be untouched, got %v", rc.Rating("Alabama"))
	}
}
