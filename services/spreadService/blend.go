package spreadService

import (
	"errors"

	"gridironMetrics/models"
	"gridironMetrics/services/common"

	"gorm.io/gorm"
)

const (
	powerDivisor       = 1.4
	eloDivisor         = 40.0
	independentDivisor = 1.1

	// The four-term sum is divided by five: the six-term advanced bundle
	// counts as one signal of the same order as the other three. Pinned, do
	// not "fix".
	blendDivisor = 5.0

	conferenceMultiplier = 1.4

	efficiencyWeight = 1.6
	yardageWeight    = 0.01
)

var ErrIncompleteBundle = errors.New("matchup rating bundle is incomplete")

// TeamSignals holds the five independent ratings for one side. Every field is
// a pointer: the blend runs on a complete bundle or not at all, a missing
// provider value is never replaced with a guess.
type TeamSignals struct {
	Elo          *float64
	Power        *float64
	SpecialTeams *float64
	Independent  *float64
	Sos          *float64
	Advanced     *models.AdvancedStat
}

func (t *TeamSignals) complete() bool {
	if t.Elo == nil || t.Power == nil || t.SpecialTeams == nil || t.Independent == nil || t.Sos == nil {
		return false
	}
	return t.Advanced != nil && t.Advanced.Complete()
}

type MatchupRatingBundle struct {
	GameID         uint
	Season         int
	Week           int
	SameConference bool
	Home           TeamSignals
	Away           TeamSignals
}

func (b *MatchupRatingBundle) Complete() bool {
	return b.Home.complete() && b.Away.complete()
}

// Blend combines the bundle's signals into one home-minus-away point spread.
// Pure and deterministic: the same bundle always reproduces the same
// estimate, which is what makes the per-game upsert safely re-runnable.
func Blend(b MatchupRatingBundle) (models.SpreadEstimate, error) {
	if !b.Complete() {
		return models.SpreadEstimate{}, ErrIncompleteBundle
	}

	power := (*b.Home.Power - *b.Away.Power) / powerDivisor
	elo := (*b.Home.Elo - *b.Away.Elo) / eloDivisor
	independent := (*b.Home.Independent - *b.Away.Independent) / independentDivisor
	advanced := advancedSpread(b.Home.Advanced, b.Away.Advanced)

	normalized := (power + elo + independent + advanced) / blendDivisor

	multiplier := 1.0
	if b.SameConference {
		multiplier = conferenceMultiplier
	}

	return models.SpreadEstimate{
		GameID:            b.GameID,
		Season:            b.Season,
		Week:              b.Week,
		PowerSpread:       power,
		EloSpread:         elo,
		IndependentSpread: independent,
		AdvancedSpread:    advanced,
		Spread:            common.Round(normalized*multiplier, 2),
		InConference:      b.SameConference,
	}, nil
}

// Each term pairs one side's offense against the other side's defense, then
// both pairings are summed.
func advancedSpread(home, away *models.AdvancedStat) float64 {
	cross := func(homeOff, awayDef, awayOff, homeDef *float64) float64 {
		return (*homeOff - *awayDef) + (*awayOff - *homeDef)
	}

	spread := efficiencyWeight * cross(home.OffPPA, away.DefPPA, away.OffPPA, home.DefPPA)
	spread += efficiencyWeight * cross(home.OffSuccessRate, away.DefSuccessRate, away.OffSuccessRate, home.DefSuccessRate)
	spread += efficiencyWeight * cross(home.OffExplosiveness, away.DefExplosiveness, away.OffExplosiveness, home.DefExplosiveness)
	spread += yardageWeight * cross(home.OffRushingPPA, away.DefRushingPPA, away.OffRushingPPA, home.DefRushingPPA)
	spread += yardageWeight * cross(home.OffPassingPPA, away.DefPassingPPA, away.OffPassingPPA, home.DefPassingPPA)
	spread += yardageWeight * cross(home.OffLineYards, away.DefLineYards, away.OffLineYards, home.DefLineYards)

	return spread
}

// BuildBundle assembles the matchup's signals from the rating tables. Rows
// the ingestion side has not written yet simply stay nil; Blend decides
// whether the result is usable.
func BuildBundle(db *gorm.DB, game *models.Game) (MatchupRatingBundle, error) {
	bundle := MatchupRatingBundle{
		GameID:         game.ID,
		Season:         game.Season,
		Week:           game.Week,
		SameConference: game.SameConference(),
	}

	for _, side := range []struct {
		team    string
		signals *TeamSignals
	}{
		{game.HomeTeam, &bundle.Home},
		{game.AwayTeam, &bundle.Away},
	} {
		if err := loadSignals(db, side.team, game.Season, side.signals); err != nil {
			return bundle, err
		}
	}

	return bundle, nil
}

func loadSignals(db *gorm.DB, team string, season int, signals *TeamSignals) error {
	var rating models.TeamRating
	result := db.Where("team = ? AND season = ?", team, season).Find(&rating)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		signals.Elo = &rating.Elo
	}

	var power models.PowerRating
	result = db.Where("team = ? AND season = ?", team, season).Find(&power)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		signals.Power = power.Rating
		signals.SpecialTeams = power.SpecialTeams
		signals.Sos = power.Sos
	}

	var independent models.IndependentRating
	result = db.Where("team = ? AND season = ?", team, season).Find(&independent)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		signals.Independent = independent.Rating
	}

	var advanced models.AdvancedStat
	result = db.Where("team = ? AND season = ?", team, season).Find(&advanced)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		signals.Advanced = &advanced
	}

	return nil
}
