package epaService

import (
	"fmt"
	"log"
	"math"
	"strings"

	"gridironMetrics/services/common"
)

// Play carries the situational inputs the calculator needs. Type is the
// normalized play-type name (provider naming when available, classifier
// naming otherwise); field positions are yards from the offense's own goal.
type Play struct {
	Type       string
	Down       int
	Distance   int
	StartYards int
	EndYards   int
	Scoring    bool
	Touchdown  bool
	Turnover   bool
}

const turnoverPenalty = 4.0

// CalculateEPA assigns a point value to one play. It never lets a failure
// escape: a malformed record yields 0.0 and a logged payload so the rest of
// the batch keeps moving. Downstream aggregation counts on always getting a
// number back, so do not turn the recover path into a returned error.
func CalculateEPA(p Play) (epa float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("epaService: recovered scoring play %+v: %v", p, r)
			epa = 0.0
		}
	}()

	if p.Scoring {
		return scoringValue(p)
	}

	t := strings.ToLower(p.Type)
	switch {
	case strings.Contains(t, "kickoff"):
		return -0.5
	case strings.Contains(t, "punt"):
		net := float64(p.EndYards - p.StartYards)
		return common.Round(-1.5+0.05*math.Max(0, net-40), 2)
	}

	if p.StartYards < 0 || p.StartYards > 100 || p.EndYards < 0 || p.EndYards > 100 {
		panic(fmt.Sprintf("field position out of range: start=%d end=%d", p.StartYards, p.EndYards))
	}

	value := FieldValue(float64(p.EndYards)) - FieldValue(float64(p.StartYards))
	value *= downMultiplier(p.Down)
	value *= distanceMultiplier(p.Distance)
	value = adjustForType(t, value)

	if p.Turnover {
		value -= turnoverPenalty
	}

	return common.Round(value, 2)
}

func scoringValue(p Play) float64 {
	t := strings.ToLower(p.Type)
	switch {
	case p.Touchdown:
		return 7.0
	case strings.Contains(t, "field goal") || strings.Contains(t, "field_goal"):
		if p.Turnover {
			return 0.0
		}
		return 3.0
	case strings.Contains(t, "safety"):
		return 2.0
	}
	return 0.0
}

// FieldValue is the expected-points curve over field position, expressed in
// yards from the offense's own goal. The curve is piecewise linear in yards
// from the opponent's goal; the 30- and 70-yard seams step by 0.2 and 0.7.
func FieldValue(yardLine float64) float64 {
	y := 100 - yardLine
	switch {
	case y <= 10:
		return 5.0 + 0.2*(10-y)
	case y <= 30:
		return 3.0 + 0.1*(30-y)
	case y <= 70:
		return 2.0 + 0.02*(70-y)
	default:
		return 1.0 + 0.01*(100-y)
	}
}

func downMultiplier(down int) float64 {
	switch down {
	case 2:
		return 0.9
	case 3:
		return 0.8
	case 4:
		return 0.7
	}
	return 1.0
}

func distanceMultiplier(distance int) float64 {
	switch {
	case distance <= 3:
		return 1.2
	case distance <= 7:
		return 1.0
	case distance <= 10:
		return 0.9
	}
	return 0.8
}

type typeAdjustment struct {
	name  string
	apply func(float64) float64
}

// Ordered so that "sack" wins over the generic pass naming some feeds use.
// Types matching nothing here pass through unadjusted.
var typeAdjustments = []typeAdjustment{
	{"sack", func(v float64) float64 { return v - 1.0 }},
	{"reception", func(v float64) float64 { return v * 1.1 }},
	{"incompletion", func(v float64) float64 { return v - 0.5 }},
	{"rush", func(v float64) float64 { return v * 0.95 }},
	{"penalty", func(v float64) float64 { return v * 0.5 }},
}

func adjustForType(normalized string, value float64) float64 {
	for _, adj := range typeAdjustments {
		if strings.Contains(normalized, adj.name) {
			return adj.apply(value)
		}
	}
	return value
}
