package epaService

import (
	"math"
	"testing"
)

func assertClose(t *testing.T, expected, actual float64, msg string) {
	t.Helper()
	if math.Abs(expected-actual) > 1e-9 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func TestCalculateEPAScoringPlays(t *testing.T) {
	tests := []struct {
		name     string
		play     Play
		expected float64
	}{
		{"touchdown", Play{Scoring: true, Touchdown: true, Type: "rush"}, 7.0},
		{"made field goal", Play{Scoring: true, Type: "field goal good"}, 3.0},
		{"safety", Play{Scoring: true, Type: "safety"}, 2.0},
		{"scoring play of unrecognized type", Play{Scoring: true, Type: "defensive 2pt conversion"}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertClose(t, tt.expected, CalculateEPA(tt.play), "epa")
		})
	}
}

func TestCalculateEPASpecialTeams(t *testing.T) {
	assertClose(t, -0.5, CalculateEPA(Play{Type: "kickoff"}), "kickoff")

	// Net of 45: the 5 yards over 40 earn the bonus.
	assertClose(t, -1.25, CalculateEPA(Play{Type: "punt", StartYards: 30, EndYards: 75}), "long punt")
	assertClose(t, -1.5, CalculateEPA(Play{Type: "punt", StartYards: 30, EndYards: 65}), "short punt")
}

func TestCalculateEPAStandardPlays(t *testing.T) {
	tests := []struct {
		name     string
		play     Play
		expected float64
	}{
		{
			// field value 1.25 -> 2.04, base 0.79, distance 0.9, rush 0.95
			name:     "first down rush",
			play:     Play{Type: "rush", Down: 1, Distance: 10, StartYards: 25, EndYards: 32},
			expected: 0.68,
		},
		{
			// field value 2.2 -> 2.06, base -0.14, down 0.8, distance 0.9, sack -1.0
			name:     "third down sack",
			play:     Play{Type: "sack", Down: 3, Distance: 8, StartYards: 40, EndYards: 33},
			expected: -1.1,
		},
		{
			// no movement, unadjusted type, turnover penalty only
			name:     "interception at the line",
			play:     Play{Type: "pass", Down: 2, Distance: 5, StartYards: 50, EndYards: 50, Turnover: true},
			expected: -4.0,
		},
		{
			// field value 2.1 -> 2.2, base 0.1, down 0.9, distance 1.2, reception 1.1
			name:     "short second down reception",
			play:     Play{Type: "pass reception", Down: 2, Distance: 2, StartYards: 35, EndYards: 40},
			expected: 0.12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertClose(t, tt.expected, CalculateEPA(tt.play), "epa")
		})
	}
}

func TestCalculateEPAFailSoft(t *testing.T) {
	tests := []struct {
		name string
		play Play
	}{
		{"negative start yard line", Play{Type: "rush", StartYards: -5, EndYards: 20}},
		{"end position past the field", Play{Type: "rush", StartYards: 50, EndYards: 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertClose(t, 0.0, CalculateEPA(tt.play), "malformed play must score 0.0")
		})
	}
}

// The curve is only as continuous as its formula: the 10-yard seam joins
// exactly, the 30- and 70-yard seams step by 0.2 and 0.7. Pinned so a
// well-meaning cleanup of the constants shows up here.
func TestFieldValueBoundaries(t *testing.T) {
	const eps = 1e-6

	// y is yards from the opponent goal, yardLine = 100 - y.
	steps := []struct {
		name     string
		yardLine float64
		step     float64
	}{
		{"10-yard seam", 90, 0.0},
		{"30-yard seam", 70, 0.2},
		{"70-yard seam", 30, 0.7},
	}

	for _, tt := range steps {
		t.Run(tt.name, func(t *testing.T) {
			atBoundary := FieldValue(tt.yardLine)
			justBelow := FieldValue(tt.yardLine - eps)
			if math.Abs((atBoundary-justBelow)-tt.step) > 1e-3 {
				t.Errorf("expected step of %v at yard line %v, got %v", tt.step, tt.yardLine, atBoundary-justBelow)
			}
		})
	}

	assertClose(t, 5.0, FieldValue(90), "value at the 10")
	assertClose(t, 3.0, FieldValue(70), "value at the 30")
	assertClose(t, 2.0, FieldValue(30), "value at the 70")
	assertClose(t, 1.0, FieldValue(0), "value at own goal line")
}
