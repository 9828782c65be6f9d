package playService

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	PlayRun       = "run"
	PlayPass      = "pass"
	PlayKick      = "kick"
	PlayFieldGoal = "field_goal"
	PlayPenalty   = "penalty"
	PlaySpike     = "spike"
	PlayKneel     = "kneel"
	PlayTimeout   = "timeout"
	PlayEndPeriod = "end_period"
	PlayUnknown   = "unknown"
)

// StructuredPlay is the parsed form of one narrated play. Produced once by
// the classifier and never mutated afterwards.
type StructuredPlay struct {
	Quarter   int
	Clock     string
	Down      *int
	Distance  *int
	YardLine  *int
	PlayType  string
	Yards     int
	FirstDown bool
	Touchdown bool
	Turnover  bool
}

var (
	yardsRe        = regexp.MustCompile(`for (-?\d+) yards?`)
	penaltyYardsRe = regexp.MustCompile(`(\d+) yards?`)
	passRe         = regexp.MustCompile(`pass|sacked`)
	kickRe         = regexp.MustCompile(`kicks|punt`)
	laneRe         = regexp.MustCompile(`left end|right end|left guard|right guard|left tackle|right tackle|up the middle`)
	downDistRe     = regexp.MustCompile(`(\d)(?:st|nd|rd|th)?\s*&\s*(\d+)`)
	yardLineRe     = regexp.MustCompile(`at [A-Z]{2,5} (\d{1,2})`)
	digitRe        = regexp.MustCompile(`\d+`)
)

// classRule is one entry in the ordered classification table. Rules are
// evaluated top to bottom against the lowercased description; the first match
// decides the play type and how yards are extracted.
type classRule struct {
	playType string
	match    func(string) bool
	yards    func(string) int
}

func contains(sub string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, sub) }
}

func noYards(string) int { return 0 }

func gainedYards(s string) int {
	m := yardsRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Penalty yardage is recorded against the offense, so it comes back negative.
// Only text from the penalty clause onward counts; narration like "for 2
// yards" earlier in the sentence is the play, not the flag.
func penaltyYards(s string) int {
	if idx := strings.Index(s, "penalty"); idx >= 0 {
		s = s[idx:]
	}
	m := penaltyYardsRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return -n
}

// The penalty rule sits above the kneel rule on purpose: a flagged kneel-down
// is recorded as a penalty. Two-minute warnings and spikes still win over it.
var classRules = []classRule{
	{PlayTimeout, contains("two-minute warning"), noYards},
	{PlaySpike, contains("spiked the ball"), noYards},
	{PlayPenalty, contains("penalty"), penaltyYards},
	{PlayKneel, contains("kneels"), gainedYards},
	{PlayTimeout, contains("timeout"), noYards},
	{PlayEndPeriod, func(s string) bool {
		return strings.Contains(s, "end quarter") || strings.Contains(s, "end game")
	}, noYards},
	{PlayFieldGoal, contains("field goal"), noYards},
	{PlayPass, passRe.MatchString, gainedYards},
	{PlayKick, kickRe.MatchString, gainedYards},
	{PlayRun, laneRe.MatchString, gainedYards},
}

// Classify turns raw play narration into type, yardage and outcome flags.
// Text matching no rule comes back as unknown with zero yards; narration is
// messy and a parse miss must not fail the batch.
func Classify(text string) StructuredPlay {
	lowered := strings.ToLower(text)

	play := StructuredPlay{
		PlayType:  PlayUnknown,
		FirstDown: strings.Contains(lowered, "for a 1st down"),
		Touchdown: strings.Contains(lowered, "touchdown"),
		Turnover: strings.Contains(lowered, "intercepted") ||
			(strings.Contains(lowered, "fumbles") && strings.Contains(lowered, "recovered by")) ||
			strings.Contains(lowered, "field goal is no good"),
	}

	for _, rule := range classRules {
		if rule.match(lowered) {
			play.PlayType = rule.playType
			play.Yards = rule.yards(lowered)
			break
		}
	}

	return play
}

// Parse classifies a play and fills in the situational context from the
// period label, clock and down-and-distance tokens.
func Parse(periodText, clock, text string) StructuredPlay {
	play := Classify(text)
	play.Quarter = ParseQuarter(periodText)
	play.Clock = clock

	dd := ParseDownDistance(text)
	play.Down = dd.Down
	play.Distance = dd.Distance
	play.YardLine = dd.YardLine

	return play
}

// ParseQuarter maps a period label to a quarter number. Overtime periods are
// numbered from 5 ("OT" is 5, "2OT" is 6).
func ParseQuarter(periodText string) int {
	lowered := strings.ToLower(periodText)

	if strings.Contains(lowered, "ot") {
		if m := digitRe.FindString(lowered); m != "" {
			n, err := strconv.Atoi(m)
			if err == nil {
				return 4 + n
			}
		}
		return 5
	}

	if m := digitRe.FindString(lowered); m != "" {
		n, err := strconv.Atoi(m)
		if err == nil {
			return n
		}
	}

	return 1
}

type DownDistance struct {
	Down     *int
	Distance *int
	YardLine *int
}

// ParseDownDistance pulls down, distance and field position out of a
// situation string like "3rd & 7 at OSU 24". Absent tokens stay nil.
func ParseDownDistance(text string) DownDistance {
	var dd DownDistance

	if m := downDistRe.FindStringSubmatch(text); m != nil {
		if down, err := strconv.Atoi(m[1]); err == nil {
			if dist, err := strconv.Atoi(m[2]); err == nil {
				dd.Down = &down
				dd.Distance = &dist
			}
		}
	}

	if m := yardLineRe.FindStringSubmatch(text); m != nil {
		if yl, err := strconv.Atoi(m[1]); err == nil {
			dd.YardLine = &yl
		}
	}

	return dd
}

// DriveTracker numbers drives within one game: consecutive plays by the same
// offense share a drive, a possession change starts the next one.
type DriveTracker struct {
	lastOffense string
	drive       int
}

// ResumeDriveTracker continues numbering from a drive already in progress,
// so a game scored across several batches keeps one sequence.
func ResumeDriveTracker(drive int, offense string) *DriveTracker {
	return &DriveTracker{drive: drive, lastOffense: offense}
}

func (d *DriveTracker) Next(offense string) int {
	if d.drive == 0 || offense != d.lastOffense {
		d.drive++
		d.lastOffense = offense
	}
	return d.drive
}
