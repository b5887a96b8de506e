package experience

import (
	"math"
	"regexp"
	"time"

	"github.com/jonathan/career-navigator/internal/types"
)

const (
	internshipWeight = 0.5
	seniorityBonus   = 2.0
)

// Level thresholds in years. Each bound is exclusive.
const (
	juniorFromYears = 1.0
	midFromYears    = 3.0
	seniorFromYears = 6.0
)

var seniorityRe = regexp.MustCompile(`(?i)\b(?:senior|lead|manager)\b`)

// Options configure Assess.
type Options struct {
	// SeniorityBonus adds two years when the résumé mentions senior, lead
	// or manager as a word.
	SeniorityBonus bool
	// Now resolves "Present" in date ranges. Defaults to time.Now.
	Now func() time.Time
}

// Assessment is the outcome of Assess.
type Assessment struct {
	Years float64               `json:"years"`
	Level types.ExperienceLevel `json:"level"`
}

// Assess totals experience in years, counting internships at half weight,
// and maps the total onto a level.
func Assess(experience, internships []types.Position, rawText string, opts Options) Assessment {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	at := now()

	years := 0.0
	for _, pos := range experience {
		years += ParseDurationAt(pos.Duration, at)
	}
	for _, pos := range internships {
		years += internshipWeight * ParseDurationAt(pos.Duration, at)
	}
	if opts.SeniorityBonus && seniorityRe.MatchString(rawText) {
		years += seniorityBonus
	}

	years = math.Round(years*100) / 100
	return Assessment{Years: years, Level: LevelFor(years)}
}

// LevelFor maps years of experience onto a level: under 1 is entry, under 3
// junior, under 6 mid, otherwise senior.
func LevelFor(years float64) types.ExperienceLevel {
	switch {
	case years < juniorFromYears:
		return types.LevelEntry
	case years < midFromYears:
		return types.LevelJunior
	case years < seniorFromYears:
		return types.LevelMid
	default:
		return types.LevelSenior
	}
}
