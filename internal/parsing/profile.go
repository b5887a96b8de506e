// Package parsing extracts a structured Profile from normalized résumé text.
//
// Each extractor is a pure function over a section or the whole document.
// Extractors that have several ways of finding a value run them as an
// ordered strategy list and take the first success.
package parsing

import (
	"errors"
	"sync"
	"time"

	"github.com/jonathan/career-navigator/internal/catalog"
	"github.com/jonathan/career-navigator/internal/classify"
	"github.com/jonathan/career-navigator/internal/experience"
	"github.com/jonathan/career-navigator/internal/ingestion"
	"github.com/jonathan/career-navigator/internal/logging"
	"github.com/jonathan/career-navigator/internal/sections"
	"github.com/jonathan/career-navigator/internal/types"
)

// Confidence weights. The total is capped at 100.
const (
	confidenceName       = 20
	confidenceEmail      = 20
	confidencePhone      = 10
	confidenceEducation  = 15
	confidenceSkills     = 20
	confidenceExperience = 15
	confidenceMinSkills  = 3
	confidenceMax        = 100

	// ReviewThreshold is the confidence below which a profile is flagged.
	ReviewThreshold = 50
)

// Options tune extraction.
type Options struct {
	// Strictness controls how section headings are recognized.
	Strictness sections.Strictness
	// EducationFallback scans the whole document for degrees when the
	// résumé has no education heading.
	EducationFallback bool
	// SeniorityBonus adds two years when the text mentions senior, lead or
	// manager.
	SeniorityBonus bool
	// Now is the clock used for "Present" in date ranges. Defaults to time.Now.
	Now func() time.Time
}

// Parser holds compiled state shared by all extractions. It is safe for
// concurrent use.
type Parser struct {
	log   *logging.Logger
	opts  Options
	seg   *sections.Segmenter
	cat   *catalog.Catalog
	vocab []vocabMatcher
}

// New builds a Parser. A nil logger discards output.
func New(log *logging.Logger, opts Options) (*Parser, error) {
	if log == nil {
		log = logging.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	return &Parser{
		log:   log,
		opts:  opts,
		seg:   sections.New(opts.Strictness),
		cat:   cat,
		vocab: compileVocabulary(cat),
	}, nil
}

var (
	defaultParser     *Parser
	defaultParserErr  error
	defaultParserOnce sync.Once
)

// ExtractProfile parses text with default options.
func ExtractProfile(text string) (*types.Profile, error) {
	defaultParserOnce.Do(func() {
		defaultParser, defaultParserErr = New(nil, Options{})
	})
	if defaultParserErr != nil {
		return nil, defaultParserErr
	}
	return defaultParser.ExtractProfile(text)
}

// ExtractProfile normalizes text and runs every extractor over it. Text
// shorter than ingestion.MinUsableLength after normalization is rejected
// with *ingestion.ExtractionEmptyError. A failing extractor only empties
// its own field.
func (p *Parser) ExtractProfile(text string) (*types.Profile, error) {
	normalized := ingestion.Normalize(text)
	if !ingestion.IsUsable(normalized) {
		return nil, &ingestion.ExtractionEmptyError{Length: len(normalized)}
	}

	profile := &types.Profile{
		Personal:    guard(p, "personal", func() types.PersonalInfo { return p.extractPersonal(normalized) }),
		Education:   guard(p, "education", func() []types.Education { return p.extractEducation(normalized) }),
		Skills:      guard(p, "skills", func() []string { return p.extractSkills(normalized) }),
		Experience:  guard(p, "experience", func() []types.Position { return p.extractExperience(normalized) }),
		Internships: guard(p, "internships", func() []types.Position { return p.extractInternships(normalized) }),
		Projects:    guard(p, "projects", func() []types.Project { return p.extractProjects(normalized) }),
		Summary:     guard(p, "summary", func() string { return p.extractSummary(normalized) }),
	}
	profile.HasExperience = len(profile.Experience) > 0
	profile.HasInternships = len(profile.Internships) > 0
	profile.HasProjects = len(profile.Projects) > 0

	profile.SuggestedField = classify.Classify(profile)

	assessment := experience.Assess(profile.Experience, profile.Internships, normalized, experience.Options{
		SeniorityBonus: p.opts.SeniorityBonus,
		Now:            p.opts.Now,
	})
	profile.ExperienceYears = assessment.Years
	profile.ExperienceLevel = assessment.Level

	profile.Confidence = Confidence(profile)
	profile.NeedsReview = profile.Confidence < ReviewThreshold

	if err := profile.Validate(); err != nil {
		p.log.Warn("extracted profile failed validation", "error", &ValidationError{Message: "profile", Cause: err})
		profile.NeedsReview = true
	}

	p.log.Debug("profile extracted",
		"field", profile.SuggestedField,
		"level", profile.ExperienceLevel,
		"confidence", profile.Confidence,
		"skills", len(profile.Skills),
	)
	return profile, nil
}

// Confidence scores how complete a profile is, from 0 to 100.
func Confidence(profile *types.Profile) int {
	score := 0
	if profile.Personal.Name != "" {
		score += confidenceName
	}
	if profile.Personal.Email != "" {
		score += confidenceEmail
	}
	if profile.Personal.Phone != "" {
		score += confidencePhone
	}
	if len(profile.Education) > 0 {
		score += confidenceEducation
	}
	if len(profile.Skills) >= confidenceMinSkills {
		score += confidenceSkills
	}
	if len(profile.Experience) > 0 || len(profile.Internships) > 0 {
		score += confidenceExperience
	}
	if score > confidenceMax {
		score = confidenceMax
	}
	return score
}

// IsExtractionEmpty reports whether err is an empty-extraction failure.
func IsExtractionEmpty(err error) bool {
	var target *ingestion.ExtractionEmptyError
	return errors.As(err, &target)
}

// guard runs one extractor, converting a panic into a logged error and the
// zero value.
func guard[T any](p *Parser, name string, fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out = zero
			p.log.Warn("extractor failed", "extractor", name, "error", &ExtractorPanicError{Extractor: name, Value: r})
		}
	}()
	return fn()
}

// miss logs a per-field pattern match failure.
func (p *Parser) miss(field string) {
	p.log.Debug("pattern match failure", "field", field)
}
