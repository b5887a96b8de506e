// Package pipeline runs a résumé through ingestion, profile extraction and
// skill gap analysis, with optional persistence and caching.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-navigator/internal/db"
	"github.com/jonathan/career-navigator/internal/ingestion"
	"github.com/jonathan/career-navigator/internal/logging"
	"github.com/jonathan/career-navigator/internal/parsing"
	"github.com/jonathan/career-navigator/internal/skills"
	"github.com/jonathan/career-navigator/internal/types"
)

// Step names reported through progress events
const (
	StepIngest  = "ingest"
	StepExtract = "extract_profile"
	StepAnalyze = "analyze_gap"
	StepStore   = "store"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Message  string `json:"message"`
	ResumeID string `json:"resume_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Store persists résumés and their analysis. *db.DB satisfies it.
type Store interface {
	CreateResume(ctx context.Context, input db.ResumeInput) (uuid.UUID, error)
	UpdateResumeStatus(ctx context.Context, id uuid.UUID, status, errMsg string) error
	SaveResumeText(ctx context.Context, id uuid.UUID, text, hash string) error
	SaveProfile(ctx context.Context, resumeID uuid.UUID, profile *types.Profile) error
	SaveGapReport(ctx context.Context, resumeID uuid.UUID, report *types.GapReport) error
}

// Cache memoizes profiles and gap reports by text hash. *cache.Cache
// satisfies it.
type Cache interface {
	GetProfile(ctx context.Context, textHash string) (*types.Profile, error)
	SetProfile(ctx context.Context, textHash string, p *types.Profile) error
	GetGapReport(ctx context.Context, textHash string, target types.Target) (*types.GapReport, error)
	SetGapReport(ctx context.Context, textHash string, r *types.GapReport) error
}

// Options configures a Pipeline. Store and Cache are optional.
type Options struct {
	Store      Store
	Cache      Cache
	Logger     *logging.Logger
	OnProgress ProgressCallback
}

// Input is one résumé to process.
type Input struct {
	// ResumeID names an existing record. When nil and a Store is set, a new
	// record is created.
	ResumeID  uuid.UUID
	Filename  string
	MimeType  string
	ObjectKey string
	Data      []byte
	// Target, when set, adds a gap report to the result.
	Target *types.Target
}

// Result is the outcome of one run.
type Result struct {
	ResumeID  uuid.UUID           `json:"resumeId,omitempty"`
	Metadata  *ingestion.Metadata `json:"metadata,omitempty"`
	Profile   *types.Profile      `json:"profile"`
	GapReport *types.GapReport    `json:"gapReport,omitempty"`
	Cached    bool                `json:"cached"`
}

// Pipeline is safe for concurrent use.
type Pipeline struct {
	parser *parsing.Parser
	opts   Options
	log    *logging.Logger
}

// New builds a Pipeline around parser.
func New(parser *parsing.Parser, opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Pipeline{parser: parser, opts: opts, log: log}
}

func (p *Pipeline) emit(step, message string, id uuid.UUID, content any) {
	if p.opts.OnProgress == nil {
		return
	}
	ev := ProgressEvent{Step: step, Message: message, Content: content}
	if id != uuid.Nil {
		ev.ResumeID = id.String()
	}
	p.opts.OnProgress(ev)
}

// Run decodes and analyzes one résumé file. When a Store is configured the
// record's status tracks the run and failures are recorded on it.
func (p *Pipeline) Run(ctx context.Context, in Input) (*Result, error) {
	id, err := p.ensureRecord(ctx, in)
	if err != nil {
		return nil, err
	}

	text, meta, err := ingestion.Ingest(in.Filename, in.MimeType, in.Data)
	if err != nil {
		p.fail(ctx, id, err)
		return nil, err
	}
	p.emit(StepIngest, fmt.Sprintf("Ingested %s (%d bytes)", in.Filename, meta.Bytes), id, meta)

	res, err := p.analyze(ctx, id, text, meta.Hash, in.Target)
	if err != nil {
		p.fail(ctx, id, err)
		return nil, err
	}
	res.Metadata = meta
	return res, nil
}

// RunText analyzes text that has already been extracted from a document.
func (p *Pipeline) RunText(ctx context.Context, text string, target *types.Target) (*Result, error) {
	normalized := ingestion.Normalize(text)
	if !ingestion.IsUsable(normalized) {
		return nil, &ingestion.ExtractionEmptyError{Length: len(normalized)}
	}
	return p.analyze(ctx, uuid.Nil, normalized, ingestion.HashText(normalized), target)
}

func (p *Pipeline) analyze(ctx context.Context, id uuid.UUID, text, hash string, target *types.Target) (*Result, error) {
	res := &Result{ResumeID: id}

	profile := p.cachedProfile(ctx, hash)
	if profile != nil {
		res.Cached = true
	} else {
		var err error
		profile, err = p.parser.ExtractProfile(text)
		if err != nil {
			return nil, fmt.Errorf("profile extraction failed: %w", err)
		}
		if p.opts.Cache != nil {
			if err := p.opts.Cache.SetProfile(ctx, hash, profile); err != nil {
				p.log.Warn("failed to cache profile", "hash", hash, "error", err)
			}
		}
	}
	res.Profile = profile
	p.emit(StepExtract, fmt.Sprintf("Extracted profile: %s, %s, confidence %d",
		profile.SuggestedField, profile.ExperienceLevel, profile.Confidence), id, profile)

	if target != nil {
		report, err := p.gapReport(ctx, hash, profile, *target)
		if err != nil {
			return nil, err
		}
		res.GapReport = report
		p.emit(StepAnalyze, fmt.Sprintf("Skill coverage for %s: %d%%", target, report.CoveragePercentage), id, report)
	}

	if err := p.store(ctx, id, text, hash, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *Pipeline) cachedProfile(ctx context.Context, hash string) *types.Profile {
	if p.opts.Cache == nil {
		return nil
	}
	profile, err := p.opts.Cache.GetProfile(ctx, hash)
	if err != nil {
		p.log.Warn("profile cache lookup failed", "hash", hash, "error", err)
		return nil
	}
	return profile
}

func (p *Pipeline) gapReport(ctx context.Context, hash string, profile *types.Profile, target types.Target) (*types.GapReport, error) {
	if p.opts.Cache != nil {
		report, err := p.opts.Cache.GetGapReport(ctx, hash, target)
		if err != nil {
			p.log.Warn("gap cache lookup failed", "hash", hash, "error", err)
		} else if report != nil {
			return report, nil
		}
	}

	report, err := skills.AnalyzeSkillGap(profile, target)
	if err != nil {
		return nil, err
	}
	if p.opts.Cache != nil {
		if err := p.opts.Cache.SetGapReport(ctx, hash, report); err != nil {
			p.log.Warn("failed to cache gap report", "hash", hash, "error", err)
		}
	}
	return report, nil
}

func (p *Pipeline) ensureRecord(ctx context.Context, in Input) (uuid.UUID, error) {
	if p.opts.Store == nil {
		return in.ResumeID, nil
	}
	id := in.ResumeID
	if id == uuid.Nil {
		var err error
		id, err = p.opts.Store.CreateResume(ctx, db.ResumeInput{
			Filename:  in.Filename,
			MimeType:  in.MimeType,
			ObjectKey: in.ObjectKey,
		})
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to create resume record: %w", err)
		}
	}
	if err := p.opts.Store.UpdateResumeStatus(ctx, id, db.StatusParsing, ""); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (p *Pipeline) store(ctx context.Context, id uuid.UUID, text, hash string, res *Result) error {
	if p.opts.Store == nil || id == uuid.Nil {
		return nil
	}
	if err := p.opts.Store.SaveResumeText(ctx, id, text, hash); err != nil {
		return err
	}
	if err := p.opts.Store.SaveProfile(ctx, id, res.Profile); err != nil {
		return err
	}
	if res.GapReport != nil {
		if err := p.opts.Store.SaveGapReport(ctx, id, res.GapReport); err != nil {
			return err
		}
	}
	if err := p.opts.Store.UpdateResumeStatus(ctx, id, db.StatusParsed, ""); err != nil {
		return err
	}
	p.emit(StepStore, "Stored profile", id, nil)
	return nil
}

// fail records err on the résumé. Storage errors are logged, not returned,
// so the original failure reaches the caller.
func (p *Pipeline) fail(ctx context.Context, id uuid.UUID, err error) {
	if p.opts.Store == nil || id == uuid.Nil {
		return
	}
	if serr := p.opts.Store.UpdateResumeStatus(ctx, id, db.StatusFailed, err.Error()); serr != nil {
		p.log.Error("failed to record resume failure", "resume_id", id, "error", serr)
	}
}
