package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-navigator/internal/types"
)

// CreateResume inserts a pending résumé record and returns its ID
func (db *DB) CreateResume(ctx context.Context, input ResumeInput) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resumes (id, filename, mime_type, object_key, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, input.Filename, input.MimeType, input.ObjectKey, StatusPending,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a résumé by ID. Returns nil, nil when it does not exist.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, filename, mime_type, object_key, text_hash, status, error, raw_text, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Filename, &r.MimeType, &r.ObjectKey, &r.TextHash, &r.Status, &r.Error, &r.RawText, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// UpdateResumeStatus sets the status and error message of a résumé
func (db *DB) UpdateResumeStatus(ctx context.Context, id uuid.UUID, status, errMsg string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("invalid resume status %q", status)
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET status = $1, error = $2, updated_at = NOW() WHERE id = $3`,
		status, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume %s not found", id)
	}
	return nil
}

// SaveResumeText stores the normalized text and its hash
func (db *DB) SaveResumeText(ctx context.Context, id uuid.UUID, text, hash string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE resumes SET raw_text = $1, text_hash = $2, updated_at = NOW() WHERE id = $3`,
		text, hash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume text: %w", err)
	}
	return nil
}

// DeleteResume removes a résumé and, by cascade, its profile and reports
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

// ListResumes returns résumé summaries newest first
func (db *DB) ListResumes(ctx context.Context, filters ResumeFilters) ([]ProfileSummary, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT r.id, r.filename, r.status, p.suggested_field, p.experience_level, p.confidence, r.created_at
		FROM resumes r LEFT JOIN profiles p ON p.resume_id = r.id WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Status != "" {
		query += fmt.Sprintf(" AND r.status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}
	if filters.Field != "" {
		query += fmt.Sprintf(" AND p.suggested_field = $%d", argNum)
		args = append(args, filters.Field)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	summaries := []ProfileSummary{}
	for rows.Next() {
		var s ProfileSummary
		if err := rows.Scan(&s.ResumeID, &s.Filename, &s.Status, &s.SuggestedField, &s.ExperienceLevel, &s.Confidence, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// SaveProfile stores the extracted profile for a résumé, replacing any
// previous one
func (db *DB) SaveProfile(ctx context.Context, resumeID uuid.UUID, profile *types.Profile) error {
	if profile == nil {
		return fmt.Errorf("profile is nil")
	}
	jsonBytes, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (resume_id, content, suggested_field, experience_level, confidence, needs_review)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (resume_id) DO UPDATE SET content = $2, suggested_field = $3,
		   experience_level = $4, confidence = $5, needs_review = $6, created_at = NOW()`,
		resumeID, jsonBytes, string(profile.SuggestedField), string(profile.ExperienceLevel),
		profile.Confidence, profile.NeedsReview,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProfile retrieves the stored profile for a résumé. Returns nil, nil when
// none has been saved.
func (db *DB) GetProfile(ctx context.Context, resumeID uuid.UUID) (*types.Profile, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM profiles WHERE resume_id = $1`,
		resumeID,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile types.Profile
	if err := json.Unmarshal(content, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// SaveGapReport stores a gap report keyed by résumé and target
func (db *DB) SaveGapReport(ctx context.Context, resumeID uuid.UUID, report *types.GapReport) error {
	if report == nil {
		return fmt.Errorf("gap report is nil")
	}
	jsonBytes, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal gap report: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO gap_reports (resume_id, target, coverage, content)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (resume_id, target) DO UPDATE SET coverage = $3, content = $4, created_at = NOW()`,
		resumeID, report.Target.String(), report.CoveragePercentage, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save gap report: %w", err)
	}
	return nil
}

// GetGapReport retrieves a stored gap report. Returns nil, nil when absent.
func (db *DB) GetGapReport(ctx context.Context, resumeID uuid.UUID, target types.Target) (*types.GapReport, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM gap_reports WHERE resume_id = $1 AND target = $2`,
		resumeID, target.String(),
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get gap report: %w", err)
	}

	var report types.GapReport
	if err := json.Unmarshal(content, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gap report: %w", err)
	}
	return &report, nil
}
