package db

import (
	"time"

	"github.com/google/uuid"
)

// Resume status values
const (
	StatusPending = "pending"
	StatusParsing = "parsing"
	StatusParsed  = "parsed"
	StatusFailed  = "failed"
)

// ValidStatus reports whether s is a known resume status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusParsing, StatusParsed, StatusFailed:
		return true
	}
	return false
}

// Resume represents an uploaded résumé record
type Resume struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	MimeType  string    `json:"mime_type"`
	ObjectKey string    `json:"object_key,omitempty"`
	TextHash  string    `json:"text_hash,omitempty"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	RawText   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResumeInput holds the fields needed to create a résumé record
type ResumeInput struct {
	Filename  string
	MimeType  string
	ObjectKey string
}

// ResumeFilters narrows ListResumes
type ResumeFilters struct {
	Status string
	Field  string
	Limit  int
	Offset int
}

// ProfileSummary is a listing row joining a résumé with its profile columns
type ProfileSummary struct {
	ResumeID        uuid.UUID `json:"resume_id"`
	Filename        string    `json:"filename"`
	Status          string    `json:"status"`
	SuggestedField  *string   `json:"suggested_field,omitempty"`
	ExperienceLevel *string   `json:"experience_level,omitempty"`
	Confidence      *int      `json:"confidence,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
