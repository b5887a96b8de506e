package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/career-navigator/internal/blob"
	"github.com/jonathan/career-navigator/internal/db"
	"github.com/jonathan/career-navigator/internal/ingestion"
	"github.com/jonathan/career-navigator/internal/pipeline"
	"github.com/jonathan/career-navigator/internal/queue"
	"github.com/jonathan/career-navigator/internal/skills"
	"github.com/jonathan/career-navigator/internal/types"
)

// ParseTextRequest is the body of POST /profiles/parse-text
type ParseTextRequest struct {
	Text  string `json:"text" validate:"required"`
	Field string `json:"field,omitempty"`
	Role  string `json:"role,omitempty"`
}

// ResumeResponse is a stored résumé with its extracted profile
type ResumeResponse struct {
	Resume  *db.Resume     `json:"resume"`
	Profile *types.Profile `json:"profile,omitempty"`
}

// parseTarget builds an optional gap target from a field name or role title.
// Both empty means no target.
func parseTarget(field, role string) (*types.Target, error) {
	if field == "" && role == "" {
		return nil, nil
	}
	if field != "" && role != "" {
		return nil, &ErrValidation{Field: "target", Message: "field and role are mutually exclusive"}
	}
	if role != "" {
		return &types.Target{Role: role}, nil
	}
	f, ok := types.ParseField(field)
	if !ok {
		return nil, &ErrValidation{Field: "field", Message: "unknown field " + strconv.Quote(field)}
	}
	return &types.Target{Field: f}, nil
}

func (s *Server) resumeID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid résumé id"}
	}
	return id, nil
}

// handleUploadResume accepts a multipart résumé upload. With ?async=true the
// file is stored and queued for a worker; otherwise it is parsed inline.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUpload {
		s.writeError(w, &http.MaxBytesError{Limit: s.maxUpload})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, err)
			return
		}
		s.writeError(w, &ErrValidation{Field: "body", Message: "expected multipart/form-data"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "file", Message: "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, err)
		return
	}

	target, err := parseTarget(r.FormValue("field"), r.FormValue("role"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if _, ok := ingestion.DetectFormat(header.Filename, mimeType); !ok {
		s.writeError(w, &ingestion.UnsupportedFormatError{Filename: header.Filename, MimeType: mimeType})
		return
	}

	async := r.URL.Query().Get("async") == "true"
	if async && (s.store == nil || s.queue == nil || s.blob == nil) {
		s.writeError(w, &ErrUnavailable{Feature: "asynchronous parsing"})
		return
	}

	var objectKey string
	if s.blob != nil {
		objectKey = blob.ObjectKey(uuid.New(), header.Filename)
		if err := s.blob.Upload(r.Context(), objectKey, mimeType, data); err != nil {
			s.writeError(w, err)
			return
		}
	}

	if async {
		s.enqueueResume(w, r, header.Filename, mimeType, objectKey, target)
		return
	}

	result, err := s.pipeline.Run(r.Context(), pipeline.Input{
		Filename:  header.Filename,
		MimeType:  mimeType,
		ObjectKey: objectKey,
		Data:      data,
		Target:    target,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	status := http.StatusOK
	if s.store != nil {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, result)
}

func (s *Server) enqueueResume(w http.ResponseWriter, r *http.Request, filename, mimeType, objectKey string, target *types.Target) {
	ctx := r.Context()
	id, err := s.store.CreateResume(ctx, db.ResumeInput{
		Filename:  filename,
		MimeType:  mimeType,
		ObjectKey: objectKey,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	job := queue.ParseJob{
		ResumeID:  id.String(),
		Bucket:    s.blob.Bucket(),
		ObjectKey: objectKey,
		MimeType:  mimeType,
		Filename:  filename,
	}
	if target != nil {
		job.Field, job.Role = target.Field, target.Role
	}

	if err := s.queue.PublishJob(job); err != nil {
		if uerr := s.store.UpdateResumeStatus(ctx, id, db.StatusFailed, "failed to enqueue"); uerr != nil {
			s.log.Warn("failed to mark résumé failed", "resume_id", id, "error", uerr)
		}
		s.writeError(w, err)
		return
	}

	s.log.Info("résumé queued", "resume_id", id, "object_key", objectKey)
	s.jsonResponse(w, http.StatusAccepted, map[string]string{
		"resumeId": id.String(),
		"status":   db.StatusPending,
	})
}

// handleParseText extracts a profile from already-extracted text
func (s *Server) handleParseText(w http.ResponseWriter, r *http.Request) {
	var req ParseTextRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	target, err := parseTarget(req.Field, req.Role)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.pipeline.RunText(r.Context(), req.Text, target)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleListResumes returns stored résumé summaries
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, &ErrUnavailable{Feature: "database"})
		return
	}

	q := r.URL.Query()
	filters := db.ResumeFilters{Status: q.Get("status")}
	if filters.Status != "" && !db.ValidStatus(filters.Status) {
		s.writeError(w, &ErrValidation{Field: "status", Message: "unknown status " + strconv.Quote(filters.Status)})
		return
	}
	if f := q.Get("field"); f != "" {
		field, ok := types.ParseField(f)
		if !ok {
			s.writeError(w, &ErrValidation{Field: "field", Message: "unknown field " + strconv.Quote(f)})
			return
		}
		filters.Field = string(field)
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		filters.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, &ErrValidation{Field: "offset", Message: "must be a non-negative integer"})
			return
		}
		filters.Offset = n
	}

	summaries, err := s.store.ListResumes(r.Context(), filters)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if summaries == nil {
		summaries = []db.ProfileSummary{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": summaries,
		"count":   len(summaries),
	})
}

// handleGetResume returns a stored résumé and its profile
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, &ErrUnavailable{Feature: "database"})
		return
	}
	id, err := s.resumeID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if resume == nil {
		s.writeError(w, &ErrNotFound{Resource: "resume", ID: id.String()})
		return
	}

	profile, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ResumeResponse{Resume: resume, Profile: profile})
}

// handleDeleteResume removes a résumé with its profile and gap reports
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, &ErrUnavailable{Feature: "database"})
		return
	}
	id, err := s.resumeID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if resume == nil {
		s.writeError(w, &ErrNotFound{Resource: "resume", ID: id.String()})
		return
	}

	if err := s.store.DeleteResume(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	if inv, ok := s.cache.(invalidator); ok && resume.TextHash != "" {
		if err := inv.Invalidate(r.Context(), resume.TextHash); err != nil {
			s.log.Warn("failed to invalidate cache", "resume_id", id, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleResumeGap returns the gap report of a stored profile against a
// target, computing and saving it on first request.
func (s *Server) handleResumeGap(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, &ErrUnavailable{Feature: "database"})
		return
	}
	id, err := s.resumeID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	target, err := parseTarget(r.URL.Query().Get("field"), r.URL.Query().Get("role"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if target == nil {
		s.writeError(w, &ErrValidation{Field: "target", Message: "field or role is required"})
		return
	}

	ctx := r.Context()
	report, err := s.store.GetGapReport(ctx, id, *target)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if report != nil {
		s.jsonResponse(w, http.StatusOK, report)
		return
	}

	profile, err := s.store.GetProfile(ctx, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if profile == nil {
		s.writeError(w, &ErrNotFound{Resource: "profile", ID: id.String()})
		return
	}

	report, err = skills.AnalyzeSkillGap(profile, *target)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.SaveGapReport(ctx, id, report); err != nil {
		s.log.Warn("failed to save gap report", "resume_id", id, "target", target.String(), "error", err)
	}
	s.jsonResponse(w, http.StatusOK, report)
}
