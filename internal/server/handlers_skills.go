package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/career-navigator/internal/classify"
	"github.com/jonathan/career-navigator/internal/skills"
	"github.com/jonathan/career-navigator/internal/types"
)

const maxTrendingLimit = 50

// GapAnalysisRequest is the body of POST /gap-analysis and POST /roadmap
type GapAnalysisRequest struct {
	Skills          []string `json:"skills" validate:"max=200"`
	Field           string   `json:"field,omitempty"`
	Role            string   `json:"role,omitempty"`
	ExperienceYears float64  `json:"experienceYears" validate:"gte=0,lte=60"`
}

// RecommendationsRequest is the body of POST /recommendations
type RecommendationsRequest struct {
	Degree    string   `json:"degree"`
	Skills    []string `json:"skills" validate:"max=200"`
	Interests []string `json:"interests" validate:"max=50"`
}

// RecommendationsResponse pairs recommendations with the per-field scores
// that chose the field.
type RecommendationsResponse struct {
	*types.SkillRecommendations
	FieldScores []classify.FieldScore `json:"fieldScores"`
}

// ValidateSkillsRequest is the body of POST /skills/validate
type ValidateSkillsRequest struct {
	Skills []string `json:"skills" validate:"required,max=200"`
}

// gapReport runs a gap analysis for a bare skill list.
func (s *Server) gapReport(req GapAnalysisRequest) (*types.GapReport, error) {
	target, err := parseTarget(req.Field, req.Role)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, &ErrValidation{Field: "target", Message: "field or role is required"}
	}
	profile := &types.Profile{Skills: req.Skills, ExperienceYears: req.ExperienceYears}
	return skills.AnalyzeSkillGap(profile, *target)
}

func (s *Server) handleGapAnalysis(w http.ResponseWriter, r *http.Request) {
	var req GapAnalysisRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	report, err := s.gapReport(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	var req GapAnalysisRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	report, err := s.gapReport(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, skills.BuildRoadmap(report, ""))
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	recs := skills.Recommend(req.Degree, req.Skills, req.Interests)
	_, scores := classify.Recommend(classify.WeightedInput{
		Degree:    req.Degree,
		Skills:    req.Skills,
		Interests: req.Interests,
	})
	s.jsonResponse(w, http.StatusOK, RecommendationsResponse{SkillRecommendations: recs, FieldScores: scores})
}

func (s *Server) handleValidateSkills(w http.ResponseWriter, r *http.Request) {
	var req ValidateSkillsRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"results": skills.ValidateSkills(req.Skills),
	})
}

func (s *Server) handleTrendingSkills(w http.ResponseWriter, r *http.Request) {
	industry := r.URL.Query().Get("industry")
	if industry == "" {
		industry = "technology"
	}

	limit := skills.DefaultTrendingLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxTrendingLimit {
			s.writeError(w, &ErrValidation{Field: "limit", Message: "must be between 1 and " + strconv.Itoa(maxTrendingLimit)})
			return
		}
		limit = n
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"industry": industry,
		"skills":   skills.Trending(industry, limit),
	})
}

func (s *Server) handleCareerPath(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("field")
	field, ok := types.ParseField(raw)
	if !ok {
		s.writeError(w, &ErrNotFound{Resource: "field", ID: raw})
		return
	}
	path, ok := classify.CareerPath(field)
	if !ok {
		s.writeError(w, &ErrNotFound{Resource: "career path", ID: string(field)})
		return
	}
	s.jsonResponse(w, http.StatusOK, path)
}
