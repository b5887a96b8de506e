package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-navigator/internal/db"
	"github.com/jonathan/career-navigator/internal/logging"
	"github.com/jonathan/career-navigator/internal/parsing"
	"github.com/jonathan/career-navigator/internal/queue"
	"github.com/jonathan/career-navigator/internal/server/ratelimit"
	"github.com/jonathan/career-navigator/internal/types"
)

const sampleResume = "John Doe\njohn.doe@example.com\n555-123-4567\n\nEDUCATION\nB.Tech Computer Science, ABC University, 2024, CGPA 8.5\n\nSKILLS\nPython, JavaScript, React, Git\n"

// mockStore is an in-memory Store
type mockStore struct {
	mu       sync.Mutex
	resumes  map[uuid.UUID]*db.Resume
	profiles map[uuid.UUID]*types.Profile
	reports  map[string]*types.GapReport
	pingErr  error
}

func newMockStore() *mockStore {
	return &mockStore{
		resumes:  map[uuid.UUID]*db.Resume{},
		profiles: map[uuid.UUID]*types.Profile{},
		reports:  map[string]*types.GapReport{},
	}
}

func (m *mockStore) CreateResume(ctx context.Context, in db.ResumeInput) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.resumes[id] = &db.Resume{ID: id, Filename: in.Filename, MimeType: in.MimeType, ObjectKey: in.ObjectKey, Status: db.StatusPending}
	return id, nil
}

func (m *mockStore) UpdateResumeStatus(ctx context.Context, id uuid.UUID, status, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok {
		return errors.New("no rows")
	}
	r.Status, r.Error = status, errMsg
	return nil
}

func (m *mockStore) SaveResumeText(ctx context.Context, id uuid.UUID, text, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.resumes[id]; ok {
		r.RawText, r.TextHash = text, hash
	}
	return nil
}

func (m *mockStore) SaveProfile(ctx context.Context, id uuid.UUID, p *types.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[id] = p
	return nil
}

func (m *mockStore) SaveGapReport(ctx context.Context, id uuid.UUID, r *types.GapReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[id.String()+r.Target.String()] = r
	return nil
}

func (m *mockStore) GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resumes[id], nil
}

func (m *mockStore) GetProfile(ctx context.Context, id uuid.UUID) (*types.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profiles[id], nil
}

func (m *mockStore) GetGapReport(ctx context.Context, id uuid.UUID, target types.Target) (*types.GapReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reports[id.String()+target.String()], nil
}

func (m *mockStore) ListResumes(ctx context.Context, f db.ResumeFilters) ([]db.ProfileSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.ProfileSummary
	for _, r := range m.resumes {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, db.ProfileSummary{ResumeID: r.ID, Filename: r.Filename, Status: r.Status})
	}
	return out, nil
}

func (m *mockStore) DeleteResume(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.resumes, id)
	delete(m.profiles, id)
	return nil
}

func (m *mockStore) Ping(ctx context.Context) error {
	return m.pingErr
}

type mockBlob struct {
	objects map[string][]byte
	err     error
}

func (b *mockBlob) Upload(ctx context.Context, key, contentType string, data []byte) error {
	if b.err != nil {
		return b.err
	}
	b.objects[key] = data
	return nil
}

func (b *mockBlob) Bucket() string { return "resumes-test" }

type mockQueue struct {
	jobs []queue.ParseJob
	err  error
}

func (q *mockQueue) PublishJob(job queue.ParseJob) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	parser, err := parsing.New(logging.Nop(), parsing.Options{})
	require.NoError(t, err)
	opts.Parser = parser
	if opts.RateLimit == nil {
		opts.RateLimit = &ratelimit.Config{Enabled: false}
	}
	s, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, path, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestNew_RequiresParser(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, Options{})
	w := doJSON(t, s.Handler(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	decodeBody(t, w, &resp)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "disabled", resp["database"])
}

func TestHandleHealth_DatabaseDown(t *testing.T) {
	store := newMockStore()
	store.pingErr = errors.New("connection refused")
	s := newTestServer(t, Options{Store: store})

	w := doJSON(t, s.Handler(), http.MethodGet, "/health", nil)
	var resp map[string]string
	decodeBody(t, w, &resp)
	assert.Equal(t, "degraded", resp["status"])
	assert.Equal(t, "unavailable", resp["database"])
}

func TestCORS_Preflight(t *testing.T) {
	s := newTestServer(t, Options{})
	w := doJSON(t, s.Handler(), http.MethodOptions, "/gap-analysis", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUploadResume_Inline(t *testing.T) {
	s := newTestServer(t, Options{})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, uploadRequest(t, "/resumes", "cv.txt", sampleResume, map[string]string{"field": "ai"}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Profile   types.Profile   `json:"profile"`
		GapReport types.GapReport `json:"gapReport"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "John Doe", resp.Profile.Personal.Name)
	assert.Contains(t, resp.Profile.Skills, "Python")
	assert.Equal(t, types.FieldAI, resp.GapReport.Target.Field)
}

func TestUploadResume_StoresWithDatabase(t *testing.T) {
	store := newMockStore()
	blobs := &mockBlob{objects: map[string][]byte{}}
	s := newTestServer(t, Options{Store: store, Blob: blobs})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, uploadRequest(t, "/resumes", "cv.txt", sampleResume, nil))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		ResumeID uuid.UUID `json:"resumeId"`
	}
	decodeBody(t, w, &resp)
	require.NotEqual(t, uuid.Nil, resp.ResumeID)

	stored, _ := store.GetResume(context.Background(), resp.ResumeID)
	require.NotNil(t, stored)
	assert.Equal(t, db.StatusParsed, stored.Status)
	assert.True(t, strings.HasPrefix(stored.ObjectKey, "resumes/"))
	assert.Len(t, blobs.objects, 1)
}

func TestUploadResume_Async(t *testing.T) {
	store := newMockStore()
	blobs := &mockBlob{objects: map[string][]byte{}}
	q := &mockQueue{}
	s := newTestServer(t, Options{Store: store, Blob: blobs, Queue: q})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, uploadRequest(t, "/resumes?async=true", "cv.txt", sampleResume, map[string]string{"role": "Software Engineer"}))

	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	require.Len(t, q.jobs, 1)
	job := q.jobs[0]
	assert.Equal(t, "resumes-test", job.Bucket)
	assert.Equal(t, "Software Engineer", job.Role)
	assert.Contains(t, blobs.objects, job.ObjectKey)

	id := uuid.MustParse(job.ResumeID)
	stored, _ := store.GetResume(context.Background(), id)
	require.NotNil(t, stored)
	assert.Equal(t, db.StatusPending, stored.Status)
}

func TestUploadResume_AsyncPublishFailure(t *testing.T) {
	store := newMockStore()
	q := &mockQueue{err: errors.New("channel closed")}
	s := newTestServer(t, Options{Store: store, Blob: &mockBlob{objects: map[string][]byte{}}, Queue: q})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, uploadRequest(t, "/resumes?async=true", "cv.txt", sampleResume, nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "channel closed")
	for _, r := range store.resumes {
		assert.Equal(t, db.StatusFailed, r.Status)
	}
}

func TestUploadResume_AsyncWithoutBackends(t *testing.T) {
	s := newTestServer(t, Options{})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, uploadRequest(t, "/resumes?async=true", "cv.txt", sampleResume, nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUploadResume_Errors(t *testing.T) {
	s := newTestServer(t, Options{MaxUploadBytes: 1024})

	tests := []struct {
		name     string
		req      *http.Request
		expected int
	}{
		{"unsupported format", uploadRequest(t, "/resumes", "cv.xyz", sampleResume, nil), http.StatusUnprocessableEntity},
		{"empty text", uploadRequest(t, "/resumes", "cv.txt", "hi", nil), http.StatusUnprocessableEntity},
		{"unknown field", uploadRequest(t, "/resumes", "cv.txt", sampleResume, map[string]string{"field": "astrology"}), http.StatusBadRequest},
		{"unknown role", uploadRequest(t, "/resumes", "cv.txt", sampleResume, map[string]string{"role": "Astronaut"}), http.StatusNotFound},
		{"too large", uploadRequest(t, "/resumes", "cv.txt", strings.Repeat("a", 4096), nil), http.StatusRequestEntityTooLarge},
		{"not multipart", httptest.NewRequest(http.MethodPost, "/resumes", strings.NewReader("{}")), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, tt.req)
			assert.Equal(t, tt.expected, w.Code, w.Body.String())
		})
	}
}

func TestParseText(t *testing.T) {
	s := newTestServer(t, Options{})
	w := doJSON(t, s.Handler(), http.MethodPost, "/profiles/parse-text", ParseTextRequest{Text: sampleResume})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Profile types.Profile `json:"profile"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "john.doe@example.com", resp.Profile.Personal.Email)
}

func TestParseText_Validation(t *testing.T) {
	s := newTestServer(t, Options{})

	w := doJSON(t, s.Handler(), http.MethodPost, "/profiles/parse-text", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s.Handler(), http.MethodPost, "/profiles/parse-text", ParseTextRequest{Text: "too short"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, s.Handler(), http.MethodPost, "/profiles/parse-text", ParseTextRequest{Text: sampleResume, Field: "ai", Role: "Software Engineer"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumeEndpoints_WithoutDatabase(t *testing.T) {
	s := newTestServer(t, Options{})
	id := uuid.NewString()

	for _, path := range []string{"/resumes", "/resumes/" + id, "/resumes/" + id + "/gap?field=ai"} {
		w := doJSON(t, s.Handler(), http.MethodGet, path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

func TestGetResume(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, Options{Store: store})

	id, _ := store.CreateResume(context.Background(), db.ResumeInput{Filename: "cv.pdf"})
	store.profiles[id] = &types.Profile{Skills: []string{"Go"}}

	w := doJSON(t, s.Handler(), http.MethodGet, "/resumes/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp ResumeResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "cv.pdf", resp.Resume.Filename)
	assert.Equal(t, []string{"Go"}, resp.Profile.Skills)

	w = doJSON(t, s.Handler(), http.MethodGet, "/resumes/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, s.Handler(), http.MethodGet, "/resumes/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAndDeleteResumes(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, Options{Store: store})
	id, _ := store.CreateResume(context.Background(), db.ResumeInput{Filename: "cv.pdf"})

	w := doJSON(t, s.Handler(), http.MethodGet, "/resumes?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Resumes []db.ProfileSummary `json:"resumes"`
		Count   int                 `json:"count"`
	}
	decodeBody(t, w, &list)
	assert.Equal(t, 1, list.Count)

	w = doJSON(t, s.Handler(), http.MethodGet, "/resumes?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s.Handler(), http.MethodDelete, "/resumes/"+id.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, s.Handler(), http.MethodDelete, "/resumes/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResumeGap_ComputesAndSaves(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, Options{Store: store})
	id, _ := store.CreateResume(context.Background(), db.ResumeInput{Filename: "cv.pdf"})
	store.profiles[id] = &types.Profile{Skills: []string{"Python", "TensorFlow"}}

	w := doJSON(t, s.Handler(), http.MethodGet, "/resumes/"+id.String()+"/gap?field=ai", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report types.GapReport
	decodeBody(t, w, &report)
	assert.Equal(t, types.FieldAI, report.Target.Field)
	assert.NotEmpty(t, report.MatchedSkills)

	saved, _ := store.GetGapReport(context.Background(), id, types.Target{Field: types.FieldAI})
	assert.NotNil(t, saved)

	w = doJSON(t, s.Handler(), http.MethodGet, "/resumes/"+id.String()+"/gap", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s.Handler(), http.MethodGet, "/resumes/"+uuid.NewString()+"/gap?field=ai", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGapAnalysis(t *testing.T) {
	s := newTestServer(t, Options{})

	w := doJSON(t, s.Handler(), http.MethodPost, "/gap-analysis", GapAnalysisRequest{
		Skills:          []string{"Python", "Git", "SQL"},
		Role:            "Software Engineer",
		ExperienceYears: 1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report types.GapReport
	decodeBody(t, w, &report)
	assert.Equal(t, "Software Engineer", report.Target.Role)
	require.NotNil(t, report.Readiness)
	assert.GreaterOrEqual(t, report.CoveragePercentage, 0)
	assert.LessOrEqual(t, report.CoveragePercentage, 100)
}

func TestGapAnalysis_Errors(t *testing.T) {
	s := newTestServer(t, Options{})

	tests := []struct {
		name     string
		body     any
		expected int
	}{
		{"no target", GapAnalysisRequest{Skills: []string{"Go"}}, http.StatusBadRequest},
		{"unknown role", GapAnalysisRequest{Role: "Astronaut"}, http.StatusNotFound},
		{"negative years", GapAnalysisRequest{Field: "ai", ExperienceYears: -1}, http.StatusBadRequest},
		{"bad json", "not an object", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s.Handler(), http.MethodPost, "/gap-analysis", tt.body)
			assert.Equal(t, tt.expected, w.Code, w.Body.String())
		})
	}
}

func TestRoadmap(t *testing.T) {
	s := newTestServer(t, Options{})
	w := doJSON(t, s.Handler(), http.MethodPost, "/roadmap", GapAnalysisRequest{Field: "webDevelopment"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var rm types.Roadmap
	decodeBody(t, w, &rm)
	assert.Equal(t, types.FieldWebDevelopment, rm.Target.Field)
	assert.LessOrEqual(t, len(rm.Immediate), 2)
}

func TestRecommendations(t *testing.T) {
	s := newTestServer(t, Options{})
	w := doJSON(t, s.Handler(), http.MethodPost, "/recommendations", RecommendationsRequest{
		Degree:    "B.Tech Artificial Intelligence",
		Skills:    []string{"Python"},
		Interests: []string{"machine learning"},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Field       types.Field `json:"field"`
		FieldScores []struct {
			Field types.Field `json:"field"`
		} `json:"fieldScores"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, types.FieldAI, resp.Field)
	assert.Len(t, resp.FieldScores, len(types.AllFields()))
}

func TestValidateSkills(t *testing.T) {
	s := newTestServer(t, Options{})
	w := doJSON(t, s.Handler(), http.MethodPost, "/skills/validate", ValidateSkillsRequest{Skills: []string{"js", "Pythn"}})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Results []types.SkillValidation `json:"results"`
	}
	decodeBody(t, w, &resp)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "JavaScript", resp.Results[0].Normalized)

	w = doJSON(t, s.Handler(), http.MethodPost, "/skills/validate", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrendingSkills(t *testing.T) {
	s := newTestServer(t, Options{})

	w := doJSON(t, s.Handler(), http.MethodGet, "/skills/trending?limit=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Industry string                `json:"industry"`
		Skills   []types.TrendingSkill `json:"skills"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "technology", resp.Industry)
	assert.LessOrEqual(t, len(resp.Skills), 3)

	w = doJSON(t, s.Handler(), http.MethodGet, "/skills/trending?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCareerPath(t *testing.T) {
	s := newTestServer(t, Options{})

	w := doJSON(t, s.Handler(), http.MethodGet, "/fields/data-science/career-path", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var path types.CareerPath
	decodeBody(t, w, &path)
	assert.Equal(t, types.FieldDataScience, path.Field)
	assert.NotEmpty(t, path.Entry)

	w = doJSON(t, s.Handler(), http.MethodGet, "/fields/astrology/career-path", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Options{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Minute,
	}})

	for i := 0; i < 2; i++ {
		w := doJSON(t, s.Handler(), http.MethodGet, "/skills/trending", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doJSON(t, s.Handler(), http.MethodGet, "/skills/trending", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var resp map[string]any
	decodeBody(t, w, &resp)
	assert.Equal(t, "rate_limit_exceeded", resp["error"])
	assert.Contains(t, resp, "retry_after")

	// Health checks are never limited
	w = doJSON(t, s.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.7:5123"
	assert.Equal(t, "192.168.1.7", s.extractClientID(req))

	req.RemoteAddr = "not-an-addr"
	assert.Equal(t, "not-an-addr", s.extractClientID(req))
}
