package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-navigator/internal/db"
	"github.com/jonathan/career-navigator/internal/ingestion"
	"github.com/jonathan/career-navigator/internal/logging"
	"github.com/jonathan/career-navigator/internal/parsing"
	"github.com/jonathan/career-navigator/internal/types"
)

const sampleResume = "John Doe\njohn.doe@example.com\n555-123-4567\n\nEDUCATION\nB.Tech Computer Science, ABC University, 2024, CGPA 8.5\n\nSKILLS\nPython, JavaScript, React\n"

type fakeStore struct {
	mu       sync.Mutex
	statuses map[uuid.UUID][]string
	errors   map[uuid.UUID]string
	texts    map[uuid.UUID]string
	profiles map[uuid.UUID]*types.Profile
	reports  map[uuid.UUID]*types.GapReport
	createFn func() (uuid.UUID, error)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		statuses: map[uuid.UUID][]string{},
		errors:   map[uuid.UUID]string{},
		texts:    map[uuid.UUID]string{},
		profiles: map[uuid.UUID]*types.Profile{},
		reports:  map[uuid.UUID]*types.GapReport{},
	}
}

func (s *fakeStore) CreateResume(ctx context.Context, input db.ResumeInput) (uuid.UUID, error) {
	if s.createFn != nil {
		return s.createFn()
	}
	return uuid.New(), nil
}

func (s *fakeStore) UpdateResumeStatus(ctx context.Context, id uuid.UUID, status, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[id] = append(s.statuses[id], status)
	s.errors[id] = errMsg
	return nil
}

func (s *fakeStore) SaveResumeText(ctx context.Context, id uuid.UUID, text, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[id] = text
	return nil
}

func (s *fakeStore) SaveProfile(ctx context.Context, id uuid.UUID, p *types.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[id] = p
	return nil
}

func (s *fakeStore) SaveGapReport(ctx context.Context, id uuid.UUID, r *types.GapReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[id] = r
	return nil
}

type memCache struct {
	profiles map[string]*types.Profile
	reports  map[string]*types.GapReport
	gets     int
}

func newMemCache() *memCache {
	return &memCache{profiles: map[string]*types.Profile{}, reports: map[string]*types.GapReport{}}
}

func (c *memCache) GetProfile(ctx context.Context, hash string) (*types.Profile, error) {
	c.gets++
	return c.profiles[hash], nil
}

func (c *memCache) SetProfile(ctx context.Context, hash string, p *types.Profile) error {
	c.profiles[hash] = p
	return nil
}

func (c *memCache) GetGapReport(ctx context.Context, hash string, target types.Target) (*types.GapReport, error) {
	return c.reports[hash+target.String()], nil
}

func (c *memCache) SetGapReport(ctx context.Context, hash string, r *types.GapReport) error {
	c.reports[hash+r.Target.String()] = r
	return nil
}

func newTestPipeline(t *testing.T, opts Options) *Pipeline {
	t.Helper()
	parser, err := parsing.New(logging.Nop(), parsing.Options{})
	require.NoError(t, err)
	return New(parser, opts)
}

func TestRun_WithoutBackends(t *testing.T) {
	var events []ProgressEvent
	p := newTestPipeline(t, Options{OnProgress: func(e ProgressEvent) { events = append(events, e) }})

	target := types.Target{Field: types.FieldWebDevelopment}
	res, err := p.Run(context.Background(), Input{Filename: "cv.txt", Data: []byte(sampleResume), Target: &target})
	require.NoError(t, err)

	assert.Equal(t, uuid.Nil, res.ResumeID)
	assert.False(t, res.Cached)
	assert.Equal(t, "John Doe", res.Profile.Personal.Name)
	require.NotNil(t, res.GapReport)
	assert.Equal(t, target, res.GapReport.Target)
	assert.Equal(t, ingestion.FormatText, res.Metadata.Format)

	steps := make([]string, 0, len(events))
	for _, e := range events {
		steps = append(steps, e.Step)
	}
	assert.Equal(t, []string{StepIngest, StepExtract, StepAnalyze}, steps)
}

func TestRun_StoresResult(t *testing.T) {
	store := newFakeStore()
	p := newTestPipeline(t, Options{Store: store})

	target := types.Target{Role: "Software Engineer"}
	res, err := p.Run(context.Background(), Input{Filename: "cv.txt", Data: []byte(sampleResume), Target: &target})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, res.ResumeID)

	assert.Equal(t, []string{db.StatusParsing, db.StatusParsed}, store.statuses[res.ResumeID])
	assert.Same(t, res.Profile, store.profiles[res.ResumeID])
	assert.Same(t, res.GapReport, store.reports[res.ResumeID])
	assert.Contains(t, store.texts[res.ResumeID], "John Doe")
	assert.NotNil(t, res.GapReport.Readiness)
}

func TestRun_RecordsFailure(t *testing.T) {
	store := newFakeStore()
	p := newTestPipeline(t, Options{Store: store})
	id := uuid.New()

	_, err := p.Run(context.Background(), Input{ResumeID: id, Filename: "cv.txt", Data: []byte("too short")})

	var emptyErr *ingestion.ExtractionEmptyError
	require.True(t, errors.As(err, &emptyErr))
	assert.Equal(t, []string{db.StatusParsing, db.StatusFailed}, store.statuses[id])
	assert.Contains(t, store.errors[id], "no usable text")
	assert.Empty(t, store.profiles)
}

func TestRun_UnsupportedFormat(t *testing.T) {
	p := newTestPipeline(t, Options{})
	_, err := p.Run(context.Background(), Input{Filename: "cv.xyz", Data: []byte(sampleResume)})

	var formatErr *ingestion.UnsupportedFormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestRun_CreateRecordError(t *testing.T) {
	store := newFakeStore()
	store.createFn = func() (uuid.UUID, error) { return uuid.Nil, errors.New("db down") }
	p := newTestPipeline(t, Options{Store: store})

	_, err := p.Run(context.Background(), Input{Filename: "cv.txt", Data: []byte(sampleResume)})
	assert.ErrorContains(t, err, "db down")
}

func TestRunText_UsesCache(t *testing.T) {
	cache := newMemCache()
	p := newTestPipeline(t, Options{Cache: cache})
	target := types.Target{Field: types.FieldComputerScience}

	first, err := p.RunText(context.Background(), sampleResume, &target)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := p.RunText(context.Background(), sampleResume, &target)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Same(t, first.Profile, second.Profile)
	assert.Same(t, first.GapReport, second.GapReport)
	assert.Equal(t, 2, cache.gets)
}

func TestRunText_Empty(t *testing.T) {
	p := newTestPipeline(t, Options{})
	_, err := p.RunText(context.Background(), "   \n\n ", nil)

	var emptyErr *ingestion.ExtractionEmptyError
	assert.True(t, errors.As(err, &emptyErr))
}

func TestRunText_UnknownRole(t *testing.T) {
	p := newTestPipeline(t, Options{})
	_, err := p.RunText(context.Background(), sampleResume, &types.Target{Role: "Astronaut"})
	assert.Error(t, err)
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	short := filepath.Join(dir, "short.txt")
	require.NoError(t, os.WriteFile(good, []byte(sampleResume), 0644))
	require.NoError(t, os.WriteFile(short, []byte("hi"), 0644))
	missing := filepath.Join(dir, "missing.txt")

	p := newTestPipeline(t, Options{})
	results, err := p.RunFiles(context.Background(), []string{good, short, missing}, nil, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, good, results[0].Path)
	require.NotNil(t, results[0].Result)
	assert.Empty(t, results[0].Error)
	assert.Nil(t, results[0].Result.GapReport)

	assert.Nil(t, results[1].Result)
	assert.Contains(t, results[1].Error, "no usable text")

	assert.Nil(t, results[2].Result)
	assert.NotEmpty(t, results[2].Error)
}
