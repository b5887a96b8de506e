package blob

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(t *testing.T) {
	t.Helper()
	old := retryBackoff
	retryBackoff = time.Millisecond
	t.Cleanup(func() { retryBackoff = old })
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	fastRetry(t)
	calls := 0
	got, err := retry(context.Background(), 3, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestRetry_GivesUp(t *testing.T) {
	fastRetry(t)
	boom := errors.New("boom")
	calls := 0
	_, err := retry(context.Background(), 2, func() (int, error) {
		calls++
		return 0, boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	_, err := retry(ctx, 5, func() (int, error) {
		calls++
		return 0, errors.New("down")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	tests := map[string]string{
		"cv.pdf":                "resumes/7c9e6679-7425-40de-944b-e07fc1f90ae7/cv.pdf",
		"../../etc/passwd":      "resumes/7c9e6679-7425-40de-944b-e07fc1f90ae7/passwd",
		`C:\Users\me\cv.docx`:   "resumes/7c9e6679-7425-40de-944b-e07fc1f90ae7/cv.docx",
		"":                      "resumes/7c9e6679-7425-40de-944b-e07fc1f90ae7/resume",
	}
	for in, want := range tests {
		assert.Equal(t, want, ObjectKey(id, in), in)
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.EqualError(t, err, "bucket is required")
}

func TestNew_StaticCredentials(t *testing.T) {
	s, err := New(context.Background(), Options{
		Bucket:    "resumes",
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "resumes", s.Bucket())
}
