package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-navigator/internal/ingestion"
	"github.com/jonathan/career-navigator/internal/skills"
)

func TestHTTPStatus(t *testing.T) {
	type body struct {
		Text string `validate:"required"`
	}
	validationErr := validator.New().Struct(body{})

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"extraction empty", &ingestion.ExtractionEmptyError{Length: 3}, http.StatusUnprocessableEntity},
		{"unsupported format", &ingestion.UnsupportedFormatError{Filename: "cv.xyz"}, http.StatusUnprocessableEntity},
		{"decode", &ingestion.DecodeError{Format: "pdf", Cause: errors.New("bad xref")}, http.StatusUnprocessableEntity},
		{"unknown role", &skills.UnknownRoleError{Role: "Astronaut"}, http.StatusNotFound},
		{"not found", &ErrNotFound{Resource: "resume", ID: "x"}, http.StatusNotFound},
		{"target", &skills.TargetError{Message: "profile is required"}, http.StatusBadRequest},
		{"validation", &ErrValidation{Field: "limit", Message: "bad"}, http.StatusBadRequest},
		{"validator", validationErr, http.StatusBadRequest},
		{"too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"unavailable", &ErrUnavailable{Feature: "database"}, http.StatusServiceUnavailable},
		{"wrapped", fmt.Errorf("pipeline: %w", &skills.UnknownRoleError{Role: "Chef"}), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "resume not found: 42", (&ErrNotFound{Resource: "resume", ID: "42"}).Error())
	assert.Equal(t, "validation error: limit - too big", (&ErrValidation{Field: "limit", Message: "too big"}).Error())
	assert.Equal(t, "database is not configured", (&ErrUnavailable{Feature: "database"}).Error())
}

func TestParseTarget(t *testing.T) {
	target, err := parseTarget("", "")
	assert.NoError(t, err)
	assert.Nil(t, target)

	target, err = parseTarget("Data Science", "")
	assert.NoError(t, err)
	assert.Equal(t, "field:dataScience", target.String())

	target, err = parseTarget("", "Data Scientist")
	assert.NoError(t, err)
	assert.Equal(t, "role:Data Scientist", target.String())

	_, err = parseTarget("ai", "Data Scientist")
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))

	_, err = parseTarget("astrology", "")
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}
