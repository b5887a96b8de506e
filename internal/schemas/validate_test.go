package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/career-navigator/internal/types"
	"github.com/jonathan/career-navigator/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "count"],
	"properties": {
		"name": {"type": "string"},
		"count": {"type": "integer", "minimum": 0}
	}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func validProfile() *types.Profile {
	return &types.Profile{
		Personal:        types.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com"},
		Education:       []types.Education{{Degree: "B.Tech", Field: "Computer Science", Year: "2020"}},
		Skills:          []string{"Go", "Python"},
		Experience:      []types.Position{{Role: "Backend Engineer", Company: "Acme"}},
		Internships:     []types.Position{},
		Projects:        []types.Project{{Name: "Chat App", ProjectNumber: 1}},
		SuggestedField:  types.FieldComputerScience,
		ExperienceLevel: types.LevelJunior,
		ExperienceYears: 2,
		Confidence:      85,
		HasExperience:   true,
		HasProjects:     true,
	}
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", testSchema)
	jsonPath := writeFile(t, "doc.json", `{"name": "x", "count": 2}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_InvalidJSON_MissingField(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", testSchema)
	jsonPath := writeFile(t, "doc.json", `{"name": "x"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_FileNotFound(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", testSchema)

	err := ValidateJSON(schemaPath, "/nonexistent/doc.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestValidateJSONString_WrongType(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": "x", "count": "two"}`)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "count", validationErr.Errors[0].Field)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, ValidateProfile(validProfile()))

	p := validProfile()
	p.SuggestedField = "astrology"
	p.Confidence = 120
	err := ValidateProfile(p)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, schemas.ProfileSchema, validationErr.Schema)
	assert.Len(t, validationErr.Errors, 2)
	assert.Contains(t, err.Error(), "suggestedField")
}

func TestValidateProfile_TooManyProjects(t *testing.T) {
	p := validProfile()
	for i := 2; i <= 6; i++ {
		p.Projects = append(p.Projects, types.Project{Name: "Project", ProjectNumber: i})
	}
	assert.Error(t, ValidateProfile(p))
}

func TestValidateGapReport(t *testing.T) {
	readiness := 42
	report := &types.GapReport{
		Target:             types.Target{Role: "Software Engineer"},
		CurrentSkills:      []string{"Go"},
		RequiredSkills:     []types.RequiredSkill{{Name: "Testing", Importance: types.ImportanceMedium, Demand: 5}},
		MatchedSkills:      []types.RequiredSkill{},
		MissingSkills:      []types.RequiredSkill{{Name: "Testing", Importance: types.ImportanceMedium, Demand: 5}},
		CoveragePercentage: 0,
		PrioritizedMissing: []types.RequiredSkill{{Name: "Testing", Importance: types.ImportanceMedium, Demand: 5}},
		Readiness:          &readiness,
	}
	assert.NoError(t, ValidateGapReport(report))

	report.Target = types.Target{Field: types.FieldAI, Role: "AI Engineer"}
	assert.Error(t, ValidateGapReport(report))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", map[string]string{})

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}
