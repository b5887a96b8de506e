package skills

import (
	"errors"
	"testing"

	"github.com/jonathan/career-navigator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirements_Field(t *testing.T) {
	reqs, role, err := Requirements(types.Target{Field: types.FieldAI})
	require.NoError(t, err)
	assert.Nil(t, role)

	names := make([]string, len(reqs))
	for i, r := range reqs {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"Python", "TensorFlow", "PyTorch", "Machine Learning", "Deep Learning"}, names)
	assert.Equal(t, types.ImportanceCritical, reqs[0].Importance)
	assert.Equal(t, types.ImportanceMedium, reqs[4].Importance)
}

func TestRequirements_Role(t *testing.T) {
	reqs, role, err := Requirements(types.Target{Role: "data scientist"})
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, "Data Scientist", role.Name)
	assert.Equal(t, types.FieldDataScience, role.Field)
	require.Len(t, reqs, 5)

	// "moderate" in the role table maps to medium
	assert.Equal(t, types.ImportanceMedium, reqs[4].Importance)
	assert.Equal(t, []string{"Matplotlib", "Tableau"}, reqs[4].Examples)
}

func TestRequirements_UnknownRole(t *testing.T) {
	_, _, err := Requirements(types.Target{Role: "Astronaut"})
	require.Error(t, err)

	var unknown *UnknownRoleError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Astronaut", unknown.Role)
	assert.Contains(t, unknown.Known, "Software Engineer")
}

func TestRequirements_InvalidTarget(t *testing.T) {
	tests := []types.Target{
		{},
		{Field: types.FieldAI, Role: "AI Engineer"},
		{Field: "astrology"},
	}
	for _, target := range tests {
		_, _, err := Requirements(target)
		var te *TargetError
		assert.True(t, errors.As(err, &te), "target %+v", target)
	}
}

func TestMergeRequirements(t *testing.T) {
	merged := mergeRequirements([]types.RequiredSkill{
		{Name: "golang", Importance: types.ImportanceMedium, Demand: 4, Examples: []string{"gin"}},
		{Name: "Docker", Importance: types.ImportanceLow},
		{Name: "Go", Importance: types.ImportanceCritical, Demand: 2, Examples: []string{"Gin", "echo"}},
		{Name: "  ", Importance: types.ImportanceHigh},
	})

	require.Len(t, merged, 2)
	assert.Equal(t, "Go", merged[0].Name)
	assert.Equal(t, types.ImportanceCritical, merged[0].Importance)
	assert.Equal(t, 4, merged[0].Demand)
	assert.Equal(t, []string{"gin", "echo"}, merged[0].Examples)
	assert.Equal(t, "Docker", merged[1].Name)
}
