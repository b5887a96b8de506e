package catalog

import (
	"strings"
	"testing"

	"github.com/jonathan/career-navigator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFilesParse(t *testing.T) {
	ClearCache()
	c, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Skills.Version)
	assert.GreaterOrEqual(t, len(c.Vocabulary()), 100)
	assert.Len(t, c.Fields, len(types.AllFields()))
	assert.Len(t, c.Roles, 3)
	assert.Contains(t, c.Industries(), "technology")
}

func TestLoad_Cached(t *testing.T) {
	ClearCache()
	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestVocabulary_NoCaseInsensitiveDuplicates(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range MustLoad().Vocabulary() {
		key := strings.ToLower(s)
		assert.False(t, seen[key], "duplicate vocabulary entry %q", s)
		seen[key] = true
	}
}

func TestFieldProfiles_Complete(t *testing.T) {
	c := MustLoad()
	for _, f := range types.AllFields() {
		p, ok := c.Field(f)
		require.True(t, ok, f)
		assert.NotEmpty(t, p.Indicators, f)
		assert.NotEmpty(t, p.DegreeKeywords, f)
		assert.NotEmpty(t, p.InterestKeywords, f)
		assert.NotEmpty(t, p.CareerPath.Skills, f)
		assert.NotEmpty(t, p.CareerPath.Certifications, f)
		assert.NotEmpty(t, p.FieldSkills, f)
		assert.NotEmpty(t, p.Milestones, f)

		for skill, prio := range p.GapPriorities {
			assert.Equal(t, strings.ToLower(skill), skill, "gap priority keys are lowercase")
			assert.True(t, types.ParseImportance(prio).Valid(), prio)
		}
	}
}

func TestAlias(t *testing.T) {
	c := MustLoad()

	got, ok := c.Alias("JS")
	require.True(t, ok)
	assert.Equal(t, "JavaScript", got)

	got, ok = c.Alias(" k8s ")
	require.True(t, ok)
	assert.Equal(t, "Kubernetes", got)

	_, ok = c.Alias("Python")
	assert.False(t, ok)
}

func TestCanonicalSkill(t *testing.T) {
	c := MustLoad()

	got, ok := c.CanonicalSkill("postgresql")
	require.True(t, ok)
	assert.Equal(t, "PostgreSQL", got)

	_, ok = c.CanonicalSkill("Underwater Basket Weaving")
	assert.False(t, ok)
}

func TestCategory(t *testing.T) {
	c := MustLoad()

	assert.Equal(t, "languages/web", c.Category("JavaScript"))
	assert.Equal(t, "languages/backend", c.Category("Python"))
	assert.Equal(t, "fields/mobileDevelopment/native/ios", c.Category("Xcode"))
	assert.Equal(t, "other", c.Category("Knitting"))
}

func TestMetadataAndDemandDefaults(t *testing.T) {
	c := MustLoad()

	assert.Equal(t, "advanced", c.Metadata("Machine Learning").Difficulty)
	assert.Equal(t, types.SkillMetadata{Difficulty: "intermediate", LearningTime: "2-4 months", Category: "skill"}, c.Metadata("Haskell"))

	assert.Equal(t, 10, c.Demand("JavaScript"))
	assert.Equal(t, 5, c.Demand("Haskell"))
}

func TestResources(t *testing.T) {
	c := MustLoad()

	assert.Len(t, c.Resources("Python"), 3)

	generic := c.Resources("Ruby on Rails")
	require.Len(t, generic, 3)
	assert.Equal(t, "search", generic[0].Type)
	assert.Contains(t, generic[0].URL, "Ruby+on+Rails+tutorial")
}

func TestFieldRequirements_AI(t *testing.T) {
	reqs := MustLoad().FieldRequirements(types.FieldAI)

	require.Len(t, reqs, 5)
	byName := map[string]types.Importance{}
	for _, r := range reqs {
		byName[r.Name] = r.Importance
	}
	assert.Equal(t, types.ImportanceCritical, byName["Python"])
	assert.Equal(t, types.ImportanceCritical, byName["Machine Learning"])
	assert.Equal(t, types.ImportanceHigh, byName["TensorFlow"])
	assert.Equal(t, types.ImportanceHigh, byName["PyTorch"])
	assert.Equal(t, types.ImportanceMedium, byName["Deep Learning"])
}

func TestFieldRequirements_DefaultLow(t *testing.T) {
	reqs := MustLoad().FieldRequirements(types.FieldDataScience)

	for _, r := range reqs {
		if r.Name == "R" {
			assert.Equal(t, types.ImportanceLow, r.Importance)
			return
		}
	}
	t.Fatal("R missing from data science requirements")
}

func TestRole(t *testing.T) {
	c := MustLoad()

	r, ok := c.Role("data scientist")
	require.True(t, ok)
	assert.Equal(t, "Data Scientist", r.Name)
	assert.Equal(t, types.FieldDataScience, r.Field)
	assert.Equal(t, 2.0, r.Experience)

	reqs := c.RoleRequirements(r)
	require.Len(t, reqs, 5)
	assert.Equal(t, types.ImportanceMedium, reqs[4].Importance, "moderate maps to medium")
	assert.Equal(t, []string{"Python", "R"}, reqs[0].Examples)

	_, ok = c.Role("Astronaut")
	assert.False(t, ok)
}

func TestTrendingSkills(t *testing.T) {
	c := MustLoad()

	top := c.TrendingSkills("Technology", 3)
	require.Len(t, top, 3)
	assert.Equal(t, "GraphQL", top[0].Skill)
	assert.Equal(t, "Artificial Intelligence", top[1].Skill)
	assert.Equal(t, "Machine Learning", top[2].Skill)

	fallback := c.TrendingSkills("agriculture", 0)
	assert.Len(t, fallback, 10)

	health := c.TrendingSkills("healthcare", 10)
	require.Len(t, health, 4)
	assert.Equal(t, "Telemedicine", health[0].Skill)
}

func TestCareerPath(t *testing.T) {
	cp, ok := MustLoad().CareerPath(types.FieldCyberSecurity)
	require.True(t, ok)
	assert.Equal(t, types.FieldCyberSecurity, cp.Field)
	assert.Contains(t, cp.Senior, "CISO")
	assert.Contains(t, cp.Certifications, "CompTIA Security+")
}
