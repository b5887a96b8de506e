// Package catalog provides the embedded reference data used by the extractors,
// classifiers and skill analyzers: the skill vocabulary and taxonomy, per-field
// keyword tables and career paths, role requirements and trending skills.
// The JSON files are embedded at compile time and parsed once.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonathan/career-navigator/internal/types"
)

//go:embed *.json
var catalogFiles embed.FS

const (
	skillsFile   = "skills.json"
	fieldsFile   = "fields.json"
	rolesFile    = "roles.json"
	trendingFile = "trending.json"
)

// cache stores the parsed catalog to avoid repeated JSON parsing
var (
	cache   *Catalog
	cacheMu sync.RWMutex
)

// Catalog is the full set of reference tables.
type Catalog struct {
	Skills   SkillTable
	Fields   map[types.Field]FieldProfile
	Roles    []Role
	Trending TrendingTable

	vocabLower map[string]string
	flattened  []string
}

// SkillTable holds the skill vocabulary and its taxonomy.
type SkillTable struct {
	Version         string                              `json:"version"`
	Vocabulary      []string                            `json:"vocabulary"`
	Aliases         map[string]string                   `json:"aliases"`
	Database        []SkillGroup                        `json:"database"`
	Metadata        map[string]types.SkillMetadata      `json:"metadata"`
	DefaultMetadata types.SkillMetadata                 `json:"defaultMetadata"`
	Demand          map[string]int                      `json:"demand"`
	DefaultDemand   int                                 `json:"defaultDemand"`
	Resources       map[string][]types.LearningResource `json:"resources"`
}

// SkillGroup is one leaf of the skill taxonomy, e.g. "languages/web".
type SkillGroup struct {
	Path   string   `json:"path"`
	Skills []string `json:"skills"`
}

// CareerPathEntry is the JSON shape of a field's career path.
type CareerPathEntry struct {
	Entry          []string `json:"entry"`
	Mid            []string `json:"mid"`
	Senior         []string `json:"senior"`
	Skills         []string `json:"skills"`
	Certifications []string `json:"certifications"`
}

// FieldProfile is everything known about one career field.
type FieldProfile struct {
	Indicators       []string            `json:"indicators"`
	DegreeKeywords   []string            `json:"degreeKeywords"`
	InterestKeywords []string            `json:"interestKeywords"`
	MappingKeywords  []string            `json:"mappingKeywords"`
	CareerPath       CareerPathEntry     `json:"careerPath"`
	GapPriorities    map[string]string   `json:"gapPriorities"`
	FieldSkills      []string            `json:"fieldSkills"`
	SkillPriorities  map[string]string   `json:"skillPriorities"`
	Complementary    map[string][]string `json:"complementary"`
	Milestones       []string            `json:"milestones"`
	Projects         []string            `json:"projects"`
	AdditionalSkills []string            `json:"additionalSkills"`
}

// RoleSkill is one requirement of a role.
type RoleSkill struct {
	Name       string   `json:"name"`
	Importance string   `json:"importance"`
	Examples   []string `json:"examples"`
}

// Role describes a target job role.
type Role struct {
	Name       string      `json:"name"`
	Field      types.Field `json:"field"`
	Experience float64     `json:"experience"`
	Education  string      `json:"education"`
	Skills     []RoleSkill `json:"skills"`
}

// TrendingTable lists trending skills per industry.
type TrendingTable struct {
	DefaultIndustry string                           `json:"defaultIndustry"`
	Industries      map[string][]types.TrendingSkill `json:"industries"`
}

// Load parses the embedded catalog, caching the result.
func Load() (*Catalog, error) {
	cacheMu.RLock()
	if cache != nil {
		c := cache
		cacheMu.RUnlock()
		return c, nil
	}
	cacheMu.RUnlock()

	c := &Catalog{}
	if err := loadFile(skillsFile, &c.Skills); err != nil {
		return nil, err
	}
	if err := loadFile(fieldsFile, &c.Fields); err != nil {
		return nil, err
	}
	if err := loadFile(rolesFile, &c.Roles); err != nil {
		return nil, err
	}
	if err := loadFile(trendingFile, &c.Trending); err != nil {
		return nil, err
	}
	if err := c.index(); err != nil {
		return nil, err
	}

	cacheMu.Lock()
	cache = c
	cacheMu.Unlock()

	return c, nil
}

// MustLoad is Load for package initialization; the embedded data is
// covered by tests, so a failure here is a build defect.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load catalog: %v", err))
	}
	return c
}

// ClearCache clears the catalog cache. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = nil
	cacheMu.Unlock()
}

func loadFile(filename string, dst any) error {
	data, err := catalogFiles.ReadFile(filename)
	if err != nil {
		return &LoadError{File: filename, Cause: err}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &LoadError{File: filename, Cause: err}
	}
	return nil
}

func (c *Catalog) index() error {
	for _, f := range types.AllFields() {
		if _, ok := c.Fields[f]; !ok {
			return &LoadError{File: fieldsFile, Cause: fmt.Errorf("missing field %q", f)}
		}
	}
	for _, r := range c.Roles {
		if !r.Field.Valid() {
			return &LoadError{File: rolesFile, Cause: fmt.Errorf("role %q has unknown field %q", r.Name, r.Field)}
		}
	}

	c.vocabLower = make(map[string]string, len(c.Skills.Vocabulary))
	for _, s := range c.Skills.Vocabulary {
		c.vocabLower[lower(s)] = s
	}

	seen := make(map[string]bool)
	for _, g := range c.Skills.Database {
		for _, s := range g.Skills {
			if !seen[s] {
				seen[s] = true
				c.flattened = append(c.flattened, s)
			}
		}
	}
	return nil
}
