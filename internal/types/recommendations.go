package types

// SkillMetadata describes how hard a skill is to pick up.
type SkillMetadata struct {
	Difficulty   string `json:"difficulty"`
	LearningTime string `json:"learningTime"`
	Category     string `json:"category"`
}

// LearningResource points at material for one skill.
type LearningResource struct {
	Type string `json:"type"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PrioritizedSkill is a missing skill annotated for a learning plan.
type PrioritizedSkill struct {
	Skill       string             `json:"skill"`
	Priority    Importance         `json:"priority"`
	DemandScore int                `json:"demandScore"`
	Metadata    SkillMetadata      `json:"metadata"`
	Resources   []LearningResource `json:"resources"`
}

// LearningPhase is one step of a learning path.
type LearningPhase struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Skills      []PrioritizedSkill `json:"skills"`
}

// LearningPath groups prioritized skills into phases by difficulty.
type LearningPath struct {
	Phases     []LearningPhase `json:"phases"`
	Milestones []string        `json:"milestones"`
	Projects   []string        `json:"projects"`
}

// SkillRecommendations is the answer to "what should I learn next".
type SkillRecommendations struct {
	Field         Field              `json:"field"`
	CurrentSkills []string           `json:"currentSkills"`
	Critical      []PrioritizedSkill `json:"critical"`
	High          []PrioritizedSkill `json:"high"`
	Medium        []PrioritizedSkill `json:"medium"`
	Complementary []string           `json:"complementary"`
	LearningPath  LearningPath       `json:"learningPath"`
}

// Roadmap buckets missing skills by time horizon: immediate (1-3 months)
// takes critical gaps, short term (3-6 months) high gaps and long term
// (6+ months) the rest. Additional lists field extras worth picking up.
type Roadmap struct {
	Target     Target   `json:"target"`
	Immediate  []string `json:"immediate"`
	ShortTerm  []string `json:"shortTerm"`
	LongTerm   []string `json:"longTerm"`
	Additional []string `json:"additional"`
}

// SkillValidation is the outcome of checking one user-entered skill name.
type SkillValidation struct {
	Original    string   `json:"original"`
	Normalized  string   `json:"normalized"`
	Category    string   `json:"category"`
	Valid       bool     `json:"valid"`
	Suggestions []string `json:"suggestions"`
}

// TrendingSkill is a skill with its growth and demand figures.
type TrendingSkill struct {
	Skill  string `json:"skill"`
	Growth int    `json:"growth"`
	Demand int    `json:"demand"`
}

// CareerPath lists typical roles per level and useful certifications for a field.
type CareerPath struct {
	Field          Field    `json:"field"`
	Entry          []string `json:"entry"`
	Mid            []string `json:"mid"`
	Senior         []string `json:"senior"`
	Skills         []string `json:"skills"`
	Certifications []string `json:"certifications"`
}
