package types

import "strings"

// Field is a career field a profile can be classified into.
type Field string

// Declaration order matters: classifiers break ties by it.
const (
	FieldAI                Field = "ai"
	FieldDataScience       Field = "dataScience"
	FieldComputerScience   Field = "computerScience"
	FieldCyberSecurity     Field = "cyberSecurity"
	FieldWebDevelopment    Field = "webDevelopment"
	FieldMobileDevelopment Field = "mobileDevelopment"
)

// DefaultField is used when no field signal exists.
const DefaultField = FieldComputerScience

// AllFields returns every field in declaration order.
func AllFields() []Field {
	return []Field{
		FieldAI,
		FieldDataScience,
		FieldComputerScience,
		FieldCyberSecurity,
		FieldWebDevelopment,
		FieldMobileDevelopment,
	}
}

// Valid reports whether f is one of the declared fields.
func (f Field) Valid() bool {
	for _, known := range AllFields() {
		if f == known {
			return true
		}
	}
	return false
}

// ParseField resolves a field name case-insensitively, accepting the
// camelCase identifier as well as space, dash or underscore separated forms.
func ParseField(s string) (Field, bool) {
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range AllFields() {
		if strings.ToLower(string(f)) == key {
			return f, true
		}
	}
	return "", false
}

// ExperienceLevel is a discrete seniority band.
type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "entry"
	LevelJunior ExperienceLevel = "junior"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
)

// Valid reports whether l is a known level.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelEntry, LevelJunior, LevelMid, LevelSenior:
		return true
	}
	return false
}

// Importance ranks how essential a required skill is.
type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
	ImportanceLow      Importance = "low"
)

// Rank returns 4 for critical down to 1 for low, and 0 for unknown values.
func (i Importance) Rank() int {
	switch i {
	case ImportanceCritical:
		return 4
	case ImportanceHigh:
		return 3
	case ImportanceMedium:
		return 2
	case ImportanceLow:
		return 1
	}
	return 0
}

// Valid reports whether i is a known tier.
func (i Importance) Valid() bool {
	return i.Rank() > 0
}

// ParseImportance maps catalog spellings onto the four tiers.
// "moderate" is treated as medium and "minor" as low.
func ParseImportance(s string) Importance {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return ImportanceCritical
	case "high":
		return ImportanceHigh
	case "medium", "moderate":
		return ImportanceMedium
	default:
		return ImportanceLow
	}
}
