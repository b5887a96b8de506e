// Package types provides type definitions for structured data used throughout the career-navigator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Profile is the structured record extracted from one résumé.
type Profile struct {
	Personal        PersonalInfo    `json:"personal"`
	Education       []Education     `json:"education" validate:"dive"`
	Skills          []string        `json:"skills"`
	Experience      []Position      `json:"experience" validate:"dive"`
	Internships     []Position      `json:"internships" validate:"max=3,dive"`
	Projects        []Project       `json:"projects" validate:"max=5,dive"`
	Summary         string          `json:"summary"`
	SuggestedField  Field           `json:"suggestedField" validate:"required,field_enum"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel" validate:"required,level_enum"`
	ExperienceYears float64         `json:"experienceYears" validate:"gte=0"`
	Confidence      int             `json:"confidence" validate:"gte=0,lte=100"`
	HasExperience   bool            `json:"hasExperience"`
	HasInternships  bool            `json:"hasInternships"`
	HasProjects     bool            `json:"hasProjects"`
	NeedsReview     bool            `json:"needsReview"`
}

// PersonalInfo holds contact details. Every field is optional.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Education is one degree entry.
type Education struct {
	Degree      string `json:"degree" validate:"required"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        string `json:"year" validate:"omitempty,len=4,numeric"`
	CGPA        string `json:"cgpa"`
	Percentage  string `json:"percentage"`
}

// Position is a work experience or internship entry.
type Position struct {
	Role        string `json:"role" validate:"required"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Project is a project title with its 1-based position in the résumé.
type Project struct {
	Name          string `json:"name" validate:"required"`
	ProjectNumber int    `json:"projectNumber" validate:"gte=1"`
}

// IsEmpty reports whether every field of the entry is blank.
func (e Education) IsEmpty() bool {
	return e.Degree == "" && e.Field == "" && e.Institution == "" &&
		e.Year == "" && e.CGPA == "" && e.Percentage == ""
}

// IsEmpty reports whether every field of the position is blank.
func (p Position) IsEmpty() bool {
	return p.Role == "" && p.Company == "" && p.Duration == "" &&
		p.Location == "" && p.Description == ""
}

// newValidator returns a validator with the enum rules registered.
func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("field_enum", func(fl validator.FieldLevel) bool {
		return Field(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("level_enum", func(fl validator.FieldLevel) bool {
		return ExperienceLevel(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("importance_enum", func(fl validator.FieldLevel) bool {
		return Importance(fl.Field().String()).Valid()
	})
	return validate
}

// Validate validates the Profile using the validator.
func (p *Profile) Validate() error {
	return newValidator().Struct(p)
}
