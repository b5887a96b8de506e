package types

import "fmt"

// Target names what a profile is compared against: a field or a role.
type Target struct {
	Field Field  `json:"field,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Validate checks that exactly one of Field or Role is set.
func (t Target) Validate() error {
	switch {
	case t.Field == "" && t.Role == "":
		return fmt.Errorf("target requires a field or a role")
	case t.Field != "" && t.Role != "":
		return fmt.Errorf("target field and role are mutually exclusive")
	case t.Field != "" && !t.Field.Valid():
		return fmt.Errorf("unknown field %q", t.Field)
	}
	return nil
}

// String renders the target for logs.
func (t Target) String() string {
	if t.Role != "" {
		return "role:" + t.Role
	}
	return "field:" + string(t.Field)
}

// RequiredSkill is one entry of a target's requirement set.
type RequiredSkill struct {
	Name       string     `json:"name" validate:"required"`
	Importance Importance `json:"importance" validate:"required,importance_enum"`
	Demand     int        `json:"demand,omitempty" validate:"gte=0,lte=10"`
	Examples   []string   `json:"examples,omitempty"`
}

// GapReport compares a profile's skills with a target's requirements.
type GapReport struct {
	Target             Target          `json:"target"`
	CurrentSkills      []string        `json:"currentSkills"`
	RequiredSkills     []RequiredSkill `json:"requiredSkills" validate:"dive"`
	MatchedSkills      []RequiredSkill `json:"matchedSkills"`
	MissingSkills      []RequiredSkill `json:"missingSkills"`
	CoveragePercentage int             `json:"coveragePercentage" validate:"gte=0,lte=100"`
	PrioritizedMissing []RequiredSkill `json:"prioritizedMissing"`
	Readiness          *int            `json:"readiness,omitempty"`
}

// Validate validates the GapReport using the validator.
func (r *GapReport) Validate() error {
	return newValidator().Struct(r)
}

// MissingNames returns the names of the prioritized missing skills in order.
func (r *GapReport) MissingNames() []string {
	names := make([]string, len(r.PrioritizedMissing))
	for i, s := range r.PrioritizedMissing {
		names[i] = s.Name
	}
	return names
}
