package skills

import "fmt"

// TargetError is returned when a gap-analysis target is malformed.
type TargetError struct {
	Message string
	Cause   error
}

func (e *TargetError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TargetError) Unwrap() error {
	return e.Cause
}

// UnknownRoleError is returned when a target role is not in the catalog.
type UnknownRoleError struct {
	Role  string
	Known []string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q (known roles: %v)", e.Role, e.Known)
}
