package main

import (
	"fmt"

	"github.com/jonathan/career-navigator/internal/types"
)

// targetFromFlags turns --field/--role into a gap target. Both empty yields
// nil unless required is set.
func targetFromFlags(field, role string, required bool) (*types.Target, error) {
	switch {
	case field == "" && role == "":
		if required {
			return nil, fmt.Errorf("one of --field or --role is required")
		}
		return nil, nil
	case field != "" && role != "":
		return nil, fmt.Errorf("--field and --role are mutually exclusive")
	case role != "":
		return &types.Target{Role: role}, nil
	}

	f, ok := types.ParseField(field)
	if !ok {
		return nil, fmt.Errorf("unknown field %q (known: %v)", field, types.AllFields())
	}
	return &types.Target{Field: f}, nil
}
