package skills

import (
	"github.com/jonathan/career-navigator/internal/catalog"
	"github.com/jonathan/career-navigator/internal/types"
)

// DefaultTrendingLimit is used when Trending is called without a limit.
const DefaultTrendingLimit = 10

// Trending returns the fastest growing skills of an industry. Unknown
// industries fall back to technology.
func Trending(industry string, limit int) []types.TrendingSkill {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	return catalog.MustLoad().TrendingSkills(industry, limit)
}

// Industries lists the industries Trending knows about.
func Industries() []string {
	return catalog.MustLoad().Industries()
}
