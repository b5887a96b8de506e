package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-navigator/internal/classify"
	"github.com/jonathan/career-navigator/internal/observability"
	"github.com/jonathan/career-navigator/internal/skills"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a career field and skills to learn",
	Long:  "Pick the best-fitting career field from a degree, current skills and interests, then list the skills to learn next.",
	RunE:  runRecommend,
}

var (
	recommendDegree    string
	recommendSkills    []string
	recommendInterests []string
	recommendJSON      bool
)

func init() {
	recommendCmd.Flags().StringVar(&recommendDegree, "degree", "", "Degree name, e.g. \"B.Tech Computer Science\"")
	recommendCmd.Flags().StringSliceVarP(&recommendSkills, "skills", "s", nil, "Comma-separated skills held")
	recommendCmd.Flags().StringSliceVar(&recommendInterests, "interests", nil, "Comma-separated interests")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Print results as JSON")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	recs := skills.Recommend(recommendDegree, recommendSkills, recommendInterests)
	_, scores := classify.Recommend(classify.WeightedInput{
		Degree:    recommendDegree,
		Skills:    recommendSkills,
		Interests: recommendInterests,
	})

	if recommendJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"recommendations": recs,
			"fieldScores":     scores,
		})
	}

	out := cmd.OutOrStdout()
	observability.NewPrinter(out).PrintRecommendations(recs)
	fmt.Fprintln(out, "Field scores:")
	for _, s := range scores {
		fmt.Fprintf(out, "  %-18s %5.1f\n", s.Field, s.Score)
	}
	return nil
}
