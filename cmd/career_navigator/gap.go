package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/career-navigator/internal/observability"
	"github.com/jonathan/career-navigator/internal/skills"
	"github.com/jonathan/career-navigator/internal/types"
)

var gapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Compare a skill list with a career field or role",
	Long:  "Analyze which required skills of a field or role are covered by the given skills, and print a learning roadmap for the rest.",
	RunE:  runGap,
}

var (
	gapSkills  []string
	gapField   string
	gapRole    string
	gapYears   float64
	gapRoadmap bool
	gapJSON    bool
)

func init() {
	gapCmd.Flags().StringSliceVarP(&gapSkills, "skills", "s", nil, "Comma-separated skills held")
	gapCmd.Flags().StringVar(&gapField, "field", "", "Target career field")
	gapCmd.Flags().StringVar(&gapRole, "role", "", "Target job role")
	gapCmd.Flags().Float64Var(&gapYears, "years", 0, "Years of experience, used for role readiness")
	gapCmd.Flags().BoolVar(&gapRoadmap, "roadmap", false, "Also print a learning roadmap")
	gapCmd.Flags().BoolVar(&gapJSON, "json", false, "Print results as JSON")

	rootCmd.AddCommand(gapCmd)
}

func runGap(cmd *cobra.Command, _ []string) error {
	target, err := targetFromFlags(gapField, gapRole, true)
	if err != nil {
		return err
	}

	report, err := skills.AnalyzeSkillGap(&types.Profile{Skills: gapSkills, ExperienceYears: gapYears}, *target)
	if err != nil {
		return err
	}

	var roadmap *types.Roadmap
	if gapRoadmap {
		roadmap = skills.BuildRoadmap(report, "")
	}

	if gapJSON {
		return writeJSON(cmd.OutOrStdout(), struct {
			GapReport *types.GapReport `json:"gapReport"`
			Roadmap   *types.Roadmap   `json:"roadmap,omitempty"`
		}{report, roadmap})
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintGapReport(report)
	if roadmap != nil {
		printer.PrintRoadmap(roadmap)
	}
	return nil
}
