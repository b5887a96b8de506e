package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-navigator/internal/classify"
	"github.com/jonathan/career-navigator/internal/observability"
	"github.com/jonathan/career-navigator/internal/skills"
	"github.com/jonathan/career-navigator/internal/types"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Skill catalog utilities",
}

var skillsValidateCmd = &cobra.Command{
	Use:   "validate <skill>...",
	Short: "Normalize skill names and suggest corrections",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSkillsValidate,
}

var skillsTrendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List the fastest growing skills of an industry",
	RunE:  runSkillsTrending,
}

var careerPathCmd = &cobra.Command{
	Use:   "career-path <field>",
	Short: "Show job titles, core skills and certifications of a career field",
	Args:  cobra.ExactArgs(1),
	RunE:  runCareerPath,
}

var (
	skillsJSON       bool
	trendingIndustry string
	trendingLimit    int
)

func init() {
	skillsCmd.PersistentFlags().BoolVar(&skillsJSON, "json", false, "Print results as JSON")
	skillsTrendingCmd.Flags().StringVar(&trendingIndustry, "industry", "technology",
		"Industry ("+strings.Join(skills.Industries(), ", ")+")")
	skillsTrendingCmd.Flags().IntVarP(&trendingLimit, "limit", "n", skills.DefaultTrendingLimit, "Number of skills to list")

	skillsCmd.AddCommand(skillsValidateCmd, skillsTrendingCmd, careerPathCmd)
	rootCmd.AddCommand(skillsCmd)
}

func runSkillsValidate(cmd *cobra.Command, args []string) error {
	results := skills.ValidateSkills(args)
	if skillsJSON {
		return writeJSON(cmd.OutOrStdout(), results)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintValidations(results)
	return nil
}

func runSkillsTrending(cmd *cobra.Command, _ []string) error {
	if trendingLimit < 1 {
		return fmt.Errorf("--limit must be positive")
	}
	trending := skills.Trending(trendingIndustry, trendingLimit)
	if skillsJSON {
		return writeJSON(cmd.OutOrStdout(), trending)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintTrending(trendingIndustry, trending)
	return nil
}

func runCareerPath(cmd *cobra.Command, args []string) error {
	field, ok := types.ParseField(args[0])
	if !ok {
		return fmt.Errorf("unknown field %q (known: %v)", args[0], types.AllFields())
	}
	path, ok := classify.CareerPath(field)
	if !ok {
		return fmt.Errorf("no career path for %s", field)
	}
	if skillsJSON {
		return writeJSON(cmd.OutOrStdout(), path)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Career path: %s\n", path.Field)
	fmt.Fprintf(out, "  Entry:          %s\n", strings.Join(path.Entry, ", "))
	fmt.Fprintf(out, "  Mid:            %s\n", strings.Join(path.Mid, ", "))
	fmt.Fprintf(out, "  Senior:         %s\n", strings.Join(path.Senior, ", "))
	fmt.Fprintf(out, "  Skills:         %s\n", strings.Join(path.Skills, ", "))
	fmt.Fprintf(out, "  Certifications: %s\n", strings.Join(path.Certifications, ", "))
	return nil
}
