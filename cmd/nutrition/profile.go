// ABOUTME: CLI commands for the user profile.
// ABOUTME: "profile set" edits only the flags given; "profile show" prints the stored profile.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/nutrition/internal/models"
)

var (
	profWeight   float64
	profHeight   float64
	profAge      int
	profSex      string
	profActivity string
	profGoal     string
	profTarget   float64
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"p"},
	Short:   "Show or edit your profile",
	Long: `Your profile holds the inputs for goal calculation:

  weight (kg), height (cm), age, sex       required for goals and plans
  activity level                           sedentary, light, moderate, active, very_active
  goal                                     lose_weight, maintain, gain_weight, gain_muscle
  target weight (kg)                       default target for 'nutrition plan'`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		p, err := repo.GetProfile()
		if err != nil {
			return fmt.Errorf("failed to get profile: %w", err)
		}
		if jsonOutput {
			return printJSON(out, p)
		}
		if p == nil {
			fmt.Fprintln(out, "No profile set. Run 'nutrition profile set' first.")
			return nil
		}

		printProfile(cmd, p)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long: `Update one or more profile fields. Fields you don't pass keep their value.

Examples:
  nutrition profile set --weight 80 --height 180 --age 30 --sex male
  nutrition profile set --activity moderate --goal lose_weight
  nutrition profile set --target 72`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var u models.ProfileUpdate
		if flags.Changed("weight") {
			u.WeightKg = &profWeight
		}
		if flags.Changed("height") {
			u.HeightCm = &profHeight
		}
		if flags.Changed("age") {
			u.Age = &profAge
		}
		if flags.Changed("sex") {
			sex := models.Sex(profSex)
			u.Sex = &sex
		}
		if flags.Changed("activity") {
			level := models.ActivityLevel(profActivity)
			u.ActivityLevel = &level
		}
		if flags.Changed("goal") {
			goal := models.Goal(profGoal)
			u.Goal = &goal
		}
		if flags.Changed("target") {
			u.TargetWeightKg = &profTarget
		}
		if u == (models.ProfileUpdate{}) {
			return fmt.Errorf("nothing to update: pass at least one flag")
		}

		p, err := repo.GetProfile()
		if err != nil {
			return fmt.Errorf("failed to get profile: %w", err)
		}
		p = u.Apply(p)
		if err := models.ValidateProfile(p); err != nil {
			return err
		}
		p.UpdatedAt = timeNow()

		if err := repo.SaveProfile(p); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		out := cmd.OutOrStdout()
		green.Fprintln(out, "✓ Profile updated")
		printProfile(cmd, p)
		if !p.IsComplete() {
			yellow.Fprintln(out, "  Profile incomplete: weight, height, age and sex are needed for goals.")
		}
		return nil
	},
}

func printProfile(cmd *cobra.Command, p *models.Profile) {
	out := cmd.OutOrStdout()
	if p.WeightKg > 0 {
		kv(out, "weight", "%.1f kg", p.WeightKg)
	}
	if p.HeightCm > 0 {
		kv(out, "height", "%.0f cm", p.HeightCm)
	}
	if p.Age > 0 {
		kv(out, "age", "%d", p.Age)
	}
	if p.Sex != "" {
		kv(out, "sex", "%s", p.Sex)
	}
	if p.ActivityLevel != "" {
		kv(out, "activity", "%s", p.ActivityLevel)
	}
	if p.Goal != "" {
		kv(out, "goal", "%s", p.Goal)
	}
	if p.TargetWeightKg != nil {
		kv(out, "target weight", "%.1f kg", *p.TargetWeightKg)
	}
}

func init() {
	f := profileSetCmd.Flags()
	f.Float64Var(&profWeight, "weight", 0, "current weight in kg")
	f.Float64Var(&profHeight, "height", 0, "height in cm")
	f.IntVar(&profAge, "age", 0, "age in years")
	f.StringVar(&profSex, "sex", "", "male, female or other")
	f.StringVar(&profActivity, "activity", "", "sedentary, light, moderate, active or very_active")
	f.StringVar(&profGoal, "goal", "", "lose_weight, maintain, gain_weight or gain_muscle")
	f.Float64Var(&profTarget, "target", 0, "target weight in kg")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}
