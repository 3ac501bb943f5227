// ABOUTME: MCP tool implementations for the nutrition log.
// ABOUTME: Provides meal/weight/profile CRUD plus goal, plan, streak and statistics reports.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/nutrition/internal/energy"
	"github.com/harperreed/nutrition/internal/eventlog"
	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/report"
	"github.com/harperreed/nutrition/internal/stats"
)

const defaultListLimit = 20

func (s *Server) registerTools() {
	// add_meal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_meal",
		Description: "Log a meal with calories and optional macros",
	}, s.handleAddMeal)

	// list_meals
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_meals",
		Description: "List recent meals, optionally filtered by meal type",
	}, s.handleListMeals)

	// delete_meal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_meal",
		Description: "Delete a meal by ID or ID prefix",
	}, s.handleDeleteMeal)

	// add_weight
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_weight",
		Description: "Record a body weight measurement in kilograms",
	}, s.handleAddWeight)

	// list_weights
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_weights",
		Description: "List recent weight entries",
	}, s.handleListWeights)

	// delete_weight
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_weight",
		Description: "Delete a weight entry by ID or ID prefix",
	}, s.handleDeleteWeight)

	// set_profile
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_profile",
		Description: "Update profile fields used for goal calculation; omitted fields keep their value",
	}, s.handleSetProfile)

	// get_profile
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_profile",
		Description: "Get the stored profile",
	}, s.handleGetProfile)

	// get_user_goals
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_user_goals",
		Description: "Get BMR, TDEE, daily calorie target and macro split derived from the profile",
	}, s.handleGetUserGoals)

	// get_weight_plans
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_weight_plans",
		Description: "Project 1, 3, 6 and 12 month plans toward a target weight",
	}, s.handleGetWeightPlans)

	// get_streak
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_streak",
		Description: "Get the current and longest streak of consecutive days with a logged meal",
	}, s.handleGetStreak)

	// get_period_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_period_stats",
		Description: "Summarize intake over a date range or the last N days",
	}, s.handleGetPeriodStats)

	// get_calorie_trend
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_calorie_trend",
		Description: "Classify daily calories over the last N days as increasing, decreasing or stable",
	}, s.handleGetCalorieTrend)

	// get_meal_type_distribution
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_meal_type_distribution",
		Description: "Count meals by meal type over the last N days",
	}, s.handleGetMealTypeDistribution)

	// get_macro_distribution
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_macro_distribution",
		Description: "Percentage of energy from protein, carbs and fat for given grams or the last N days",
	}, s.handleGetMacroDistribution)

	// get_weight_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_weight_stats",
		Description: "Summarize weight change and trend across all weight entries",
	}, s.handleGetWeightStats)
}

// Tool input/output types

type addMealInput struct {
	Name     string  `json:"name" jsonschema:"Name of the meal"`
	MealType string  `json:"meal_type" jsonschema:"Meal type: breakfast, lunch, dinner or snack"`
	Calories float64 `json:"calories" jsonschema:"Energy in kcal"`
	ProteinG float64 `json:"protein_g,omitempty" jsonschema:"Protein in grams"`
	CarbsG   float64 `json:"carbs_g,omitempty" jsonschema:"Carbohydrates in grams"`
	FatG     float64 `json:"fat_g,omitempty" jsonschema:"Fat in grams"`
	EatenAt  string  `json:"eaten_at,omitempty" jsonschema:"Timestamp (ISO 8601 or YYYY-MM-DD HH:MM), defaults to now"`
}

type mealOutput struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	MealType string  `json:"meal_type"`
	Calories float64 `json:"calories"`
	Message  string  `json:"message"`
}

type listMealsInput struct {
	MealType string `json:"meal_type,omitempty" jsonschema:"Filter by meal type"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"Record ID or prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type addWeightInput struct {
	WeightKg   float64 `json:"weight_kg" jsonschema:"Body weight in kilograms"`
	RecordedAt string  `json:"recorded_at,omitempty" jsonschema:"Timestamp (ISO 8601 or YYYY-MM-DD HH:MM), defaults to now"`
	Notes      string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type weightOutput struct {
	ID       string  `json:"id"`
	WeightKg float64 `json:"weight_kg"`
	Message  string  `json:"message"`
}

type listWeightsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type setProfileInput struct {
	WeightKg       float64  `json:"weight_kg,omitempty" jsonschema:"Current weight in kilograms"`
	HeightCm       float64  `json:"height_cm,omitempty" jsonschema:"Height in centimeters"`
	Age            int      `json:"age,omitempty" jsonschema:"Age in years"`
	Sex            string   `json:"sex,omitempty" jsonschema:"male, female or other"`
	ActivityLevel  string   `json:"activity_level,omitempty" jsonschema:"sedentary, light, moderate, active or very_active"`
	Goal           string   `json:"goal,omitempty" jsonschema:"lose_weight, maintain, gain_weight or gain_muscle"`
	TargetWeightKg *float64 `json:"target_weight_kg,omitempty" jsonschema:"Target weight in kilograms"`
}

// update converts the non-zero fields into a partial profile edit.
func (in setProfileInput) update() models.ProfileUpdate {
	var u models.ProfileUpdate
	if in.WeightKg != 0 {
		u.WeightKg = &in.WeightKg
	}
	if in.HeightCm != 0 {
		u.HeightCm = &in.HeightCm
	}
	if in.Age != 0 {
		u.Age = &in.Age
	}
	if in.Sex != "" {
		sex := models.Sex(in.Sex)
		u.Sex = &sex
	}
	if in.ActivityLevel != "" {
		level := models.ActivityLevel(in.ActivityLevel)
		u.ActivityLevel = &level
	}
	if in.Goal != "" {
		goal := models.Goal(in.Goal)
		u.Goal = &goal
	}
	u.TargetWeightKg = in.TargetWeightKg
	return u
}

type emptyInput struct{}

type weightPlansInput struct {
	TargetWeightKg *float64 `json:"target_weight_kg,omitempty" jsonschema:"Target weight in kilograms, defaults to the profile target"`
}

type periodStatsInput struct {
	Days int    `json:"days,omitempty" jsonschema:"Trailing window in days (default 7), ignored when from and to are set"`
	From string `json:"from,omitempty" jsonschema:"First day YYYY-MM-DD"`
	To   string `json:"to,omitempty" jsonschema:"Last day YYYY-MM-DD"`
}

type daysInput struct {
	Days int `json:"days,omitempty" jsonschema:"Trailing window in days"`
}

type macroDistributionInput struct {
	ProteinG *float64 `json:"protein_g,omitempty" jsonschema:"Protein grams; when no grams are given the last N days are used"`
	CarbsG   *float64 `json:"carbs_g,omitempty" jsonschema:"Carbohydrate grams"`
	FatG     *float64 `json:"fat_g,omitempty" jsonschema:"Fat grams"`
	Days     int      `json:"days,omitempty" jsonschema:"Trailing window in days (default 7)"`
}

// Tool handlers

func (s *Server) handleAddMeal(ctx context.Context, req *mcp.CallToolRequest, input addMealInput) (*mcp.CallToolResult, mealOutput, error) {
	m := models.NewMeal(input.Name, models.MealType(input.MealType), input.Calories).
		WithMacros(input.ProteinG, input.CarbsG, input.FatG)

	if input.EatenAt != "" {
		t, err := models.ParseTimestamp(input.EatenAt)
		if err != nil {
			return nil, mealOutput{}, err
		}
		m.WithEatenAt(t)
	}

	if err := models.ValidateMeal(m); err != nil {
		return nil, mealOutput{}, err
	}

	if err := s.repo.CreateMeal(m); err != nil {
		return nil, mealOutput{}, fmt.Errorf("failed to create meal: %w", err)
	}
	s.logger.Debug("added meal", "id", m.ID.String()[:8], "type", m.MealType, "calories", m.Calories)

	return nil, mealOutput{
		ID:       m.ID.String()[:8],
		Name:     m.Name,
		MealType: input.MealType,
		Calories: m.Calories,
		Message:  fmt.Sprintf("Added %s: %s, %.0f kcal (ID: %s)", input.MealType, m.Name, m.Calories, m.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListMeals(ctx context.Context, req *mcp.CallToolRequest, input listMealsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}

	var mealType *models.MealType
	if input.MealType != "" {
		if !models.IsValidMealType(input.MealType) {
			return nil, nil, fmt.Errorf("unknown meal type: %s", input.MealType)
		}
		mt := models.MealType(input.MealType)
		mealType = &mt
	}

	meals, err := s.repo.ListMeals(mealType, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list meals: %w", err)
	}

	if len(meals) == 0 {
		return nil, map[string]any{"message": "No meals found."}, nil
	}

	return nil, meals, nil
}

func (s *Server) handleDeleteMeal(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteMeal(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete meal: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted meal: %s", input.ID),
	}, nil
}

func (s *Server) handleAddWeight(ctx context.Context, req *mcp.CallToolRequest, input addWeightInput) (*mcp.CallToolResult, weightOutput, error) {
	if err := models.ValidateWeight(input.WeightKg); err != nil {
		return nil, weightOutput{}, err
	}

	w := models.NewWeightEntry(input.WeightKg)
	if input.RecordedAt != "" {
		t, err := models.ParseTimestamp(input.RecordedAt)
		if err != nil {
			return nil, weightOutput{}, err
		}
		w.WithRecordedAt(t)
	}
	if input.Notes != "" {
		w.WithNotes(input.Notes)
	}

	if err := s.repo.CreateWeight(w); err != nil {
		return nil, weightOutput{}, fmt.Errorf("failed to create weight: %w", err)
	}
	s.logger.Debug("added weight", "id", w.ID.String()[:8], "kg", w.WeightKg)

	return nil, weightOutput{
		ID:       w.ID.String()[:8],
		WeightKg: w.WeightKg,
		Message:  fmt.Sprintf("Recorded %.1f kg (ID: %s)", w.WeightKg, w.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListWeights(ctx context.Context, req *mcp.CallToolRequest, input listWeightsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}

	weights, err := s.repo.ListWeights(input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list weights: %w", err)
	}

	if len(weights) == 0 {
		return nil, map[string]any{"message": "No weight entries found."}, nil
	}

	return nil, weights, nil
}

func (s *Server) handleDeleteWeight(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteWeight(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete weight: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted weight entry: %s", input.ID),
	}, nil
}

func (s *Server) handleSetProfile(ctx context.Context, req *mcp.CallToolRequest, input setProfileInput) (*mcp.CallToolResult, any, error) {
	p, err := s.repo.GetProfile()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p = input.update().Apply(p)

	if err := models.ValidateProfile(p); err != nil {
		return nil, nil, err
	}

	p.UpdatedAt = s.now()
	if err := s.repo.SaveProfile(p); err != nil {
		return nil, nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return nil, map[string]any{
		"profile":  p,
		"complete": p.IsComplete(),
		"message":  "Profile updated.",
	}, nil
}

func (s *Server) handleGetProfile(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	p, err := s.repo.GetProfile()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if p == nil {
		return nil, map[string]any{"message": "No profile set. Use set_profile first."}, nil
	}
	return nil, p, nil
}

func (s *Server) handleGetUserGoals(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	goals, err := s.svc.Goals()
	if err != nil {
		return nil, nil, err
	}
	return nil, goals, nil
}

func (s *Server) handleGetWeightPlans(ctx context.Context, req *mcp.CallToolRequest, input weightPlansInput) (*mcp.CallToolResult, any, error) {
	if input.TargetWeightKg != nil {
		if err := models.ValidateWeight(*input.TargetWeightKg); err != nil {
			return nil, nil, fmt.Errorf("target %w", err)
		}
	}

	proj, err := s.svc.Plans(input.TargetWeightKg)
	if errors.Is(err, energy.ErrIncompleteProfile) {
		return nil, map[string]any{
			"complete": false,
			"message":  "Profile is incomplete: weight, height, age and sex are required.",
		}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return nil, proj, nil
}

func (s *Server) handleGetStreak(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	r, err := s.svc.Streak()
	if err != nil {
		return nil, nil, err
	}
	return nil, r, nil
}

func (s *Server) handleGetPeriodStats(ctx context.Context, req *mcp.CallToolRequest, input periodStatsInput) (*mcp.CallToolResult, any, error) {
	if input.From != "" || input.To != "" {
		from, to, err := parseRange(input.From, input.To)
		if err != nil {
			return nil, nil, err
		}
		ps, err := s.svc.Period(from, to)
		if err != nil {
			return nil, nil, err
		}
		return nil, ps, nil
	}

	ps, err := s.svc.LastDays(orDefault(input.Days, stats.WeekDays))
	if err != nil {
		return nil, nil, err
	}
	return nil, ps, nil
}

func (s *Server) handleGetCalorieTrend(ctx context.Context, req *mcp.CallToolRequest, input daysInput) (*mcp.CallToolResult, any, error) {
	tr, err := s.svc.Trend(orDefault(input.Days, stats.WeekDays))
	if err != nil {
		return nil, nil, err
	}
	return nil, tr, nil
}

func (s *Server) handleGetMealTypeDistribution(ctx context.Context, req *mcp.CallToolRequest, input daysInput) (*mcp.CallToolResult, any, error) {
	counts, err := s.svc.MealTypes(orDefault(input.Days, stats.MonthDays))
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]any{
		"counts": counts,
		"total":  counts.Total(),
	}, nil
}

func (s *Server) handleGetMacroDistribution(ctx context.Context, req *mcp.CallToolRequest, input macroDistributionInput) (*mcp.CallToolResult, any, error) {
	if input.ProteinG != nil || input.CarbsG != nil || input.FatG != nil {
		p, c, f := deref(input.ProteinG), deref(input.CarbsG), deref(input.FatG)
		if p < 0 || c < 0 || f < 0 {
			return nil, nil, fmt.Errorf("macro grams must be >= 0")
		}
		return nil, report.MacroDistribution(p, c, f), nil
	}

	ps, err := s.svc.LastDays(orDefault(input.Days, stats.WeekDays))
	if err != nil {
		return nil, nil, err
	}
	return nil, report.MacroDistribution(ps.TotalProtein, ps.TotalCarbs, ps.TotalFat), nil
}

func (s *Server) handleGetWeightStats(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	r, err := s.svc.Weight()
	if err != nil {
		return nil, nil, err
	}
	return nil, r, nil
}

// parseRange parses an inclusive YYYY-MM-DD range; both ends are required.
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("both from and to are required")
	}
	from, err := models.ParseDate(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := models.ParseDate(toStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to (%s) is before from (%s)", toStr, fromStr)
	}
	return from, eventlog.EndOfDay(to), nil
}

func orDefault(days, def int) int {
	if days <= 0 {
		return def
	}
	return days
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
