// ABOUTME: Service answers report queries against a log store with an injected clock.
// ABOUTME: Each call re-reads the store; nothing is cached between calls.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/nutrition/internal/energy"
	"github.com/harperreed/nutrition/internal/eventlog"
	"github.com/harperreed/nutrition/internal/logging"
	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/numeric"
	"github.com/harperreed/nutrition/internal/plan"
	"github.com/harperreed/nutrition/internal/stats"
	"github.com/harperreed/nutrition/internal/streak"
)

// ErrNoTargetWeight is returned when a plan is requested without any target weight.
var ErrNoTargetWeight = errors.New("no target weight: pass one or set it on the profile")

// Store is the read side of the log store the service needs.
type Store interface {
	eventlog.Source
	GetProfile() (*models.Profile, error)
}

// Service runs report queries against a Store.
type Service struct {
	store  Store
	now    func() time.Time
	logger *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger used for per-query debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service over store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now, logger: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current time from the service clock.
func (s *Service) Today() time.Time {
	return s.now()
}

func (s *Service) load() (*eventlog.Log, error) {
	l, err := eventlog.Load(s.store)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded event log", "meals", len(l.Meals), "weights", len(l.Weights))
	return l, nil
}

func (s *Service) profile() (*models.Profile, error) {
	p, err := s.store.GetProfile()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GoalsReport carries derived goals and whether the profile allowed computing them.
type GoalsReport struct {
	Complete bool            `json:"complete"`
	Profile  *models.Profile `json:"profile,omitempty"`
	Goals    *energy.Goals   `json:"goals,omitempty"`
}

// Goals derives goals from the stored profile.
func (s *Service) Goals() (*GoalsReport, error) {
	p, err := s.profile()
	if err != nil {
		return nil, err
	}
	g, ok := UserGoals(p)
	s.logger.Debug("computed goals", "complete", ok)
	if !ok {
		return &GoalsReport{Complete: false, Profile: p}, nil
	}
	return &GoalsReport{Complete: true, Profile: p, Goals: &g}, nil
}

// Plans projects weight plans from the latest weight toward target. A nil
// target uses the profile's target weight. The current weight is the latest
// weight entry, else the profile weight.
func (s *Service) Plans(target *float64) (*plan.Projection, error) {
	p, err := s.profile()
	if err != nil {
		return nil, err
	}
	g, ok := UserGoals(p)
	if !ok {
		return nil, energy.ErrIncompleteProfile
	}
	if target == nil {
		target = p.TargetWeightKg
	}
	if target == nil {
		return nil, ErrNoTargetWeight
	}

	weights, err := s.store.ListWeights(0)
	if err != nil {
		return nil, fmt.Errorf("failed to load weights: %w", err)
	}
	current := p.WeightKg
	if latest := eventlog.LatestWeight(weights); latest != nil {
		current = latest.WeightKg
	}

	proj := WeightPlans(current, *target, g.TDEE, p.Sex, s.now())
	s.logger.Debug("projected plans", "current", current, "target", *target, "recommended", proj.Recommended.HorizonMonths)
	return &proj, nil
}

// StreakReport summarizes logging adherence.
type StreakReport struct {
	Current   int               `json:"current"`
	Longest   int               `json:"longest"`
	HasToday  bool              `json:"has_today"`
	Milestone *streak.Milestone `json:"milestone,omitempty"`
	Next      *streak.Milestone `json:"next_milestone,omitempty"`
}

// Streak computes the current and longest streaks.
func (s *Service) Streak() (*StreakReport, error) {
	l, err := s.load()
	if err != nil {
		return nil, err
	}
	return streakReport(eventlog.AggregateAll(l.Meals), s.now()), nil
}

func streakReport(days []eventlog.DailyAggregate, today time.Time) *StreakReport {
	r := &StreakReport{
		Current:  streak.Current(days, today),
		Longest:  streak.Longest(days),
		HasToday: streak.HasToday(days, today),
	}
	if m, ok := streak.MilestoneFor(r.Current); ok {
		r.Milestone = &m
	}
	if m, ok := streak.NextMilestone(r.Current); ok {
		r.Next = &m
	}
	return r
}

// Period summarizes meals eaten within [from, to].
func (s *Service) Period(from, to time.Time) (stats.PeriodStats, error) {
	l, err := s.load()
	if err != nil {
		return stats.PeriodStats{}, err
	}
	return PeriodStats(l, from, to), nil
}

// LastDays summarizes the trailing window of days.
func (s *Service) LastDays(days int) (stats.PeriodStats, error) {
	from, to := eventlog.TrailingWindow(s.now(), days)
	return s.Period(from, to)
}

// Week summarizes the trailing 7 days.
func (s *Service) Week() (stats.PeriodStats, error) {
	return s.LastDays(stats.WeekDays)
}

// Month summarizes the trailing 30 days.
func (s *Service) Month() (stats.PeriodStats, error) {
	return s.LastDays(stats.MonthDays)
}

// Trend classifies calories over the trailing window of days.
func (s *Service) Trend(days int) (stats.Trend, error) {
	l, err := s.load()
	if err != nil {
		return stats.Trend{}, err
	}
	return CalorieTrend(l, days, s.now()), nil
}

// MealTypes counts meals by type over the trailing window of days.
func (s *Service) MealTypes(days int) (stats.MealTypeCounts, error) {
	l, err := s.load()
	if err != nil {
		return stats.MealTypeCounts{}, err
	}
	return MealTypeDistribution(l, days, s.now()), nil
}

// Buckets groups the trailing window of days into calendar buckets.
func (s *Service) Buckets(days int, g stats.Granularity) ([]stats.Bucket, error) {
	l, err := s.load()
	if err != nil {
		return nil, err
	}
	from, to := eventlog.TrailingWindow(s.now(), days)
	return stats.Buckets(eventlog.DailyAggregates(l.Meals, from, to), g), nil
}

// WeightReport summarizes weight history.
type WeightReport struct {
	stats.WeightStats
	WeeklyChangeKg float64 `json:"average_weekly_change_kg"`
}

// Weight summarizes the recorded weight history.
func (s *Service) Weight() (*WeightReport, error) {
	l, err := s.load()
	if err != nil {
		return nil, err
	}
	return &WeightReport{
		WeightStats:    stats.WeightChange(l.Weights),
		WeeklyChangeKg: stats.AverageWeeklyWeightChange(l.Weights),
	}, nil
}

// DayReport is one calendar day's intake against the calorie target.
type DayReport struct {
	Date              time.Time               `json:"date"`
	Totals            eventlog.DailyAggregate `json:"totals"`
	Meals             []*models.Meal          `json:"meals"`
	TargetCalories    int                     `json:"target_calories,omitempty"`
	RemainingCalories int                     `json:"remaining_calories"`
	Macros            stats.MacroShare        `json:"macro_share"`
}

// Day reports intake for the calendar day containing the current time.
func (s *Service) Day() (*DayReport, error) {
	l, err := s.load()
	if err != nil {
		return nil, err
	}
	p, err := s.profile()
	if err != nil {
		return nil, err
	}
	var target int
	if g, ok := UserGoals(p); ok {
		target = g.TargetCalories
	}
	return dayReport(l, s.now(), target), nil
}

func dayReport(l *eventlog.Log, today time.Time, target int) *DayReport {
	start := eventlog.Day(today)
	end := eventlog.EndOfDay(today)
	meals := eventlog.MealsInRange(l.Meals, start, end)

	totals := eventlog.DailyAggregate{Date: start}
	if days := eventlog.DailyAggregates(meals, start, end); len(days) == 1 {
		totals = days[0]
	}

	r := &DayReport{
		Date:           start,
		Totals:         totals,
		Meals:          meals,
		TargetCalories: target,
		Macros:         stats.MacroDistribution(totals.ProteinG, totals.CarbsG, totals.FatG),
	}
	if target > 0 {
		r.RemainingCalories = max(0, numeric.Round(float64(target)-totals.Calories))
	}
	return r
}

// Dashboard bundles the headline reports over a trailing window of days.
type Dashboard struct {
	Goals      *GoalsReport         `json:"goals"`
	Today      *DayReport           `json:"today"`
	Streak     *StreakReport        `json:"streak"`
	Period     stats.PeriodStats    `json:"period"`
	Averages   stats.Averages       `json:"averages"`
	Trend      stats.Trend          `json:"trend"`
	MealTypes  stats.MealTypeCounts `json:"meal_types"`
	Macros     stats.MacroShare     `json:"macro_share"`
	BestDay    *stats.DayCalories   `json:"best_day,omitempty"`
	WorstDay   *stats.DayCalories   `json:"worst_day,omitempty"`
	Weight     *WeightReport        `json:"weight"`
	WindowDays int                  `json:"window_days"`
}

// Dashboard computes every headline report from one load of the event log.
func (s *Service) Dashboard(days int) (*Dashboard, error) {
	goals, err := s.Goals()
	if err != nil {
		return nil, err
	}
	l, err := s.load()
	if err != nil {
		return nil, err
	}
	today := s.now()
	from, to := eventlog.TrailingWindow(today, days)
	window := eventlog.DailyAggregates(l.Meals, from, to)
	period := stats.Summarize(window)

	var target int
	if goals.Goals != nil {
		target = goals.Goals.TargetCalories
	}

	d := &Dashboard{
		Goals:      goals,
		Today:      dayReport(l, today, target),
		Streak:     streakReport(eventlog.AggregateAll(l.Meals), today),
		Period:     period,
		Averages:   stats.AverageNutrition(l.Meals, days, today),
		Trend:      stats.CalorieTrend(window),
		MealTypes:  stats.MealTypeDistribution(l.Meals, days, today),
		Macros:     stats.MacroDistribution(period.TotalProtein, period.TotalCarbs, period.TotalFat),
		WindowDays: days,
		Weight: &WeightReport{
			WeightStats:    stats.WeightChange(weightsOf(l)),
			WeeklyChangeKg: stats.AverageWeeklyWeightChange(weightsOf(l)),
		},
	}
	if target > 0 {
		d.BestDay, d.WorstDay = stats.BestAndWorstDays(window, target)
	}
	s.logger.Debug("built dashboard", "days", days, "tracked", period.DaysTracked)
	return d, nil
}
