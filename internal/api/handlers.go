// ABOUTME: HTTP handlers for profile, goals, plans, streak and statistics endpoints.
// ABOUTME: Every handler reads through the report Service so results match the CLI and MCP.
package api

import (
	"errors"
	"net/http"

	"github.com/harperreed/nutrition/internal/energy"
	"github.com/harperreed/nutrition/internal/eventlog"
	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/report"
	"github.com/harperreed/nutrition/internal/stats"
)

var incomplete = map[string]any{
	"complete": false,
	"message":  "profile is incomplete: weight, height, age and sex are required",
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.repo.GetProfile()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"complete": p.IsComplete(),
		"profile":  p,
	})
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	var update models.ProfileUpdate
	if err := decodeBody(r, &update); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.repo.GetProfile()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p = update.Apply(p)
	if err := models.ValidateProfile(p); err != nil {
		s.writeError(w, r, badRequest{err})
		return
	}

	p.UpdatedAt = s.now()
	if err := s.repo.SaveProfile(p); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"complete": p.IsComplete(),
		"profile":  p,
	})
}

func (s *Server) getGoals(w http.ResponseWriter, r *http.Request) {
	g, err := s.svc.Goals()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) getPlans(w http.ResponseWriter, r *http.Request) {
	target, err := floatParam(r, "target")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if target != nil {
		if err := models.ValidateWeight(*target); err != nil {
			s.writeError(w, r, badRequest{err})
			return
		}
	}

	proj, err := s.svc.Plans(target)
	if errors.Is(err, energy.ErrIncompleteProfile) {
		writeJSON(w, http.StatusOK, incomplete)
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) getStreak(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Streak()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) getToday(w http.ResponseWriter, r *http.Request) {
	day, err := s.svc.Day()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", stats.WeekDays)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	dash, err := s.svc.Dashboard(days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// getStats summarizes an inclusive from/to date range, or the last ?days= days.
func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fromStr, toStr := q.Get("from"), q.Get("to")

	if fromStr == "" && toStr == "" {
		days, err := intParam(r, "days", stats.WeekDays)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writePeriod(w, r, func() (stats.PeriodStats, error) { return s.svc.LastDays(days) })
		return
	}

	if fromStr == "" || toStr == "" {
		s.writeError(w, r, invalid("both from and to are required"))
		return
	}
	from, err := models.ParseDate(fromStr)
	if err != nil {
		s.writeError(w, r, badRequest{err})
		return
	}
	to, err := models.ParseDate(toStr)
	if err != nil {
		s.writeError(w, r, badRequest{err})
		return
	}
	if to.Before(from) {
		s.writeError(w, r, invalid("to (%s) is before from (%s)", toStr, fromStr))
		return
	}
	s.writePeriod(w, r, func() (stats.PeriodStats, error) { return s.svc.Period(from, eventlog.EndOfDay(to)) })
}

func (s *Server) getWeekStats(w http.ResponseWriter, r *http.Request) {
	s.writePeriod(w, r, s.svc.Week)
}

func (s *Server) getMonthStats(w http.ResponseWriter, r *http.Request) {
	s.writePeriod(w, r, s.svc.Month)
}

func (s *Server) writePeriod(w http.ResponseWriter, r *http.Request, fn func() (stats.PeriodStats, error)) {
	ps, err := fn()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (s *Server) getBuckets(w http.ResponseWriter, r *http.Request) {
	by := r.URL.Query().Get("by")
	if by == "" {
		by = string(stats.ByWeek)
	}
	g, err := stats.ParseGranularity(by)
	if err != nil {
		s.writeError(w, r, badRequest{err})
		return
	}
	days, err := intParam(r, "days", stats.MonthDays)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	buckets, err := s.svc.Buckets(days, g)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"by":      g,
		"days":    days,
		"buckets": buckets,
	})
}

func (s *Server) getTrend(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", stats.WeekDays)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tr, err := s.svc.Trend(days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

func (s *Server) getMealTypes(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", stats.MonthDays)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	counts, err := s.svc.MealTypes(days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"counts": counts,
		"total":  counts.Total(),
	})
}

// getMacros reports the energy split of the given grams, or of the last ?days= days
// when no grams are passed.
func (s *Server) getMacros(w http.ResponseWriter, r *http.Request) {
	var grams [3]float64
	given := false
	for i, name := range []string{"protein", "carbs", "fat"} {
		v, err := floatParam(r, name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if v == nil {
			continue
		}
		if *v < 0 {
			s.writeError(w, r, invalid("%s must be >= 0", name))
			return
		}
		grams[i] = *v
		given = true
	}

	if given {
		writeJSON(w, http.StatusOK, report.MacroDistribution(grams[0], grams[1], grams[2]))
		return
	}

	days, err := intParam(r, "days", stats.WeekDays)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ps, err := s.svc.LastDays(days)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report.MacroDistribution(ps.TotalProtein, ps.TotalCarbs, ps.TotalFat))
}

func (s *Server) getWeightStats(w http.ResponseWriter, r *http.Request) {
	ws, err := s.svc.Weight()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}
