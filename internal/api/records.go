// ABOUTME: HTTP handlers for creating, listing and deleting meals and weights.
// ABOUTME: Inputs are validated before anything is written.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/harperreed/nutrition/internal/models"
)

const defaultListLimit = 50

type mealRequest struct {
	Name     string  `json:"name"`
	MealType string  `json:"meal_type"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	EatenAt  string  `json:"eaten_at,omitempty"`
}

type weightRequest struct {
	WeightKg   float64 `json:"weight_kg"`
	RecordedAt string  `json:"recorded_at,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

func (s *Server) listMeals(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", defaultListLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var mealType *models.MealType
	if raw := r.URL.Query().Get("type"); raw != "" {
		if !models.IsValidMealType(raw) {
			s.writeError(w, r, invalid("unknown meal type: %s", raw))
			return
		}
		mt := models.MealType(raw)
		mealType = &mt
	}

	meals, err := s.repo.ListMeals(mealType, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if meals == nil {
		meals = []*models.Meal{}
	}
	writeJSON(w, http.StatusOK, meals)
}

func (s *Server) createMeal(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	m := models.NewMeal(req.Name, models.MealType(req.MealType), req.Calories).
		WithMacros(req.ProteinG, req.CarbsG, req.FatG)
	if req.EatenAt != "" {
		t, err := models.ParseTimestamp(req.EatenAt)
		if err != nil {
			s.writeError(w, r, badRequest{err})
			return
		}
		m.WithEatenAt(t)
	}
	if err := models.ValidateMeal(m); err != nil {
		s.writeError(w, r, badRequest{err})
		return
	}

	if err := s.repo.CreateMeal(m); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) deleteMeal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.repo.DeleteMeal(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) listWeights(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", defaultListLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	weights, err := s.repo.ListWeights(limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if weights == nil {
		weights = []*models.WeightEntry{}
	}
	writeJSON(w, http.StatusOK, weights)
}

func (s *Server) createWeight(w http.ResponseWriter, r *http.Request) {
	var req weightRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := models.ValidateWeight(req.WeightKg); err != nil {
		s.writeError(w, r, badRequest{err})
		return
	}

	entry := models.NewWeightEntry(req.WeightKg)
	if req.RecordedAt != "" {
		t, err := models.ParseTimestamp(req.RecordedAt)
		if err != nil {
			s.writeError(w, r, badRequest{err})
			return
		}
		entry.WithRecordedAt(t)
	}
	if req.Notes != "" {
		entry.WithNotes(req.Notes)
	}

	if err := s.repo.CreateWeight(entry); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) deleteWeight(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.repo.DeleteWeight(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
