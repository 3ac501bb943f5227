// ABOUTME: Export and import functionality for nutrition data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any Repository.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/nutrition/internal/models"
)

// ExportVersion is the current export format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for nutrition data.
type ExportData struct {
	Version    string                `json:"version" yaml:"version"`
	ExportedAt time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool       string                `json:"tool" yaml:"tool"`
	Profile    *models.Profile       `json:"profile,omitempty" yaml:"profile,omitempty"`
	Meals      []*models.Meal        `json:"meals" yaml:"meals"`
	Weights    []*models.WeightEntry `json:"weights" yaml:"weights"`
}

// CollectAll gathers every record from repo into an ExportData.
func CollectAll(repo Repository) (*ExportData, error) {
	profile, err := repo.GetProfile()
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	meals, err := repo.ListMeals(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	weights, err := repo.ListWeights(0)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "nutrition",
		Profile:    profile,
		Meals:      meals,
		Weights:    weights,
	}, nil
}

// ImportAll writes every record in data into repo.
func ImportAll(repo Repository, data *ExportData) error {
	if data.Profile != nil {
		if err := repo.SaveProfile(data.Profile); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
	}

	for _, m := range data.Meals {
		if err := repo.CreateMeal(m); err != nil {
			return fmt.Errorf("import meal: %w", err)
		}
	}

	for _, w := range data.Weights {
		if err := repo.CreateWeight(w); err != nil {
			return fmt.Errorf("import weight: %w", err)
		}
	}

	return nil
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	return CollectAll(d)
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	return ImportAll(d, data)
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML with meals grouped by meal type.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                `yaml:"version"`
		ExportedAt string                `yaml:"exported_at"`
		Tool       string                `yaml:"tool"`
		Profile    *models.Profile       `yaml:"profile,omitempty"`
		Meals      map[string][]yamlMeal `yaml:"meals"`
		Weights    []yamlWeight          `yaml:"weights"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Profile:    data.Profile,
		Meals:      make(map[string][]yamlMeal),
		Weights:    make([]yamlWeight, 0, len(data.Weights)),
	}

	for _, m := range data.Meals {
		mt := string(m.MealType)
		yamlData.Meals[mt] = append(yamlData.Meals[mt], yamlMeal{
			ID:       m.ID.String()[:8],
			Name:     m.Name,
			Calories: m.Calories,
			ProteinG: m.ProteinG,
			CarbsG:   m.CarbsG,
			FatG:     m.FatG,
			EatenAt:  m.EatenAt.Format(time.RFC3339),
		})
	}

	for _, w := range data.Weights {
		yw := yamlWeight{
			ID:         w.ID.String()[:8],
			WeightKg:   w.WeightKg,
			RecordedAt: w.RecordedAt.Format(time.RFC3339),
		}
		if w.Notes != nil {
			yw.Notes = *w.Notes
		}
		yamlData.Weights = append(yamlData.Weights, yw)
	}

	return yaml.Marshal(yamlData)
}

type yamlMeal struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Calories float64 `yaml:"calories"`
	ProteinG float64 `yaml:"protein_g"`
	CarbsG   float64 `yaml:"carbs_g"`
	FatG     float64 `yaml:"fat_g"`
	EatenAt  string  `yaml:"eaten_at"`
}

type yamlWeight struct {
	ID         string  `yaml:"id"`
	WeightKg   float64 `yaml:"weight_kg"`
	RecordedAt string  `yaml:"recorded_at"`
	Notes      string  `yaml:"notes,omitempty"`
}

// ExportMarkdown exports data as Markdown tables. A meal type limits the
// export to that type's meals; since drops records older than the given time.
func ExportMarkdown(repo Repository, mealType *models.MealType, since *time.Time) (string, error) {
	meals, err := repo.ListMeals(mealType, 0)
	if err != nil {
		return "", err
	}

	var weights []*models.WeightEntry
	if mealType == nil {
		weights, err = repo.ListWeights(0)
		if err != nil {
			return "", err
		}
	}

	if since != nil {
		var kept []*models.Meal
		for _, m := range meals {
			if !m.EatenAt.Before(*since) {
				kept = append(kept, m)
			}
		}
		meals = kept

		var keptWeights []*models.WeightEntry
		for _, w := range weights {
			if !w.RecordedAt.Before(*since) {
				keptWeights = append(keptWeights, w)
			}
		}
		weights = keptWeights
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Nutrition Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	grouped := make(map[models.MealType][]*models.Meal)
	for _, m := range meals {
		grouped[m.MealType] = append(grouped[m.MealType], m)
	}

	for _, mt := range models.AllMealTypes {
		group := grouped[mt]
		if len(group) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", mt))
		sb.WriteString("| Date | Name | Calories | Protein | Carbs | Fat |\n")
		sb.WriteString("|------|------|----------|---------|-------|-----|\n")
		for _, m := range group {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.0f kcal | %.1f g | %.1f g | %.1f g |\n",
				m.EatenAt.Format("2006-01-02 15:04"),
				m.Name, m.Calories, m.ProteinG, m.CarbsG, m.FatG))
		}
		sb.WriteString("\n")
	}

	if len(weights) > 0 {
		sb.WriteString("## Weight\n\n")
		sb.WriteString("| Date | Weight | Notes |\n")
		sb.WriteString("|------|--------|-------|\n")
		for _, w := range weights {
			notes := ""
			if w.Notes != nil {
				notes = *w.Notes
			}
			sb.WriteString(fmt.Sprintf("| %s | %.1f kg | %s |\n",
				w.RecordedAt.Format("2006-01-02 15:04"), w.WeightKg, notes))
		}
	}

	return sb.String(), nil
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(repo Repository, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return repo.ImportData(&exportData)
}
