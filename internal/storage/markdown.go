// ABOUTME: MarkdownStore keeps each meal and weight entry in its own markdown file.
// ABOUTME: Records carry YAML frontmatter; the profile lives in profile.md.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/harperreed/nutrition/internal/models"
)

// MarkdownStore provides file-based storage for nutrition data using markdown files.
type MarkdownStore struct {
	dataDir string
}

// Compile-time check that MarkdownStore implements Repository.
var _ Repository = (*MarkdownStore)(nil)

// NewMarkdownStore creates a new markdown-backed store rooted at dataDir.
func NewMarkdownStore(dataDir string) (*MarkdownStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &MarkdownStore{dataDir: dataDir}, nil
}

// Close releases resources. For MarkdownStore this is a no-op.
func (s *MarkdownStore) Close() error {
	return nil
}

func (s *MarkdownStore) mealsDir() string {
	return filepath.Join(s.dataDir, "meals")
}

func (s *MarkdownStore) weightsDir() string {
	return filepath.Join(s.dataDir, "weights")
}

func (s *MarkdownStore) profilePath() string {
	return filepath.Join(s.dataDir, "profile.md")
}

// mealFilePath returns meals/YYYY/MM/YYYY-MM-DD-<type>-<id_prefix>.md.
func (s *MarkdownStore) mealFilePath(m *models.Meal) string {
	t := m.EatenAt.Local()
	return filepath.Join(s.mealsDir(), t.Format("2006"), t.Format("01"),
		fmt.Sprintf("%s-%s-%s.md", t.Format("2006-01-02"), m.MealType, m.ID.String()[:8]))
}

// weightFilePath returns weights/YYYY/MM/YYYY-MM-DD-<id_prefix>.md.
func (s *MarkdownStore) weightFilePath(w *models.WeightEntry) string {
	t := w.RecordedAt.Local()
	return filepath.Join(s.weightsDir(), t.Format("2006"), t.Format("01"),
		fmt.Sprintf("%s-%s.md", t.Format("2006-01-02"), w.ID.String()[:8]))
}

// mealFrontmatter holds the YAML frontmatter of a meal file.
type mealFrontmatter struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	MealType  string  `yaml:"meal_type"`
	Calories  float64 `yaml:"calories"`
	ProteinG  float64 `yaml:"protein_g"`
	CarbsG    float64 `yaml:"carbs_g"`
	FatG      float64 `yaml:"fat_g"`
	EatenAt   string  `yaml:"date"`
	CreatedAt string  `yaml:"created_at"`
}

// weightFrontmatter holds the YAML frontmatter of a weight file.
type weightFrontmatter struct {
	ID         string  `yaml:"id"`
	WeightKg   float64 `yaml:"weight_kg"`
	RecordedAt string  `yaml:"date"`
	CreatedAt  string  `yaml:"created_at"`
}

func mealToFrontmatter(m *models.Meal) mealFrontmatter {
	return mealFrontmatter{
		ID:        m.ID.String(),
		Name:      m.Name,
		MealType:  string(m.MealType),
		Calories:  m.Calories,
		ProteinG:  m.ProteinG,
		CarbsG:    m.CarbsG,
		FatG:      m.FatG,
		EatenAt:   formatFileTime(m.EatenAt),
		CreatedAt: formatFileTime(m.CreatedAt),
	}
}

func mealFromFrontmatter(fm *mealFrontmatter) (*models.Meal, error) {
	id, err := uuid.Parse(fm.ID)
	if err != nil {
		return nil, fmt.Errorf("parse meal ID %q: %w", fm.ID, err)
	}
	eatenAt, err := parseFileTime(fm.EatenAt)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", fm.EatenAt, err)
	}
	createdAt, err := parseFileTime(fm.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", fm.CreatedAt, err)
	}
	return &models.Meal{
		ID:        id,
		Name:      fm.Name,
		Calories:  fm.Calories,
		ProteinG:  fm.ProteinG,
		CarbsG:    fm.CarbsG,
		FatG:      fm.FatG,
		MealType:  models.MealType(fm.MealType),
		EatenAt:   eatenAt,
		CreatedAt: createdAt,
	}, nil
}

func weightToFrontmatter(w *models.WeightEntry) weightFrontmatter {
	return weightFrontmatter{
		ID:         w.ID.String(),
		WeightKg:   w.WeightKg,
		RecordedAt: formatFileTime(w.RecordedAt),
		CreatedAt:  formatFileTime(w.CreatedAt),
	}
}

func weightFromFrontmatter(fm *weightFrontmatter, notes string) (*models.WeightEntry, error) {
	id, err := uuid.Parse(fm.ID)
	if err != nil {
		return nil, fmt.Errorf("parse weight ID %q: %w", fm.ID, err)
	}
	recordedAt, err := parseFileTime(fm.RecordedAt)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", fm.RecordedAt, err)
	}
	createdAt, err := parseFileTime(fm.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", fm.CreatedAt, err)
	}
	w := &models.WeightEntry{
		ID:         id,
		WeightKg:   fm.WeightKg,
		RecordedAt: recordedAt,
		CreatedAt:  createdAt,
	}
	if notes != "" {
		w.Notes = &notes
	}
	return w, nil
}

// readFrontmatterFile decodes the header of path into v and returns the trimmed body.
func readFrontmatterFile(path string, v any) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	header, body := parseFrontmatter(string(data))
	if header == "" {
		return "", fmt.Errorf("no frontmatter in %s", path)
	}
	if err := yaml.Unmarshal([]byte(header), v); err != nil {
		return "", fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}
	return strings.TrimSpace(body), nil
}

func readMealFile(path string) (*models.Meal, error) {
	var fm mealFrontmatter
	if _, err := readFrontmatterFile(path, &fm); err != nil {
		return nil, err
	}
	return mealFromFrontmatter(&fm)
}

func readWeightFile(path string) (*models.WeightEntry, error) {
	var fm weightFrontmatter
	notes, err := readFrontmatterFile(path, &fm)
	if err != nil {
		return nil, err
	}
	return weightFromFrontmatter(&fm, notes)
}

// walkRecords calls fn for every markdown file under dir.
func walkRecords(dir string, fn func(path string) error) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		return fn(path)
	})
}

func (s *MarkdownStore) walkMeals(fn func(path string, m *models.Meal) error) error {
	return walkRecords(s.mealsDir(), func(path string) error {
		m, err := readMealFile(path)
		if err != nil {
			return fmt.Errorf("read meal file %s: %w", path, err)
		}
		return fn(path, m)
	})
}

func (s *MarkdownStore) walkWeights(fn func(path string, w *models.WeightEntry) error) error {
	return walkRecords(s.weightsDir(), func(path string) error {
		w, err := readWeightFile(path)
		if err != nil {
			return fmt.Errorf("read weight file %s: %w", path, err)
		}
		return fn(path, w)
	})
}

// findMealFile finds the file path for a meal by ID or prefix.
func (s *MarkdownStore) findMealFile(idOrPrefix string) (string, *models.Meal, error) {
	paths := make(map[string]string)
	meals := make(map[string]*models.Meal)
	var ids []string

	err := s.walkMeals(func(path string, m *models.Meal) error {
		id := m.ID.String()
		ids = append(ids, id)
		paths[id] = path
		meals[id] = m
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	id, err := ResolveID(idOrPrefix, ids)
	if err != nil {
		return "", nil, err
	}
	return paths[id], meals[id], nil
}

// findWeightFile finds the file path for a weight entry by ID or prefix.
func (s *MarkdownStore) findWeightFile(idOrPrefix string) (string, *models.WeightEntry, error) {
	paths := make(map[string]string)
	weights := make(map[string]*models.WeightEntry)
	var ids []string

	err := s.walkWeights(func(path string, w *models.WeightEntry) error {
		id := w.ID.String()
		ids = append(ids, id)
		paths[id] = path
		weights[id] = w
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	id, err := ResolveID(idOrPrefix, ids)
	if err != nil {
		return "", nil, err
	}
	return paths[id], weights[id], nil
}

// hasRecord reports whether a file under dir already holds the record id.
// File names carry the first 8 characters of the ID, so only those are read.
func hasRecord(dir, id string, readID func(path string) (string, error)) (bool, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*", "*", "*-"+id[:8]+".md"))
	if err != nil {
		return false, err
	}
	for _, path := range matches {
		got, err := readID(path)
		if err != nil {
			return false, fmt.Errorf("read %s: %w", path, err)
		}
		if got == id {
			return true, nil
		}
	}
	return false, nil
}

// --- Repository interface methods ---

// CreateMeal stores a new meal as a markdown file.
func (s *MarkdownStore) CreateMeal(m *models.Meal) error {
	exists, err := hasRecord(s.mealsDir(), m.ID.String(), func(path string) (string, error) {
		got, err := readMealFile(path)
		if err != nil {
			return "", err
		}
		return got.ID.String(), nil
	})
	if err != nil {
		return fmt.Errorf("create meal: %w", err)
	}
	if exists {
		return fmt.Errorf("create meal %s: %w", m.ID, ErrDuplicateID)
	}

	fm := mealToFrontmatter(m)
	content, err := renderFrontmatter(&fm, "")
	if err != nil {
		return fmt.Errorf("render meal file: %w", err)
	}
	return atomicWrite(s.mealFilePath(m), []byte(content))
}

// GetMeal retrieves a meal by ID or ID prefix.
func (s *MarkdownStore) GetMeal(idOrPrefix string) (*models.Meal, error) {
	_, m, err := s.findMealFile(idOrPrefix)
	return m, err
}

// ListMeals retrieves meals with optional filtering by type.
// Results are sorted by EatenAt descending (most recent first).
func (s *MarkdownStore) ListMeals(mealType *models.MealType, limit int) ([]*models.Meal, error) {
	var meals []*models.Meal

	err := s.walkMeals(func(_ string, m *models.Meal) error {
		if mealType != nil && m.MealType != *mealType {
			return nil
		}
		meals = append(meals, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	sort.Slice(meals, func(i, j int) bool {
		return meals[i].EatenAt.After(meals[j].EatenAt)
	})

	if limit > 0 && len(meals) > limit {
		meals = meals[:limit]
	}
	return meals, nil
}

// DeleteMeal removes a meal file by ID or prefix.
func (s *MarkdownStore) DeleteMeal(idOrPrefix string) error {
	path, _, err := s.findMealFile(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete meal file: %w", err)
	}
	return nil
}

// CreateWeight stores a new weight entry as a markdown file with notes as the body.
func (s *MarkdownStore) CreateWeight(w *models.WeightEntry) error {
	exists, err := hasRecord(s.weightsDir(), w.ID.String(), func(path string) (string, error) {
		got, err := readWeightFile(path)
		if err != nil {
			return "", err
		}
		return got.ID.String(), nil
	})
	if err != nil {
		return fmt.Errorf("create weight: %w", err)
	}
	if exists {
		return fmt.Errorf("create weight %s: %w", w.ID, ErrDuplicateID)
	}

	fm := weightToFrontmatter(w)

	body := ""
	if w.Notes != nil && *w.Notes != "" {
		body = "\n" + *w.Notes + "\n"
	}

	content, err := renderFrontmatter(&fm, body)
	if err != nil {
		return fmt.Errorf("render weight file: %w", err)
	}
	return atomicWrite(s.weightFilePath(w), []byte(content))
}

// GetWeight retrieves a weight entry by ID or ID prefix.
func (s *MarkdownStore) GetWeight(idOrPrefix string) (*models.WeightEntry, error) {
	_, w, err := s.findWeightFile(idOrPrefix)
	return w, err
}

// ListWeights retrieves weight entries sorted by RecordedAt descending.
func (s *MarkdownStore) ListWeights(limit int) ([]*models.WeightEntry, error) {
	var weights []*models.WeightEntry

	err := s.walkWeights(func(_ string, w *models.WeightEntry) error {
		weights = append(weights, w)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}

	sort.Slice(weights, func(i, j int) bool {
		return weights[i].RecordedAt.After(weights[j].RecordedAt)
	})

	if limit > 0 && len(weights) > limit {
		weights = weights[:limit]
	}
	return weights, nil
}

// DeleteWeight removes a weight file by ID or prefix.
func (s *MarkdownStore) DeleteWeight(idOrPrefix string) error {
	path, _, err := s.findWeightFile(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete weight: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete weight file: %w", err)
	}
	return nil
}

// GetLatestWeight returns the most recently recorded weight entry.
func (s *MarkdownStore) GetLatestWeight() (*models.WeightEntry, error) {
	weights, err := s.ListWeights(1)
	if err != nil {
		return nil, err
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no weight entries", ErrNotFound)
	}
	return weights[0], nil
}

// GetProfile reads profile.md, returning nil if it does not exist.
func (s *MarkdownStore) GetProfile() (*models.Profile, error) {
	var p models.Profile
	if _, err := readFrontmatterFile(s.profilePath(), &p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// SaveProfile rewrites profile.md.
func (s *MarkdownStore) SaveProfile(p *models.Profile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	content, err := renderFrontmatter(p, "")
	if err != nil {
		return fmt.Errorf("render profile: %w", err)
	}
	return atomicWrite(s.profilePath(), []byte(content))
}

// GetAllData retrieves all data for export.
func (s *MarkdownStore) GetAllData() (*ExportData, error) {
	return CollectAll(s)
}

// ImportData imports data from an export format.
func (s *MarkdownStore) ImportData(data *ExportData) error {
	return ImportAll(s, data)
}
