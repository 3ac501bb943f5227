// ABOUTME: Weight entry CRUD operations for Charm KV storage.
// ABOUTME: Uses type-prefixed keys and client-side sorting.
package charm

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/storage"
)

// CreateWeight stores a new weight entry in the KV store.
func (c *Client) CreateWeight(w *models.WeightEntry) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal weight: %w", err)
	}
	return c.set(WeightPrefix+w.ID.String(), data)
}

// GetWeight retrieves a weight entry by ID or ID prefix.
func (c *Client) GetWeight(idOrPrefix string) (*models.WeightEntry, error) {
	data, err := c.getByIDPrefix(WeightPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get weight: %w", err)
	}

	w, err := unmarshalJSON[models.WeightEntry](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal weight: %w", err)
	}
	return w, nil
}

// ListWeights retrieves weight entries sorted by RecordedAt descending.
func (c *Client) ListWeights(limit int) ([]*models.WeightEntry, error) {
	allData, err := c.listByPrefix(WeightPrefix)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}

	var weights []*models.WeightEntry
	for _, data := range allData {
		w, err := unmarshalJSON[models.WeightEntry](data)
		if err != nil {
			continue // Skip invalid entries
		}
		weights = append(weights, w)
	}

	sort.Slice(weights, func(i, j int) bool {
		return weights[i].RecordedAt.After(weights[j].RecordedAt)
	})

	if limit > 0 && len(weights) > limit {
		weights = weights[:limit]
	}
	return weights, nil
}

// DeleteWeight removes a weight entry by ID or prefix.
func (c *Client) DeleteWeight(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(WeightPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete weight: %w", err)
	}
	return nil
}

// GetLatestWeight returns the most recently recorded weight entry.
func (c *Client) GetLatestWeight() (*models.WeightEntry, error) {
	weights, err := c.ListWeights(1)
	if err != nil {
		return nil, err
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no weight entries", storage.ErrNotFound)
	}
	return weights[0], nil
}
