// ABOUTME: Profile storage and bulk export/import for Charm KV.
// ABOUTME: The profile lives under a single fixed key.
package charm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/nutrition/internal/models"
	"github.com/harperreed/nutrition/internal/storage"
)

// GetProfile returns the stored profile, or nil if none has been saved.
func (c *Client) GetProfile() (*models.Profile, error) {
	data, err := c.get(ProfileKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	p, err := unmarshalJSON[models.Profile](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return p, nil
}

// SaveProfile replaces the stored profile.
func (c *Client) SaveProfile(p *models.Profile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return c.set(ProfileKey, data)
}

// GetAllData retrieves all data for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	return storage.CollectAll(c)
}

// ImportData imports data from an export format. Auto-sync is paused during
// the import and a single sync runs at the end.
func (c *Client) ImportData(data *storage.ExportData) error {
	c.mu.Lock()
	prev := c.autoSync
	c.autoSync = false
	c.mu.Unlock()

	err := storage.ImportAll(c, data)

	c.mu.Lock()
	c.autoSync = prev
	c.mu.Unlock()

	if err != nil {
		return err
	}
	if prev {
		return c.Sync()
	}
	return nil
}
