package store

import (
	"context"
	"database/sql"
	"fmt"

	"storefront-service/internal/models"
)

// GetSettings retrieves the settings singleton.
func (s *Store) GetSettings(ctx context.Context) (*models.StoreSettings, error) {
	var settings models.StoreSettings
	err := s.db.GetContext(ctx, &settings, "SELECT * FROM store_settings LIMIT 1")
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("store settings not found")
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings writes the editable settings fields.
func (s *Store) UpdateSettings(ctx context.Context, settings *models.StoreSettings) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE store_settings
		SET opening_hours = $1, store_lat = $2, store_lng = $3,
		    delivery_fee = $4, updated_at = NOW()
		WHERE id = $5`,
		settings.OpeningHours, settings.StoreLat, settings.StoreLng,
		settings.DeliveryFee, settings.ID)
	return err
}

// SetStoreOpen flips the manual open/closed override.
func (s *Store) SetStoreOpen(ctx context.Context, id string, open bool) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE store_settings SET is_open = $1, updated_at = NOW() WHERE id = $2", open, id)
	return err
}
