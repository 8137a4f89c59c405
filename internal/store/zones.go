package store

import (
	"context"
	"fmt"

	"storefront-service/internal/models"

	"github.com/google/uuid"
)

// GetActiveZones retrieves active delivery zones ordered by min_distance,
// the order the fee resolver depends on.
func (s *Store) GetActiveZones(ctx context.Context) ([]models.DeliveryZone, error) {
	var zones []models.DeliveryZone
	err := s.db.SelectContext(ctx, &zones,
		"SELECT * FROM delivery_zones WHERE active ORDER BY min_distance")
	return zones, err
}

// ListZones retrieves all delivery zones for the admin panel.
func (s *Store) ListZones(ctx context.Context) ([]models.DeliveryZone, error) {
	var zones []models.DeliveryZone
	err := s.db.SelectContext(ctx, &zones,
		"SELECT * FROM delivery_zones ORDER BY min_distance")
	return zones, err
}

// CreateZone inserts a delivery zone.
func (s *Store) CreateZone(ctx context.Context, z *models.DeliveryZone) error {
	if z.MinDistance >= z.MaxDistance {
		return fmt.Errorf("min_distance must be below max_distance")
	}
	if z.ID == "" {
		z.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO delivery_zones (id, min_distance, max_distance, fee, active) VALUES ($1, $2, $3, $4, $5)",
		z.ID, z.MinDistance, z.MaxDistance, z.Fee, z.Active)
	return err
}

// UpdateZone updates a delivery zone.
func (s *Store) UpdateZone(ctx context.Context, z *models.DeliveryZone) error {
	if z.MinDistance >= z.MaxDistance {
		return fmt.Errorf("min_distance must be below max_distance")
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE delivery_zones SET min_distance = $1, max_distance = $2, fee = $3, active = $4 WHERE id = $5",
		z.MinDistance, z.MaxDistance, z.Fee, z.Active, z.ID)
	return err
}

// SetZoneActive toggles a zone.
func (s *Store) SetZoneActive(ctx context.Context, id string, active bool) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE delivery_zones SET active = $1 WHERE id = $2", active, id)
	return err
}

// DeleteZone removes a zone.
func (s *Store) DeleteZone(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM delivery_zones WHERE id = $1", id)
	return err
}
