package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/internal/models"
	"storefront-service/internal/pricing"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// DeliveryService quotes delivery fees for the storefront and manages the
// zone table for the back office.
type DeliveryService struct {
	store    *store.Store
	settings *SettingsService
	geocoder *Geocoder
	logger   *zap.Logger
}

func NewDeliveryService(store *store.Store, settings *SettingsService, geocoder *Geocoder) *DeliveryService {
	return &DeliveryService{
		store:    store,
		settings: settings,
		geocoder: geocoder,
		logger:   util.GetLogger(),
	}
}

// Quote is the fee estimate shown before checkout.
type Quote struct {
	Fee        int64   `json:"fee"`
	DistanceKm float64 `json:"distance_km"`
	Fixed      bool    `json:"fixed"`
}

// QuoteFee estimates the delivery fee for a customer location. In fixed-fee
// mode the coordinates are ignored.
func (s *DeliveryService) QuoteFee(ctx context.Context, lat, lng float64) (*Quote, error) {
	ctx, span := util.StartSpan(ctx, "DeliveryService.QuoteFee")
	defer span.End()

	util.DeliveryQuotesTotal.Inc()

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	if pricing.FeeModeFor(settings) == pricing.FeeModeFixed {
		return &Quote{Fee: *settings.DeliveryFee, Fixed: true}, nil
	}

	if settings.StoreLat == nil || settings.StoreLng == nil {
		return nil, pricing.ErrDeliveryFeeUnresolved
	}

	zones, err := s.store.GetActiveZones(ctx)
	if err != nil {
		return nil, err
	}

	distance := pricing.DistanceKm(*settings.StoreLat, *settings.StoreLng, lat, lng)
	fee, err := pricing.ResolveFee(pricing.FeeModeDistance, 0, zones, distance)
	if err != nil {
		if errors.Is(err, pricing.ErrNotServiceable) {
			util.DeliveryNotServiceableTotal.Inc()
		}
		return nil, err
	}

	return &Quote{Fee: fee, DistanceKm: distance}, nil
}

// ListZones returns every zone, active or not, for the admin table.
func (s *DeliveryService) ListZones(ctx context.Context) ([]models.DeliveryZone, error) {
	return s.store.ListZones(ctx)
}

func (s *DeliveryService) CreateZone(ctx context.Context, z *models.DeliveryZone) error {
	return s.store.CreateZone(ctx, z)
}

func (s *DeliveryService) UpdateZone(ctx context.Context, z *models.DeliveryZone) error {
	return s.store.UpdateZone(ctx, z)
}

func (s *DeliveryService) SetZoneActive(ctx context.Context, id string, active bool) error {
	return s.store.SetZoneActive(ctx, id, active)
}

func (s *DeliveryService) DeleteZone(ctx context.Context, id string) error {
	return s.store.DeleteZone(ctx, id)
}

// SetStoreAddress geocodes the address and stores the resulting coordinates
// on the settings row. Distance quoting is unusable until this succeeds.
func (s *DeliveryService) SetStoreAddress(ctx context.Context, address string) (*models.StoreSettings, error) {
	ctx, span := util.StartSpan(ctx, "DeliveryService.SetStoreAddress")
	defer span.End()

	lat, lng, err := s.geocoder.Lookup(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode store address: %w", err)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := s.settings.Update(ctx, &UpdateSettingsRequest{
		OpeningHours: settings.OpeningHours,
		StoreLat:     &lat,
		StoreLng:     &lng,
		DeliveryFee:  settings.DeliveryFee,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Store address geocoded",
		zap.Float64("lat", lat),
		zap.Float64("lng", lng))
	return updated, nil
}
