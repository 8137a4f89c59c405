package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/status"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const settingsCacheTTL = time.Minute

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// SettingsService owns the settings singleton: reads go through a short
// redis cache, writes invalidate it and notify subscribers.
type SettingsService struct {
	store     *store.Store
	redis     *redisclient.Client
	publisher *broker.EventPublisher
	loc       *time.Location
	logger    *zap.Logger
}

func NewSettingsService(
	store *store.Store,
	redis *redisclient.Client,
	publisher *broker.EventPublisher,
	loc *time.Location,
) *SettingsService {
	return &SettingsService{
		store:     store,
		redis:     redis,
		publisher: publisher,
		loc:       loc,
		logger:    util.GetLogger(),
	}
}

// Get returns the settings singleton, preferring the cache.
func (s *SettingsService) Get(ctx context.Context) (*models.StoreSettings, error) {
	if cached, err := s.redis.GetCachedSettings(ctx); err == nil && cached != nil {
		return cached, nil
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.redis.CacheSettings(ctx, settings, settingsCacheTTL); err != nil {
		s.logger.Warn("Failed to cache settings", zap.Error(err))
	}
	return settings, nil
}

// Status evaluates the derived open/closed state right now.
func (s *SettingsService) Status(ctx context.Context) (status.Status, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return status.Status{}, err
	}
	return status.Evaluate(settings, time.Now().In(s.loc)), nil
}

// UpdateSettingsRequest carries the admin-editable settings fields.
type UpdateSettingsRequest struct {
	OpeningHours models.WeeklySchedule `json:"opening_hours" binding:"required"`
	StoreLat     *float64              `json:"store_lat"`
	StoreLng     *float64              `json:"store_lng"`
	DeliveryFee  *int64                `json:"delivery_fee"`
}

// Update writes the settings row, invalidates the cache and notifies
// subscribers so status evaluations pick the change up immediately.
func (s *SettingsService) Update(ctx context.Context, req *UpdateSettingsRequest) (*models.StoreSettings, error) {
	ctx, span := util.StartSpan(ctx, "SettingsService.Update")
	defer span.End()

	if err := validateSchedule(req.OpeningHours); err != nil {
		return nil, err
	}
	if req.DeliveryFee != nil && *req.DeliveryFee < 0 {
		return nil, fmt.Errorf("delivery fee cannot be negative")
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	settings.OpeningHours = req.OpeningHours
	settings.StoreLat = req.StoreLat
	settings.StoreLng = req.StoreLng
	settings.DeliveryFee = req.DeliveryFee

	if err := s.store.UpdateSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	s.afterChange(ctx)
	s.logger.Info("Store settings updated")
	return settings, nil
}

// ToggleOpen flips the manual override and broadcasts the resulting state.
func (s *SettingsService) ToggleOpen(ctx context.Context, open bool) (status.Status, error) {
	ctx, span := util.StartSpan(ctx, "SettingsService.ToggleOpen")
	defer span.End()

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return status.Status{}, err
	}

	if err := s.store.SetStoreOpen(ctx, settings.ID, open); err != nil {
		return status.Status{}, fmt.Errorf("failed to toggle store: %w", err)
	}
	settings.IsOpen = open

	st := status.Evaluate(settings, time.Now().In(s.loc))

	event := &models.StoreStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeStoreStatusChanged,
			Timestamp: time.Now(),
		},
		Open:  st.IsOpen,
		State: string(st.State),
	}
	if err := s.publisher.PublishStoreStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish StoreStatusChanged event", zap.Error(err))
	}

	s.afterChange(ctx)
	s.logger.Info("Store manual override toggled", zap.Bool("open", open))
	return st, nil
}

// afterChange invalidates the cache and fans a change notification out so
// the status watcher and websocket clients re-read.
func (s *SettingsService) afterChange(ctx context.Context) {
	if err := s.redis.InvalidateSettings(ctx); err != nil {
		s.logger.Warn("Failed to invalidate settings cache", zap.Error(err))
	}

	event := &models.SettingsUpdatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeSettingsUpdated,
			Timestamp: time.Now(),
		},
	}
	if err := s.redis.PublishEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish settings change notification", zap.Error(err))
	}
}

// validateSchedule accepts same-day ranges only. The single special close
// value "00:00" means open until midnight; anything else must be after the
// open time, because the evaluator has no day rollover.
func validateSchedule(schedule models.WeeklySchedule) error {
	valid := make(map[string]bool)
	for _, d := range status.ValidDayKeys() {
		valid[d] = true
	}

	for day, hours := range schedule {
		if !valid[day] {
			return fmt.Errorf("unknown weekday key: %q", day)
		}
		if hours.Open == nil || hours.Close == nil {
			continue // closed that day
		}
		if !timeOfDayRe.MatchString(*hours.Open) {
			return fmt.Errorf("invalid open time for %s: %q", day, *hours.Open)
		}
		if !timeOfDayRe.MatchString(*hours.Close) {
			return fmt.Errorf("invalid close time for %s: %q", day, *hours.Close)
		}
		if *hours.Close != "00:00" && *hours.Close <= *hours.Open {
			return fmt.Errorf("close time must be after open time for %s (use 00:00 for midnight)", day)
		}
	}
	return nil
}
