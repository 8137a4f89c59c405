package service

import (
	"context"
	"time"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/status"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatusWatcher re-evaluates the derived open/closed state on a timer and
// whenever the settings change, and broadcasts flips. Schedule edges (the
// clock passing an open or close time) are only visible to this loop, so its
// interval bounds how stale the broadcast state can get.
type StatusWatcher struct {
	settings  *SettingsService
	redis     *redisclient.Client
	publisher *broker.EventPublisher
	interval  time.Duration
	logger    *zap.Logger

	lastState status.State
	primed    bool
}

func NewStatusWatcher(
	settings *SettingsService,
	redis *redisclient.Client,
	publisher *broker.EventPublisher,
	interval time.Duration,
) *StatusWatcher {
	return &StatusWatcher{
		settings:  settings,
		redis:     redis,
		publisher: publisher,
		interval:  interval,
		logger:    util.GetLogger(),
	}
}

// Run blocks until the context is cancelled.
func (w *StatusWatcher) Run(ctx context.Context) {
	w.logger.Info("Starting store status watcher", zap.Duration("interval", w.interval))

	sub := w.redis.SubscribeEvents(ctx)
	defer sub.Close()
	notifications := sub.Channel()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.check(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Store status watcher stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		case _, ok := <-notifications:
			if !ok {
				return
			}
			// Settings edits and manual toggles land here; re-evaluate
			// immediately instead of waiting out the tick.
			w.check(ctx)
		}
	}
}

func (w *StatusWatcher) check(ctx context.Context) {
	st, err := w.settings.Status(ctx)
	if err != nil {
		w.logger.Error("Failed to evaluate store status", zap.Error(err))
		return
	}

	if st.IsOpen {
		util.StoreOpenGauge.Set(1)
	} else {
		util.StoreOpenGauge.Set(0)
	}

	if w.primed && st.State == w.lastState {
		return
	}
	flipped := w.primed
	w.lastState = st.State
	w.primed = true
	if !flipped {
		return
	}

	w.logger.Info("Store status changed",
		zap.String("state", string(st.State)),
		zap.Bool("open", st.IsOpen))

	event := &models.StoreStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeStoreStatusChanged,
			Timestamp: time.Now(),
		},
		Open:  st.IsOpen,
		State: string(st.State),
	}
	// The event worker relays this to redis for the websocket hub, so it is
	// not published on both transports here.
	if err := w.publisher.PublishStoreStatusChanged(ctx, event); err != nil {
		w.logger.Error("Failed to publish StoreStatusChanged event", zap.Error(err))
	}
}
