package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/internal/models"

	"github.com/go-redis/redis/v8"
)

// EventsChannel is the pub/sub channel carrying change notifications to the
// websocket hub and the store-status watcher.
const EventsChannel = "storefront:events"

const settingsCacheKey = "settings"

type Client struct {
	rdb     *redis.Client
	cartTTL time.Duration
}

// NewClient creates a new Redis client.
func NewClient(addr, password string, db int, cartTTL time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, cartTTL: cartTTL}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetCart loads a session's cart items. A missing key is an empty cart.
func (c *Client) GetCart(ctx context.Context, sessionID string) ([]models.CartLineItem, error) {
	data, err := c.rdb.Get(ctx, cartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return items, nil
}

// SaveCart stores a session's cart with the configured TTL. Concurrent
// edits are last-write-wins.
func (c *Client) SaveCart(ctx context.Context, sessionID string, items []models.CartLineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	return c.rdb.Set(ctx, cartKey(sessionID), data, c.cartTTL).Err()
}

// DeleteCart removes a session's cart, typically after a committed order.
func (c *Client) DeleteCart(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, cartKey(sessionID)).Err()
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// CacheSettings stores the settings singleton for fast status checks.
func (c *Client) CacheSettings(ctx context.Context, settings *models.StoreSettings, ttl time.Duration) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, settingsCacheKey, data, ttl).Err()
}

// GetCachedSettings loads the cached settings, or (nil, nil) on a miss.
func (c *Client) GetCachedSettings(ctx context.Context) (*models.StoreSettings, error) {
	data, err := c.rdb.Get(ctx, settingsCacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var settings models.StoreSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// InvalidateSettings drops the settings cache after an admin edit.
func (c *Client) InvalidateSettings(ctx context.Context) error {
	return c.rdb.Del(ctx, settingsCacheKey).Err()
}

// PublishEvent fans an event out on the events channel.
func (c *Client) PublishEvent(ctx context.Context, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return c.rdb.Publish(ctx, EventsChannel, data).Err()
}

// SubscribeEvents subscribes to the events channel. The caller owns the
// returned subscription and must Close it.
func (c *Client) SubscribeEvents(ctx context.Context) *redis.PubSub {
	return c.rdb.Subscribe(ctx, EventsChannel)
}
