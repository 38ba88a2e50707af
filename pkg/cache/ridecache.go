package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const openRidesKey = "rides:open"

// RideCache keeps JSON snapshots of rides and the open-rides listing. Every
// status or seat mutation invalidates the affected keys; reads fall back to
// storage on a miss. A nil *RideCache is a valid always-miss cache.
type RideCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRideCache creates a ride snapshot cache with the given TTL
func NewRideCache(client *redis.Client, ttl time.Duration) *RideCache {
	return &RideCache{client: client, ttl: ttl}
}

func rideKey(id string) string {
	return "ride:" + id
}

// GetRide loads a cached ride snapshot into dest. Returns false on a miss;
// cache errors count as misses.
func (c *RideCache) GetRide(ctx context.Context, id string, dest interface{}) bool {
	return c.get(ctx, rideKey(id), dest)
}

// SetRide stores a ride snapshot
func (c *RideCache) SetRide(ctx context.Context, id string, ride interface{}) {
	c.set(ctx, rideKey(id), ride)
}

// GetOpenRides loads the cached open-rides listing into dest
func (c *RideCache) GetOpenRides(ctx context.Context, dest interface{}) bool {
	return c.get(ctx, openRidesKey, dest)
}

// SetOpenRides stores the open-rides listing
func (c *RideCache) SetOpenRides(ctx context.Context, rides interface{}) {
	c.set(ctx, openRidesKey, rides)
}

// InvalidateRide drops a ride snapshot together with the listing that may
// contain it
func (c *RideCache) InvalidateRide(ctx context.Context, id string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, rideKey(id), openRidesKey)
}

func (c *RideCache) get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// treat transient cache failures as misses
			return false
		}
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *RideCache) set(ctx context.Context, key string, v interface{}) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, c.ttl)
}
