package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"expohall/internal/models"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	TTL      time.Duration
	Enabled  bool
}

// ValkeyClient caches the hot read-only availability views (booked
// locations per event). Stale reads are acceptable here: the UI re-validates
// at submit time and every booking write goes through the conflict scan.
type ValkeyClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{client: rdb, ttl: cfg.TTL}, nil
}

func bookedLocationsKey(eventID string) string {
	return "booked-locations:" + eventID
}

func (v *ValkeyClient) GetBookedLocations(ctx context.Context, eventID string) ([]models.BookedLocation, error) {
	raw, err := v.client.Get(ctx, bookedLocationsKey(eventID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("cache miss")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}

	var locations []models.BookedLocation
	if err := json.Unmarshal(raw, &locations); err != nil {
		return nil, fmt.Errorf("invalid cached payload: %w", err)
	}

	return locations, nil
}

func (v *ValkeyClient) SetBookedLocations(ctx context.Context, eventID string, locations []models.BookedLocation) {
	raw, err := json.Marshal(locations)
	if err != nil {
		return
	}
	// best effort, the caller already has the data
	v.client.Set(ctx, bookedLocationsKey(eventID), raw, v.ttl)
}

// InvalidateBookedLocations drops the cached view after a registration
// write so the next read sees the new ledger.
func (v *ValkeyClient) InvalidateBookedLocations(ctx context.Context, eventID string) {
	v.client.Del(ctx, bookedLocationsKey(eventID))
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
