package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"farmfresh/internal/models"
)

const cartKeyPrefix = "farmfresh:cart:"

// SnapshotStore persists one cart snapshot per session, the server-side
// counterpart of the single local-storage key the storefront page used to
// own. Get returns (nil, nil) when no snapshot exists.
type SnapshotStore interface {
	Get(ctx context.Context, sessionID string) (*models.CartSnapshot, error)
	Set(ctx context.Context, sessionID string, snapshot *models.CartSnapshot, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
	PurgeIdle(ctx context.Context, olderThan time.Duration) (int, error)
	Ping(ctx context.Context) error
}

type redisSnapshotStore struct {
	client *redis.Client
}

// NewRedisSnapshotStore connects to Redis and logs (but tolerates) an
// initial ping failure: the storefront must still serve pages when the
// snapshot store is down, carts just stop surviving across requests.
func NewRedisSnapshotStore(addr, password string, db int) SnapshotStore {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisSnapshotStore{client: client}
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

func (s *redisSnapshotStore) Get(ctx context.Context, sessionID string) (*models.CartSnapshot, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // no snapshot for this session
		}
		return nil, err
	}

	var snapshot models.CartSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *redisSnapshotStore) Set(ctx context.Context, sessionID string, snapshot *models.CartSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	return s.client.Set(ctx, cartKey(sessionID), data, ttl).Err()
}

func (s *redisSnapshotStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}

// PurgeIdle scans for cart snapshots that have not been touched within the
// idle window and deletes them. Snapshots that no longer decode are
// deleted as well; they would restore as empty carts anyway.
func (s *redisSnapshotStore) PurgeIdle(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	purged := 0

	iter := s.client.Scan(ctx, 0, cartKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue // expired between scan and get
			}
			return purged, err
		}

		var snapshot models.CartSnapshot
		stale := json.Unmarshal(data, &snapshot) != nil || snapshot.UpdatedAt.Before(cutoff)
		if !stale {
			continue
		}
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return purged, err
		}
		purged++
	}
	if err := iter.Err(); err != nil {
		return purged, err
	}
	return purged, nil
}

func (s *redisSnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
