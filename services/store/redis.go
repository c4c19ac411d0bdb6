package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"sjsage522/propertymonitor/internal/listing"
	"sjsage522/propertymonitor/logger"
	"sjsage522/propertymonitor/pkg/errors"
)

// RedisStore implements Store with one key per fingerprint.
// Records are written with SETNX and never expire.
type RedisStore struct {
	client *redis.Client
	prefix string
	log    *logger.Logger
}

// NewRedisStore creates a Redis-backed store and checks the connection
func NewRedisStore(ctx context.Context, addr string, db int, prefix string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.NewStore("redis", "failed to connect to Redis", err)
	}

	return &RedisStore{
		client: client,
		prefix: prefix,
		log:    logger.ForStore().WithField("backend", "redis"),
	}, nil
}

func (s *RedisStore) key(fingerprint string) string {
	return s.prefix + ":" + fingerprint
}

// InsertIfAbsent stores l unless its fingerprint key already exists
func (s *RedisStore) InsertIfAbsent(ctx context.Context, l listing.Listing) (bool, error) {
	l.IsNew = true
	data, err := json.Marshal(l)
	if err != nil {
		return false, errors.NewStore("redis", "encode listing", err)
	}

	inserted, err := s.client.SetNX(ctx, s.key(l.Fingerprint), data, 0).Result()
	if err != nil {
		return false, errors.NewStore("redis", fmt.Sprintf("insert %s", l.Fingerprint), err)
	}

	if inserted {
		s.log.Info().
			Str("fingerprint", l.Fingerprint).
			Str("title", l.Title).
			Msg("New listing saved")
	}
	return inserted, nil
}

// Get returns the stored record for fingerprint
func (s *RedisStore) Get(ctx context.Context, fingerprint string) (*listing.Listing, error) {
	data, err := s.client.Get(ctx, s.key(fingerprint)).Bytes()
	if err != nil {
		return nil, errors.NewStore("redis", "get "+fingerprint, err)
	}

	var l listing.Listing
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errors.NewStore("redis", "decode "+fingerprint, err)
	}
	return &l, nil
}

// Count returns the number of stored listings
func (s *RedisStore) Count(ctx context.Context) (int64, error) {
	var (
		cursor uint64
		total  int64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+":*", 500).Result()
		if err != nil {
			return 0, errors.NewStore("redis", "count", err)
		}
		total += int64(len(keys))
		if next == 0 {
			return total, nil
		}
		cursor = next
	}
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
