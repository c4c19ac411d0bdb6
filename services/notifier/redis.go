package notifier

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"sjsage522/propertymonitor/internal/listing"
	"sjsage522/propertymonitor/pkg/errors"
)

// RedisStreamNotifier publishes new listings to a Redis stream
type RedisStreamNotifier struct {
	client          *redis.Client
	stream          string
	streamMaxLength int64
}

// NewRedisStreamNotifier creates a new Redis stream notifier
func NewRedisStreamNotifier(addr string, db int, stream string, streamMaxLength int) *RedisStreamNotifier {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisStreamNotifier{
		client:          client,
		stream:          stream,
		streamMaxLength: int64(streamMaxLength),
	}
}

// Notify adds one stream entry holding the base64 encoded JSON listings
// and trims the stream to the configured maximum length
func (p *RedisStreamNotifier) Notify(ctx context.Context, listings []listing.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	data, err := json.Marshal(listings)
	if err != nil {
		return errors.NewNotification(p.Name(), "encode listings", err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"count":        len(listings),
			"b64_listings": base64.StdEncoding.EncodeToString(data),
		},
	}).Err()
	if err != nil {
		return errors.NewNotification(p.Name(), "publish to stream "+p.stream, err)
	}

	if p.streamMaxLength > 0 {
		if err := p.client.XTrimMaxLen(ctx, p.stream, p.streamMaxLength).Err(); err != nil {
			return errors.NewNotification(p.Name(), "trim stream "+p.stream, err)
		}
	}
	return nil
}

// Name returns the backend name
func (p *RedisStreamNotifier) Name() string {
	return "redis"
}

// Close closes the Redis connection
func (p *RedisStreamNotifier) Close() error {
	return p.client.Close()
}
