package marketplace

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Channels on which successful writes are announced.
const (
	EventProfessionalRegistered = "EVENT_PROFESSIONAL_REGISTERED"
	EventOrganizationRegistered = "EVENT_ORGANIZATION_REGISTERED"
	EventBookingRequested       = "EVENT_BOOKING_REQUESTED"
	EventJobPosted              = "EVENT_JOB_POSTED"
)

// Publisher announces marketplace events. Delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload map[string]any) error
}

// RedisPublisher publishes JSON payloads with Redis PUBLISH.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher returns a Publisher backed by rdb.
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload map[string]any) error {
	payload["type"] = channel
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", channel, err)
	}
	return p.rdb.Publish(ctx, channel, data).Err()
}

// NopPublisher drops every event. Used when no Redis is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, map[string]any) error { return nil }
