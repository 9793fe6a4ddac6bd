package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dashKeyPrefix      = "tm:dash:"   // cached snapshot: tm:dash:{project_id}
	eventChannelPrefix = "tm:events:" // pub/sub channel: tm:events:{project_id}
	snapshotTTL        = time.Minute
)

// changedPayload is what Invalidate publishes; subscribers refetch on any
// message, so the body only carries the project id for logging.
type changedPayload struct {
	ProjectID string    `json:"project_id"`
	At        time.Time `json:"at"`
}

// Cache stores computed dashboard snapshots in Redis and fans out change
// notifications. It is an accelerator, not a source of truth: every miss
// recomputes from Postgres.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get returns the cached snapshot, or nil on a miss.
func (c *Cache) Get(ctx context.Context, projectID string) (*Snapshot, error) {
	data, err := c.client.Get(ctx, c.key(projectID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Set stores a snapshot with the standard TTL.
func (c *Cache) Set(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key(snap.ProjectID), data, snapshotTTL).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot and notifies stream subscribers.
// Called after every project or answer mutation.
func (c *Cache) Invalidate(ctx context.Context, projectID string) error {
	payload, err := json.Marshal(changedPayload{ProjectID: projectID, At: time.Now().UTC()})
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Del(ctx, c.key(projectID))
	pipe.Publish(ctx, c.channel(projectID), payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("invalidate snapshot: %w", err)
	}
	return nil
}

// Subscribe returns a pub/sub subscription for a project's change channel.
// The caller owns the subscription and must Close it.
func (c *Cache) Subscribe(ctx context.Context, projectID string) *redis.PubSub {
	return c.client.Subscribe(ctx, c.channel(projectID))
}

func (c *Cache) key(projectID string) string {
	return dashKeyPrefix + projectID
}

func (c *Cache) channel(projectID string) string {
	return eventChannelPrefix + projectID
}
