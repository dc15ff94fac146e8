package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopmate-chat/internal/domain/chat"

	goredis "github.com/redis/go-redis/v9"
)

// ContextCache keeps the recent-turn window of a chat/user pair so repeated
// messages on an active chat skip the history query. Entries are deleted on
// every append, so readers never see a stale or reordered window.
//
// Key pattern: chat:{user_id}:{chat_id}:recent
type ContextCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewContextCache(client *goredis.Client, ttl time.Duration) *ContextCache {
	return &ContextCache{client: client, ttl: ttl}
}

func key(userID, chatID int64) string {
	return fmt.Sprintf("chat:%d:%d:recent", userID, chatID)
}

// GetRecent returns the cached window, or nil on a miss.
func (c *ContextCache) GetRecent(ctx context.Context, userID, chatID int64) ([]chat.Turn, error) {
	data, err := c.client.Get(ctx, key(userID, chatID)).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var turns []chat.Turn
	if err := json.Unmarshal([]byte(data), &turns); err != nil {
		return nil, err
	}
	if turns == nil {
		turns = []chat.Turn{}
	}
	return turns, nil
}

func (c *ContextCache) SetRecent(ctx context.Context, userID, chatID int64, turns []chat.Turn) error {
	if turns == nil {
		turns = []chat.Turn{}
	}
	data, err := json.Marshal(turns)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(userID, chatID), data, c.ttl).Err()
}

func (c *ContextCache) Invalidate(ctx context.Context, userID, chatID int64) error {
	return c.client.Del(ctx, key(userID, chatID)).Err()
}
