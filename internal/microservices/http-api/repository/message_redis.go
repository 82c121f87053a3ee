package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// MessageStore queues one-shot notices ("3 Movies were published
// successfully.") for a staff user until their next admin page load.
type MessageStore interface {
	Push(ctx context.Context, userID, message string) error
	Pop(ctx context.Context, userID string) ([]string, error)
}

type redisMessageStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMessageStore(client *redis.Client, ttl time.Duration) MessageStore {
	return &redisMessageStore{client: client, ttl: ttl}
}

// NewRedisClient dials redis and verifies the connection.
func NewRedisClient(addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func messageKey(userID string) string {
	return fmt.Sprintf("admin:messages:user:%s", userID)
}

func (s *redisMessageStore) Push(ctx context.Context, userID, message string) error {
	if s == nil || s.client == nil {
		// no redis configured: messages are only returned inline
		return nil
	}
	key := messageKey(userID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, message)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push admin message: %w", err)
	}
	return nil
}

// Pop returns and clears every queued message for the user.
func (s *redisMessageStore) Pop(ctx context.Context, userID string) ([]string, error) {
	if s == nil || s.client == nil {
		return []string{}, nil
	}
	key := messageKey(userID)
	pipe := s.client.TxPipeline()
	lrange := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("pop admin messages: %w", err)
	}
	return lrange.Val(), nil
}
