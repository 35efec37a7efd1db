package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis maps each logical table to one Redis hash, so item lookups stay O(1)
// and Scan reads the hash values in a single round trip.
type Redis struct {
	client *redis.Client
}

// NewRedis builds a client from a redis:// URL and verifies the connection.
func NewRedis(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, table, key string) ([]byte, error) {
	item, err := r.client.HGet(ctx, table, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *Redis) Put(ctx context.Context, table, key string, item []byte) error {
	return r.client.HSet(ctx, table, key, item).Err()
}

func (r *Redis) Delete(ctx context.Context, table, key string) error {
	removed, err := r.client.HDel(ctx, table, key).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Redis) Scan(ctx context.Context, table string, match func(item []byte) bool) ([][]byte, error) {
	values, err := r.client.HVals(ctx, table).Result()
	if err != nil {
		return nil, err
	}

	items := make([][]byte, 0, len(values))
	for _, value := range values {
		item := []byte(value)
		if match != nil && !match(item) {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
