package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ethan-kaseff/seating-chart/pkg/observability"
	"github.com/ethan-kaseff/seating-chart/pkg/seating"
)

// redisKeyPrefix namespaces seating documents within a shared Redis.
const redisKeyPrefix = "seating:event:"

// RedisConfig holds connection settings for a Redis-backed store.
type RedisConfig struct {
	// Addr is the host:port of the Redis server.
	Addr string

	// Password, if the server requires one.
	Password string

	// DB selects the Redis logical database.
	DB int

	// TTL expires documents after inactivity. Zero means no expiry.
	TTL time.Duration
}

// RedisStore persists each event's document as one JSON value. Suited to
// shared hosting of many short-lived events; combine with a TTL to let
// abandoned drafts age out.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

func redisKey(eventID string) string { return redisKeyPrefix + eventID }

// Load fetches the event's document.
func (s *RedisStore) Load(ctx context.Context, eventID string) (seating.Document, error) {
	start := time.Now()
	doc, err := s.load(ctx, eventID)
	observability.Store().OnLoad(ctx, "redis", eventID, time.Since(start), err)
	return doc, err
}

func (s *RedisStore) load(ctx context.Context, eventID string) (seating.Document, error) {
	data, err := s.client.Get(ctx, redisKey(eventID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return seating.Document{}, ErrNotFound
	}
	if err != nil {
		return seating.Document{}, fmt.Errorf("get event: %w", err)
	}

	var doc seating.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return seating.Document{}, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// Save stores the event's document, refreshing the TTL if one is set.
func (s *RedisStore) Save(ctx context.Context, eventID string, doc seating.Document) error {
	start := time.Now()
	err := s.save(ctx, eventID, doc)
	observability.Store().OnSave(ctx, "redis", eventID, time.Since(start), err)
	return err
}

func (s *RedisStore) save(ctx context.Context, eventID string, doc seating.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(eventID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set event: %w", err)
	}
	return nil
}

// Delete removes the event's document.
func (s *RedisStore) Delete(ctx context.Context, eventID string) error {
	if err := s.client.Del(ctx, redisKey(eventID)).Err(); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// List scans for every stored event id.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, iter.Val()[len(redisKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}
	return ids, nil
}

// Close releases the Redis client.
func (s *RedisStore) Close() error { return s.client.Close() }

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
