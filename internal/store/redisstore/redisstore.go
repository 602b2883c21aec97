// Package redisstore keeps a settings profile in a single Redis hash.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maloquacious/mapedcfg/internal/store"
	"github.com/redis/go-redis/v9"
)

const opTimeout = 2 * time.Second

// Config holds Redis connection configuration.
type Config struct {
	Addr     string // Redis server address (host:port)
	Password string // Redis password (optional)
	DB       int    // Redis database number
	Profile  string // settings profile; selects the hash
}

// Store implements store.Backend on a Redis hash.
type Store struct {
	client *redis.Client
	hash   string
}

var _ store.Backend = (*Store)(nil)

// Open connects to Redis and verifies the connection.
func Open(cfg Config) (*Store, error) {
	if err := store.CheckProfile(cfg.Profile); err != nil {
		return nil, err
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return NewWithClient(client, cfg.Profile), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, profile string) *Store {
	if profile == "" {
		profile = store.DefaultProfile
	}
	return &Store{client: client, hash: "mapedcfg:" + profile}
}

func (s *Store) Get(key string) (any, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := s.client.HGet(ctx, s.hash, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q failed: %w", key, err)
	}
	v, err := store.DecodeValue(data)
	if err != nil {
		return nil, false, fmt.Errorf("key %q: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(key string, value any) error {
	data, err := store.EncodeValue(value)
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.HSet(ctx, s.hash, key, data).Err(); err != nil {
		return fmt.Errorf("redis set %q failed: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.HDel(ctx, s.hash, key).Err(); err != nil {
		return fmt.Errorf("redis delete %q failed: %w", key, err)
	}
	return nil
}

func (s *Store) Keys() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	keys, err := s.client.HKeys(ctx, s.hash).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list keys failed: %w", err)
	}
	return keys, nil
}

// Flush is a round trip to the server; Redis applies every write on receipt
// and durability follows the server's own persistence policy.
func (s *Store) Flush() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis flush failed: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.client.Close() }
