// Package redis persists the record set as a single JSON value in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vsinha/inventory/pkg/domain/entities"
	"github.com/vsinha/inventory/pkg/domain/repositories"
)

const DefaultKey = "inventory:records"

// Store keeps the whole ordered record set under one key so a save is a
// single atomic SET.
type Store struct {
	client *redis.Client
	key    string
}

func NewStore(client *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}
}

// Connect dials addr and pings it before returning the store
func Connect(ctx context.Context, addr, key string) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewStore(client, key), nil
}

// Verify interface compliance
var _ repositories.Persister = (*Store)(nil)

func (s *Store) Key() string {
	return s.key
}

func (s *Store) Load(ctx context.Context) ([]entities.InventoryRecord, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []entities.InventoryRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", s.key, err)
	}

	var records []entities.InventoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode key %s: %w", s.key, err)
	}
	if records == nil {
		records = []entities.InventoryRecord{}
	}
	return records, nil
}

func (s *Store) Save(ctx context.Context, records []entities.InventoryRecord) error {
	if records == nil {
		records = []entities.InventoryRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write key %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
