package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/illustspace/gsr/internal/admin/models"
	id "github.com/illustspace/gsr/pkg/domain"
	"github.com/illustspace/gsr/pkg/platform/sentinel"
)

// RedisStore keeps the administrator in a string key and metadata in a hash,
// next to the registry keys under the same prefix.
type RedisStore struct {
	client      *redis.Client
	adminKey    string
	metadataKey string
}

func NewRedis(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "registry"
	}
	return &RedisStore{
		client:      client,
		adminKey:    prefix + ":administrator",
		metadataKey: prefix + ":contract_metadata",
	}
}

func (s *RedisStore) Administrator(ctx context.Context) (id.PrimaryAddress, error) {
	v, err := s.client.Get(ctx, s.adminKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get administrator: %w", err)
	}
	return id.PrimaryAddress(v), nil
}

func (s *RedisStore) EnsureAdministrator(ctx context.Context, admin id.PrimaryAddress) error {
	if err := s.client.SetNX(ctx, s.adminKey, string(admin), 0).Err(); err != nil {
		return fmt.Errorf("ensure administrator: %w", err)
	}
	return nil
}

// ReplaceAdministrator performs a WATCHed compare-and-set.
func (s *RedisStore) ReplaceAdministrator(ctx context.Context, expected, next id.PrimaryAddress) error {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, s.adminKey).Result()
		if errors.Is(err, redis.Nil) {
			return sentinel.ErrConflict
		}
		if err != nil {
			return err
		}
		if current != string(expected) {
			return sentinel.ErrConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.adminKey, string(next), 0)
			return nil
		})
		return err
	}, s.adminKey)

	switch {
	case errors.Is(err, redis.TxFailedErr):
		return fmt.Errorf("administrator modified concurrently: %w", sentinel.ErrConflict)
	case errors.Is(err, sentinel.ErrConflict):
		return err
	case err != nil:
		return fmt.Errorf("replace administrator: %w", err)
	}
	return nil
}

func (s *RedisStore) Metadata(ctx context.Context) (models.ContractMetadata, error) {
	fields, err := s.client.HGetAll(ctx, s.metadataKey).Result()
	if err != nil {
		return nil, fmt.Errorf("get metadata: %w", err)
	}
	md := make(models.ContractMetadata, len(fields))
	for k, v := range fields {
		md[k] = []byte(v)
	}
	return md, nil
}

func (s *RedisStore) SetMetadata(ctx context.Context, key string, value []byte) error {
	if err := s.client.HSet(ctx, s.metadataKey, key, value).Err(); err != nil {
		return fmt.Errorf("set metadata: %w", err)
	}
	return nil
}
