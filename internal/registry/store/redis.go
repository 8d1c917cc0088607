package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/illustspace/gsr/internal/registry/models"
	"github.com/illustspace/gsr/internal/registry/ports"
	id "github.com/illustspace/gsr/pkg/domain"
	"github.com/illustspace/gsr/pkg/platform/sentinel"
)

// DefaultKeyPrefix namespaces registry keys.
const DefaultKeyPrefix = "registry"

type redisKeys struct {
	counter   string
	aliases   string
	ledger    string
	tokenInfo string
}

func newRedisKeys(prefix string) redisKeys {
	return redisKeys{
		counter:   prefix + ":last_token_id",
		aliases:   prefix + ":alias",
		ledger:    prefix + ":ledger",
		tokenInfo: prefix + ":token_info",
	}
}

func (k redisKeys) all() []string {
	return []string{k.counter, k.aliases, k.ledger, k.tokenInfo}
}

// Redis stores the registry in one string and three hashes. Transactions
// WATCH every registry key, stage writes locally, and commit them in a single
// MULTI/EXEC. A concurrent commit aborts the EXEC and surfaces ErrConflict.
type Redis struct {
	client    *redis.Client
	keys      redisKeys
	txTimeout time.Duration
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Redis{client: client, keys: newRedisKeys(prefix), txTimeout: DefaultTxTimeout}
}

// SetTxTimeout overrides DefaultTxTimeout. Zero disables the bound.
func (s *Redis) SetTxTimeout(d time.Duration) {
	s.txTimeout = d
}

func (s *Redis) view(cmd redis.Cmdable) redisView {
	return redisView{cmd: cmd, keys: s.keys}
}

func (s *Redis) LastTokenID(ctx context.Context) (id.TokenID, error) {
	return s.view(s.client).LastTokenID(ctx)
}

func (s *Redis) FindAlias(ctx context.Context, primary id.PrimaryAddress) (id.SecondaryAddress, error) {
	return s.view(s.client).FindAlias(ctx, primary)
}

func (s *Redis) FindTokenMetadata(ctx context.Context, tokenID id.TokenID) (*models.TokenMetadata, error) {
	return s.view(s.client).FindTokenMetadata(ctx, tokenID)
}

func (s *Redis) FindOwner(ctx context.Context, tokenID id.TokenID) (id.PrimaryAddress, error) {
	return s.view(s.client).FindOwner(ctx, tokenID)
}

func (s *Redis) RunInTx(ctx context.Context, fn func(ctx context.Context, store ports.Store) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		staged, err := NewStaged(ctx, s.view(tx))
		if err != nil {
			return err
		}
		if err := fn(ctx, staged); err != nil {
			return err
		}
		changes, err := staged.Changes()
		if err != nil {
			return err
		}
		if changes.Empty() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("transaction aborted before commit: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return s.queue(ctx, pipe, changes)
		})
		return err
	}, s.keys.all()...)

	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("registry modified concurrently: %w", sentinel.ErrConflict)
	}
	return err
}

func (s *Redis) queue(ctx context.Context, pipe redis.Pipeliner, c *Changes) error {
	for primary, secondary := range c.Aliases {
		pipe.HSet(ctx, s.keys.aliases, string(primary), string(secondary))
	}
	for _, tok := range c.Tokens {
		info, err := json.Marshal(tok.Metadata.TokenInfo)
		if err != nil {
			return fmt.Errorf("marshal token info: %w", err)
		}
		field := tok.Metadata.TokenID.String()
		pipe.HSet(ctx, s.keys.tokenInfo, field, info)
		pipe.HSet(ctx, s.keys.ledger, field, string(tok.Owner))
	}
	pipe.Set(ctx, s.keys.counter, c.LastTokenID.String(), 0)
	return nil
}

type redisView struct {
	cmd  redis.Cmdable
	keys redisKeys
}

func (v redisView) LastTokenID(ctx context.Context) (id.TokenID, error) {
	raw, err := v.cmd.Get(ctx, v.keys.counter).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get counter: %w", err)
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse counter %q: %w", raw, sentinel.ErrInvalidState)
	}
	return id.TokenID(n), nil
}

func (v redisView) FindAlias(ctx context.Context, primary id.PrimaryAddress) (id.SecondaryAddress, error) {
	raw, err := v.hget(ctx, v.keys.aliases, string(primary))
	if err != nil {
		return "", err
	}
	return id.SecondaryAddress(raw), nil
}

func (v redisView) FindTokenMetadata(ctx context.Context, tokenID id.TokenID) (*models.TokenMetadata, error) {
	raw, err := v.hget(ctx, v.keys.tokenInfo, tokenID.String())
	if err != nil {
		return nil, err
	}
	var info models.TokenInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, fmt.Errorf("decode token info %d: %w", tokenID, sentinel.ErrInvalidState)
	}
	return &models.TokenMetadata{TokenID: tokenID, TokenInfo: info}, nil
}

func (v redisView) FindOwner(ctx context.Context, tokenID id.TokenID) (id.PrimaryAddress, error) {
	raw, err := v.hget(ctx, v.keys.ledger, tokenID.String())
	if err != nil {
		return "", err
	}
	return id.PrimaryAddress(raw), nil
}

func (v redisView) hget(ctx context.Context, key, field string) (string, error) {
	raw, err := v.cmd.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("hget %s: %w", key, err)
	}
	return raw, nil
}
