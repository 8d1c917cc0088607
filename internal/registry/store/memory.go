package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/illustspace/gsr/internal/registry/models"
	"github.com/illustspace/gsr/internal/registry/ports"
	id "github.com/illustspace/gsr/pkg/domain"
	"github.com/illustspace/gsr/pkg/platform/sentinel"
)

// DefaultTxTimeout bounds a transaction whose context carries no deadline.
const DefaultTxTimeout = 5 * time.Second

// InMemory keeps the registry in process memory. Transactions are serialized
// by a single lock and applied only after the callback succeeds.
type InMemory struct {
	mu        sync.RWMutex
	last      id.TokenID
	aliases   map[id.PrimaryAddress]id.SecondaryAddress
	metadata  map[id.TokenID]*models.TokenMetadata
	owners    map[id.TokenID]id.PrimaryAddress
	txTimeout time.Duration
}

func NewInMemory() *InMemory {
	return &InMemory{
		aliases:   make(map[id.PrimaryAddress]id.SecondaryAddress),
		metadata:  make(map[id.TokenID]*models.TokenMetadata),
		owners:    make(map[id.TokenID]id.PrimaryAddress),
		txTimeout: DefaultTxTimeout,
	}
}

// SetTxTimeout overrides DefaultTxTimeout. Zero disables the bound.
func (s *InMemory) SetTxTimeout(d time.Duration) {
	s.txTimeout = d
}

func (s *InMemory) LastTokenID(ctx context.Context) (id.TokenID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unlocked().LastTokenID(ctx)
}

func (s *InMemory) FindAlias(ctx context.Context, primary id.PrimaryAddress) (id.SecondaryAddress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unlocked().FindAlias(ctx, primary)
}

func (s *InMemory) FindTokenMetadata(ctx context.Context, tokenID id.TokenID) (*models.TokenMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unlocked().FindTokenMetadata(ctx, tokenID)
}

func (s *InMemory) FindOwner(ctx context.Context, tokenID id.TokenID) (id.PrimaryAddress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unlocked().FindOwner(ctx, tokenID)
}

// RunInTx stages fn's writes and applies them under the write lock. If fn
// fails or the context ends first, the registry is left untouched.
func (s *InMemory) RunInTx(ctx context.Context, fn func(ctx context.Context, store ports.Store) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}

	staged, err := NewStaged(ctx, s.unlocked())
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
	// Last chance to abort before the write set becomes visible.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted before commit: %w", err)
	}
	s.apply(changes)
	return nil
}

func (s *InMemory) apply(c *Changes) {
	for primary, secondary := range c.Aliases {
		s.aliases[primary] = secondary
	}
	for _, tok := range c.Tokens {
		s.metadata[tok.Metadata.TokenID] = tok.Metadata
		s.owners[tok.Metadata.TokenID] = tok.Owner
	}
	s.last = c.LastTokenID
}

// unlocked returns a reader over the maps that assumes the caller holds mu.
func (s *InMemory) unlocked() ports.Reader {
	return memoryView{s}
}

type memoryView struct{ s *InMemory }

func (v memoryView) LastTokenID(context.Context) (id.TokenID, error) {
	return v.s.last, nil
}

func (v memoryView) FindAlias(_ context.Context, primary id.PrimaryAddress) (id.SecondaryAddress, error) {
	secondary, ok := v.s.aliases[primary]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return secondary, nil
}

func (v memoryView) FindTokenMetadata(_ context.Context, tokenID id.TokenID) (*models.TokenMetadata, error) {
	md, ok := v.s.metadata[tokenID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneMetadata(md), nil
}

func (v memoryView) FindOwner(_ context.Context, tokenID id.TokenID) (id.PrimaryAddress, error) {
	owner, ok := v.s.owners[tokenID]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return owner, nil
}

// Snapshot is a deep copy of the registry state.
type Snapshot struct {
	LastTokenID id.TokenID
	Aliases     map[id.PrimaryAddress]id.SecondaryAddress
	TokenInfo   map[id.TokenID]models.TokenInfo
	Owners      map[id.TokenID]id.PrimaryAddress
}

func (s *InMemory) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		LastTokenID: s.last,
		Aliases:     make(map[id.PrimaryAddress]id.SecondaryAddress, len(s.aliases)),
		TokenInfo:   make(map[id.TokenID]models.TokenInfo, len(s.metadata)),
		Owners:      make(map[id.TokenID]id.PrimaryAddress, len(s.owners)),
	}
	for k, v := range s.aliases {
		snap.Aliases[k] = v
	}
	for k, v := range s.metadata {
		snap.TokenInfo[k] = v.TokenInfo.Clone()
	}
	for k, v := range s.owners {
		snap.Owners[k] = v
	}
	return snap
}
