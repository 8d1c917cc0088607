package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/illustspace/gsr/internal/registry/models"
	"github.com/illustspace/gsr/internal/registry/ports"
	id "github.com/illustspace/gsr/pkg/domain"
	"github.com/illustspace/gsr/pkg/platform/sentinel"
)

// Staged buffers writes over a Reader. Reads see staged values first. Nothing
// reaches the base until a backend applies the result of Changes.
type Staged struct {
	base     ports.Reader
	baseLast id.TokenID
	last     id.TokenID

	aliases  map[id.PrimaryAddress]id.SecondaryAddress
	metadata map[id.TokenID]*models.TokenMetadata
	owners   map[id.TokenID]id.PrimaryAddress
}

// Changes is the validated write set of a Staged buffer.
type Changes struct {
	PreviousLastTokenID id.TokenID
	LastTokenID         id.TokenID
	Aliases             map[id.PrimaryAddress]id.SecondaryAddress
	// Tokens is ordered by token id.
	Tokens []StagedToken
}

type StagedToken struct {
	Metadata *models.TokenMetadata
	Owner    id.PrimaryAddress
}

// Empty reports whether applying the changes would be a no-op.
func (c *Changes) Empty() bool {
	return c.LastTokenID == c.PreviousLastTokenID && len(c.Aliases) == 0
}

// NewStaged snapshots the base counter and returns an empty buffer over base.
func NewStaged(ctx context.Context, base ports.Reader) (*Staged, error) {
	last, err := base.LastTokenID(ctx)
	if err != nil {
		return nil, err
	}
	return &Staged{
		base:     base,
		baseLast: last,
		last:     last,
		aliases:  make(map[id.PrimaryAddress]id.SecondaryAddress),
		metadata: make(map[id.TokenID]*models.TokenMetadata),
		owners:   make(map[id.TokenID]id.PrimaryAddress),
	}, nil
}

func (s *Staged) LastTokenID(_ context.Context) (id.TokenID, error) {
	return s.last, nil
}

func (s *Staged) FindAlias(ctx context.Context, primary id.PrimaryAddress) (id.SecondaryAddress, error) {
	if v, ok := s.aliases[primary]; ok {
		return v, nil
	}
	return s.base.FindAlias(ctx, primary)
}

func (s *Staged) FindTokenMetadata(ctx context.Context, tokenID id.TokenID) (*models.TokenMetadata, error) {
	if md, ok := s.metadata[tokenID]; ok {
		return cloneMetadata(md), nil
	}
	if tokenID > s.baseLast {
		return nil, sentinel.ErrNotFound
	}
	return s.base.FindTokenMetadata(ctx, tokenID)
}

func (s *Staged) FindOwner(ctx context.Context, tokenID id.TokenID) (id.PrimaryAddress, error) {
	if owner, ok := s.owners[tokenID]; ok {
		return owner, nil
	}
	if tokenID > s.baseLast {
		return "", sentinel.ErrNotFound
	}
	return s.base.FindOwner(ctx, tokenID)
}

// SetLastTokenID advances the counter. The counter never moves backwards.
func (s *Staged) SetLastTokenID(_ context.Context, tokenID id.TokenID) error {
	if tokenID <= s.last {
		return fmt.Errorf("counter %d cannot move to %d: %w", s.last, tokenID, sentinel.ErrInvalidState)
	}
	s.last = tokenID
	return nil
}

func (s *Staged) SaveAlias(_ context.Context, primary id.PrimaryAddress, secondary id.SecondaryAddress) error {
	if primary.IsZero() {
		return fmt.Errorf("empty primary address: %w", sentinel.ErrInvalidState)
	}
	s.aliases[primary] = secondary
	return nil
}

// SaveTokenMetadata records metadata for an issued id. Metadata is write-once.
func (s *Staged) SaveTokenMetadata(ctx context.Context, metadata *models.TokenMetadata) error {
	if metadata == nil {
		return fmt.Errorf("nil token metadata: %w", sentinel.ErrInvalidState)
	}
	if err := s.checkIssued(metadata.TokenID); err != nil {
		return err
	}
	if _, err := s.FindTokenMetadata(ctx, metadata.TokenID); err == nil {
		return fmt.Errorf("metadata for token %d: %w", metadata.TokenID, sentinel.ErrConflict)
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return err
	}
	s.metadata[metadata.TokenID] = cloneMetadata(metadata)
	return nil
}

// SaveOwner records the ledger entry for an issued id. Ownership never changes.
func (s *Staged) SaveOwner(ctx context.Context, tokenID id.TokenID, owner id.PrimaryAddress) error {
	if owner.IsZero() {
		return fmt.Errorf("empty owner: %w", sentinel.ErrInvalidState)
	}
	if err := s.checkIssued(tokenID); err != nil {
		return err
	}
	if _, err := s.FindOwner(ctx, tokenID); err == nil {
		return fmt.Errorf("owner for token %d: %w", tokenID, sentinel.ErrConflict)
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return err
	}
	s.owners[tokenID] = owner
	return nil
}

// Changes validates the buffer and returns its write set. Every id issued in
// this buffer must carry both metadata and an owner.
func (s *Staged) Changes() (*Changes, error) {
	c := &Changes{
		PreviousLastTokenID: s.baseLast,
		LastTokenID:         s.last,
		Aliases:             make(map[id.PrimaryAddress]id.SecondaryAddress, len(s.aliases)),
	}
	for k, v := range s.aliases {
		c.Aliases[k] = v
	}
	for tid := s.baseLast + 1; tid <= s.last; tid++ {
		md, hasMD := s.metadata[tid]
		owner, hasOwner := s.owners[tid]
		if !hasMD || !hasOwner {
			return nil, fmt.Errorf("token %d issued without metadata and owner: %w", tid, sentinel.ErrInvalidState)
		}
		c.Tokens = append(c.Tokens, StagedToken{Metadata: cloneMetadata(md), Owner: owner})
	}
	if len(c.Tokens) != len(s.metadata) || len(c.Tokens) != len(s.owners) {
		return nil, fmt.Errorf("staged tokens outside issued range: %w", sentinel.ErrInvalidState)
	}
	return c, nil
}

func (s *Staged) checkIssued(tokenID id.TokenID) error {
	if tokenID == 0 || tokenID > s.last {
		return fmt.Errorf("token %d not issued (last %d): %w", tokenID, s.last, sentinel.ErrInvalidState)
	}
	return nil
}

func cloneMetadata(md *models.TokenMetadata) *models.TokenMetadata {
	return &models.TokenMetadata{TokenID: md.TokenID, TokenInfo: md.TokenInfo.Clone()}
}
