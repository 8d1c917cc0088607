// Package store persists the administrator capability's state: the current
// administrator and the contract metadata.
package store

import (
	"context"
	"sync"

	"github.com/illustspace/gsr/internal/admin/models"
	id "github.com/illustspace/gsr/pkg/domain"
	"github.com/illustspace/gsr/pkg/platform/sentinel"
)

type InMemory struct {
	mu            sync.RWMutex
	administrator id.PrimaryAddress
	metadata      models.ContractMetadata
}

func NewInMemory() *InMemory {
	return &InMemory{metadata: models.ContractMetadata{}}
}

// Administrator returns sentinel.ErrNotFound until one is set.
func (s *InMemory) Administrator(_ context.Context) (id.PrimaryAddress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.administrator.IsZero() {
		return "", sentinel.ErrNotFound
	}
	return s.administrator, nil
}

// EnsureAdministrator sets the administrator only if none is set yet.
func (s *InMemory) EnsureAdministrator(_ context.Context, admin id.PrimaryAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.administrator.IsZero() {
		s.administrator = admin
	}
	return nil
}

// ReplaceAdministrator swaps expected for next, failing with
// sentinel.ErrConflict if the administrator is no longer expected.
func (s *InMemory) ReplaceAdministrator(_ context.Context, expected, next id.PrimaryAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.administrator != expected {
		return sentinel.ErrConflict
	}
	s.administrator = next
	return nil
}

func (s *InMemory) Metadata(_ context.Context) (models.ContractMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metadata.Clone(), nil
}

func (s *InMemory) SetMetadata(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metadata[key] = append([]byte(nil), value...)
	return nil
}
