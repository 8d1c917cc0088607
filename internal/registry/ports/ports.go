//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

package ports

import (
	"context"

	"github.com/illustspace/gsr/internal/registry/models"
	id "github.com/illustspace/gsr/pkg/domain"
	audit "github.com/illustspace/gsr/pkg/platform/audit"
)

// Reader exposes the four registry structures for reads. Misses are reported
// with sentinel.ErrNotFound.
type Reader interface {
	LastTokenID(ctx context.Context) (id.TokenID, error)
	FindAlias(ctx context.Context, primary id.PrimaryAddress) (id.SecondaryAddress, error)
	FindTokenMetadata(ctx context.Context, tokenID id.TokenID) (*models.TokenMetadata, error)
	FindOwner(ctx context.Context, tokenID id.TokenID) (id.PrimaryAddress, error)
}

// Store is the transactional view handed to RunInTx callbacks. Writes are
// visible to later reads in the same callback and reach the backing store
// only when the callback returns nil.
type Store interface {
	Reader
	SetLastTokenID(ctx context.Context, tokenID id.TokenID) error
	SaveAlias(ctx context.Context, primary id.PrimaryAddress, secondary id.SecondaryAddress) error
	SaveTokenMetadata(ctx context.Context, metadata *models.TokenMetadata) error
	SaveOwner(ctx context.Context, tokenID id.TokenID, owner id.PrimaryAddress) error
}

// StoreTx runs fn atomically: all of its writes commit, or none do.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

// MintAuthorizer is consulted once per claim before it is applied.
type MintAuthorizer interface {
	AuthorizeMint(ctx context.Context, caller id.PrimaryAddress) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
