//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

package ports

import (
	"context"

	"github.com/illustspace/gsr/internal/admin/models"
	id "github.com/illustspace/gsr/pkg/domain"
	"github.com/illustspace/gsr/pkg/platform/audit"
)

// Store persists the administrator and contract metadata.
type Store interface {
	Administrator(ctx context.Context) (id.PrimaryAddress, error)
	EnsureAdministrator(ctx context.Context, admin id.PrimaryAddress) error
	ReplaceAdministrator(ctx context.Context, expected, next id.PrimaryAddress) error
	Metadata(ctx context.Context) (models.ContractMetadata, error)
	SetMetadata(ctx context.Context, key string, value []byte) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// AuditReader lists recorded events about a subject.
type AuditReader interface {
	List(ctx context.Context, subject string) ([]audit.Event, error)
}
