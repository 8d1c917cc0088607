// Package service implements the administrator capability: a single
// administrator address gating contract metadata updates, administrator
// handover and, under the admin mint policy, minting.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/illustspace/gsr/internal/admin/models"
	"github.com/illustspace/gsr/internal/admin/ports"
	id "github.com/illustspace/gsr/pkg/domain"
	dErrors "github.com/illustspace/gsr/pkg/domain-errors"
	"github.com/illustspace/gsr/pkg/platform/audit"
	"github.com/illustspace/gsr/pkg/platform/audit/publisher"
	"github.com/illustspace/gsr/pkg/platform/sentinel"
	"github.com/illustspace/gsr/pkg/requestcontext"
)

const auditTrailAction = "audit_trail_read"

type Service struct {
	store          ports.Store
	policy         models.MintPolicy
	auditPublisher ports.AuditPublisher
	auditReader    ports.AuditReader
	logger         *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithAuditReader enables AuditTrail.
func WithAuditReader(reader ports.AuditReader) Option {
	return func(s *Service) {
		s.auditReader = reader
	}
}

// WithMintPolicy selects who AuthorizeMint lets through. Defaults to open.
func WithMintPolicy(policy models.MintPolicy) Option {
	return func(s *Service) {
		s.policy = policy
	}
}

func New(store ports.Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("admin store is required")
	}
	s := &Service{
		store:  store,
		policy: models.MintPolicyOpen,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Bootstrap installs the initial administrator if none is recorded yet.
// An existing administrator is left untouched.
func (s *Service) Bootstrap(ctx context.Context, admin id.PrimaryAddress) error {
	if admin.IsZero() {
		return nil
	}
	if err := s.store.EnsureAdministrator(ctx, admin); err != nil {
		return translateStoreErr(err, "failed to bootstrap administrator")
	}
	return nil
}

func (s *Service) Administrator(ctx context.Context) (id.PrimaryAddress, error) {
	admin, err := s.store.Administrator(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", dErrors.New(dErrors.CodeNotFound, "no administrator configured")
	}
	if err != nil {
		return "", translateStoreErr(err, "failed to read administrator")
	}
	return admin, nil
}

// SetAdministrator hands the capability over to next. Only the current
// administrator may call it.
func (s *Service) SetAdministrator(ctx context.Context, caller, next id.PrimaryAddress) error {
	if next.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "administrator is required")
	}
	current, err := s.requireAdministrator(ctx, caller, string(audit.EventAdministratorChanged))
	if err != nil {
		return err
	}
	if err := s.store.ReplaceAdministrator(ctx, current, next); err != nil {
		return translateStoreErr(err, "failed to set administrator")
	}

	s.logger.InfoContext(ctx, "administrator changed",
		"previous", current.String(),
		"administrator", next.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emitAudit(ctx, audit.Event{
		Subject: next.String(),
		Action:  string(audit.EventAdministratorChanged),
		Detail:  current.String(),
		ActorID: caller.String(),
	})
	return nil
}

func (s *Service) Metadata(ctx context.Context) (models.ContractMetadata, error) {
	md, err := s.store.Metadata(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "failed to read contract metadata")
	}
	return md, nil
}

// SetMetadata writes one contract metadata entry. Administrator only.
func (s *Service) SetMetadata(ctx context.Context, caller id.PrimaryAddress, key string, value []byte) error {
	if err := models.ValidateMetadataKey(key); err != nil {
		return err
	}
	if _, err := s.requireAdministrator(ctx, caller, string(audit.EventContractMetadataUpdated)); err != nil {
		return err
	}
	if err := s.store.SetMetadata(ctx, key, value); err != nil {
		return translateStoreErr(err, "failed to set contract metadata")
	}

	s.logger.InfoContext(ctx, "contract metadata updated",
		"key", key,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emitAudit(ctx, audit.Event{
		Subject: caller.String(),
		Action:  string(audit.EventContractMetadataUpdated),
		Detail:  key,
	})
	return nil
}

// AuditTrail returns the events recorded about subject. Administrator only.
func (s *Service) AuditTrail(ctx context.Context, caller, subject id.PrimaryAddress) ([]audit.Event, error) {
	if _, err := s.requireAdministrator(ctx, caller, auditTrailAction); err != nil {
		return nil, err
	}
	if s.auditReader == nil {
		return nil, dErrors.New(dErrors.CodeUnavailable, "audit trail is not available")
	}
	events, err := s.auditReader.List(ctx, subject.String())
	if errors.Is(err, publisher.ErrListUnsupported) || errors.Is(err, audit.ErrNoReadableStore) {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "audit trail is not available")
	}
	if err != nil {
		return nil, translateStoreErr(err, "failed to read audit trail")
	}
	return events, nil
}

// AuthorizeMint is the gate the registry consults before applying each claim.
func (s *Service) AuthorizeMint(ctx context.Context, caller id.PrimaryAddress) error {
	if s.policy != models.MintPolicyAdmin {
		return nil
	}
	admin, err := s.store.Administrator(ctx)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeForbidden, "minting is restricted to the administrator")
	case err != nil:
		return translateStoreErr(err, "failed to read administrator")
	case admin != caller:
		return dErrors.New(dErrors.CodeForbidden, "minting is restricted to the administrator")
	}
	return nil
}

func (s *Service) requireAdministrator(ctx context.Context, caller id.PrimaryAddress, attempted string) (id.PrimaryAddress, error) {
	if caller.IsZero() {
		return "", dErrors.New(dErrors.CodeUnauthorized, "caller identity is required")
	}
	current, err := s.Administrator(ctx)
	if err != nil && !dErrors.HasCode(err, dErrors.CodeNotFound) {
		return "", err
	}
	if current.IsZero() || current != caller {
		s.logger.WarnContext(ctx, "admin action denied",
			"caller", caller.String(),
			"action", attempted,
			"request_id", requestcontext.RequestID(ctx),
		)
		s.emitAudit(ctx, audit.Event{
			Subject: caller.String(),
			Action:  string(audit.EventAdminActionDenied),
			Detail:  attempted,
			Reason:  "caller is not the administrator",
		})
		return "", dErrors.New(dErrors.CodeForbidden, "caller is not the administrator")
	}
	return current, nil
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}

func translateStoreErr(err error, msg string) error {
	var coded *dErrors.Error
	switch {
	case errors.As(err, &coded):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "admin operation aborted")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "administrator changed concurrently, retry the request")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "admin store unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}
