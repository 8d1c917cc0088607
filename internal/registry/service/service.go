// Package service implements the alias registry: minting receipt tokens that
// link a primary-chain account to a declared secondary-chain address, and the
// verifying read over those links.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/illustspace/gsr/internal/registry/metrics"
	"github.com/illustspace/gsr/internal/registry/ports"
	dErrors "github.com/illustspace/gsr/pkg/domain-errors"
	"github.com/illustspace/gsr/pkg/platform/sentinel"
)

const tracerName = "github.com/illustspace/gsr/internal/registry/service"

// Service orchestrates registry reads and the atomic mint transaction.
type Service struct {
	store          ports.Reader
	tx             ports.StoreTx
	authorizer     ports.MintAuthorizer
	auditPublisher ports.AuditPublisher
	metrics        *metrics.Metrics
	logger         *slog.Logger
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMintAuthorizer installs the gate consulted before each claim is applied.
// Without one every authenticated caller may mint.
func WithMintAuthorizer(authorizer ports.MintAuthorizer) Option {
	return func(s *Service) {
		s.authorizer = authorizer
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service over a reader for views and a transactional
// boundary for mints. Both are usually the same backend.
func New(store ports.Reader, tx ports.StoreTx, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("registry store is required")
	}
	if tx == nil {
		return nil, errors.New("registry transaction runner is required")
	}
	s := &Service{
		store:  store,
		tx:     tx,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s, nil
}

// translateStoreErr maps store and infrastructure failures to domain codes.
// Errors that already carry a code pass through.
func translateStoreErr(err error, msg string) error {
	var coded *dErrors.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &coded):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "registry operation aborted")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "registry was modified concurrently, retry the request")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "registry store unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
