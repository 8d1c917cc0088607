package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/illustspace/gsr/internal/registry/metrics"
	id "github.com/illustspace/gsr/pkg/domain"
	dErrors "github.com/illustspace/gsr/pkg/domain-errors"
	"github.com/illustspace/gsr/pkg/platform/sentinel"
)

// CheckAliasAddress confirms that claimed is the secondary address currently
// recorded for primary and returns the stored value. A primary with no record
// fails with CodeNotFound; a different stored value fails with
// CodeVerificationMismatch and is not disclosed.
func (s *Service) CheckAliasAddress(ctx context.Context, primary id.PrimaryAddress, claimed id.SecondaryAddress) (_ id.SecondaryAddress, err error) {
	ctx, span := s.tracer.Start(ctx, "registry.CheckAliasAddress")
	span.SetAttributes(attribute.String("registry.primary", primary.String()))
	defer func() { endSpan(span, err) }()

	stored, err := s.store.FindAlias(ctx, primary)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.ObserveAliasCheck(metrics.CheckMiss)
			return "", dErrors.New(dErrors.CodeNotFound, "no alias recorded for address")
		}
		s.metrics.ObserveAliasCheck(metrics.CheckError)
		return "", translateStoreErr(err, "failed to load alias")
	}
	if stored != claimed {
		s.metrics.ObserveAliasCheck(metrics.CheckMismatch)
		return "", dErrors.New(dErrors.CodeVerificationMismatch, "claimed alias does not match the recorded alias")
	}
	s.metrics.ObserveAliasCheck(metrics.CheckMatch)
	return stored, nil
}

// IsLookupMiss reports whether err is the no-record outcome of CheckAliasAddress.
func IsLookupMiss(err error) bool {
	return dErrors.HasCode(err, dErrors.CodeNotFound)
}

// IsVerificationMismatch reports whether err is the mismatch outcome of CheckAliasAddress.
func IsVerificationMismatch(err error) bool {
	return dErrors.HasCode(err, dErrors.CodeVerificationMismatch)
}
