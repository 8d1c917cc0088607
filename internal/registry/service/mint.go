package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/illustspace/gsr/internal/registry/metrics"
	"github.com/illustspace/gsr/internal/registry/models"
	"github.com/illustspace/gsr/internal/registry/ports"
	id "github.com/illustspace/gsr/pkg/domain"
	dErrors "github.com/illustspace/gsr/pkg/domain-errors"
	audit "github.com/illustspace/gsr/pkg/platform/audit"
	"github.com/illustspace/gsr/pkg/requestcontext"
)

// Mint issues one receipt token per claim, in order, recording the caller as
// owner and the claim's secondary address as the caller's current alias.
// The batch is atomic: on any error no token is issued and no alias changes.
func (s *Service) Mint(ctx context.Context, caller id.PrimaryAddress, claims []models.Claim) (receipts []*models.Receipt, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "registry.Mint")
	span.SetAttributes(
		attribute.String("registry.caller", caller.String()),
		attribute.Int("registry.claims", len(claims)),
	)
	defer func() { endSpan(span, err) }()

	if err := validateMint(caller, claims); err != nil {
		s.metrics.ObserveMint(metrics.OutcomeRejected, 0, 0, start)
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, store ports.Store) error {
		issued := make([]*models.Receipt, 0, len(claims))
		for i, claim := range claims {
			receipt, err := s.applyClaim(ctx, store, caller, claim)
			if err != nil {
				if dErrors.HasCode(err, dErrors.CodeForbidden) {
					return err
				}
				return fmt.Errorf("claim %d: %w", i, err)
			}
			issued = append(issued, receipt)
		}
		receipts = issued
		return nil
	})
	if err != nil {
		receipts = nil
		err = translateStoreErr(err, "failed to mint alias tokens")
		s.recordMintFailure(ctx, caller, len(claims), err, start)
		return nil, err
	}

	last := receipts[len(receipts)-1].TokenID
	span.SetAttributes(attribute.Int64("registry.last_token_id", int64(last)))
	s.metrics.ObserveMint(metrics.OutcomeSuccess, len(receipts), uint64(last), start)
	if s.logger != nil {
		s.logger.InfoContext(ctx, "alias tokens minted",
			"caller", caller.String(),
			"tokens", len(receipts),
			"first_token_id", receipts[0].TokenID.String(),
			"last_token_id", last.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	for _, r := range receipts {
		s.emitAudit(ctx, audit.Event{
			Subject: r.Owner.String(),
			Action:  string(audit.EventAliasMinted),
			TokenID: uint64(r.TokenID),
			Detail:  r.SecondaryAddress.String(),
		})
	}
	return receipts, nil
}

func validateMint(caller id.PrimaryAddress, claims []models.Claim) error {
	if caller.IsZero() {
		return dErrors.New(dErrors.CodeUnauthorized, "caller address is required")
	}
	if len(claims) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "at least one claim is required")
	}
	if len(claims) > models.MaxClaimsPerBatch {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("at most %d claims per request", models.MaxClaimsPerBatch))
	}
	for i, claim := range claims {
		if _, err := id.ParseSecondaryAddress(claim.SecondaryAddress.String()); err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("claim %d: invalid secondary address", i))
		}
	}
	return nil
}

// applyClaim performs the four registry writes for one claim against the
// transaction's store. The claim's metadata is accepted but the stored token
// info is always the fixed set.
func (s *Service) applyClaim(ctx context.Context, store ports.Store, caller id.PrimaryAddress, claim models.Claim) (*models.Receipt, error) {
	if s.authorizer != nil {
		if err := s.authorizer.AuthorizeMint(ctx, caller); err != nil {
			return nil, err
		}
	}

	last, err := store.LastTokenID(ctx)
	if err != nil {
		return nil, err
	}
	tokenID := last.Next()
	if tokenID == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "token id space exhausted")
	}
	if err := store.SetLastTokenID(ctx, tokenID); err != nil {
		return nil, err
	}
	if err := store.SaveAlias(ctx, caller, claim.SecondaryAddress); err != nil {
		return nil, err
	}
	md, err := models.NewTokenMetadata(tokenID)
	if err != nil {
		return nil, err
	}
	if err := store.SaveTokenMetadata(ctx, md); err != nil {
		return nil, err
	}
	if err := store.SaveOwner(ctx, tokenID, caller); err != nil {
		return nil, err
	}
	return &models.Receipt{TokenID: tokenID, Owner: caller, SecondaryAddress: claim.SecondaryAddress}, nil
}

func (s *Service) recordMintFailure(ctx context.Context, caller id.PrimaryAddress, claims int, err error, start time.Time) {
	outcome := metrics.OutcomeFailed
	if dErrors.HasCode(err, dErrors.CodeForbidden) {
		outcome = metrics.OutcomeDenied
		s.emitAudit(ctx, audit.Event{
			Subject: caller.String(),
			Action:  string(audit.EventMintDenied),
			Reason:  dErrors.Message(err),
		})
	}
	s.metrics.ObserveMint(outcome, 0, 0, start)
	if s.logger != nil {
		s.logger.WarnContext(ctx, "mint aborted",
			"caller", caller.String(),
			"claims", claims,
			"code", string(dErrors.CodeOf(err)),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

// emitAudit publishes after commit. Failures are logged and never undo the
// registry change.
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
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}
