package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/illustspace/gsr/internal/registry/models"
	id "github.com/illustspace/gsr/pkg/domain"
	dErrors "github.com/illustspace/gsr/pkg/domain-errors"
	"github.com/illustspace/gsr/pkg/platform/httputil"
	authmw "github.com/illustspace/gsr/pkg/platform/middleware/auth"
	request "github.com/illustspace/gsr/pkg/platform/middleware/request"
	"github.com/illustspace/gsr/pkg/requestcontext"
)

// Service defines the registry operations exposed over HTTP.
type Service interface {
	Mint(ctx context.Context, caller id.PrimaryAddress, claims []models.Claim) ([]*models.Receipt, error)
	CheckAliasAddress(ctx context.Context, primary id.PrimaryAddress, claimed id.SecondaryAddress) (id.SecondaryAddress, error)
	Token(ctx context.Context, tokenID id.TokenID) (*models.Token, error)
	BalanceOf(ctx context.Context, requests []models.BalanceRequest) ([]models.BalanceResponse, error)
	LastTokenID(ctx context.Context) (id.TokenID, error)
}

// Handler serves the /registry routes.
type Handler struct {
	registry     Service
	logger       *slog.Logger
	jwtValidator authmw.JWTValidator
	mintLimits   []func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithMintMiddleware runs mw on the mint route after the caller is
// authenticated.
func WithMintMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.mintLimits = append(h.mintLimits, mw...)
	}
}

func New(registry Service, logger *slog.Logger, jwtValidator authmw.JWTValidator, opts ...Option) *Handler {
	h := &Handler{
		registry:     registry,
		logger:       logger,
		jwtValidator: jwtValidator,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the registry routes. Only minting requires a caller.
func (h *Handler) Register(r chi.Router) {
	r.Route("/registry", func(r chi.Router) {
		mint := append([]func(http.Handler) http.Handler{authmw.RequireCaller(h.jwtValidator, h.logger)}, h.mintLimits...)
		r.With(mint...).Post("/mint", h.HandleMint)
		r.Get("/aliases/{primary}/verify", h.HandleVerifyAlias)
		r.Get("/tokens/{tokenID}", h.HandleGetToken)
		r.Post("/balance_of", h.HandleBalanceOf)
		r.Get("/stats", h.HandleStats)
	})
}

// HandleMint issues one receipt per claim for the authenticated caller.
func (h *Handler) HandleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		h.logger.ErrorContext(ctx, "caller missing from context despite auth middleware",
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.MintRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	receipts, err := h.registry.Mint(ctx, caller, req.ToClaims())
	if err != nil {
		h.logError(ctx, "mint failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, models.NewMintResponse(receipts))
}

// HandleVerifyAlias answers whether ?secondary= is the alias on record for
// {primary}. A mismatch answers 409 without revealing the recorded value.
func (h *Handler) HandleVerifyAlias(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	primary, err := id.ParsePrimaryAddress(chi.URLParam(r, "primary"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid primary address"))
		return
	}
	query := r.URL.Query()
	if !query.Has("secondary") {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "secondary query parameter is required"))
		return
	}
	claimed, err := id.ParseSecondaryAddress(query.Get("secondary"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid secondary address"))
		return
	}

	stored, err := h.registry.CheckAliasAddress(ctx, primary, claimed)
	if err != nil {
		h.logError(ctx, "alias verification failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &models.VerifyAliasResponse{
		PrimaryAddress:   primary.String(),
		SecondaryAddress: stored.String(),
		Verified:         true,
	})
}

func (h *Handler) HandleGetToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	tokenID, err := id.ParseTokenID(chi.URLParam(r, "tokenID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid token id"))
		return
	}

	token, err := h.registry.Token(ctx, tokenID)
	if err != nil {
		h.logError(ctx, "token lookup failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.NewTokenResponse(token))
}

func (h *Handler) HandleBalanceOf(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.BalanceOfRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	balances, err := h.registry.BalanceOf(ctx, req.ToRequests())
	if err != nil {
		h.logError(ctx, "balance_of failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.NewBalanceOfResponse(balances))
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	last, err := h.registry.LastTokenID(ctx)
	if err != nil {
		h.logError(ctx, "stats failed", request.GetRequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &models.StatsResponse{LastTokenID: uint64(last)})
}

// logError logs client-caused failures at warn and everything else at error.
func (h *Handler) logError(ctx context.Context, msg, requestID string, err error) {
	code := dErrors.CodeOf(err)
	if dErrors.ToHTTPStatus(code) < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestID,
			"code", string(code),
			"error", err,
		)
		return
	}
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestID,
		"code", string(code),
		"error", err,
	)
}
