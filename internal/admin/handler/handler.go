package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/illustspace/gsr/internal/admin/models"
	id "github.com/illustspace/gsr/pkg/domain"
	"github.com/illustspace/gsr/pkg/platform/audit"
	dErrors "github.com/illustspace/gsr/pkg/domain-errors"
	"github.com/illustspace/gsr/pkg/platform/httputil"
	authmw "github.com/illustspace/gsr/pkg/platform/middleware/auth"
	request "github.com/illustspace/gsr/pkg/platform/middleware/request"
	"github.com/illustspace/gsr/pkg/requestcontext"
)

// Service defines the administrator operations exposed over HTTP.
type Service interface {
	Administrator(ctx context.Context) (id.PrimaryAddress, error)
	SetAdministrator(ctx context.Context, caller, next id.PrimaryAddress) error
	Metadata(ctx context.Context) (models.ContractMetadata, error)
	SetMetadata(ctx context.Context, caller id.PrimaryAddress, key string, value []byte) error
	AuditTrail(ctx context.Context, caller, subject id.PrimaryAddress) ([]audit.Event, error)
}

type Handler struct {
	admin        Service
	logger       *slog.Logger
	jwtValidator authmw.JWTValidator
}

func New(admin Service, logger *slog.Logger, jwtValidator authmw.JWTValidator) *Handler {
	return &Handler{
		admin:        admin,
		logger:       logger,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the /admin routes. Reads are public; writes need a caller.
func (h *Handler) Register(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/administrator", h.HandleGetAdministrator)
		r.Get("/metadata", h.HandleGetMetadata)

		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireCaller(h.jwtValidator, h.logger))
			r.Put("/administrator", h.HandleSetAdministrator)
			r.Put("/metadata", h.HandleSetMetadata)
			r.Get("/audit/{subject}", h.HandleAuditTrail)
		})
	})
}

func (h *Handler) HandleGetAdministrator(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	admin, err := h.admin.Administrator(ctx)
	if err != nil {
		h.logError(ctx, "get administrator failed", request.GetRequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &models.AdministratorResponse{Administrator: admin.String()})
}

func (h *Handler) HandleSetAdministrator(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	caller, ok := h.requireCaller(w, ctx, requestID)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.SetAdministratorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.admin.SetAdministrator(ctx, caller, req.Address()); err != nil {
		h.logError(ctx, "set administrator failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &models.AdministratorResponse{Administrator: req.Address().String()})
}

func (h *Handler) HandleGetMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	md, err := h.admin.Metadata(ctx)
	if err != nil {
		h.logError(ctx, "get metadata failed", request.GetRequestID(ctx), err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.NewMetadataResponse(md))
}

func (h *Handler) HandleSetMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	caller, ok := h.requireCaller(w, ctx, requestID)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.SetMetadataRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.admin.SetMetadata(ctx, caller, req.Key, []byte(req.Value)); err != nil {
		h.logError(ctx, "set metadata failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAuditTrail lists the audit events recorded about {subject}.
func (h *Handler) HandleAuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	caller, ok := h.requireCaller(w, ctx, requestID)
	if !ok {
		return
	}
	subject, err := id.ParsePrimaryAddress(chi.URLParam(r, "subject"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid subject address"))
		return
	}

	events, err := h.admin.AuditTrail(ctx, caller, subject)
	if err != nil {
		h.logError(ctx, "audit trail failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.NewAuditTrailResponse(subject, events))
}

func (h *Handler) requireCaller(w http.ResponseWriter, ctx context.Context, requestID string) (id.PrimaryAddress, bool) {
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		h.logger.ErrorContext(ctx, "caller missing from context despite auth middleware",
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return "", false
	}
	return caller, true
}

func (h *Handler) logError(ctx context.Context, msg, requestID string, err error) {
	code := dErrors.CodeOf(err)
	level := slog.LevelError
	if dErrors.ToHTTPStatus(code) < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestID,
		"code", string(code),
		"error", err,
	)
}
