package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/trace/noop"

	adminhandler "github.com/illustspace/gsr/internal/admin/handler"
	adminmodels "github.com/illustspace/gsr/internal/admin/models"
	adminservice "github.com/illustspace/gsr/internal/admin/service"
	adminstore "github.com/illustspace/gsr/internal/admin/store"
	jwttoken "github.com/illustspace/gsr/internal/jwt_token"
	"github.com/illustspace/gsr/internal/platform/metrics"
	ratemw "github.com/illustspace/gsr/internal/ratelimit/middleware"
	ratemodels "github.com/illustspace/gsr/internal/ratelimit/models"
	"github.com/illustspace/gsr/internal/ratelimit/store/bucket"
	registryhandler "github.com/illustspace/gsr/internal/registry/handler"
	registrymetrics "github.com/illustspace/gsr/internal/registry/metrics"
	"github.com/illustspace/gsr/internal/registry/models"
	registryservice "github.com/illustspace/gsr/internal/registry/service"
	registrystore "github.com/illustspace/gsr/internal/registry/store"
	id "github.com/illustspace/gsr/pkg/domain"
	"github.com/illustspace/gsr/pkg/platform/audit"
	"github.com/illustspace/gsr/pkg/platform/audit/publisher"
	auditmemory "github.com/illustspace/gsr/pkg/platform/audit/store/memory"
	"github.com/illustspace/gsr/pkg/testutil"
)

const (
	administrator id.PrimaryAddress = "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"
	holder        id.PrimaryAddress = "tz1aSkwEot3L2kmUvcoxzjMomb9mvBNuzFK6"
)

// RouterSuite drives the composed HTTP surface over in-memory backends.
type RouterSuite struct {
	suite.Suite
	jwt       *jwttoken.JWTService
	auditLog  *auditmemory.InMemoryStore
	registry  *registrystore.InMemory
	healthErr error
	handler   http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	s.jwt = jwttoken.NewJWTService("test-signing-key", "gsr", "gsr-api")
	validator := jwttoken.NewJWTServiceAdapter(s.jwt)
	s.auditLog = auditmemory.NewInMemoryStore()
	auditPublisher := publisher.NewPublisher(s.auditLog, publisher.WithLogger(logger))

	admins, err := adminservice.New(adminstore.NewInMemory(),
		adminservice.WithLogger(logger),
		adminservice.WithAuditPublisher(auditPublisher),
		adminservice.WithAuditReader(auditPublisher),
		adminservice.WithMintPolicy(adminmodels.MintPolicyOpen),
	)
	s.Require().NoError(err)
	s.Require().NoError(admins.Bootstrap(ctx, administrator))

	s.registry = registrystore.NewInMemory()
	registry, err := registryservice.New(s.registry, s.registry,
		registryservice.WithLogger(logger),
		registryservice.WithMetrics(registrymetrics.New(reg)),
		registryservice.WithAuditPublisher(auditPublisher),
		registryservice.WithMintAuthorizer(admins),
	)
	s.Require().NoError(err)

	s.healthErr = nil
	s.handler = NewRouter(Options{
		Logger:         logger,
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
		TracerProvider: noop.NewTracerProvider(),
		RequestTimeout: 5 * time.Second,
		HealthChecks: map[string]HealthCheck{
			"store": func(context.Context) error { return s.healthErr },
		},
	},
		registryhandler.New(registry, logger, validator,
			registryhandler.WithMintMiddleware(ratemw.New(bucket.NewInMemoryBucketStore(), logger).
				Limit(ratemodels.Policy{Name: "mint", Limit: 3, Window: time.Minute}, ratemw.ByCaller)),
		),
		adminhandler.New(admins, logger, validator),
	)
}

func (s *RouterSuite) bearer(req *http.Request, caller id.PrimaryAddress) *http.Request {
	token, err := s.jwt.GenerateAccessToken(caller, time.Hour)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func (s *RouterSuite) mint(caller id.PrimaryAddress, secondaries ...string) []uint64 {
	claims := make([]models.ClaimRequest, 0, len(secondaries))
	for _, sec := range secondaries {
		claims = append(claims, models.ClaimRequest{SecondaryAddress: sec})
	}
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/registry/mint", models.MintRequest{Claims: claims})
	rr := testutil.DoRequest(s.handler, s.bearer(req, caller))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	return testutil.UnmarshalResponse[models.MintResponse](s.T(), rr).TokenIDs
}

func (s *RouterSuite) verify(primary id.PrimaryAddress, secondary string) int {
	path := "/registry/aliases/" + primary.String() + "/verify?secondary=" + url.QueryEscape(secondary)
	return testutil.DoRequest(s.handler, testutil.NewRequest(s.T(), http.MethodGet, path)).Code
}

func (s *RouterSuite) TestMintThenVerify() {
	s.Equal([]uint64{1}, s.mint(holder, "0xAAA"))
	s.Equal([]uint64{2, 3}, s.mint(holder, "0xBBB", "0xCCC"))

	s.Equal(http.StatusOK, s.verify(holder, "0xCCC"))
	s.Equal(http.StatusConflict, s.verify(holder, "0xAAA"))
	s.Equal(http.StatusNotFound, s.verify(administrator, "0xCCC"))

	rr := testutil.DoRequest(s.handler, testutil.NewRequest(s.T(), http.MethodGet, "/registry/stats"))
	testutil.AssertJSONContains(s.T(), rr, "last_token_id", float64(3))

	events, err := s.auditLog.ListBySubject(context.Background(), holder.String())
	s.Require().NoError(err)
	s.Len(events, 3)
	for _, e := range events {
		s.Equal(string(audit.EventAliasMinted), e.Action)
		s.NotEmpty(e.RequestID)
	}
}

func (s *RouterSuite) TestMintIsRateLimitedPerCaller() {
	for range 3 {
		s.mint(holder, "0xAAA")
	}
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/registry/mint",
		models.MintRequest{Claims: []models.ClaimRequest{{SecondaryAddress: "0xAAA"}}})
	rr := testutil.DoRequest(s.handler, s.bearer(req, holder))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusTooManyRequests, "rate_limited")
	s.NotEmpty(rr.Header().Get("Retry-After"))

	s.Equal([]uint64{4}, s.mint(administrator, "0xBBB"))
}

func (s *RouterSuite) TestMintRequiresBearerToken() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/registry/mint", `{"claims":[{"secondary_address":"0x1"}]}`)
	rr := testutil.DoRequest(s.handler, req)
	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)

	last, err := s.registry.LastTokenID(context.Background())
	s.Require().NoError(err)
	s.Equal(id.TokenID(0), last)
}

func (s *RouterSuite) TestAdminPolicyHandoverGatesMinting() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPut, "/admin/administrator", `{"administrator":"`+holder.String()+`"}`)
	rr := testutil.DoRequest(s.handler, s.bearer(req, holder))
	testutil.AssertStatus(s.T(), rr, http.StatusForbidden)

	req = testutil.NewRequestWithBody(s.T(), http.MethodPut, "/admin/administrator", `{"administrator":"`+holder.String()+`"}`)
	rr = testutil.DoRequest(s.handler, s.bearer(req, administrator))
	testutil.AssertStatusOK(s.T(), rr)

	rr = testutil.DoRequest(s.handler, testutil.NewRequest(s.T(), http.MethodGet, "/admin/administrator"))
	testutil.AssertJSONContains(s.T(), rr, "administrator", holder.String())
}

func (s *RouterSuite) TestAdministratorReadsAuditTrail() {
	s.mint(holder, "0xAAA")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/admin/audit/"+holder.String())
	rr := testutil.DoRequest(s.handler, s.bearer(req, administrator))
	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[adminmodels.AuditTrailResponse](s.T(), rr)
	s.Require().Len(resp.Events, 1)
	s.Equal(string(audit.EventAliasMinted), resp.Events[0].Action)
	s.Equal("0xAAA", resp.Events[0].Detail)

	req = testutil.NewRequest(s.T(), http.MethodGet, "/admin/audit/"+holder.String())
	rr = testutil.DoRequest(s.handler, s.bearer(req, holder))
	testutil.AssertStatus(s.T(), rr, http.StatusForbidden)
}

func (s *RouterSuite) TestRequestIDEchoed() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/registry/stats")
	req.Header.Set("X-Request-ID", "trace-me")
	rr := testutil.DoRequest(s.handler, req)
	s.Equal("trace-me", rr.Header().Get("X-Request-ID"))
}

func (s *RouterSuite) TestHealthz() {
	rr := testutil.DoRequest(s.handler, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "status", "ok")

	s.healthErr = errors.New("connection refused")
	rr = testutil.DoRequest(s.handler, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
	testutil.AssertStatus(s.T(), rr, http.StatusServiceUnavailable)
	testutil.AssertJSONContains(s.T(), rr, "status", "degraded")
}

func (s *RouterSuite) TestMetricsEndpoint() {
	s.mint(holder, "0x1")

	rr := testutil.DoRequest(s.handler, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(s.T(), rr)
	body := rr.Body.String()
	s.Contains(body, "gsr_http_requests_total")
	s.Contains(body, `route="/registry/mint"`)
	s.Contains(body, "alias_registry_tokens_minted_total")
}
