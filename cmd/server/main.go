package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	adminhandler "github.com/illustspace/gsr/internal/admin/handler"
	adminmodels "github.com/illustspace/gsr/internal/admin/models"
	adminservice "github.com/illustspace/gsr/internal/admin/service"
	httpapi "github.com/illustspace/gsr/internal/http"
	jwttoken "github.com/illustspace/gsr/internal/jwt_token"
	"github.com/illustspace/gsr/internal/platform/config"
	"github.com/illustspace/gsr/internal/platform/httpserver"
	"github.com/illustspace/gsr/internal/platform/logger"
	"github.com/illustspace/gsr/internal/platform/metrics"
	"github.com/illustspace/gsr/internal/platform/tracing"
	ratemw "github.com/illustspace/gsr/internal/ratelimit/middleware"
	ratemodels "github.com/illustspace/gsr/internal/ratelimit/models"
	registryhandler "github.com/illustspace/gsr/internal/registry/handler"
	registrymetrics "github.com/illustspace/gsr/internal/registry/metrics"
	registryservice "github.com/illustspace/gsr/internal/registry/service"
	id "github.com/illustspace/gsr/pkg/domain"
	"github.com/illustspace/gsr/pkg/platform/audit"
	auditkafka "github.com/illustspace/gsr/pkg/platform/audit/kafka"
	"github.com/illustspace/gsr/pkg/platform/audit/publisher"
	"github.com/illustspace/gsr/pkg/platform/circuit"
)

// main wires configuration, backends and the HTTP surface. Business logic
// lives in the internal service packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	log, err := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) (err error) {
	if cfg.UsesDevSigningKey() {
		log.Warn("using the development JWT signing key; set GSR_JWT_SIGNING_KEY in production")
	}
	policy, err := adminmodels.ParseMintPolicy(cfg.Admin.MintPolicy)
	if err != nil {
		return err
	}
	var bootstrapAdmin id.PrimaryAddress
	if cfg.Admin.Administrator != "" {
		if bootstrapAdmin, err = id.ParsePrimaryAddress(cfg.Admin.Administrator); err != nil {
			return fmt.Errorf("GSR_ADMINISTRATOR: %w", err)
		}
	}

	tp, err := tracing.NewProvider(cfg.Tracing, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, tp.Shutdown(context.Background()))
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	stores, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, stores.close())
	}()

	auditSink, closeSink, err := openAuditSink(ctx, cfg, stores.audit, log)
	if err != nil {
		return err
	}
	defer closeSink()
	auditPublisher := publisher.NewPublisher(auditSink,
		publisher.WithAsyncBuffer(cfg.Audit.AsyncBuffer),
		publisher.WithLogger(log),
	)

	admins, err := adminservice.New(stores.admin,
		adminservice.WithLogger(log),
		adminservice.WithAuditPublisher(auditPublisher),
		adminservice.WithAuditReader(auditPublisher),
		adminservice.WithMintPolicy(policy),
	)
	if err != nil {
		return err
	}
	if err := admins.Bootstrap(ctx, bootstrapAdmin); err != nil {
		return fmt.Errorf("bootstrap administrator: %w", err)
	}

	registry, err := registryservice.New(stores.registry, stores.registry,
		registryservice.WithLogger(log),
		registryservice.WithMetrics(registrymetrics.New(reg)),
		registryservice.WithAuditPublisher(auditPublisher),
		registryservice.WithMintAuthorizer(admins),
		registryservice.WithTracer(tp.Tracer("github.com/illustspace/gsr/internal/registry/service")),
	)
	if err != nil {
		return err
	}

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	validator := jwttoken.NewJWTServiceAdapter(jwtService)

	limits := ratemw.New(stores.limiter, log, ratemw.WithDisabled(cfg.RateLimit.Disabled))
	mintPolicy := ratemodels.Policy{Name: "mint", Limit: cfg.RateLimit.MintLimit, Window: cfg.RateLimit.MintWindow}

	router := httpapi.NewRouter(httpapi.Options{
		Logger:         log,
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
		TracerProvider: tp.TracerProvider(),
		RequestTimeout: cfg.Server.RequestTimeout,
		HealthChecks:   stores.health,
	},
		registryhandler.New(registry, log, validator,
			registryhandler.WithMintMiddleware(limits.Limit(mintPolicy, ratemw.ByCaller)),
		),
		adminhandler.New(admins, log, validator),
	)
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting alias registry",
			"addr", cfg.Server.Addr,
			"backend", cfg.Store.Backend,
			"mint_policy", string(policy),
		)
		return httpserver.Run(gctx, srv, nil, cfg.Server.ShutdownTimeout, log)
	})
	g.Go(func() error {
		<-gctx.Done()
		// Drain buffered audit events once the server stops taking requests.
		auditPublisher.Close()
		return nil
	})
	return g.Wait()
}

// openAuditSink returns the store events are appended to. With Kafka brokers
// configured, events go to both the backend store and the topic.
func openAuditSink(ctx context.Context, cfg config.Config, base audit.Store, log *slog.Logger) (audit.Store, func(), error) {
	if len(cfg.Audit.KafkaBrokers) == 0 {
		return base, func() {}, nil
	}
	client, err := auditkafka.NewClient(ctx, cfg.Audit.KafkaBrokers, cfg.Audit.ClientID)
	if err != nil {
		return nil, nil, fmt.Errorf("connect audit kafka: %w", err)
	}
	sink := auditkafka.NewSink(client, cfg.Audit.KafkaTopic, log)
	log.Info("streaming audit events", "brokers", cfg.Audit.KafkaBrokers, "topic", cfg.Audit.KafkaTopic)
	guarded := audit.NewGuarded(sink, circuit.New("audit-kafka"), log)
	return audit.Fanout{base, guarded}, client.Close, nil
}
