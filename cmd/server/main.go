package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"actavc/internal/acta"
	"actavc/internal/credential"
	credentialHandler "actavc/internal/credential/handler"
	"actavc/internal/identity"
	identityHandler "actavc/internal/identity/handler"
	jwttoken "actavc/internal/jwt_token"
	"actavc/internal/localstate"
	"actavc/internal/platform/config"
	"actavc/internal/platform/database"
	"actavc/internal/platform/health"
	"actavc/internal/platform/kafka/producer"
	"actavc/internal/platform/logger"
	"actavc/internal/platform/metrics"
	"actavc/internal/platform/redis"
	"actavc/internal/platform/tracer"
	httptransport "actavc/internal/transport/http"
	"actavc/internal/vault"
	vaultHandler "actavc/internal/vault/handler"
	"actavc/internal/wallet"
	walletHandler "actavc/internal/wallet/handler"
	"actavc/migrations"
	"actavc/pkg/platform/audit"
	"actavc/pkg/platform/audit/publisher"
	kafkaAudit "actavc/pkg/platform/audit/store/kafka"
	"actavc/pkg/platform/circuit"
	"actavc/pkg/platform/middleware/request"
)

const shutdownTimeout = 15 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// infra holds the optional backends and how to release them.
type infra struct {
	state     localstate.Store
	issuances credential.IssuanceStore
	db        *database.Pool
	redis     *redis.Client
	producer  *producer.Producer
	publisher *publisher.Publisher
}

func (i *infra) close(log *slog.Logger) {
	if i.publisher != nil {
		i.publisher.Close()
	}
	if i.producer != nil {
		if err := i.producer.Close(); err != nil {
			log.Warn("closing kafka producer", "error", err)
		}
	}
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			log.Warn("closing redis", "error", err)
		}
	}
	if err := i.db.Close(); err != nil {
		log.Warn("closing database", "error", err)
	}
}

func run(log *slog.Logger) error {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("initializing actavc",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"acta_base_url", cfg.Acta.BaseURL,
	)

	checks := health.New(cfg.Environment)
	backends, err := buildInfra(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer backends.close(log)

	var emitter audit.Emitter
	if backends.publisher != nil {
		emitter = backends.publisher
	}
	auditor := audit.NewLogger(log, emitter)
	domainMetrics := metrics.New()

	deriver := identity.NewDeriver(identity.NewStateStore(backends.state),
		identity.WithLogger(log),
		identity.WithMetrics(domainMetrics),
		identity.WithAuditLogger(auditor),
	)

	sessions := jwttoken.NewJWTService(cfg.Session.SigningKey, cfg.Session.Issuer, cfg.Session.TTL)
	wallets := wallet.NewService(
		wallet.NewBridgeConnector(cfg.Wallet.BridgeURL, cfg.Wallet.Timeout),
		wallet.NewSessionStore(backends.state),
		deriver,
		sessions,
		wallet.WithLogger(log),
		wallet.WithMetrics(domainMetrics),
		wallet.WithAuditLogger(auditor),
	)

	client := acta.NewHTTPClient(acta.HTTPClientConfig{
		BaseURL:    cfg.Acta.BaseURL,
		APIKey:     cfg.Acta.APIKey,
		ContractID: cfg.Acta.ContractID,
		Timeout:    cfg.Acta.RequestTimeout,
		Breaker: circuit.New("acta",
			circuit.WithFailureThreshold(cfg.Acta.FailureThreshold),
			circuit.WithCooldown(cfg.Acta.Cooldown),
		),
		Tracer:  tracer.NewOTel("actavc/acta"),
		Metrics: acta.NewMetrics(),
		Logger:  log,
	})
	checks.RegisterCheck("acta", client.Health)

	credentials := credential.NewService(client, deriver, wallets, backends.issuances,
		credential.WithLogger(log),
		credential.WithMetrics(domainMetrics),
		credential.WithAuditLogger(auditor),
	)
	vaults := vault.NewService(client, deriver, wallets,
		vault.WithLogger(log),
		vault.WithMetrics(domainMetrics),
		vault.WithAuditLogger(auditor),
	)

	walletRoutes := walletHandler.New(wallets, log)
	identityRoutes := identityHandler.New(deriver, log)
	credentialRoutes := credentialHandler.New(credentials, log)
	vaultRoutes := vaultHandler.New(vaults, log)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         log,
		Sessions:       jwttoken.NewJWTServiceAdapter(sessions),
		RequestMetrics: request.NewMetrics(),
		MetricsHandler: promhttp.Handler(),
	},
		[]httptransport.PublicRoutes{checks, walletRoutes, identityRoutes, credentialRoutes},
		[]httptransport.ProtectedRoutes{walletRoutes, identityRoutes, credentialRoutes, vaultRoutes},
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if backends.redis != nil {
		g.Go(func() error {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					backends.redis.RecordPoolStats()
				}
			}
		})
	}

	return g.Wait()
}

// buildInfra opens the configured backends. Local state prefers Redis, then
// Postgres, then memory; issuance history uses Postgres when available.
func buildInfra(ctx context.Context, cfg config.Server, log *slog.Logger, checks *health.Handler) (*infra, error) {
	out := &infra{}

	db, err := database.New(ctx, database.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		return nil, err
	}
	if db != nil {
		out.db = db
		if err := database.Migrate(ctx, db.DB(), migrations.FS); err != nil {
			out.close(log)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		if err := db.RegisterMetrics(prometheus.DefaultRegisterer); err != nil {
			log.Warn("registering database metrics", "error", err)
		}
		checks.RegisterCheck("postgres", db.Health)
		out.state = localstate.NewPostgresStore(db.DB(), cfg.StateNamespace)
		out.issuances = credential.NewPostgresIssuanceStore(db.DB())
		log.Info("using postgres for local state and issuance history")
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		out.close(log)
		return nil, err
	}
	if rc != nil {
		out.redis = rc
		checks.RegisterCheck("redis", rc.Health)
		out.state = localstate.NewRedisStore(rc.Client, cfg.StateNamespace)
		log.Info("using redis for local state")
	}

	if out.state == nil {
		log.Warn("no DATABASE_URL or REDIS_URL configured; local state is kept in memory")
		out.state = localstate.NewInMemoryStore()
	}
	if out.issuances == nil {
		out.issuances = credential.NewInMemoryIssuanceStore()
	}

	if cfg.Kafka.Brokers != "" {
		p, err := producer.New(producer.DefaultConfig(cfg.Kafka.Brokers), log)
		if err != nil {
			out.close(log)
			return nil, err
		}
		out.producer = p
		if err := p.EnsureTopic(ctx, cfg.Kafka.AuditTopic, 3, 1); err != nil {
			log.Warn("ensuring audit topic", "topic", cfg.Kafka.AuditTopic, "error", err)
		}
		checks.RegisterCheck("kafka", p.Check)
		out.publisher = publisher.NewPublisher(kafkaAudit.New(p, cfg.Kafka.AuditTopic),
			publisher.WithAsyncBuffer(1024),
			publisher.WithPublisherLogger(log),
		)
		log.Info("publishing audit events to kafka", "topic", cfg.Kafka.AuditTopic)
	}

	return out, nil
}
