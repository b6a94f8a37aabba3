package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/httpapi"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/migrations"
	"github.com/nikolayk812/storefront/internal/payment"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/session"
	"github.com/nikolayk812/storefront/internal/view"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("storefront stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := flag.String("config", "configs", "directory with base.yaml and <env>.yaml")
	envName := flag.String("env", os.Getenv("STOREFRONT_ENV"), "configuration overlay, e.g. prod")
	seedFile := flag.String("seed", "", "insert the products listed in this yaml file and exit")
	flag.Parse()

	cfg, err := config.Load(*configDir, *envName)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger, logCloser, err := logging.Init(logging.Config{
		Component: cfg.App.Name,
		Level:     cfg.App.LogLevel,
		File:      cfg.App.LogFile,
	})
	if err != nil {
		return fmt.Errorf("logging.Init: %w", err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := newPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Postgres.Migrate {
		if err := migrations.Up(pool); err != nil {
			return fmt.Errorf("migrations.Up: %w", err)
		}
		logger.Info("migrations applied")
	}

	if *seedFile != "" {
		return seed(ctx, pool, *seedFile)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("rdb.Ping: %w", err)
	}

	provider, err := newPaymentProvider(cfg)
	if err != nil {
		return err
	}

	fallbackCurrency, err := domain.ParseCurrency(cfg.Payment.Currency)
	if err != nil {
		return fmt.Errorf("payment.currency: %w", err)
	}

	var dedup port.EventDeduplicator
	if cfg.Webhook.Dedup {
		dedup = session.NewRedisEventDeduplicator(rdb, cfg.Redis.DedupTTL)
	}

	views, err := view.New()
	if err != nil {
		return fmt.Errorf("view.New: %w", err)
	}

	handler := httpapi.NewHandler(
		session.NewRedisCartStore(rdb, cfg.Redis.CartTTL),
		service.NewCheckout(repository.NewProduct(pool), repository.NewOrder(pool), provider),
		service.NewReconciler(provider, repository.NewPayment(pool), dedup, fallbackCurrency),
		views,
		httpapi.Options{
			BaseURL:        cfg.App.BaseURL,
			SecureCookies:  cfg.HTTP.SecureCookies,
			RetryOnFailure: cfg.Webhook.RetryOnFailure,
		},
	)

	srv := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      otelhttp.NewHandler(httpapi.NewRouter(handler, logger), cfg.App.Name),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", "addr", srv.Addr, "payment_provider", cfg.Payment.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("srv.Shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func newPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}

	if cfg.Postgres.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Postgres.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return pool, nil
}

func newPaymentProvider(cfg config.Config) (port.PaymentProvider, error) {
	var provider port.PaymentProvider

	switch cfg.Payment.Provider {
	case config.ProviderStripe:
		p, err := payment.NewStripeProvider(payment.StripeConfig{
			SecretKey:     cfg.Payment.SecretKey,
			WebhookSecret: cfg.Payment.WebhookSecret,
			BackendURL:    cfg.Payment.BackendURL,
		})
		if err != nil {
			return nil, fmt.Errorf("payment.NewStripeProvider: %w", err)
		}
		provider = p
	default:
		slog.Warn("using fake payment provider, sessions redirect straight to the success page")
		provider = payment.NewFakeProvider(cfg.Payment.WebhookSecret)
	}

	b := cfg.Payment.Breaker

	return payment.NewBreakerProvider(provider, payment.BreakerConfig{
		Name:             "payment-" + cfg.Payment.Provider,
		MaxRequests:      b.MaxRequests,
		Interval:         b.Interval,
		Timeout:          b.Timeout,
		FailureThreshold: b.FailureThreshold,
	}), nil
}

// seed inserts the fixture products in one transaction.
func seed(ctx context.Context, pool *pgxpool.Pool, path string) (err error) {
	products, err := config.LoadSeed(path)
	if err != nil {
		return fmt.Errorf("config.LoadSeed: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, fmt.Errorf("tx.Rollback: %w", rbErr))
		}
	}()

	repo := repository.NewProductWithTx(tx)

	for i, p := range products {
		id, err := repo.InsertProduct(ctx, p)
		if err != nil {
			return fmt.Errorf("repo.InsertProduct[%d]: %w", i, err)
		}
		slog.Info("product seeded", "id", id, "name", p.Name, "price", p.Price.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}
