// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, connects to MongoDB, starts the HTTP server, and handles
// graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/todo-mongo-service/internal/adapters/http"
	"github.com/jsamuelsen11/todo-mongo-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-mongo-service/internal/adapters/http/middleware"

	"github.com/jsamuelsen11/todo-mongo-service/internal/adapters/store"
	"github.com/jsamuelsen11/todo-mongo-service/internal/adapters/store/mongodb"
	"github.com/jsamuelsen11/todo-mongo-service/internal/app"
	"github.com/jsamuelsen11/todo-mongo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-mongo-service/internal/platform/health"
	"github.com/jsamuelsen11/todo-mongo-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-mongo-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-mongo-service/internal/ports"

	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	depsShutdownTimeout   = 5 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr,
		slog.String("service", cfg.Telemetry.ServiceName),
		slog.String("profile", profile),
	)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(ctx, injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph, including the
	// MongoDB connection).
	server, err := resolveServer(ctx, injector, logger)
	if err != nil {
		_ = otel.Shutdown(ctx)
		return err
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[*mongodb.Client](injector))
	registry.Register(do.MustInvoke[*store.Instrumented](injector))

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))

		// Graceful shutdown: drain HTTP requests.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}

		// Wait for Start() goroutine to return.
		<-serverErr
	case err := <-serverErr:
		runErr = fmt.Errorf("server failed: %w", err)
	}

	// Release the connection pool once no handler can reach it.
	shutdownDependencies(context.Background(), injector, logger)

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	if runErr == nil {
		logger.Info("shutdown complete")
	}
	return runErr
}

// resolveServer builds the object graph. If wiring fails part way, services
// already built (the MongoDB pool in particular) are shut down before the
// error is returned.
func resolveServer(ctx context.Context, injector *do.RootScope, logger *slog.Logger) (*adapthttp.Server, error) {
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		shutdownDependencies(ctx, injector, logger)
		return nil, fmt.Errorf("resolving server: %w", err)
	}
	return server, nil
}

// shutdownDependencies shuts down every built service in the container that
// implements do's Shutdown hook.
func shutdownDependencies(ctx context.Context, injector *do.RootScope, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, depsShutdownTimeout)
	defer cancel()

	if report := injector.ShutdownWithContext(ctx); report != nil && !report.Succeed {
		logger.Error("dependency shutdown error", slog.String("error", report.Error()))
	}
}

// otelProviders bundles OpenTelemetry provider lifecycle. The providers are
// nil when telemetry is disabled; metrics is then backed by a no-op meter.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		metrics, err := telemetry.NewMetrics(noop.NewMeterProvider())
		if err != nil {
			return nil, fmt.Errorf("creating metrics: %w", err)
		}
		return &otelProviders{metrics: metrics}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(ctx context.Context, injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (*prometheus.Registry, error) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return reg, nil
	})

	do.Provide(injector, func(i do.Injector) (*mongodb.PoolMetrics, error) {
		reg := do.MustInvoke[*prometheus.Registry](i)
		return mongodb.NewPoolMetrics(reg)
	})

	do.Provide(injector, func(i do.Injector) (*mongodb.Client, error) {
		pool := do.MustInvoke[*mongodb.PoolMetrics](i)
		return mongodb.Connect(ctx, &cfg.Mongo, pool.Monitor(), logger)
	})

	do.Provide(injector, func(i do.Injector) (*store.Instrumented, error) {
		client := do.MustInvoke[*mongodb.Client](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		repo := mongodb.NewTodoRepository(client.Collection(cfg.Mongo.Collection), cfg.Mongo.OperationTimeout)
		return store.NewInstrumented(repo, &cfg.Store.CircuitBreaker, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TodoRepository, error) {
		return do.MustInvoke[*store.Instrumented](i), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TodoService, error) {
		repo := do.MustInvoke[ports.TodoRepository](i)
		return app.NewTodoService(repo, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(health.WithCheckTimeout(cfg.Mongo.ConnectTimeout)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TodoHandler, error) {
		svc := do.MustInvoke[ports.TodoService](i)
		return handlers.NewTodoHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		todoH := do.MustInvoke[*handlers.TodoHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		var scrape adapthttp.MetricsEndpoint
		if cfg.Metrics.Enabled {
			reg := do.MustInvoke[*prometheus.Registry](i)
			scrape = adapthttp.MetricsEndpoint{
				Path:    cfg.Metrics.Path,
				Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
			}
		}

		return adapthttp.NewRouter(todoH, healthH, scrape,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.CORS(cfg.Server.CORS),
			middleware.RateLimit(cfg.Server.RateLimit, logger),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
