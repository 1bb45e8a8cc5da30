package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"storefront/internal/api"
	"storefront/internal/api/handler/pages"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/storeform"
	"storefront/pkg/controller"
	"storefront/pkg/diag"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	productrest "storefront/pkg/productapi/restclient"
	storerest "storefront/pkg/storeapi/restclient"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// rateLimitCleanupInterval is how often idle rate limit buckets are dropped.
const rateLimitCleanupInterval = time.Minute

func setupDiagnostics(m *metrics.Metrics) (*diag.Bus, func()) {
	bus := diag.NewBus()
	unsubscribeLog := bus.Subscribe(diag.LogSubscriber)
	unsubscribeMetrics := bus.Subscribe(m.ObserveDiagnostic)

	return bus, func() {
		unsubscribeMetrics()
		unsubscribeLog()
	}
}

func setupPages(cfg *config.Config, bus *diag.Bus, mp *sdkmetric.MeterProvider, limiter *controller.RateLimiter) (*pages.Handler, error) { //nolint: lll
	httpClient := newHTTPClient(cfg, mp)

	workflow, err := storeform.NewWorkflow(
		storerest.New(httpClient, storerest.Endpoints{
			DomainCheckURL: cfg.Remote.DomainCheckURL,
			StoreCreateURL: cfg.Remote.StoreCreateURL,
		}),
		bus,
		storeform.Options{
			DomainSuffix:   cfg.StoreForm.DomainSuffix,
			ResetOnSuccess: cfg.StoreForm.ResetOnSuccess,
			MeterProvider:  mp,
		},
	)
	if err != nil {
		return nil, err
	}

	return pages.New(pages.Deps{
		Workflow: workflow,
		Listing:  catalog.New(productrest.New(httpClient, cfg.Remote.ProductsURL), bus),
		Limiter:  limiter,
	}, pages.Options{
		CookieName:   cfg.Session.CookieName,
		SessionTTL:   cfg.Session.TTL,
		DomainSuffix: cfg.StoreForm.DomainSuffix,
	})
}

func setupServer(ctx context.Context, cfg *config.Config) func(ctx context.Context) {
	m := metrics.New()
	mp, err := m.MeterProvider()
	if err != nil {
		logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
	}

	bus, closeDiagnostics := setupDiagnostics(m)

	limiter := controller.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.Session.TTL)
	go func() {
		ticker := time.NewTicker(rateLimitCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Cleanup()
			}
		}
	}()

	pagesHandler, err := setupPages(cfg, bus, mp, limiter)
	if err != nil {
		logger.Fatal(ctx, "could not create pages", zap.Error(err))
	}

	m.Gauge("sessions", "active", "Visitor sessions held in memory.", pagesHandler.Sessions)
	m.Gauge("ratelimit", "tracked_clients", "Clients with a submission rate limit bucket.", limiter.Len)

	server, err := api.NewServer(api.Deps{
		Pages:   pagesHandler,
		Metrics: m,
	}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not stop meter provider", zap.Error(err))
		}
		closeDiagnostics()
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the storefront web server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stopWebserver := setupServer(ctx, cfg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
