package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/mirkafe/menu-web/internal/domain/menu"
	"github.com/mirkafe/menu-web/internal/settings"
	"github.com/mirkafe/menu-web/internal/upstream"
	"github.com/mirkafe/menu-web/internal/web"
	"github.com/mirkafe/menu-web/pkg/health"
	"github.com/mirkafe/menu-web/pkg/httpmiddleware"
)

// pageRoutes are the leading path segments that bypass the unknown-path
// rewrite; everything else redirects to the landing page. Paths containing a
// dot (static files) always pass.
var pageRoutes = []string{
	"/category",
	"/menu",
	"/assets",
	"/api",
	"/favicon",
	"/livez",
	"/readyz",
}

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr), zap.String("backend", cfg.APIBaseURL))

	// Backend client.
	client, err := upstream.NewClient(cfg.APIBaseURL, upstream.Options{
		Timeout: cfg.Upstream.Timeout,
	})
	if err != nil {
		return errors.Wrap(err, "create backend client")
	}

	// Durable contact-settings store.
	store, err := settings.Open(cfg.StateDir, lg)
	if err != nil {
		return errors.Wrap(err, "open settings store")
	}

	// Domain service.
	menuSvc := menu.NewService(client, store, menu.ServiceConfig{
		FanOut: cfg.Upstream.FanOut,
	})

	// Log contact-settings changes picked up from the combined fetch.
	updates, cancelUpdates := store.Subscribe()
	go func() {
		for cs := range updates {
			lg.Info("Contact settings updated",
				zap.Bool("has_instagram", cs.Instagram != ""),
				zap.Bool("has_telegram", cs.Telegram != ""),
				zap.Bool("has_phone", cs.Phone != ""),
			)
		}
	}()

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("backend", 5*time.Second, client.Ping)
	healthSvc.AddReadinessCheck("settings", time.Second, store.Check)
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.AddLivenessCheck("gc-pause", time.Second, health.GCMaxPauseCheck(2*time.Second))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Page server.
	pages, err := web.NewServer(menuSvc, store)
	if err != nil {
		return errors.Wrap(err, "create page server")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	pages.Register(mux)

	handler := httpmiddleware.Wrap(mux,
		httpmiddleware.Recovery(),
		httpmiddleware.CORS(httpmiddleware.CORSConfig{
			AllowOrigins:     cfg.CORS.Origins,
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           86400,
		}),
		httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
			Max:    cfg.RateLimit.Max,
			Window: cfg.RateLimit.Window,
		}),
		httpmiddleware.RequestID(),
		httpmiddleware.InjectLogger(zctx.From(ctx)),
		httpmiddleware.LogRequests(),
		httpmiddleware.RewriteUnknown(httpmiddleware.RewriteConfig{
			AllowPrefixes: pageRoutes,
			Target:        "/",
		}),
	)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: otelhttp.NewHandler(handler, "menu-web",
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		cancelUpdates()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
