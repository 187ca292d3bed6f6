package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	labelapp "github.com/Pratham6392/shipment/internal/application/label"
	"github.com/Pratham6392/shipment/internal/infrastructure/cache"
	"github.com/Pratham6392/shipment/internal/infrastructure/carrier"
	"github.com/Pratham6392/shipment/internal/infrastructure/config"
	"github.com/Pratham6392/shipment/internal/infrastructure/logger"
	"github.com/Pratham6392/shipment/internal/infrastructure/printing"
	"github.com/Pratham6392/shipment/internal/infrastructure/telemetry"
	"github.com/Pratham6392/shipment/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize log export", zap.Error(err))
	}

	log := telemetry.NewBridgedLogger(baseLog, lp, cfg.Telemetry.ServiceName)
	defer func() {
		_ = logger.Sync(log)
	}()

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:            cfg.Telemetry.ProfilingEnabled,
		ServerAddress:      cfg.Telemetry.PyroscopeAddress,
		ApplicationName:    cfg.Telemetry.ServiceName,
		ProfileAllocations: true,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tp.IsEnabled() {
		if err := tp.EnableSpanProfiles(); err != nil {
			log.Warn("Span profiles unavailable", zap.Error(err))
		}
	}

	log.Info("Starting shipping label service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("engine", cfg.Label.Engine),
	)

	labelMetrics, err := telemetry.NewLabelMetrics(mp.Meter("shiplabel.labels"))
	if err != nil {
		log.Fatal("Failed to create label metrics", zap.Error(err))
	}

	engineName, err := printing.ParseEngine(cfg.Label.Engine)
	if err != nil {
		log.Fatal("Invalid render engine", zap.Error(err))
	}
	pdfEngine, err := printing.NewRenderer(engineName, engineConfig(cfg, log))
	if err != nil {
		log.Fatal("Failed to create PDF renderer", zap.Error(err))
	}

	carrierClient, err := carrier.NewClient(carrierConfig(cfg.Carrier),
		carrier.WithMetrics(labelMetrics),
		carrier.WithLogger(log),
	)
	if err != nil {
		log.Fatal("Failed to create carrier client", zap.Error(err))
	}

	labelService := labelapp.NewService(
		labelapp.NewResolver(carrierClient, labelapp.ResolverConfig{
			OverrideFallbackAWB: cfg.Label.OverrideFallbackAWB,
		}, log),
		labelapp.NewRenderer(pdfEngine, labelapp.RendererConfig{
			Engine:  engineName,
			Timeout: cfg.Label.RenderTimeout,
		}, labelMetrics, log),
		labelMetrics,
		log,
	)

	var rateStore cache.RateLimitStore
	if cfg.HTTP.RateLimitEnabled {
		factory := cache.NewRateLimitStoreFactory(
			cfg.Redis,
			cfg.HTTP.RateLimitRequests,
			cfg.HTTP.RateLimitWindow,
			cache.WithLogger(log),
		)
		rateStore, err = factory.CreateStore(cfg.HTTP.RateLimitBackend)
		if err != nil {
			log.Fatal("Failed to create rate limit store", zap.Error(err))
		}
	}

	engine, err := router.NewEngine(router.Dependencies{
		Config:        cfg,
		Logger:        log,
		Labels:        labelService,
		EngineName:    labelService.EngineName(),
		RateLimiter:   rateStore,
		MeterProvider: mp,
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           cfg.App.Addr(),
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := pdfEngine.Close(); err != nil {
		log.Error("Error closing PDF renderer", zap.Error(err))
	}
	if rateStore != nil {
		if err := rateStore.Close(); err != nil {
			log.Error("Error closing rate limit store", zap.Error(err))
		}
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := mp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}

	log.Info("Server exited gracefully")

	// Last, so the lines above still reach the collector
	if err := lp.Shutdown(shutdownCtx); err != nil {
		baseLog.Error("Error shutting down logger provider", zap.Error(err))
	}
}

// engineConfig maps configuration onto every engine's settings; only the
// selected engine reads its section
func engineConfig(cfg *config.Config, log *zap.Logger) printing.EngineConfig {
	return printing.EngineConfig{
		FPDF: printing.FPDFConfig{
			Author:       cfg.Label.Author,
			Creator:      cfg.Label.Creator,
			DocumentDate: cfg.Label.DocumentDate,
			Logger:       log,
		},
		Chromedp: printing.ChromedpConfig{
			DefaultTimeout: cfg.Label.RenderTimeout,
			RemoteURL:      cfg.Chromedp.RemoteURL,
			NoSandbox:      cfg.Chromedp.NoSandbox,
			Scale:          cfg.Chromedp.Scale,
			Logger:         log,
		},
		Wkhtmltopdf: printing.WkhtmltopdfConfig{
			BinaryPath:     cfg.Wkhtmltopdf.BinaryPath,
			DefaultTimeout: cfg.Label.RenderTimeout,
			TempDir:        cfg.Wkhtmltopdf.TempDir,
			DPI:            cfg.Wkhtmltopdf.DPI,
			Logger:         log,
		},
	}
}

func carrierConfig(cfg config.CarrierConfig) *carrier.Config {
	c := carrier.NewConfig(cfg.Signature)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	if cfg.LabelPath != "" {
		c.LabelPath = cfg.LabelPath
	}
	if cfg.MaxResponseBytes > 0 {
		c.MaxResponseBytes = cfg.MaxResponseBytes
	}
	c.Timeout = cfg.Timeout
	return c
}
