package router

import (
	"fmt"
	"net/http"

	"github.com/Pratham6392/shipment/internal/infrastructure/cache"
	"github.com/Pratham6392/shipment/internal/infrastructure/config"
	"github.com/Pratham6392/shipment/internal/infrastructure/logger"
	"github.com/Pratham6392/shipment/internal/infrastructure/telemetry"
	"github.com/Pratham6392/shipment/internal/interfaces/http/handler"
	"github.com/Pratham6392/shipment/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Label and probe paths. LegacyLabelPath is what the form UI posts to and
// LocalLabelPath what older local setups use.
const (
	LegacyLabelPath    = "/api/generate-shipping-label"
	LocalLabelPath     = "/generate-shipping-label"
	HealthPath         = "/health"
	VersionedLabelPath = "/api/v1/labels"
)

// Dependencies are the collaborators NewEngine wires into the HTTP surface
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger
	Labels handler.LabelGenerator
	// EngineName is reported by /health
	EngineName string
	// RateLimiter guards the label routes; nil disables rate limiting
	RateLimiter    cache.RateLimitStore
	MeterProvider  *telemetry.MeterProvider
	TracerProvider trace.TracerProvider
}

// NewEngine builds the gin engine with the middleware chain and every route
func NewEngine(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	if cfg == nil {
		return nil, fmt.Errorf("router: config is required")
	}
	if deps.Labels == nil {
		return nil, fmt.Errorf("router: label generator is required")
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if err := middleware.SetupValidator(); err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("router: trusted proxies: %w", err)
	}

	tracingCfg := middleware.DefaultTracingConfig()
	tracingCfg.Enabled = cfg.Telemetry.Enabled
	if cfg.Telemetry.ServiceName != "" {
		tracingCfg.ServiceName = cfg.Telemetry.ServiceName
	}
	tracingCfg.TracerProvider = deps.TracerProvider

	profilingCfg := middleware.DefaultProfilingConfig()
	profilingCfg.Enabled = cfg.Telemetry.ProfilingEnabled

	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.IsProduction()

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.SecureWithConfig(securityCfg),
		middleware.CORSWithConfig(corsConfig(cfg.HTTP)),
		middleware.TracingWithConfig(tracingCfg),
		middleware.TracingAttributeInjector(),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: deps.MeterProvider,
			Enabled:       cfg.Telemetry.MetricsEnabled,
		}),
		middleware.ProfilingWithConfig(profilingCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	engine.NoMethod(handler.MethodNotAllowed)
	engine.NoRoute(handler.NotFound)

	health := handler.NewHealthHandler(deps.EngineName)
	labels := handler.NewLabelHandler(deps.Labels)

	var labelMiddleware []gin.HandlerFunc
	if deps.RateLimiter != nil {
		labelMiddleware = append(labelMiddleware, middleware.RateLimit(deps.RateLimiter, log))
	}

	// Unversioned paths the form UI and older local setups post to
	legacy := NewDomainGroup("legacy", "")
	legacy.GET(HealthPath, health.Health)
	legacy.Group("legacy-labels", "").
		Use(labelMiddleware...).
		Alias(http.MethodPost, []string{LegacyLabelPath, LocalLabelPath}, labels.Generate)

	labelGroup := NewDomainGroup("labels", "/labels").Use(labelMiddleware...)
	labelGroup.POST("", labels.Generate)

	systemGroup := NewDomainGroup("system", "")
	systemGroup.GET("/ping", health.Ping)

	r := NewRouter(engine, WithAPIVersion("v1")).
		RegisterRoot(legacy).
		Register(labelGroup).
		Register(systemGroup)
	r.Setup()

	for _, group := range []*DomainGroup{labelGroup, systemGroup} {
		logRoutes(log, group.Routes(r.BasePath()))
	}
	logRoutes(log, legacy.Routes(""))

	return engine, nil
}

// corsConfig overlays configured CORS lists on the defaults
func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.CORSAllowOrigins
	}
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}

func logRoutes(log *zap.Logger, routes []RouteInfo) {
	for _, route := range routes {
		log.Debug("Route registered",
			zap.String("group", route.Group),
			zap.String("method", route.Method),
			zap.String("path", route.Path),
		)
	}
}
