package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Log         LogConfig
	HTTP        HTTPConfig
	Carrier     CarrierConfig
	Label       LabelConfig
	Chromedp    ChromedpConfig
	Wkhtmltopdf WkhtmltopdfConfig
	Redis       RedisConfig
	Telemetry   TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	MaxBodySize       int64
	TrustedProxies    []string
	CORSAllowOrigins  []string
	CORSAllowMethods  []string
	CORSAllowHeaders  []string
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitBackend  string // memory, redis
}

// CarrierConfig holds the carrier label API settings
type CarrierConfig struct {
	BaseURL          string
	LabelPath        string
	Signature        string
	Timeout          time.Duration // 0 keeps the transport default
	MaxResponseBytes int64
}

// LabelConfig holds label rendering settings
type LabelConfig struct {
	Engine              string // fpdf, chromedp, wkhtmltopdf
	RenderTimeout       time.Duration
	OverrideFallbackAWB bool
	DocumentDate        time.Time
	Author              string
	Creator             string
}

// ChromedpConfig holds headless Chrome settings
type ChromedpConfig struct {
	RemoteURL string
	NoSandbox bool
	Scale     float64
}

// WkhtmltopdfConfig holds wkhtmltopdf settings
type WkhtmltopdfConfig struct {
	BinaryPath string
	TempDir    string
	DPI        int
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// TelemetryConfig holds OpenTelemetry and profiling configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable tracing
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string
	Insecure          bool // Use insecure (non-TLS) connection (development only)
	MetricsEnabled    bool
	MetricsInterval   time.Duration
	LogsEnabled       bool
	ProfilingEnabled  bool
	PyroscopeAddress  string
}

// Known engine and rate limit backend names
var (
	validEngines      = []string{"fpdf", "chromedp", "wkhtmltopdf"}
	validRateBackends = []string{"memory", "redis"}
)

// DefaultDocumentDate is stamped into PDF metadata unless configured
const DefaultDocumentDate = "2024-12-08T00:00:00Z"

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SHIPLABEL_ prefix (e.g., SHIPLABEL_CARRIER_SIGNATURE);
// PORT overrides app.port
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shiplabel")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SHIPLABEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The hosting platform injects an unprefixed PORT
	if err := v.BindEnv("app.port", "PORT", "SHIPLABEL_APP_PORT"); err != nil {
		return nil, fmt.Errorf("error binding PORT: %w", err)
	}

	// Booleans that default to true cannot be told apart from an explicit
	// false after loading, so they are registered with viper instead
	v.SetDefault("http.rate_limit_enabled", true)
	v.SetDefault("telemetry.metrics_enabled", true)

	documentDate, err := parseDocumentDate(v.GetString("label.document_date"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:  v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:  v.GetStringSlice("http.cors_allow_headers"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
			RateLimitBackend:  v.GetString("http.rate_limit_backend"),
		},
		Carrier: CarrierConfig{
			BaseURL:          v.GetString("carrier.base_url"),
			LabelPath:        v.GetString("carrier.label_path"),
			Signature:        v.GetString("carrier.signature"),
			Timeout:          v.GetDuration("carrier.timeout"),
			MaxResponseBytes: v.GetInt64("carrier.max_response_bytes"),
		},
		Label: LabelConfig{
			Engine:              strings.ToLower(v.GetString("label.engine")),
			RenderTimeout:       v.GetDuration("label.render_timeout"),
			OverrideFallbackAWB: v.GetBool("label.override_fallback_awb"),
			DocumentDate:        documentDate,
			Author:              v.GetString("label.author"),
			Creator:             v.GetString("label.creator"),
		},
		Chromedp: ChromedpConfig{
			RemoteURL: v.GetString("chromedp.remote_url"),
			NoSandbox: v.GetBool("chromedp.no_sandbox"),
			Scale:     v.GetFloat64("chromedp.scale"),
		},
		Wkhtmltopdf: WkhtmltopdfConfig{
			BinaryPath: v.GetString("wkhtmltopdf.binary_path"),
			TempDir:    v.GetString("wkhtmltopdf.temp_dir"),
			DPI:        v.GetInt("wkhtmltopdf.dpi"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("redis.addr"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
			ProfilingEnabled:  v.GetBool("telemetry.profiling_enabled"),
			PyroscopeAddress:  v.GetString("telemetry.pyroscope_address"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDocumentDate(raw string) (time.Time, error) {
	if raw == "" {
		raw = DefaultDocumentDate
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("label.document_date must be RFC 3339, got %q: %w", raw, err)
	}
	return t.UTC(), nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "shiplabel"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "3000"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// leaves room for a cold browser start on the chromedp engine
		cfg.HTTP.WriteTimeout = 60 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 64 << 10 // 64KB
	}
	if len(cfg.HTTP.CORSAllowOrigins) == 0 {
		cfg.HTTP.CORSAllowOrigins = []string{"http://localhost:5173"}
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 60
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	if cfg.HTTP.RateLimitBackend == "" {
		cfg.HTTP.RateLimitBackend = "memory"
	}
	if cfg.Carrier.BaseURL == "" {
		cfg.Carrier.BaseURL = "https://capi-qc.fship.in"
	}
	if cfg.Carrier.LabelPath == "" {
		cfg.Carrier.LabelPath = "/api/shippinglabel"
	}
	if cfg.Carrier.MaxResponseBytes == 0 {
		cfg.Carrier.MaxResponseBytes = 10 << 20 // 10MB
	}
	if cfg.Label.Engine == "" {
		cfg.Label.Engine = "fpdf"
	}
	if cfg.Label.RenderTimeout == 0 {
		cfg.Label.RenderTimeout = 30 * time.Second
	}
	if cfg.Label.Author == "" {
		cfg.Label.Author = "Lorith France"
	}
	if cfg.Label.Creator == "" {
		cfg.Label.Creator = cfg.App.Name
	}
	if cfg.Chromedp.Scale == 0 {
		cfg.Chromedp.Scale = 1.0
	}
	if cfg.Wkhtmltopdf.DPI == 0 {
		cfg.Wkhtmltopdf.DPI = 300
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "shiplabel:"
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 60 * time.Second
	}
	if cfg.Telemetry.PyroscopeAddress == "" {
		cfg.Telemetry.PyroscopeAddress = "http://localhost:4040"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("app.port is required")
	}

	u, err := url.Parse(c.Carrier.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("carrier.base_url must be an absolute http(s) URL, got %q", c.Carrier.BaseURL)
	}
	if c.Carrier.Timeout < 0 {
		return fmt.Errorf("carrier.timeout cannot be negative")
	}
	if c.Carrier.MaxResponseBytes < 0 {
		return fmt.Errorf("carrier.max_response_bytes cannot be negative")
	}

	if !contains(validEngines, c.Label.Engine) {
		return fmt.Errorf("label.engine must be one of %v, got %q", validEngines, c.Label.Engine)
	}

	if c.HTTP.RateLimitEnabled {
		if c.HTTP.RateLimitRequests <= 0 {
			return fmt.Errorf("http.rate_limit_requests must be positive")
		}
		if c.HTTP.RateLimitWindow <= 0 {
			return fmt.Errorf("http.rate_limit_window must be positive")
		}
		if !contains(validRateBackends, c.HTTP.RateLimitBackend) {
			return fmt.Errorf("http.rate_limit_backend must be one of %v, got %q", validRateBackends, c.HTTP.RateLimitBackend)
		}
		if c.HTTP.RateLimitBackend == "redis" && c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when http.rate_limit_backend is redis")
		}
	}

	if c.IsProduction() {
		if c.Carrier.Signature == "" {
			return fmt.Errorf("carrier.signature is required in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Addr returns the listen address for the HTTP server
func (c *AppConfig) Addr() string {
	return ":" + c.Port
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
