package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, remote services,
// the store form, visitor sessions, rate limiting and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" env-default:"" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// PprofEnabled exposes the net/http/pprof handlers under /debug/pprof
		PprofEnabled bool `env:"HTTP_PPROF_ENABLED" env-default:"false" yaml:"pprofEnabled"`
	} `yaml:"http"`

	// Remote contains the endpoints of the external store and product services
	Remote struct {
		// DomainCheckURL is the prefix the fully-qualified domain is appended to
		DomainCheckURL string `env:"REMOTE_DOMAIN_CHECK_URL" env-default:"https://interview-task-green.vercel.app/task/domains/check" yaml:"domainCheckURL"` //nolint: lll
		// StoreCreateURL receives store creation requests
		StoreCreateURL string `env:"REMOTE_STORE_CREATE_URL" env-default:"https://interview-task-green.vercel.app/task/stores/create" yaml:"storeCreateURL"` //nolint: lll
		// ProductsURL serves the product collection
		ProductsURL string `env:"REMOTE_PRODUCTS_URL" env-default:"https://glore-bd-backend-node-mongo.vercel.app/api/product" yaml:"productsURL"` //nolint: lll
		// Timeout bounds every outbound request
		Timeout time.Duration `env:"REMOTE_TIMEOUT" env-default:"10s" yaml:"timeout"`
	} `yaml:"remote"`

	// StoreForm contains the store creation form settings
	StoreForm struct {
		// DomainSuffix is appended to the visitor's subdomain before the availability check
		DomainSuffix string `env:"STORE_FORM_DOMAIN_SUFFIX" env-default:".expressitbd.com" yaml:"domainSuffix"`
		// ResetOnSuccess clears the form after a store was created
		ResetOnSuccess bool `env:"STORE_FORM_RESET_ON_SUCCESS" env-default:"false" yaml:"resetOnSuccess"`
	} `yaml:"storeForm"`

	// Session contains visitor session settings
	Session struct {
		// CookieName is the name of the cookie carrying the session id
		CookieName string `env:"SESSION_COOKIE_NAME" env-default:"storefront_session" yaml:"cookieName"`
		// TTL is how long an idle session is kept
		TTL time.Duration `env:"SESSION_TTL" env-default:"30m" yaml:"ttl"`
	} `yaml:"session"`

	// RateLimit limits store form submissions per client IP
	RateLimit struct {
		// RequestsPerSecond is the sustained submission rate
		RequestsPerSecond float64 `env:"RATE_LIMIT_REQUESTS_PER_SECOND" env-default:"1" yaml:"requestsPerSecond"`
		// Burst is the number of submissions allowed at once
		Burst int `env:"RATE_LIMIT_BURST" env-default:"5" yaml:"burst"`
	} `yaml:"rateLimit"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
// When the file does not exist the configuration is read from the environment only.
func Load(configPath string) (*Config, error) {
	var cfg Config

	_, err := os.Stat(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = cleanenv.ReadEnv(&cfg)
	case err != nil:
		return nil, fmt.Errorf("could not stat config: %w", err)
	default:
		err = cleanenv.ReadConfig(configPath, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
