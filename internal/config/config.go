package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultReadHeader   = 10 * time.Second
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultMaxConns     = 512
	defaultTemplatesDir = "templates"
	defaultPublicDir    = "public"
	defaultContentDir   = "content"
	defaultContentTTL   = 5 * time.Minute
	defaultSiteName     = "Studio Prangana"
	defaultBaseURL      = "http://localhost:8080"
	defaultEnvironment  = "local"
	defaultLogLevel     = "info"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Environment string
	Dev         bool
	LogLevel    string
	Server      ServerConfig
	Paths       PathsConfig
	Content     ContentConfig
	Site        SiteConfig
	Session     SessionConfig
	Analytics   AnalyticsConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxConns          int
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string { return ":" + s.Port }

// PathsConfig points at templates and static assets on disk.
type PathsConfig struct {
	Templates string
	Public    string
}

// ContentConfig selects where studio content is loaded from.
type ContentConfig struct {
	Dir       string
	RemoteURL string
	TTL       time.Duration
}

// SiteConfig holds identity used for SEO and canonical URLs.
type SiteConfig struct {
	Name    string
	BaseURL string
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	SigningKey string
	Secure     bool
}

// AnalyticsConfig holds client instrumentation ids surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string
	GTMContainerID   string
	Debug            bool
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides, environment variables
// and an optional explicit map, in increasing precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	// Port resolution: prefer PRANGANA_WEB_PORT, then Cloud Run's PORT, else 8080
	port := stringWithDefault(lookup, "PRANGANA_WEB_PORT", "")
	if port == "" {
		port = stringWithDefault(lookup, "PORT", defaultPort)
	}

	env := strings.ToLower(stringWithDefault(lookup, "PRANGANA_WEB_ENV", defaultEnvironment))
	cfg := Config{
		Environment: env,
		Dev:         boolWithDefault(lookup, "PRANGANA_WEB_DEV", false) || boolWithDefault(lookup, "DEV", false),
		LogLevel:    stringWithDefault(lookup, "PRANGANA_WEB_LOG_LEVEL", defaultLogLevel),
		Server: ServerConfig{
			Port:              port,
			ReadHeaderTimeout: durationWithDefault(lookup, "PRANGANA_WEB_READ_HEADER_TIMEOUT", defaultReadHeader),
			ReadTimeout:       durationWithDefault(lookup, "PRANGANA_WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:      durationWithDefault(lookup, "PRANGANA_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:       durationWithDefault(lookup, "PRANGANA_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
			MaxConns:          intWithDefault(lookup, "PRANGANA_WEB_MAX_CONNS", defaultMaxConns),
		},
		Paths: PathsConfig{
			Templates: stringWithDefault(lookup, "PRANGANA_WEB_TEMPLATES_DIR", defaultTemplatesDir),
			Public:    stringWithDefault(lookup, "PRANGANA_WEB_PUBLIC_DIR", defaultPublicDir),
		},
		Content: ContentConfig{
			Dir:       stringWithDefault(lookup, "PRANGANA_WEB_CONTENT_DIR", defaultContentDir),
			RemoteURL: strings.TrimRight(stringWithDefault(lookup, "PRANGANA_WEB_CONTENT_URL", ""), "/"),
			TTL:       durationWithDefault(lookup, "PRANGANA_WEB_CONTENT_TTL", defaultContentTTL),
		},
		Site: SiteConfig{
			Name:    stringWithDefault(lookup, "PRANGANA_WEB_SITE_NAME", defaultSiteName),
			BaseURL: strings.TrimRight(stringWithDefault(lookup, "PRANGANA_WEB_BASE_URL", defaultBaseURL), "/"),
		},
		Session: SessionConfig{
			SigningKey: stringWithDefault(lookup, "PRANGANA_WEB_SESSION_SIGNING_KEY", ""),
			Secure:     env == "prod",
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "PRANGANA_WEB_GA_MEASUREMENT_ID", ""),
			GTMContainerID:   stringWithDefault(lookup, "PRANGANA_WEB_GTM_CONTAINER_ID", ""),
			Debug:            boolWithDefault(lookup, "PRANGANA_WEB_ANALYTICS_DEBUG", false),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		missing = append(missing, "Server.Port")
	}
	if cfg.Server.MaxConns <= 0 {
		missing = append(missing, "Server.MaxConns")
	}
	if cfg.Server.ReadTimeout <= 0 {
		missing = append(missing, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		missing = append(missing, "Server.WriteTimeout")
	}
	if cfg.Content.TTL <= 0 {
		missing = append(missing, "Content.TTL")
	}
	if strings.TrimSpace(cfg.Site.BaseURL) == "" {
		missing = append(missing, "Site.BaseURL")
	}
	if cfg.Environment == "prod" && cfg.Session.SigningKey == "" {
		missing = append(missing, "Session.SigningKey")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(parts[1]), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
