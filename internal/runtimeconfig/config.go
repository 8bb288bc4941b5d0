package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

// Storage providers. Exactly one is opened per process.
const (
	StorageRemote = "remote"
	StorageLocal  = "local"
)

var ErrStorageProviderUnknown = errors.New("cms config: storage provider must be remote or local")
var ErrRemoteDSNRequired = errors.New("cms config: storage.remote.dsn is required for the remote provider")
var ErrLocalPathRequired = errors.New("cms config: storage.local.path is required for the local provider")
var ErrPoolSizeInvalid = errors.New("cms config: connection pool sizes must be zero or positive")
var ErrLocalesRequired = errors.New("cms config: at least one locale must be enabled")
var ErrDefaultLocaleDisabled = errors.New("cms config: default locale must be one of the enabled locales")
var ErrLoggingProviderRequired = errors.New("cms config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("cms config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("cms config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("cms config: logging format is invalid")
var ErrAdminTimeoutInvalid = errors.New("cms config: admin request timeout must be positive")
var ErrHTTPAddrRequired = errors.New("cms config: http address is required")

// Config is the runtime configuration of the CMS backend.
type Config struct {
	DefaultLocale string        `koanf:"default_locale"`
	Locales       []string      `koanf:"locales"`
	Storage       StorageConfig `koanf:"storage"`
	Logging       LoggingConfig `koanf:"logging"`
	Admin         AdminConfig   `koanf:"admin"`
	HTTP          HTTPConfig    `koanf:"http"`
	Schema        SchemaConfig  `koanf:"schema"`
}

// StorageConfig selects and configures the backing store.
type StorageConfig struct {
	Provider string              `koanf:"provider"`
	Remote   RemoteStorageConfig `koanf:"remote"`
	Local    LocalStorageConfig  `koanf:"local"`
}

// RemoteStorageConfig points at the hosted Postgres database.
type RemoteStorageConfig struct {
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// LocalStorageConfig points at the SQLite file used offline and in tests.
type LocalStorageConfig struct {
	Path string `koanf:"path"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `koanf:"provider"`
	Level     string   `koanf:"level"`
	Format    string   `koanf:"format"`
	AddSource bool     `koanf:"add_source"`
	Focus     []string `koanf:"focus"`
}

// AdminConfig tunes the admin state container and its API credentials.
type AdminConfig struct {
	RequestTimeout time.Duration `koanf:"request_timeout"`
	Token          string        `koanf:"token"`
}

type HTTPConfig struct {
	Addr    string `koanf:"addr"`
	BaseURL string `koanf:"base_url"`
	Mode    string `koanf:"mode"`
}

// SchemaConfig controls table bootstrap at startup.
type SchemaConfig struct {
	Bootstrap bool `koanf:"bootstrap"`
}

// DefaultConfig serves both locales from the remote store.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Locales:       []string{"en", "pl"},
		Storage: StorageConfig{
			Provider: StorageRemote,
			Remote: RemoteStorageConfig{
				MaxOpenConns:    10,
				MaxIdleConns:    5,
				ConnMaxLifetime: 30 * time.Minute,
			},
			Local: LocalStorageConfig{
				Path: "zirospace.db",
			},
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Admin: AdminConfig{
			RequestTimeout: 15 * time.Second,
		},
		HTTP: HTTPConfig{
			Addr:    ":8080",
			BaseURL: "http://localhost:8080",
			Mode:    "release",
		},
		Schema: SchemaConfig{
			Bootstrap: false,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Provider) {
	case StorageRemote:
		if strings.TrimSpace(cfg.Storage.Remote.DSN) == "" {
			return ErrRemoteDSNRequired
		}
	case StorageLocal:
		if strings.TrimSpace(cfg.Storage.Local.Path) == "" {
			return ErrLocalPathRequired
		}
	default:
		return fmt.Errorf("%w: %q", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Storage.Remote.MaxOpenConns < 0 || cfg.Storage.Remote.MaxIdleConns < 0 {
		return ErrPoolSizeInvalid
	}

	locales, err := cfg.EnabledLocales()
	if err != nil {
		return err
	}
	if _, err := cfg.Default(locales); err != nil {
		return err
	}

	provider := normalize(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}

	if cfg.Admin.RequestTimeout <= 0 {
		return ErrAdminTimeoutInvalid
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}
	return nil
}

// EnabledLocales parses Locales. Entries may hold comma separated codes, as
// produced by a single environment variable.
func (cfg Config) EnabledLocales() ([]domain.Locale, error) {
	var codes []string
	for _, entry := range cfg.Locales {
		for _, code := range strings.Split(entry, ",") {
			if code = strings.TrimSpace(code); code != "" {
				codes = append(codes, code)
			}
		}
	}
	if len(codes) == 0 {
		return nil, ErrLocalesRequired
	}
	return domain.ParseLocales(codes)
}

// Default resolves DefaultLocale against the enabled locales.
func (cfg Config) Default(enabled []domain.Locale) (domain.Locale, error) {
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		return enabled[0], nil
	}
	locale, err := domain.ParseLocale(cfg.DefaultLocale)
	if err != nil {
		return "", err
	}
	for _, candidate := range enabled {
		if candidate == locale {
			return locale, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrDefaultLocaleDisabled, locale)
}

// StorageProvider returns the normalized provider name.
func (cfg Config) StorageProvider() string {
	return normalize(cfg.Storage.Provider)
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
