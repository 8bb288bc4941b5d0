package runtimeconfig

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override. Nested keys use a double
// underscore: ZIRO_STORAGE__PROVIDER=local sets storage.provider.
const EnvPrefix = "ZIRO_"

// Load layers DefaultConfig, the optional YAML file at path and ZIRO_
// environment variables, in that order, and validates the result.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	for key, value := range defaults(DefaultConfig()) {
		if err := k.Set(key, value); err != nil {
			return Config{}, fmt.Errorf("cms config: set default %s: %w", key, err)
		}
	}

	if strings.TrimSpace(path) != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("cms config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("cms config: load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("cms config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "__", ".")
}

func defaults(cfg Config) map[string]any {
	return map[string]any{
		"default_locale":                   cfg.DefaultLocale,
		"locales":                          cfg.Locales,
		"storage.provider":                 cfg.Storage.Provider,
		"storage.remote.dsn":               cfg.Storage.Remote.DSN,
		"storage.remote.max_open_conns":    cfg.Storage.Remote.MaxOpenConns,
		"storage.remote.max_idle_conns":    cfg.Storage.Remote.MaxIdleConns,
		"storage.remote.conn_max_lifetime": cfg.Storage.Remote.ConnMaxLifetime.String(),
		"storage.local.path":               cfg.Storage.Local.Path,
		"logging.provider":                 cfg.Logging.Provider,
		"logging.level":                    cfg.Logging.Level,
		"logging.format":                   cfg.Logging.Format,
		"logging.add_source":               cfg.Logging.AddSource,
		"admin.request_timeout":            cfg.Admin.RequestTimeout.String(),
		"http.addr":                        cfg.HTTP.Addr,
		"http.base_url":                    cfg.HTTP.BaseURL,
		"http.mode":                        cfg.HTTP.Mode,
		"schema.bootstrap":                 cfg.Schema.Bootstrap,
	}
}
