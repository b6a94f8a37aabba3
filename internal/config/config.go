package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "STOREFRONT_"

const (
	ProviderStripe = "stripe"
	ProviderFake   = "fake"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		Env      string `koanf:"env"`
		HTTPAddr string `koanf:"http_addr"`
		BaseURL  string `koanf:"base_url"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout     time.Duration `koanf:"read_timeout"`
		WriteTimeout    time.Duration `koanf:"write_timeout"`
		IdleTimeout     time.Duration `koanf:"idle_timeout"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
		SecureCookies   bool          `koanf:"secure_cookies"`
	} `koanf:"http"`

	Postgres struct {
		DSN      string `koanf:"dsn"`
		MaxConns int32  `koanf:"max_conns"`
		Migrate  bool   `koanf:"migrate"`
	} `koanf:"postgres"`

	Redis struct {
		Addr     string        `koanf:"addr"`
		Password string        `koanf:"password"`
		DB       int           `koanf:"db"`
		CartTTL  time.Duration `koanf:"cart_ttl"`
		DedupTTL time.Duration `koanf:"dedup_ttl"`
	} `koanf:"redis"`

	Payment struct {
		Provider      string `koanf:"provider"`
		SecretKey     string `koanf:"secret_key"`
		WebhookSecret string `koanf:"webhook_secret"`
		BackendURL    string `koanf:"backend_url"`

		// Currency is assumed for webhook amounts that arrive without one.
		Currency string `koanf:"currency"`

		Breaker struct {
			MaxRequests      uint32        `koanf:"max_requests"`
			Interval         time.Duration `koanf:"interval"`
			Timeout          time.Duration `koanf:"timeout"`
			FailureThreshold uint32        `koanf:"failure_threshold"`
		} `koanf:"breaker"`
	} `koanf:"payment"`

	Webhook struct {
		// RetryOnFailure answers 500 on processing failures so the provider redelivers.
		RetryOnFailure bool `koanf:"retry_on_failure"`
		Dedup          bool `koanf:"dedup"`
	} `koanf:"webhook"`
}

// Load layers <dir>/base.yaml, the optional <dir>/<envName>.yaml and STOREFRONT_ environment
// variables, with __ separating nested keys, e.g. STOREFRONT_POSTGRES__DSN.
func Load(dir, envName string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(filepath.Join(dir, "base.yaml")), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	if envName != "" {
		// optional, local runs usually have none
		err := k.Load(file.Provider(filepath.Join(dir, envName+".yaml")), yaml.Parser())
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envName, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}

	if envName != "" {
		cfg.App.Env = envName
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.App.HTTPAddr == "" {
		errs = append(errs, errors.New("app.http_addr required"))
	}
	if c.App.BaseURL == "" {
		errs = append(errs, errors.New("app.base_url required"))
	}
	if c.Postgres.DSN == "" {
		errs = append(errs, errors.New("postgres.dsn required"))
	}
	if c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr required"))
	}
	if c.Redis.CartTTL <= 0 {
		errs = append(errs, errors.New("redis.cart_ttl must be positive"))
	}

	switch c.Payment.Provider {
	case ProviderStripe:
		if c.Payment.SecretKey == "" {
			errs = append(errs, errors.New("payment.secret_key required for stripe"))
		}
		if c.Payment.WebhookSecret == "" {
			errs = append(errs, errors.New("payment.webhook_secret required for stripe"))
		}
	case ProviderFake:
		if c.Payment.WebhookSecret == "" {
			errs = append(errs, errors.New("payment.webhook_secret required"))
		}
	default:
		errs = append(errs, fmt.Errorf("payment.provider[%s] is not supported", c.Payment.Provider))
	}

	if c.Payment.Currency == "" {
		errs = append(errs, errors.New("payment.currency required"))
	}

	return errors.Join(errs...)
}
