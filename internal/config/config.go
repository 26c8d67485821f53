// config - источник загрузки конфигурации веб-фронта бронирования.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	API      APIConfig      `yaml:"api"`
	Stripe   StripeConfig   `yaml:"stripe"`
	Cookies  CookieConfig   `yaml:"cookies"`
	Security SecurityConfig `yaml:"security"`
	Drafts   DraftsConfig   `yaml:"drafts"`
	Booking  BookingConfig  `yaml:"booking"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
}

// TimeoutConfig — общий дедлайн входящего запроса и таймаут одного вызова API.
type TimeoutConfig struct {
	Service  time.Duration `yaml:"service" env:"SERVICE" env-default:"15s"`
	Upstream time.Duration `yaml:"upstream" env:"UPSTREAM_TIMEOUT" env-default:"10s"`
}

// HTTPConfig — публичный HTTP-сервер сайта.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"3000"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// APIConfig — удалённый REST API (вся бизнес-логика живёт там).
type APIConfig struct {
	BaseURL   string `yaml:"base_url"   env:"API_BASE_URL"   env-default:"http://127.0.0.1:8000"`
	UserAgent string `yaml:"user_agent" env:"API_USER_AGENT" env-default:"coaching-web"`
}

// StripeConfig — платёжный процессор. Пустой SecretKey => процессор не готов,
// оплата блокируется guard'ом.
type StripeConfig struct {
	SecretKey      string `yaml:"secret_key"      env:"STRIPE_SECRET_KEY"`
	PublishableKey string `yaml:"publishable_key" env:"STRIPE_PUBLISHABLE_KEY"`
	Currency       string `yaml:"currency"        env:"STRIPE_CURRENCY" env-default:"eur"`
}

// CookieConfig — параметры cookies сессии.
// Insecure снимает флаг Secure (локальная разработка по http).
type CookieConfig struct {
	Insecure   bool          `yaml:"insecure"    env:"COOKIE_INSECURE"`
	AccessTTL  time.Duration `yaml:"access_ttl"  env:"COOKIE_ACCESS_TTL"  env-default:"24h"`
	RefreshTTL time.Duration `yaml:"refresh_ttl" env:"COOKIE_REFRESH_TTL" env-default:"168h"`
}

// SecurityConfig — CSRF и ограничение частоты POST-форм.
// Пустой CSRFKey отключает CSRF-защиту (локальная разработка, тесты).
type SecurityConfig struct {
	CSRFKey        string  `yaml:"csrf_key"         env:"CSRF_KEY"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"   env:"RATE_LIMIT_RPS"   env-default:"2"`
	RateLimitBurst int     `yaml:"rate_limit_burst" env:"RATE_LIMIT_BURST" env-default:"10"`
}

// DraftsConfig — хранилище черновиков оплаты. Пустой RedisURL => in-memory.
type DraftsConfig struct {
	RedisURL string        `yaml:"redis_url" env:"DRAFTS_REDIS_URL"`
	Prefix   string        `yaml:"prefix"    env:"DRAFTS_PREFIX" env-default:"web:draft:"`
	TTL      time.Duration `yaml:"ttl"       env:"DRAFTS_TTL"    env-default:"30m"`

	// MaxEntries — предел черновиков in-memory хранилища.
	MaxEntries int `yaml:"max_entries" env:"DRAFTS_MAX_ENTRIES" env-default:"10000"`
}

// BookingConfig — рабочие часы приёма в часовом поясе кабинета.
type BookingConfig struct {
	Timezone  string `yaml:"timezone"   env:"BOOKING_TIMEZONE"   env-default:"Europe/Paris"`
	OpenHour  int    `yaml:"open_hour"  env:"BOOKING_OPEN_HOUR"  env-default:"8"`
	CloseHour int    `yaml:"close_hour" env:"BOOKING_CLOSE_HOUR" env-default:"18"`
}

// Location разбирает Timezone; при ошибке возвращает time.Local.
func (b BookingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.Local
	}

	return loc
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate отсекает конфигурации, с которыми правило рабочих часов бессмысленно.
func (c *Config) validate() error {
	if c.Booking.OpenHour < 0 || c.Booking.CloseHour > 24 || c.Booking.OpenHour >= c.Booking.CloseHour {
		return fmt.Errorf("invalid booking hours [%d, %d)", c.Booking.OpenHour, c.Booking.CloseHour)
	}

	if c.API.BaseURL == "" {
		return fmt.Errorf("empty api base_url")
	}

	return nil
}
