package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Драйверы хранилища документов
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Storage    StorageConfig    `toml:"storage"`
	Database   DatabaseConfig   `toml:"database"`
	Redis      RedisConfig      `toml:"redis"`
	Schedule   ScheduleConfig   `toml:"schedule"`
	Payments   PaymentsConfig   `toml:"payments"`
	Admin      AdminConfig      `toml:"admin"`
	Consultant ConsultantConfig `toml:"consultant"`
	Gemini     GeminiConfig     `toml:"gemini"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`     // секунды
	WriteTimeout    int      `toml:"write_timeout"`    // секунды
	IdleTimeout     int      `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int      `toml:"shutdown_timeout"` // секунды
	AllowedOrigins  []string `toml:"allowed_origins"`
	TrustedProxies  []string `toml:"trusted_proxies"` // адреса или CIDR; без них X-Forwarded-For игнорируется
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StorageConfig struct {
	Driver string `toml:"driver"` // memory | postgres | redis
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

type ScheduleConfig struct {
	Timezone          string `toml:"timezone"`
	SaveNoticeDelayMs int    `toml:"save_notice_delay_ms"`
}

// Location зона, в которой интерпретируются даты и слоты
func (s ScheduleConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

// SaveNoticeDelay окно объединения уведомлений о сохранении
func (s ScheduleConfig) SaveNoticeDelay() time.Duration {
	return time.Duration(s.SaveNoticeDelayMs) * time.Millisecond
}

type PaymentsConfig struct {
	SecretKey         string `toml:"secret_key"`
	WebhookSecret     string `toml:"webhook_secret"`
	Currency          string `toml:"currency"`
	ReturnURL         string `toml:"return_url"`
	VerifyOnReturn    bool   `toml:"verify_on_return"`
	HandoffTTLMinutes int    `toml:"handoff_ttl_minutes"` // 0 без ограничения
}

// HandoffTTL срок жизни черновика до возврата с оплаты
func (p PaymentsConfig) HandoffTTL() time.Duration {
	return time.Duration(p.HandoffTTLMinutes) * time.Minute
}

type AdminConfig struct {
	Secret string `toml:"secret"`
}

type ConsultantConfig struct {
	WhatsAppNumber string `toml:"whatsapp_number"` // только цифры, без "+"
}

type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

type RateLimitConfig struct {
	Enabled        bool `toml:"enabled"`
	RequestsPerMin int  `toml:"requests_per_minute"`
	Burst          int  `toml:"burst"`
	IdleTTLMinutes int  `toml:"idle_ttl_minutes"`
}

// Переменные окружения, перекрывающие секреты из файла
const (
	envStripeSecretKey     = "STRIPE_SECRET_KEY"
	envStripeWebhookSecret = "STRIPE_WEBHOOK_SECRET"
	envAdminSecret         = "ADMIN_SECRET"
	envGeminiAPIKey        = "GEMINI_API_KEY"
	envDBPassword          = "DB_PASSWORD"
	envRedisAddr           = "REDIS_ADDR"
	envRedisPassword       = "REDIS_PASSWORD"
	envStorageDriver       = "STORAGE_DRIVER"
)

// Load читает TOML файл, применяет значения по умолчанию и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs:       LogsConfig{Level: "info"},
		Metrics:    MetricsConfig{Enabled: true, Path: "/metrics", ServiceName: "consultation_booking"},
		Storage:    StorageConfig{Driver: StorageMemory},
		Database:   DatabaseConfig{Port: 5432, SSLMode: "disable", MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxLifetime: 300},
		Redis:      RedisConfig{Addr: "localhost:6379", KeyPrefix: "consultations:"},
		Schedule:   ScheduleConfig{Timezone: "Europe/Berlin", SaveNoticeDelayMs: 1200},
		Payments:   PaymentsConfig{Currency: "eur", VerifyOnReturn: true},
		Consultant: ConsultantConfig{WhatsAppNumber: "4917655382575"},
		Gemini:     GeminiConfig{Model: "gemini-2.5-flash"},
		RateLimit: RateLimitConfig{
			Enabled:        true,
			RequestsPerMin: 120,
			Burst:          20,
			IdleTTLMinutes: 10,
		},
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(envStripeSecretKey, &c.Payments.SecretKey)
	set(envStripeWebhookSecret, &c.Payments.WebhookSecret)
	set(envAdminSecret, &c.Admin.Secret)
	set(envGeminiAPIKey, &c.Gemini.APIKey)
	set(envDBPassword, &c.Database.Password)
	set(envRedisAddr, &c.Redis.Addr)
	set(envRedisPassword, &c.Redis.Password)
	set(envStorageDriver, &c.Storage.Driver)
}

// Validate проверяет значения, без которых сервис не стартует
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres, StorageRedis:
	default:
		return fmt.Errorf("%w: storage.driver must be memory, postgres or redis, got %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	for _, proxy := range c.Server.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("%w: server.trusted_proxies: invalid entry %q", ErrInvalidConfig, proxy)
			}
		}
	}
	if _, err := c.Schedule.Location(); err != nil {
		return fmt.Errorf("%w: schedule.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Payments.ReturnURL != "" {
		if u, err := url.Parse(c.Payments.ReturnURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: payments.return_url must be an absolute URL", ErrInvalidConfig)
		}
	}
	if c.Consultant.WhatsAppNumber = strings.TrimPrefix(strings.TrimSpace(c.Consultant.WhatsAppNumber), "+"); c.Consultant.WhatsAppNumber == "" {
		return fmt.Errorf("%w: consultant.whatsapp_number is required", ErrInvalidConfig)
	}
	return nil
}
