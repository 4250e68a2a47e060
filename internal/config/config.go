package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, например DINELOCAL_DATABASE_HOST
const EnvPrefix = "DINELOCAL"

// ErrInvalidConfig возвращается, когда итоговая конфигурация некорректна
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // В секундах
	AutoMigrate     bool   `toml:"auto_migrate" split_words:"true"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name" split_words:"true"`
	Path        string `toml:"path"`
}

// RedisConfig настройки кэша статистики
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	StatsTTL int    `toml:"stats_ttl" split_words:"true"` // В секундах
}

// RabbitMQConfig настройки публикации событий
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// Load читает конфигурацию из TOML файла, применяет переменные окружения
// с префиксом DINELOCAL и заполняет значения по умолчанию.
// Отсутствующий файл не ошибка: конфигурация может целиком прийти из окружения.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "dinelocal_booking"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.StatsTTL == 0 {
		c.Redis.StatsTTL = 60
	}

	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "dinelocal.bookings"
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.User == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.user and database.dbname are required", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Logs.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown logs.level %q", ErrInvalidConfig, c.Logs.Level)
	}
	if c.Redis.StatsTTL < 0 {
		return fmt.Errorf("%w: redis.stats_ttl must not be negative", ErrInvalidConfig)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}
	return nil
}
