package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
// Пример: BOOKING_DATABASE_HOST, BOOKING_COMMANDS_HISTORY_SIZE
// Теги envconfig не используются: для тегированных полей envconfig
// дополнительно читает переменную без префикса (PATH, USER, HOST)
const EnvPrefix = "BOOKING"

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	EventsDriverRabbitMQ = "rabbitmq"
	EventsDriverLog      = "log"
)

// Значения по умолчанию
const (
	DefaultHTTPPort                = 8080
	DefaultTimeoutSeconds          = 15
	DefaultShutdownTimeoutSeconds  = 10
	DefaultHistorySize             = 50
	DefaultOperationTimeoutSeconds = 5
	DefaultMetricsPath             = "/metrics"
	DefaultServiceName             = "smc-booking-lifecycle"
	DefaultEventsExchange          = "booking.events"
)

var (
	// ErrInvalidConfig возвращается, если конфигурация не проходит валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Storage  StorageConfig  `toml:"storage"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Tracing  TracingConfig  `toml:"tracing"`
	Commands CommandsConfig `toml:"commands"`
	Events   EventsConfig   `toml:"events"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

// StorageConfig выбор хранилища бронирований
type StorageConfig struct {
	Driver string `toml:"driver"` // postgres | memory
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"` // пусто - stdout
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// TracingConfig настройки OpenTelemetry
type TracingConfig struct {
	Enabled     bool   `toml:"enabled"`
	Endpoint    string `toml:"endpoint"`
	Insecure    bool   `toml:"insecure"`
	Environment string `toml:"environment"`
}

// CommandsConfig настройки движка команд
type CommandsConfig struct {
	HistorySize      int `toml:"history_size" split_words:"true"`
	OperationTimeout int `toml:"operation_timeout" split_words:"true"` // секунды, 0 - без ограничения
}

// EventsConfig настройки отправки доменных событий
type EventsConfig struct {
	Driver   string `toml:"driver"` // rabbitmq | log
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// Load читает конфигурацию из TOML файла и применяет переопределения из окружения
// Отсутствующий файл не является ошибкой - используются значения по умолчанию и окружение
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("config: decode %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: apply environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = DefaultHTTPPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultTimeoutSeconds
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultTimeoutSeconds
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 4 * DefaultTimeoutSeconds
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeoutSeconds
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = DefaultServiceName
	}
	if c.Commands.HistorySize == 0 {
		c.Commands.HistorySize = DefaultHistorySize
	}
	if c.Commands.OperationTimeout == 0 {
		c.Commands.OperationTimeout = DefaultOperationTimeoutSeconds
	}
	if c.Events.Driver == "" {
		c.Events.Driver = EventsDriverLog
	}
	if c.Events.Exchange == "" {
		c.Events.Exchange = DefaultEventsExchange
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Commands.HistorySize < 0 {
		return fmt.Errorf("%w: commands.history_size must be positive", ErrInvalidConfig)
	}
	if c.Commands.OperationTimeout < 0 {
		return fmt.Errorf("%w: commands.operation_timeout must not be negative", ErrInvalidConfig)
	}

	switch c.Events.Driver {
	case EventsDriverLog:
	case EventsDriverRabbitMQ:
		if c.Events.URL == "" {
			return fmt.Errorf("%w: events.url is required for rabbitmq driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown events.driver %q", ErrInvalidConfig, c.Events.Driver)
	}

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("%w: tracing.endpoint is required when tracing is enabled", ErrInvalidConfig)
	}

	return nil
}
