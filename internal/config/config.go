package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

var (
	// ErrReadConfig возвращается при ошибке чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Store        StoreConfig        `toml:"store"`
	Cache        CacheConfig        `toml:"cache"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Calendar     CalendarConfig     `toml:"calendar"`
	Availability AvailabilityConfig `toml:"availability"`
	Simulator    SimulatorConfig    `toml:"simulator"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Store backends
const (
	StoreBackendPostgres = "postgres"
	StoreBackendHTTP     = "http"
)

// StoreConfig источник записей: собственная БД или внешний сервис бронирований
type StoreConfig struct {
	Backend   string `toml:"backend"`
	BaseURL   string `toml:"base_url"`
	TimeoutMs int    `toml:"timeout_ms"`
}

// Timeout таймаут HTTP клиента
func (s StoreConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

// CacheConfig кэш ленты записей в Redis
type CacheConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTLMs    int    `toml:"ttl_ms"`
}

// TTL время жизни кэша
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMs) * time.Millisecond
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CalendarConfig параметры сетки
type CalendarConfig struct {
	SnapMinutes     int     `toml:"snap_minutes"`
	PixelsPerMinute float64 `toml:"pixels_per_minute"`
}

// AvailabilityConfig начальное расписание: "9:00 AM", "6:00 PM", дни недели по-английски
type AvailabilityConfig struct {
	Open       string   `toml:"open"`
	Close      string   `toml:"close"`
	ClosedDays []string `toml:"closed_days"`
}

// SimulatorConfig параметры симулятора уведомлений
type SimulatorConfig struct {
	Enabled     bool    `toml:"enabled"`
	IntervalMs  int     `toml:"interval_ms"`
	Probability float64 `toml:"probability"`
}

// Interval период тика
func (s SimulatorConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMs) * time.Millisecond
}

// Load читает TOML файл, применяет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	return Parse(string(data))
}

// Parse разбирает конфигурацию из строки TOML
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Store: StoreConfig{
			Backend:   StoreBackendPostgres,
			TimeoutMs: 3000,
		},
		Cache: CacheConfig{
			Addr:  "localhost:6379",
			TTLMs: 2000,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "smc_calendar",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "calendar_service",
		},
		Calendar: CalendarConfig{
			SnapMinutes:     domain.SnapMinutes,
			PixelsPerMinute: 1,
		},
		Availability: AvailabilityConfig{
			Open:       types.To12h(domain.DefaultOpenMinutes),
			Close:      types.To12h(domain.DefaultCloseMinutes),
			ClosedDays: []string{time.Sunday.String()},
		},
		Simulator: SimulatorConfig{
			Enabled:     true,
			IntervalMs:  int(domain.SimulatorInterval / time.Millisecond),
			Probability: domain.SimulatorProbability,
		},
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	switch c.Store.Backend {
	case StoreBackendPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
		}
	case StoreBackendHTTP:
		if c.Store.BaseURL == "" {
			return fmt.Errorf("%w: store.base_url is required for http backend", ErrInvalidConfig)
		}
		if c.Store.TimeoutMs <= 0 {
			return fmt.Errorf("%w: store.timeout_ms must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: store.backend must be postgres or http, got %q", ErrInvalidConfig, c.Store.Backend)
	}

	if c.Cache.Enabled && (c.Cache.Addr == "" || c.Cache.TTLMs <= 0) {
		return fmt.Errorf("%w: cache.addr and positive cache.ttl_ms are required when cache is enabled", ErrInvalidConfig)
	}

	if c.Calendar.SnapMinutes <= 0 || c.Calendar.SnapMinutes > types.MinutesPerDay {
		return fmt.Errorf("%w: calendar.snap_minutes must be in 1..1440", ErrInvalidConfig)
	}

	if c.Calendar.PixelsPerMinute <= 0 {
		return fmt.Errorf("%w: calendar.pixels_per_minute must be positive", ErrInvalidConfig)
	}

	if _, _, _, err := c.Availability.Resolve(); err != nil {
		return err
	}

	if c.Simulator.IntervalMs <= 0 {
		return fmt.Errorf("%w: simulator.interval_ms must be positive", ErrInvalidConfig)
	}

	if c.Simulator.Probability < 0 || c.Simulator.Probability > 1 {
		return fmt.Errorf("%w: simulator.probability must be in [0, 1]", ErrInvalidConfig)
	}

	return nil
}

// Resolve переводит расписание в минуты и дни недели
func (a AvailabilityConfig) Resolve() (int, int, []time.Weekday, error) {
	start, err := types.ParseClock(a.Open)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%w: availability.open: %v", ErrInvalidConfig, err)
	}

	end, err := types.ParseClock(a.Close)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%w: availability.close: %v", ErrInvalidConfig, err)
	}
	if end == 0 {
		end = types.MinutesPerDay
	}

	if start >= end {
		return 0, 0, nil, fmt.Errorf("%w: availability.open must be before availability.close", ErrInvalidConfig)
	}

	closed := make([]time.Weekday, 0, len(a.ClosedDays))
	for _, name := range a.ClosedDays {
		day, ok := parseWeekday(name)
		if !ok {
			return 0, 0, nil, fmt.Errorf("%w: availability.closed_days: unknown weekday %q", ErrInvalidConfig, name)
		}
		closed = append(closed, day)
	}

	return start, end, closed, nil
}

func parseWeekday(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := d.String()
		if strings.EqualFold(name, full) || strings.EqualFold(name, full[:3]) {
			return d, true
		}
	}
	return 0, false
}
