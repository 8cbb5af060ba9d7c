package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // часовые пояса без системной базы

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Драйверы хранилища коллекций
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Приёмники архива отчётов
const (
	SinkFS = "fs"
	SinkS3 = "s3"
)

// Config конфигурация приложения
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Reports   ReportsConfig   `yaml:"reports"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig где лежат пять коллекций
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite, postgres или memory
	Path   string `yaml:"path"`   // файл sqlite
	DSN    string `yaml:"dsn"`    // строка подключения postgres
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type DashboardConfig struct {
	Timezone       string `yaml:"timezone"`
	SeedSampleData bool   `yaml:"seed_sample_data"`
	MaxSessions    int    `yaml:"max_sessions"` // сессий с формами в памяти
}

type ReportsConfig struct {
	Export ExportConfig `yaml:"export"`
	S3     S3Config     `yaml:"s3"`
}

// ExportConfig периодическая выгрузка отчётов в архив
type ExportConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"` // cron с секундами
	Sink     string `yaml:"sink"`
	Dir      string `yaml:"dir"`
	Prefix   string `yaml:"prefix"`
}

// S3Config пустые ключи - используется стандартная цепочка учётных данных AWS
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	PathStyle       bool   `yaml:"path_style"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// Load читает YAML, применяет переменные окружения и проверяет результат
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	cfg.Dashboard.SeedSampleData = true
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) overrideWithEnv() {
	if val := os.Getenv("SERVER_ADDRESS"); val != "" {
		if host, port, err := net.SplitHostPort(val); err == nil {
			c.Server.Host = host
			if p, err := strconv.Atoi(port); err == nil {
				c.Server.Port = p
			}
		}
	}
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		if p, err := strconv.Atoi(val); err == nil {
			c.Server.Port = p
		}
	}

	if val := os.Getenv("STORAGE_DRIVER"); val != "" {
		c.Storage.Driver = val
	}
	if val := os.Getenv("SQLITE_PATH"); val != "" {
		c.Storage.Path = val
	}
	if val := os.Getenv("POSTGRES_CONN"); val != "" {
		c.Storage.DSN = val
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if val := os.Getenv("DASHBOARD_TIMEZONE"); val != "" {
		c.Dashboard.Timezone = val
	}
	if val := os.Getenv("REPORTS_S3_BUCKET"); val != "" {
		c.Reports.S3.Bucket = val
	}
	if val := os.Getenv("REPORTS_S3_ENDPOINT"); val != "" {
		c.Reports.S3.Endpoint = val
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	c.Storage.Driver = strings.ToLower(c.Storage.Driver)
	if c.Storage.Path == "" {
		c.Storage.Path = "data/toolshed.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Dashboard.Timezone == "" {
		c.Dashboard.Timezone = "UTC"
	}
	if c.Dashboard.MaxSessions <= 0 {
		c.Dashboard.MaxSessions = 1024
	}
	if c.Reports.Export.Schedule == "" {
		c.Reports.Export.Schedule = "0 0 23 * * *" // ежедневно в 23:00
	}
	if c.Reports.Export.Sink == "" {
		c.Reports.Export.Sink = SinkFS
	}
	if c.Reports.Export.Dir == "" {
		c.Reports.Export.Dir = "reports"
	}
	if c.Reports.S3.Region == "" {
		c.Reports.S3.Region = "us-east-1"
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("postgres driver requires storage.dsn or POSTGRES_CONN")
		}
	default:
		return fmt.Errorf("unknown storage driver: %q", c.Storage.Driver)
	}

	if _, err := time.LoadLocation(c.Dashboard.Timezone); err != nil {
		return fmt.Errorf("invalid dashboard timezone %q: %w", c.Dashboard.Timezone, err)
	}

	if c.Reports.Export.Enabled {
		if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(c.Reports.Export.Schedule); err != nil {
			return fmt.Errorf("invalid export schedule %q: %w", c.Reports.Export.Schedule, err)
		}
		switch c.Reports.Export.Sink {
		case SinkFS:
		case SinkS3:
			if c.Reports.S3.Bucket == "" {
				return fmt.Errorf("s3 sink requires reports.s3.bucket")
			}
		default:
			return fmt.Errorf("unknown report sink: %q", c.Reports.Export.Sink)
		}
	}
	return nil
}

// Location часовой пояс, в котором определяется "сегодня"
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Dashboard.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetServerAddress адрес HTTP-сервера
func (c *Config) GetServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
