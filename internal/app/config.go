package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/easyorder/internal/messaging/kafka"
)

// StorageDriver выбирает реализацию хранилища.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverPostgres StorageDriver = "postgres"
	StorageDriverSQLite   StorageDriver = "sqlite"
)

// Переменные окружения, из которых собирается Config.
const (
	EnvHTTPAddr            = "EASYORDER_HTTP_ADDR"
	EnvMetricsAddr         = "EASYORDER_METRICS_ADDR"
	EnvStorageDriver       = "EASYORDER_STORAGE_DRIVER"
	EnvPostgresDSN         = "EASYORDER_POSTGRES_DSN"
	EnvPostgresAutoMigrate = "EASYORDER_POSTGRES_AUTO_MIGRATE"
	EnvSQLitePath          = "EASYORDER_SQLITE_PATH"
	EnvKafkaBrokers        = "EASYORDER_KAFKA_BROKERS"
	EnvKafkaTopic          = "EASYORDER_KAFKA_TOPIC"
	EnvLogLevel            = "EASYORDER_LOG_LEVEL"
	EnvCORSOrigins         = "EASYORDER_CORS_ORIGINS"
)

var (
	errUnsupportedDriver = errors.New("unsupported storage driver")
	errPostgresDSN       = errors.New("postgres storage requires " + EnvPostgresDSN)
	errSQLitePath        = errors.New("sqlite storage requires " + EnvSQLitePath)
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	StorageDriver       StorageDriver
	PostgresDSN         string
	PostgresAutoMigrate bool
	SQLitePath          string

	// KafkaBrokers пуст, если публикация событий отключена.
	KafkaBrokers []string
	KafkaTopic   string

	LogLevel    log.Level
	CORSOrigins []string
}

// DefaultConfig возвращает конфигурацию для локального запуска на in-memory хранилище.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8080",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		SQLitePath:          "easyorder.db",
		KafkaTopic:          kafka.TopicRecordEvents,
		LogLevel:            log.InfoLevel,
	}
}

// ConfigFromEnv накладывает переменные окружения на DefaultConfig.
// lookup обычно os.LookupEnv; пустые значения игнорируются.
func ConfigFromEnv(lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	cfg := DefaultConfig()
	if v, ok := get(EnvHTTPAddr); ok {
		cfg.HTTPAddr = v
	}
	if v, ok := get(EnvMetricsAddr); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := get(EnvStorageDriver); ok {
		cfg.StorageDriver = StorageDriver(strings.ToLower(v))
	}
	if v, ok := get(EnvPostgresDSN); ok {
		cfg.PostgresDSN = v
	}
	if v, ok := get(EnvPostgresAutoMigrate); ok {
		autoMigrate, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvPostgresAutoMigrate, err)
		}
		cfg.PostgresAutoMigrate = autoMigrate
	}
	if v, ok := get(EnvSQLitePath); ok {
		cfg.SQLitePath = v
	}
	if v, ok := get(EnvKafkaBrokers); ok {
		cfg.KafkaBrokers = splitList(v)
	}
	if v, ok := get(EnvKafkaTopic); ok {
		cfg.KafkaTopic = v
	}
	if v, ok := get(EnvLogLevel); ok {
		level, err := log.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}
	if v, ok := get(EnvCORSOrigins); ok {
		cfg.CORSOrigins = splitList(v)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность выбранного драйвера и его параметров.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory:
		return nil
	case StorageDriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return errPostgresDSN
		}
		return nil
	case StorageDriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errSQLitePath
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", errUnsupportedDriver, c.StorageDriver)
	}
}

// splitList разбирает список через запятую, отбрасывая пустые элементы.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
