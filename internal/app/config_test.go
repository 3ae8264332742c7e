package app

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/easyorder/internal/messaging/kafka"
)

func envLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefaultConfig_Values(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, ":9090", cfg.MetricsAddr)
	require.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	require.True(t, cfg.PostgresAutoMigrate)
	require.Equal(t, "easyorder.db", cfg.SQLitePath)
	require.Empty(t, cfg.KafkaBrokers)
	require.Equal(t, kafka.TopicRecordEvents, cfg.KafkaTopic)
	require.Equal(t, log.InfoLevel, cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_Empty(t *testing.T) {
	cfg, err := ConfigFromEnv(envLookup(nil))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	cfg, err := ConfigFromEnv(envLookup(map[string]string{
		EnvHTTPAddr:            "127.0.0.1:8081",
		EnvMetricsAddr:         ":9191",
		EnvStorageDriver:       "Postgres",
		EnvPostgresDSN:         "postgres://easyorder:easyorder@db:5432/easyorder",
		EnvPostgresAutoMigrate: "false",
		EnvKafkaBrokers:        "k1:9092, k2:9092,,",
		EnvKafkaTopic:          "records",
		EnvLogLevel:            "debug",
		EnvCORSOrigins:         "http://a.test,http://b.test",
	}))
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:8081", cfg.HTTPAddr)
	require.Equal(t, ":9191", cfg.MetricsAddr)
	require.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	require.Equal(t, "postgres://easyorder:easyorder@db:5432/easyorder", cfg.PostgresDSN)
	require.False(t, cfg.PostgresAutoMigrate)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, "records", cfg.KafkaTopic)
	require.Equal(t, log.DebugLevel, cfg.LogLevel)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestConfigFromEnv_BlankValuesKeepDefaults(t *testing.T) {
	cfg, err := ConfigFromEnv(envLookup(map[string]string{
		EnvHTTPAddr:   "   ",
		EnvSQLitePath: "",
	}))
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "easyorder.db", cfg.SQLitePath)
}

func TestConfigFromEnv_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"bad auto migrate": {EnvPostgresAutoMigrate: "maybe"},
		"bad log level":    {EnvLogLevel: "loud"},
		"postgres w/o dsn": {EnvStorageDriver: "postgres"},
		"unknown driver":   {EnvStorageDriver: "mongo"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ConfigFromEnv(envLookup(env))
			require.Error(t, err)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverSQLite
	require.NoError(t, cfg.Validate())

	cfg.SQLitePath = " "
	require.ErrorIs(t, cfg.Validate(), errSQLitePath)

	cfg.StorageDriver = StorageDriverPostgres
	require.ErrorIs(t, cfg.Validate(), errPostgresDSN)

	cfg.StorageDriver = "cassandra"
	require.ErrorIs(t, cfg.Validate(), errUnsupportedDriver)
}
