package config

import (
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName                       string `env:"APP_NAME" env-default:"pima-integration"`
	Port                          int    `env:"PORT" env-default:"3000"`
	LogLevel                      string `env:"LOG_LEVEL" env-default:"info"`
	HttpServerWriteTimeoutSeconds int    `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerReadTimeoutSeconds  int    `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int    `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	StartupMaxAttempts            int    `env:"STARTUP_MAX_ATTEMPTS" env-default:"5"`

	// Database driver
	DatabaseDriver string `env:"DB_DRIVER" env-default:"postgres"`
	// Database host
	DatabaseHost string `env:"DB_HOST" env-default:"localhost"`
	// Database port
	DatabasePort string `env:"DB_PORT" env-default:"5432"`
	// Database user
	DatabaseUserName string `env:"DB_USER_NAME" env-default:""`
	// Database user password
	DatabasePassword string `env:"DB_PASSWORD" env-default:""`
	// Database name
	DatabaseName string `env:"DB_NAME" env-default:"pima"`
	// Database SSL Mode
	DatabaseSSLMode string `env:"DB_SSL_MODE" env-default:"disable"`
	// Max Open Conns
	DatabaseMaxOpenConns int `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	// Max Idle Conns
	DatabaseMaxIdleConns int `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	// Conn Max Lifetime
	DatabaseConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"10m"`
	// Migration Folder Path
	DatabaseMigrationFolderPath string `env:"DB_MIGRATION_FOLDER_PATH" env-default:"migrations"`
	// Database Migration Version
	DatabaseMigrationVersion int `env:"DB_MIGRATION_VERSION" env-default:"0"`

	// Redis host
	RedisHost string `env:"REDIS_HOST" env-default:"localhost"`
	// Redis port
	RedisPort int `env:"REDIS_PORT" env-default:"6379"`
	// Redis password
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`
	// Redis database number
	RedisDB int `env:"REDIS_DB" env-default:"0"`

	// Kafka brokers (comma-separated)
	KafkaBrokers string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	// Kafka topic for job outcome events
	KafkaOutcomeTopic string `env:"KAFKA_OUTCOME_TOPIC" env-default:"pima.job-outcomes"`
	// Enable/disable outcome event publishing
	KafkaEnabled bool `env:"KAFKA_ENABLED" env-default:"false"`

	// Dispatcher settings
	// Dispatcher poll interval
	DispatchPollInterval time.Duration `env:"DISPATCH_POLL_INTERVAL" env-default:"1m"`
	// Maximum number of jobs claimed per dispatch batch
	DispatchBatchSize int `env:"DISPATCH_BATCH_SIZE" env-default:"100"`
	// TTL for the distributed dispatch lock
	DispatchLockTTL time.Duration `env:"DISPATCH_LOCK_TTL" env-default:"5m"`
	// Enable/disable the dispatch scheduler
	SchedulerEnabled bool `env:"SCHEDULER_ENABLED" env-default:"true"`
	// Retry ceiling for failed jobs
	JobMaxRetries int `env:"JOB_MAX_RETRIES" env-default:"3"`

	// System user attributed to rows written by the pipeline
	IngestionActorID string `env:"INGESTION_ACTOR_ID" env-default:""`

	// CommCare settings
	// HQ base URL used to build attachment links
	CommCareBaseURL string `env:"COMMCARE_BASE_URL" env-default:"https://www.commcarehq.org"`
	// App ids that unlock the farmer check sections on Farm Visit - AA
	FarmVisitChecksAppID1 string `env:"FARM_VISIT_CHECKS_APP_ID_1" env-default:"30cee26f064e403388e334ae7b0c403b"`
	FarmVisitChecksAppID2 string `env:"FARM_VISIT_CHECKS_APP_ID_2" env-default:"812728b8b35644dabb51561420938ee0"`
	// Minimum build versions for the check sections, per app id
	FarmVisitChecksMinBuild1 int `env:"FARM_VISIT_CHECKS_MIN_BUILD_1" env-default:"217"`
	FarmVisitChecksMinBuild2 int `env:"FARM_VISIT_CHECKS_MIN_BUILD_2" env-default:"69"`
	// Minimum build version for observation check sections on the second app
	ObservationChecksMinBuild2 int `env:"OBSERVATION_CHECKS_MIN_BUILD_2" env-default:"34"`

	// Tracing settings
	// Enable OTLP tracing export
	OTLPEnabled bool `env:"OTLP_ENABLED" env-default:"false"`
	// OTLP collector endpoint
	OTLPEndpoint string `env:"OTLP_ENDPOINT" env-default:"localhost:4317"`
}

// Load reads .env when present, applies defaults, then binds environment
// variables over them.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if err := ectoenv.BindEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration defaults. Kept in code so tests can build
// a config without touching the environment.
func Default() *Config {
	return &Config{
		AppName:                       "pima-integration",
		Port:                          3000,
		LogLevel:                      "info",
		HttpServerWriteTimeoutSeconds: 10,
		HttpServerReadTimeoutSeconds:  10,
		HttpServerIdleTimeoutSeconds:  10,
		StartupMaxAttempts:            5,
		DatabaseDriver:                "postgres",
		DatabaseHost:                  "localhost",
		DatabasePort:                  "5432",
		DatabaseName:                  "pima",
		DatabaseSSLMode:               "disable",
		DatabaseMaxOpenConns:          25,
		DatabaseMaxIdleConns:          10,
		DatabaseConnMaxLifetime:       10 * time.Minute,
		DatabaseMigrationFolderPath:   "migrations",
		RedisHost:                     "localhost",
		RedisPort:                     6379,
		KafkaBrokers:                  "localhost:9092",
		KafkaOutcomeTopic:             "pima.job-outcomes",
		DispatchPollInterval:          time.Minute,
		DispatchBatchSize:             100,
		DispatchLockTTL:               5 * time.Minute,
		SchedulerEnabled:              true,
		JobMaxRetries:                 3,
		CommCareBaseURL:               "https://www.commcarehq.org",
		FarmVisitChecksAppID1:         "30cee26f064e403388e334ae7b0c403b",
		FarmVisitChecksAppID2:         "812728b8b35644dabb51561420938ee0",
		FarmVisitChecksMinBuild1:      217,
		FarmVisitChecksMinBuild2:      69,
		ObservationChecksMinBuild2:    34,
		OTLPEndpoint:                  "localhost:4317",
	}
}
