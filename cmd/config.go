package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	// DBDriver selects the database/sql driver under gorm: empty for pgx,
	// "postgres" for lib/pq.
	DBDriver string

	JWTSecret string

	// CODDeliveryBeforePayment lets cash-on-delivery orders ship while unpaid.
	CODDeliveryBeforePayment bool
	RequestTimeout           time.Duration

	// KafkaHost is a comma separated broker list; empty disables Kafka.
	KafkaHost              string
	KafkaInvalidationTopic string

	OutboxBatchSize int
	OutboxRetention time.Duration

	LogLevel slog.Level
}

// LoadConfig reads the configuration from the environment after loading an
// optional .env file. Variables already set win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:               envOr("HTTP_PORT", "8080"),
		DBHost:                 envOr("DB_HOST", "localhost"),
		DBPort:                 envOr("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              envOr("DB_SSLMODE", "disable"),
		DBDriver:               os.Getenv("DB_DRIVER"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaInvalidationTopic: envOr("KAFKA_INVALIDATION_TOPIC", "order-invalidations"),
	}

	var err error
	if cfg.CODDeliveryBeforePayment, err = boolEnv("COD_DELIVERY_BEFORE_PAYMENT", true); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = durationEnv("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.OutboxBatchSize, err = intEnv("OUTBOX_BATCH_SIZE", 100); err != nil {
		return Config{}, err
	}
	if cfg.OutboxRetention, err = durationEnv("OUTBOX_RETENTION", 7*24*time.Hour); err != nil {
		return Config{}, err
	}
	if err = cfg.LogLevel.UnmarshalText([]byte(envOr("LOG_LEVEL", "INFO"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.DBDriver {
	case "", "pgx", "postgres":
	default:
		return Config{}, fmt.Errorf("DB_DRIVER %q is not one of pgx, postgres", cfg.DBDriver)
	}
	return cfg, nil
}

// DSN is the libpq keyword/value connection string both drivers accept.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KafkaHost; nil means Kafka is disabled.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, broker := range strings.Split(c.KafkaHost, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
