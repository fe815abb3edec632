package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultJWTSecret is used when JWT_SECRET is not provided. Deployments must override it.
const DefaultJWTSecret = "your-secret-key"

type Config struct {
	// Server
	ServerPort         string        `yaml:"server_port"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute"`

	// Database
	DBHost         string `yaml:"db_host"`
	DBPort         string `yaml:"db_port"`
	DBUser         string `yaml:"db_user"`
	DBPassword     string `yaml:"db_password"`
	DBName         string `yaml:"db_name"`
	DBSSLMode      string `yaml:"db_sslmode"`
	DBMaxOpenConns int    `yaml:"db_max_open_conns"`

	// Redis
	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// JWT
	JWTSecret string `yaml:"jwt_secret"`

	// AWS S3
	AWSRegion          string `yaml:"aws_region"`
	AWSAccessKeyID     string `yaml:"aws_access_key_id"`
	AWSSecretAccessKey string `yaml:"aws_secret_access_key"`
	AWSEndpoint        string `yaml:"aws_endpoint"`
	S3UseSSL           string `yaml:"s3_use_ssl"`
	S3BucketName       string `yaml:"s3_bucket_name"`

	// RabbitMQ
	RabbitMQHost     string `yaml:"rabbitmq_host"`
	RabbitMQPort     string `yaml:"rabbitmq_port"`
	RabbitMQUser     string `yaml:"rabbitmq_user"`
	RabbitMQPassword string `yaml:"rabbitmq_password"`
}

func defaults() *Config {
	return &Config{
		ServerPort:         "4000",
		RequestTimeout:     10 * time.Second,
		CORSAllowedOrigins: []string{"*"},
		RateLimitPerMinute: 120,

		DBHost:         "localhost",
		DBPort:         "5432",
		DBUser:         "postgres",
		DBPassword:     "password",
		DBName:         "buddyboost",
		DBSSLMode:      "disable",
		DBMaxOpenConns: 20,

		RedisHost: "localhost",
		RedisPort: "6379",

		JWTSecret: DefaultJWTSecret,

		AWSRegion: "us-east-1",
		S3UseSSL:  "true",

		RabbitMQHost:     "localhost",
		RabbitMQPort:     "5672",
		RabbitMQUser:     "guest",
		RabbitMQPassword: "guest",
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE and finally the environment (including a local .env file).
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	config := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.ServerPort = getEnv("SERVER_PORT", getEnv("PORT", config.ServerPort))
	config.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", config.RequestTimeout)
	config.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", config.RateLimitPerMinute)
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		config.CORSAllowedOrigins = splitList(origins)
	}

	config.DBHost = getEnv("DB_HOST", config.DBHost)
	config.DBPort = getEnv("DB_PORT", config.DBPort)
	config.DBUser = getEnv("DB_USER", config.DBUser)
	config.DBPassword = getEnv("DB_PASSWORD", config.DBPassword)
	config.DBName = getEnv("DB_NAME", config.DBName)
	config.DBSSLMode = getEnv("DB_SSLMODE", config.DBSSLMode)
	config.DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", config.DBMaxOpenConns)

	config.RedisHost = getEnv("REDIS_HOST", config.RedisHost)
	config.RedisPort = getEnv("REDIS_PORT", config.RedisPort)
	config.RedisPassword = getEnv("REDIS_PASSWORD", config.RedisPassword)
	config.RedisDB = getEnvInt("REDIS_DB", config.RedisDB)

	config.JWTSecret = getEnv("JWT_SECRET", config.JWTSecret)

	config.AWSRegion = getEnv("AWS_REGION", config.AWSRegion)
	config.AWSAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", config.AWSAccessKeyID)
	config.AWSSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", config.AWSSecretAccessKey)
	config.AWSEndpoint = getEnv("AWS_ENDPOINT", config.AWSEndpoint)
	config.S3UseSSL = getEnv("S3_USE_SSL", config.S3UseSSL)
	config.S3BucketName = getEnv("S3_BUCKET_NAME", config.S3BucketName)

	config.RabbitMQHost = getEnv("RABBITMQ_HOST", config.RabbitMQHost)
	config.RabbitMQPort = getEnv("RABBITMQ_PORT", config.RabbitMQPort)
	config.RabbitMQUser = getEnv("RABBITMQ_USER", config.RabbitMQUser)
	config.RabbitMQPassword = getEnv("RABBITMQ_PASSWORD", config.RabbitMQPassword)

	return config, nil
}

// PostgresDSN returns the key/value connection string understood by both pgx and lib/pq.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("15s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Second
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
