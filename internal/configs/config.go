package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DBconfig holds the database settings.
type DBconfig struct {
	URL      string
	MaxConns int
}

// RESTconfig holds the HTTP server settings.
type RESTconfig struct {
	Port         string
	CORSOrigin   string
	SecureCookie bool
}

// RabbitMQConfig holds the broker settings. Enabled=false runs the
// app without a broker; note-count deltas then stay process-local.
type RabbitMQConfig struct {
	URL     string
	Enabled bool
}

// BlobStoreConfig holds the attachment bucket settings.
type BlobStoreConfig struct {
	BaseURL string
	Bucket  string
	Token   string
}

// LLMConfig holds the extraction model settings.
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// StdoutLoggerConfig holds the console logger settings.
type StdoutLoggerConfig struct {
	Level string
}

// FluentBitConfig holds the Fluent Bit forwarder settings.
type FluentBitConfig struct {
	Enabled bool
	Host    string
	Port    int
	Level   string
}

// AppConfig holds the whole application configuration.
type AppConfig struct {
	AppName           string
	DashboardPassword string
	Database          DBconfig
	Rest              RESTconfig
	RabbitMQ          RabbitMQConfig
	BlobStore         BlobStoreConfig
	LLM               LLMConfig
	StdoutLogger      StdoutLoggerConfig
	FluentBit         FluentBitConfig
}

// LoadConfig reads configuration from the environment, optionally
// seeded from a .env file. A missing .env file is not an error.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "casatrack")
	cfg.DashboardPassword = os.Getenv("DASHBOARD_PASSWORD")
	if cfg.DashboardPassword == "" {
		return nil, fmt.Errorf("DASHBOARD_PASSWORD environment variable is required")
	}

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	cfg.Database.MaxConns = getEnvAsInt("DATABASE_MAX_CONNS", 10)

	cfg.Rest.Port = getEnvAsString("PORT", "8080")
	cfg.Rest.CORSOrigin = getEnvAsString("CORS_ORIGIN", "http://localhost:3000")
	cfg.Rest.SecureCookie = getEnvAsBool("SECURE_COOKIE", true)

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", true)
	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	if cfg.RabbitMQ.Enabled && cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
	}

	cfg.BlobStore.BaseURL = os.Getenv("BLOB_STORE_URL")
	if cfg.BlobStore.BaseURL == "" {
		return nil, fmt.Errorf("BLOB_STORE_URL environment variable is required")
	}
	cfg.BlobStore.Bucket = getEnvAsString("BLOB_STORE_BUCKET", "property-attachments")
	cfg.BlobStore.Token = os.Getenv("BLOB_STORE_TOKEN")

	cfg.LLM.APIKey = os.Getenv("LLM_API_KEY")
	cfg.LLM.BaseURL = getEnvAsString("LLM_BASE_URL", "")
	cfg.LLM.Model = getEnvAsString("LLM_MODEL", "")

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	cfg.FluentBit.Host = getEnvAsString("FLUENTBIT_HOST", "localhost")
	cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
	cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an env variable as int, falling back to the
// default when missing or unparsable.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
