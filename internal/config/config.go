package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Port        string
	Environment string
	APIPrefix   string
	CORSOrigins string
	FrontendURL string
	TablePrefix string

	// Storage
	StorageDriver     string
	DatabaseURL       string
	MongoURL          string
	MongoDatabase     string
	MongoTransactions bool

	// Auth
	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string
	SessionSecret      string
	SessionTTL         time.Duration
	JWKSURL            string // Optional external identity provider

	// Logging
	LogDir      string
	LogMaxFiles int
	Debug       bool
}

// fileConfig mirrors Config for the optional YAML file. Environment variables win.
type fileConfig struct {
	Port        string `yaml:"port"`
	Environment string `yaml:"environment"`
	APIPrefix   string `yaml:"api_prefix"`
	CORSOrigins string `yaml:"cors_origins"`
	FrontendURL string `yaml:"frontend_url"`

	Storage struct {
		Driver            string `yaml:"driver"`
		DatabaseURL       string `yaml:"database_url"`
		MongoURL          string `yaml:"mongo_url"`
		MongoDatabase     string `yaml:"mongo_database"`
		MongoTransactions string `yaml:"mongo_transactions"`
	} `yaml:"storage"`

	Auth struct {
		GitHubClientID     string `yaml:"github_client_id"`
		GitHubClientSecret string `yaml:"github_client_secret"`
		GitHubCallbackURL  string `yaml:"github_callback_url"`
		SessionSecret      string `yaml:"session_secret"`
		SessionTTL         string `yaml:"session_ttl"`
		JWKSURL            string `yaml:"jwks_url"`
	} `yaml:"auth"`

	Log struct {
		Dir      string `yaml:"dir"`
		MaxFiles string `yaml:"max_files"`
	} `yaml:"log"`
}

// Load builds the configuration from an optional YAML file (CONFIG_FILE,
// default config.yaml) overlaid with environment variables.
func Load() (*Config, error) {
	fc, err := loadFile(getEnv("CONFIG_FILE", "config.yaml"))
	if err != nil {
		return nil, err
	}

	env := getEnv("ENVIRONMENT", or(fc.Environment, "dev"))

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", or(fc.Auth.SessionTTL, "168h")))
	if err != nil {
		return nil, fmt.Errorf("parse SESSION_TTL: %w", err)
	}

	maxFiles, err := strconv.Atoi(getEnv("LOG_MAX_FILES", or(fc.Log.MaxFiles, "10")))
	if err != nil {
		return nil, fmt.Errorf("parse LOG_MAX_FILES: %w", err)
	}

	cfg := &Config{
		Port:        getEnv("PORT", or(fc.Port, "8080")),
		Environment: env,
		APIPrefix:   strings.TrimSuffix(getEnv("API_PREFIX", or(fc.APIPrefix, "/api/v1")), "/"),
		CORSOrigins: getEnv("CORS_ORIGINS", or(fc.CORSOrigins, "http://localhost:5173")),
		FrontendURL: getEnv("FRONTEND_URL", or(fc.FrontendURL, "http://localhost:5173")),
		TablePrefix: getTablePrefix(env),

		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", or(fc.Storage.Driver, DriverPostgres))),
		DatabaseURL:       getEnv("DATABASE_URL", fc.Storage.DatabaseURL),
		MongoURL:          getEnv("MONGO_URL", or(fc.Storage.MongoURL, "mongodb://localhost:27017")),
		MongoDatabase:     getEnv("MONGO_DATABASE", or(fc.Storage.MongoDatabase, "taskdeck")),
		MongoTransactions: getEnv("MONGO_TRANSACTIONS", or(fc.Storage.MongoTransactions, "true")) == "true",

		GitHubClientID:     getEnv("GITHUB_CLIENT_ID", fc.Auth.GitHubClientID),
		GitHubClientSecret: getEnv("GITHUB_CLIENT_SECRET", fc.Auth.GitHubClientSecret),
		GitHubCallbackURL:  getEnv("GITHUB_CALLBACK_URL", or(fc.Auth.GitHubCallbackURL, "http://localhost:8080/api/v1/user/auth/github/callback")),
		SessionSecret:      getEnv("SESSION_SECRET", fc.Auth.SessionSecret),
		SessionTTL:         ttl,
		JWKSURL:            getEnv("AUTH_JWKS_URL", fc.Auth.JWKSURL),

		LogDir:      getEnv("LOG_DIR", fc.Log.Dir),
		LogMaxFiles: maxFiles,
		Debug:       getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	case DriverMongo:
		if c.MongoURL == "" {
			return errors.New("MONGO_URL is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.Environment == "prod" && c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required in prod")
	}
	return nil
}

// IsProd reports whether the server runs in the production environment.
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

func loadFile(path string) (*fileConfig, error) {
	fc := &fileConfig{}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func or(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
