package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Port     string         `yaml:"port"`
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// StoreConfig selects where the record snapshot is kept
type StoreConfig struct {
	Backend  string `yaml:"backend"` // database | file | memory
	Key      string `yaml:"key"`
	Dir      string `yaml:"dir"`
	PageSize int    `yaml:"page_size"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver     string `yaml:"driver"` // sqlite | postgres
	SQLitePath string `yaml:"sqlite_path"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	Database   string `yaml:"database"`
	Silent     bool   `yaml:"silent"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

const (
	BackendDatabase = "database"
	BackendFile     = "file"
	BackendMemory   = "memory"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Port: "3211",
		Store: StoreConfig{
			Backend:  BackendDatabase,
			Key:      "tableDataStore",
			Dir:      "./data",
			PageSize: 5,
		},
		Database: DatabaseConfig{
			Driver:     DriverSQLite,
			SQLitePath: "./eckform.db",
			Host:       "localhost",
			Port:       "5432",
			Username:   "postgres",
			Database:   "eckform",
			Silent:     true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from the optional YAML file named by
// ECKFORM_CONFIG, then from environment variables (and .env)
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("ECKFORM_CONFIG"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)

	cfg.Store.Backend = getEnv("STORE_BACKEND", cfg.Store.Backend)
	cfg.Store.Key = getEnv("STORE_KEY", cfg.Store.Key)
	cfg.Store.Dir = getEnv("STORE_DIR", cfg.Store.Dir)
	pageSize, err := getEnvInt("PAGE_SIZE", cfg.Store.PageSize)
	if err != nil {
		return nil, err
	}
	cfg.Store.PageSize = pageSize

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.SQLitePath = getEnv("SQLITE_PATH", cfg.Database.SQLitePath)
	cfg.Database.Host = getEnv("PG_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("PG_PORT", cfg.Database.Port)
	cfg.Database.Username = getEnv("PG_USERNAME", cfg.Database.Username)
	cfg.Database.Password = getEnv("PG_PASSWORD", cfg.Database.Password)
	cfg.Database.Database = getEnv("PG_DATABASE", cfg.Database.Database)
	cfg.Database.Silent = getEnv("DB_SILENT", strconv.FormatBool(cfg.Database.Silent)) == "true"

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendDatabase, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver)
	}
	if c.Store.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.Store.PageSize)
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
