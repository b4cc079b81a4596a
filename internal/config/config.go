package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Rollup   RollupConfig   `yaml:"rollup"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `yaml:"port"`
	Host string `yaml:"host"`
	Addr string `yaml:"-"` // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite or postgres
	Path   string `yaml:"path"`   // SQLite file
	URL    string `yaml:"url"`    // Postgres connection URL
}

// DSN returns the data source for the configured driver.
func (d DatabaseConfig) DSN() string {
	if strings.HasPrefix(strings.ToLower(d.Driver), "postgres") || strings.EqualFold(d.Driver, "pgx") {
		return d.URL
	}
	return d.Path
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RollupConfig holds period resolution settings
type RollupConfig struct {
	FallbackMonths int `yaml:"fallback_months"`
}

// SnapshotConfig holds scheduled snapshot settings
type SnapshotConfig struct {
	Schedule    string `yaml:"schedule"` // cron spec; "off" disables the job
	Concurrency int    `yaml:"concurrency"`
}

// Enabled reports whether the snapshot job should be scheduled.
func (s SnapshotConfig) Enabled() bool {
	return s.Schedule != "" && !strings.EqualFold(s.Schedule, "off")
}

// defaults returns the configuration used when nothing else is set.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "5001",
			Host: "localhost",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "./data/wealthpilot.db",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Rollup: RollupConfig{
			FallbackMonths: 24,
		},
		Snapshot: SnapshotConfig{
			Schedule:    "0 2 * * *",
			Concurrency: 4,
		},
	}
}

// Load reads configuration from an optional YAML file (CONFIG_FILE), the .env file and
// environment variables, later sources overriding earlier ones.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, err
		}
	}

	config.Server.Port = getEnv("SERVER_PORT", config.Server.Port)
	config.Server.Host = getEnv("SERVER_HOST", config.Server.Host)
	config.Database.Driver = getEnv("DB_DRIVER", config.Database.Driver)
	config.Database.Path = getEnv("DB_PATH", config.Database.Path)
	config.Database.URL = getEnv("DATABASE_URL", config.Database.URL)
	config.Snapshot.Schedule = getEnv("SNAPSHOT_SCHEDULE", config.Snapshot.Schedule)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		config.CORS.AllowedOrigins = splitList(origins)
	}

	var err error
	if config.Rollup.FallbackMonths, err = getEnvInt("FALLBACK_MONTHS", config.Rollup.FallbackMonths); err != nil {
		return nil, err
	}
	if config.Snapshot.Concurrency, err = getEnvInt("SNAPSHOT_CONCURRENCY", config.Snapshot.Concurrency); err != nil {
		return nil, err
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from operator configuration
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
