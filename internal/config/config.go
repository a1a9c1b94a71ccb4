// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopsavvy/catalog-server/internal/validation"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Catalog   CatalogConfig
	Data      DataConfig
	Server    ServerConfig
	Query     QueryConfig
	Compare   CompareConfig
	RateLimit RateLimitConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `validate:"required,oneof=development staging production"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `validate:"required,oneof=debug info warn error"`
}

// CatalogConfig holds product catalog source configuration.
type CatalogConfig struct {
	// CSVPath points at the raw product dataset read once at startup.
	CSVPath string `validate:"required"`
	// MaxProducts caps how many rows are loaded (0 = unlimited).
	MaxProducts int `validate:"gte=0"`
	// WatchFile enables the advisory file watcher. The catalog is never
	// hot-reloaded; a change only produces a log line and an event.
	WatchFile bool
}

// DataConfig holds server-side state storage configuration.
type DataConfig struct {
	// BasePath is the directory for the session state database and the
	// suggestion index.
	BasePath string `validate:"required"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Name         string
	Port         string        `validate:"required"`
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// QueryConfig holds query engine defaults.
type QueryConfig struct {
	// PageSize is the number of products per result page.
	PageSize int `validate:"gte=1,lte=100"`
	// BrandTopN is how many brands (by product count) the filter index exposes.
	BrandTopN int `validate:"gte=1"`
}

// CompareConfig holds compare list limits.
type CompareConfig struct {
	// MaxItems caps the compare list size. Side-by-side tables stop being
	// readable past a handful of columns.
	MaxItems int `validate:"gte=2,lte=10"`
}

// RateLimitConfig holds API rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerMinute int `validate:"gte=1"`
	Burst             int `validate:"gte=1"`
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	catalogPath := flag.String("catalog", "", "Path to the product catalog CSV")
	maxProducts := flag.String("max-products", "", "Maximum number of products to load (0 = unlimited)")
	watchCatalog := flag.String("watch-catalog", "", "Watch the catalog file for changes (default: true)")
	dataPath := flag.String("data-path", "", "Base path for server state storage")
	serverName := flag.String("server-name", "", "Name for the server")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	pageSize := flag.String("page-size", "", "Products per result page (default: 12)")
	brandTopN := flag.String("brand-top-n", "", "Number of brands exposed in the filter index (default: 20)")
	compareMax := flag.String("compare-max", "", "Maximum compare list size (default: 4)")
	rateLimitRPM := flag.String("rate-limit-rpm", "", "API requests per minute per client (default: 300)")
	rateLimitBurst := flag.String("rate-limit-burst", "", "API rate limit burst (default: 50)")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Catalog: CatalogConfig{
			CSVPath:     getConfigValue(*catalogPath, "CATALOG_CSV_PATH", ""),
			MaxProducts: getIntConfigValue(*maxProducts, "CATALOG_MAX_PRODUCTS", 5000),
			WatchFile:   getBoolConfigValue(*watchCatalog, "CATALOG_WATCH", true),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Server: ServerConfig{
			Name: getConfigValue(*serverName, "SERVER_NAME", "Shop Savvy Catalog"),
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Query: QueryConfig{
			PageSize:  getIntConfigValue(*pageSize, "QUERY_PAGE_SIZE", 12),
			BrandTopN: getIntConfigValue(*brandTopN, "QUERY_BRAND_TOP_N", 20),
		},
		Compare: CompareConfig{
			MaxItems: getIntConfigValue(*compareMax, "COMPARE_MAX_ITEMS", 4),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getIntConfigValue(*rateLimitRPM, "RATE_LIMIT_RPM", 300),
			Burst:             getIntConfigValue(*rateLimitBurst, "RATE_LIMIT_BURST", 50),
		},
	}

	// Parse server timeouts.
	var err error
	cfg.Server.ReadTimeout, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.Server.WriteTimeout, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.Server.IdleTimeout, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}

	// Expand paths.
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}
	if err := cfg.expandCatalogPath(); err != nil {
		return nil, fmt.Errorf("invalid catalog path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	v := validation.New()
	for _, section := range []any{c.App, c.Logger, c.Catalog, c.Data, c.Server, c.Query, c.Compare, c.RateLimit} {
		if err := v.Validate(section); err != nil {
			return err
		}
	}
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute.
// Defaults to ~/ShopSavvy/data.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "ShopSavvy", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// expandCatalogPath expands ~ and makes the path absolute.
// The CSV path has no sensible default; validation rejects an empty value.
func (c *Config) expandCatalogPath() error {
	if c.Catalog.CSVPath == "" {
		return nil
	}

	expanded, err := expandPath(c.Catalog.CSVPath, "")
	if err != nil {
		return err
	}
	c.Catalog.CSVPath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// parseDurationValue resolves a duration from flag, env var, or default.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	strValue := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), strValue, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		// Env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
