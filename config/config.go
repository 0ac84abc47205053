// Copyright (c) 2026, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Database driver names accepted by DB_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the full runtime configuration of the registry service
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host              string
	Port              int
	APIBasePath       string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Address returns host:port for the HTTP listener
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds persistence settings
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

var dsnValueEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// PostgresDSN builds a keyword/value connection string for the postgres driver.
// Values are single-quoted with quotes and backslashes escaped.
func (d DatabaseConfig) PostgresDSN() string {
	pairs := [][2]string{
		{"host", d.Host},
		{"port", strconv.Itoa(d.Port)},
		{"user", d.User},
		{"password", d.Password},
		{"dbname", d.Name},
		{"sslmode", d.SSLMode},
	}
	parts := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		parts = append(parts, kv[0]+"='"+dsnValueEscaper.Replace(kv[1])+"'")
	}
	return strings.Join(parts, " ")
}

// AuthConfig holds bearer token verification settings
type AuthConfig struct {
	SigningKey    string
	Issuer        string
	Audience      string
	AdminSubjects []int64
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

var (
	config     *Config
	configOnce sync.Once
	configErr  error
)

// GetConfig returns the process-wide configuration, loading it on first use
func GetConfig() (*Config, error) {
	configOnce.Do(func() {
		config, configErr = LoadConfig()
	})
	return config, configErr
}

// LoadConfig reads an optional .env file and then the environment
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	r := &envReader{}
	cfg := &Config{
		Server: ServerConfig{
			Host:              r.readString("SERVER_HOST", "0.0.0.0"),
			Port:              r.readInt("SERVER_PORT", 8080),
			APIBasePath:       r.readString("API_BASE_PATH", "/repo/v1"),
			ReadHeaderTimeout: r.readDuration("READ_HEADER_TIMEOUT", 10*time.Second),
			ShutdownTimeout:   r.readDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          r.readString("DB_DRIVER", DriverPostgres),
			Host:            r.readString("DB_HOST", "localhost"),
			Port:            r.readInt("DB_PORT", 5432),
			User:            r.readString("DB_USER", "registry"),
			Password:        r.readString("DB_PASSWORD", ""),
			Name:            r.readString("DB_NAME", "module_registry"),
			SSLMode:         r.readString("DB_SSLMODE", "disable"),
			SQLitePath:      r.readString("DB_SQLITE_PATH", "registry.db"),
			MaxOpenConns:    r.readInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    r.readInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: r.readDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Auth: AuthConfig{
			SigningKey:    r.readString("JWT_SIGNING_KEY", ""),
			Issuer:        r.readString("JWT_ISSUER", ""),
			Audience:      r.readString("JWT_AUDIENCE", ""),
			AdminSubjects: r.readInt64List("ADMIN_SUBJECTS"),
		},
		Log: LogConfig{
			Level:  r.readString("LOG_LEVEL", "info"),
			Format: r.readString("LOG_FORMAT", "json"),
		},
	}

	if len(r.errs) > 0 {
		return nil, errors.Join(r.errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have no usable default
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !strings.HasPrefix(c.Server.APIBasePath, "/") {
		errs = append(errs, fmt.Errorf("API_BASE_PATH must start with '/', got %q", c.Server.APIBasePath))
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver))
	}
	if c.Auth.SigningKey == "" {
		errs = append(errs, errors.New("JWT_SIGNING_KEY is required"))
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// ParseLogLevel converts a LOG_LEVEL value into a slog level
func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is not valid: %w", level, err)
	}
	return l, nil
}

// envReader collects parse errors so that all bad values are reported at once
type envReader struct {
	errs []error
}

func (r *envReader) readString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *envReader) readInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be an integer: %w", key, err))
		return def
	}
	return n
}

func (r *envReader) readDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be a duration: %w", key, err))
		return def
	}
	return d
}

func (r *envReader) readInt64List(key string) []int64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	var out []int64
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("%s entry %q must be an integer: %w", key, part, err))
			continue
		}
		out = append(out, n)
	}
	return out
}
