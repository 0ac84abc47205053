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
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, "/repo/v1", cfg.Server.APIBasePath)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Auth.AdminSubjects)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/reg.db")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("ADMIN_SUBJECTS", "1, 42,,7")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/reg.db", cfg.Database.SQLitePath)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []int64{1, 42, 7}, cfg.Auth.AdminSubjects)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		errMsg string
	}{
		{
			name:   "missing signing key",
			env:    map[string]string{},
			errMsg: "JWT_SIGNING_KEY is required",
		},
		{
			name:   "non-numeric port",
			env:    map[string]string{"JWT_SIGNING_KEY": "k", "SERVER_PORT": "http"},
			errMsg: "SERVER_PORT must be an integer",
		},
		{
			name:   "port out of range",
			env:    map[string]string{"JWT_SIGNING_KEY": "k", "SERVER_PORT": "70000"},
			errMsg: "SERVER_PORT must be between",
		},
		{
			name:   "unknown driver",
			env:    map[string]string{"JWT_SIGNING_KEY": "k", "DB_DRIVER": "mysql"},
			errMsg: "DB_DRIVER must be",
		},
		{
			name:   "bad duration",
			env:    map[string]string{"JWT_SIGNING_KEY": "k", "SHUTDOWN_TIMEOUT": "soon"},
			errMsg: "SHUTDOWN_TIMEOUT must be a duration",
		},
		{
			name:   "bad admin subject",
			env:    map[string]string{"JWT_SIGNING_KEY": "k", "ADMIN_SUBJECTS": "1,root"},
			errMsg: "ADMIN_SUBJECTS entry \"root\"",
		},
		{
			name:   "bad log level",
			env:    map[string]string{"JWT_SIGNING_KEY": "k", "LOG_LEVEL": "loud"},
			errMsg: "LOG_LEVEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SIGNING_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	l, err := ParseLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = ParseLogLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)
}

func TestPostgresDSN_QuotesValues(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "plain", password: "secret"},
		{name: "space", password: "pass word"},
		{name: "single quote", password: "it's"},
		{name: "backslash", password: `back\slash`},
		{name: "looks like another keyword", password: "x dbname=other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DatabaseConfig{
				Host:     "db.internal",
				Port:     5433,
				User:     "registry user",
				Password: tt.password,
				Name:     "modules",
				SSLMode:  "disable",
			}
			parsed, err := pgx.ParseConfig(d.PostgresDSN())
			require.NoError(t, err)
			assert.Equal(t, "db.internal", parsed.Host)
			assert.Equal(t, uint16(5433), parsed.Port)
			assert.Equal(t, "registry user", parsed.User)
			assert.Equal(t, tt.password, parsed.Password)
			assert.Equal(t, "modules", parsed.Database)
		})
	}
}
