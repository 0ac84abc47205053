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

// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aglang/module-registry/config"
	"github.com/aglang/module-registry/db"
	dbmigrations "github.com/aglang/module-registry/db_migrations"
)

// DiscardLogger returns a logger that drops everything
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewSQLite returns an isolated in-memory database with all migrations applied.
// The database is closed when the test ends.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	gdb := OpenSQLite(t)
	require.NoError(t, dbmigrations.Migrate(gdb, DiscardLogger()))
	return gdb
}

// OpenSQLite returns an isolated in-memory database without running migrations
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String()),
	}, DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close(gdb)
	})
	return gdb
}
