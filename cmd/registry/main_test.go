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

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aglang/module-registry/config"
	"github.com/aglang/module-registry/db"
	"github.com/aglang/module-registry/db/dbtest"
	"github.com/aglang/module-registry/models"
)

func testOptions(t *testing.T) (*options, config.DatabaseConfig) {
	t.Helper()
	dbCfg := config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "registry.db"),
	}
	cfg := &config.Config{
		Database: dbCfg,
		Log:      config.LogConfig{Level: "error", Format: "text"},
	}
	return &options{
		loadConfig: func() (*config.Config, error) { return cfg, nil },
		logOut:     &bytes.Buffer{},
	}, dbCfg
}

func execute(t *testing.T, opts *options, args ...string) error {
	t.Helper()
	cmd := newRootCmd(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func hasRegistryTables(t *testing.T, dbCfg config.DatabaseConfig) bool {
	t.Helper()
	gdb, err := db.Open(dbCfg, dbtest.DiscardLogger())
	require.NoError(t, err)
	defer func() { _ = db.Close(gdb) }()
	return gdb.Migrator().HasTable(&models.Module{}) && gdb.Migrator().HasTable(&models.Publisher{})
}

func TestMigrateUpAndDown(t *testing.T) {
	opts, dbCfg := testOptions(t)

	require.NoError(t, execute(t, opts, "migrate", "up"))
	assert.True(t, hasRegistryTables(t, dbCfg))

	require.NoError(t, execute(t, opts, "migrate", "down"))
	assert.False(t, hasRegistryTables(t, dbCfg))

	require.NoError(t, execute(t, opts, "migrate", "up"))
	assert.True(t, hasRegistryTables(t, dbCfg))
}

func TestMigrateDown_RejectsNonPositiveSteps(t *testing.T) {
	opts, dbCfg := testOptions(t)
	require.NoError(t, execute(t, opts, "migrate", "up"))

	assert.Error(t, execute(t, opts, "migrate", "down", "--steps", "0"))
	assert.True(t, hasRegistryTables(t, dbCfg))
}

func TestMigrateDown_NothingApplied(t *testing.T) {
	opts, _ := testOptions(t)
	assert.Error(t, execute(t, opts, "migrate", "down"))
}
