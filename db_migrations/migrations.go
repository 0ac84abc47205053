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

package dbmigrations

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

type migration struct {
	ID       int
	Migrate  func(db *gorm.DB) error
	Rollback func(db *gorm.DB) error
}

// migrations lists every schema change in application order
var migrations = []migration{
	migration001,
}

func (m migration) toGormigrate() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID:       strconv.Itoa(m.ID),
		Migrate:  m.Migrate,
		Rollback: m.Rollback,
	}
}

func gormigrations() []*gormigrate.Migration {
	out := make([]*gormigrate.Migration, 0, len(migrations))
	for _, m := range migrations {
		out = append(out, m.toGormigrate())
	}
	return out
}

// Migrate applies all pending migrations
func Migrate(db *gorm.DB, logger *slog.Logger) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, gormigrations())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Database migrations applied", "latest", migrations[len(migrations)-1].ID)
	return nil
}

// RollbackLast reverts the most recently applied migration
func RollbackLast(db *gorm.DB, logger *slog.Logger) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, gormigrations())
	if err := m.RollbackLast(); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	logger.Info("Database migration rolled back")
	return nil
}

func runSQL(tx *gorm.DB, statements ...string) error {
	for _, stmt := range statements {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
