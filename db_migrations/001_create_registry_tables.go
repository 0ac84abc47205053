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
	"gorm.io/gorm"
)

// Create the publisher allow-list and the module catalog
var migration001 = migration{
	ID: 1,
	Migrate: func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			return runSQL(tx,
				`CREATE TABLE IF NOT EXISTS publishers (
					id BIGINT PRIMARY KEY,
					name VARCHAR(191) NOT NULL,
					email VARCHAR(191) NOT NULL,
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS modules (
					name VARCHAR(191) PRIMARY KEY,
					description TEXT NOT NULL DEFAULT '',
					version BIGINT NOT NULL CHECK (version >= 0),
					url TEXT NOT NULL,
					publisher_id BIGINT NOT NULL,
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX IF NOT EXISTS idx_modules_publisher_id ON modules(publisher_id)`,
			)
		})
	},
	Rollback: func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			return runSQL(tx,
				`DROP TABLE IF EXISTS modules`,
				`DROP TABLE IF EXISTS publishers`,
			)
		})
	},
}
