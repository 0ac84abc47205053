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

package models

import (
	"time"
)

// Publisher is an allow-listed principal permitted to create and modify modules
type Publisher struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Email     string    `gorm:"column:email;not null" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName returns the table name for the publisher allow-list
func (Publisher) TableName() string {
	return "publishers"
}

// Module is the single current record for a module name.
// Publishing an existing name overwrites description, version and url in place.
type Module struct {
	Name        string    `gorm:"column:name;primaryKey" json:"name"`
	Description string    `gorm:"column:description;not null" json:"description"`
	Version     int64     `gorm:"column:version;not null" json:"version"`
	URL         string    `gorm:"column:url;not null" json:"url"`
	PublisherID int64     `gorm:"column:publisher_id;not null" json:"publisherId"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName returns the table name for the module catalog
func (Module) TableName() string {
	return "modules"
}

// ModuleListing is a module joined with its publisher's display info.
// Publisher columns are nil when the owner has since been removed from the allow-list.
type ModuleListing struct {
	Module
	PublisherName  *string `gorm:"column:publisher_name"`
	PublisherEmail *string `gorm:"column:publisher_email"`
}

// PublishAction reports whether a publish created or overwrote the record
type PublishAction string

const (
	PublishActionInserted PublishAction = "inserted"
	PublishActionUpdated  PublishAction = "updated"
)

// Resolution is the outcome of a successful resolve: where to redirect and which version is served
type Resolution struct {
	Name    string
	Version int64
	URL     string
}
