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

package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/aglang/module-registry/models"
)

// ModuleRepository defines the interface for module catalog data access
type ModuleRepository interface {
	// Transaction support
	WithTx(tx *gorm.DB) ModuleRepository
	RunInTransaction(ctx context.Context, fn func(txRepo ModuleRepository) error) error

	GetByName(ctx context.Context, name string) (*models.Module, error)
	Create(ctx context.Context, module *models.Module) error
	// UpdateContent overwrites description, version and url of an existing row
	UpdateContent(ctx context.Context, name, description string, version int64, url string) (int64, error)
	Delete(ctx context.Context, name string) (int64, error)

	// ListWithPublishers returns every module joined with its publisher, name ascending
	ListWithPublishers(ctx context.Context) ([]models.ModuleListing, error)
	// ListWithPublishersByOwner restricts the listing to one publisher's modules
	ListWithPublishersByOwner(ctx context.Context, publisherID int64) ([]models.ModuleListing, error)
}

// ModuleRepo implements ModuleRepository using GORM
type ModuleRepo struct {
	db *gorm.DB
}

// NewModuleRepo creates a new module repository
func NewModuleRepo(db *gorm.DB) ModuleRepository {
	return &ModuleRepo{db: db}
}

// WithTx returns a new ModuleRepository backed by the given transaction
func (r *ModuleRepo) WithTx(tx *gorm.DB) ModuleRepository {
	return &ModuleRepo{db: tx}
}

// RunInTransaction executes fn within a database transaction, providing a transaction-bound repository
func (r *ModuleRepo) RunInTransaction(ctx context.Context, fn func(txRepo ModuleRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// GetByName retrieves the current record for a module name
func (r *ModuleRepo) GetByName(ctx context.Context, name string) (*models.Module, error) {
	var module models.Module
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&module).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

// Create inserts a new module record
func (r *ModuleRepo) Create(ctx context.Context, module *models.Module) error {
	return r.db.WithContext(ctx).Create(module).Error
}

// UpdateContent overwrites the mutable columns; name and owner never change
func (r *ModuleRepo) UpdateContent(ctx context.Context, name, description string, version int64, url string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Module{}).
		Where("name = ?", name).
		Updates(map[string]interface{}{
			"description": description,
			"version":     version,
			"url":         url,
			"updated_at":  r.db.NowFunc(),
		})
	return result.RowsAffected, result.Error
}

// Delete removes a module record
func (r *ModuleRepo) Delete(ctx context.Context, name string) (int64, error) {
	result := r.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Module{})
	return result.RowsAffected, result.Error
}

// ListWithPublishers returns every module joined with its publisher, name ascending
func (r *ModuleRepo) ListWithPublishers(ctx context.Context) ([]models.ModuleListing, error) {
	var listings []models.ModuleListing
	err := r.listingQuery(ctx).Scan(&listings).Error
	return listings, err
}

// ListWithPublishersByOwner restricts the listing to one publisher's modules
func (r *ModuleRepo) ListWithPublishersByOwner(ctx context.Context, publisherID int64) ([]models.ModuleListing, error) {
	var listings []models.ModuleListing
	err := r.listingQuery(ctx).Where("m.publisher_id = ?", publisherID).Scan(&listings).Error
	return listings, err
}

func (r *ModuleRepo) listingQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("modules AS m").
		Select("m.name, m.description, m.version, m.url, m.publisher_id, m.created_at, m.updated_at, " +
			"p.name AS publisher_name, p.email AS publisher_email").
		Joins("LEFT JOIN publishers AS p ON p.id = m.publisher_id").
		Order("m.name ASC")
}
