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

// PublisherRepository defines the interface for allow-list data access
type PublisherRepository interface {
	// Exists reports whether the principal id is on the allow-list
	Exists(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Publisher, error)
	List(ctx context.Context) ([]models.Publisher, error)
	Create(ctx context.Context, publisher *models.Publisher) error
	// Delete removes the entry and returns the number of rows affected
	Delete(ctx context.Context, id int64) (int64, error)
}

// PublisherRepo implements PublisherRepository using GORM
type PublisherRepo struct {
	db *gorm.DB
}

// NewPublisherRepo creates a new publisher repository
func NewPublisherRepo(db *gorm.DB) PublisherRepository {
	return &PublisherRepo{db: db}
}

// Exists reports whether the principal id is on the allow-list
func (r *PublisherRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Publisher{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByID retrieves an allow-list entry
func (r *PublisherRepo) GetByID(ctx context.Context, id int64) (*models.Publisher, error) {
	var publisher models.Publisher
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&publisher).Error; err != nil {
		return nil, err
	}
	return &publisher, nil
}

// List returns the whole allow-list ordered by name
func (r *PublisherRepo) List(ctx context.Context) ([]models.Publisher, error) {
	var publishers []models.Publisher
	err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&publishers).Error
	return publishers, err
}

// Create inserts a new allow-list entry
func (r *PublisherRepo) Create(ctx context.Context, publisher *models.Publisher) error {
	return r.db.WithContext(ctx).Create(publisher).Error
}

// Delete removes an allow-list entry
func (r *PublisherRepo) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Publisher{})
	return result.RowsAffected, result.Error
}
