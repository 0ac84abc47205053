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

package services_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aglang/module-registry/db/dbtest"
	"github.com/aglang/module-registry/models"
	"github.com/aglang/module-registry/repositories"
	"github.com/aglang/module-registry/services"
	"github.com/aglang/module-registry/utils"
)

var errDBDown = errors.New("connection refused")

// failingPublisherRepo fails every call with errDBDown
type failingPublisherRepo struct{}

func (failingPublisherRepo) Exists(context.Context, int64) (bool, error) { return false, errDBDown }
func (failingPublisherRepo) GetByID(context.Context, int64) (*models.Publisher, error) {
	return nil, errDBDown
}
func (failingPublisherRepo) List(context.Context) ([]models.Publisher, error) { return nil, errDBDown }
func (failingPublisherRepo) Create(context.Context, *models.Publisher) error  { return errDBDown }
func (failingPublisherRepo) Delete(context.Context, int64) (int64, error)     { return 0, errDBDown }

// failingModuleRepo fails every write and lookup with errDBDown
type failingModuleRepo struct{}

func (r failingModuleRepo) WithTx(_ *gorm.DB) repositories.ModuleRepository { return r }
func (r failingModuleRepo) RunInTransaction(_ context.Context, fn func(txRepo repositories.ModuleRepository) error) error {
	return fn(r)
}
func (failingModuleRepo) GetByName(context.Context, string) (*models.Module, error) {
	return nil, gorm.ErrRecordNotFound
}
func (failingModuleRepo) Create(context.Context, *models.Module) error { return errDBDown }
func (failingModuleRepo) UpdateContent(context.Context, string, string, int64, string) (int64, error) {
	return 0, errDBDown
}
func (failingModuleRepo) Delete(context.Context, string) (int64, error) { return 0, errDBDown }
func (failingModuleRepo) ListWithPublishers(context.Context) ([]models.ModuleListing, error) {
	return nil, errDBDown
}
func (failingModuleRepo) ListWithPublishersByOwner(context.Context, int64) ([]models.ModuleListing, error) {
	return nil, errDBDown
}

type staticAllowList bool

func (a staticAllowList) IsAllowed(context.Context, models.Principal) (bool, error) {
	return bool(a), nil
}

func TestPublisherService_AdminOnly(t *testing.T) {
	svc := services.NewPublisherService(dbtest.DiscardLogger(), repositories.NewPublisherRepo(dbtest.NewSQLite(t)))
	ctx := context.Background()
	user := models.Principal{ID: 7}

	_, err := svc.AddPublisher(ctx, user, services.PublisherInput{ID: 7, Name: "me", Email: "me@example.com"})
	assert.ErrorIs(t, err, utils.ErrAdminRequired)

	assert.ErrorIs(t, svc.RemovePublisher(ctx, user, 7), utils.ErrAdminRequired)

	_, err = svc.ListPublishers(ctx, user)
	assert.ErrorIs(t, err, utils.ErrAdminRequired)
}

func TestPublisherService_Lifecycle(t *testing.T) {
	svc := services.NewPublisherService(dbtest.DiscardLogger(), repositories.NewPublisherRepo(dbtest.NewSQLite(t)))
	ctx := context.Background()

	ok, err := svc.IsAllowed(ctx, models.Principal{ID: 7})
	require.NoError(t, err)
	assert.False(t, ok)

	p, err := svc.AddPublisher(ctx, admin, services.PublisherInput{ID: 7, Name: " Andrey\x00 ", Email: "ak@aglang.org"})
	require.NoError(t, err)
	assert.Equal(t, "Andrey", p.Name)

	ok, err = svc.IsAllowed(ctx, models.Principal{ID: 7})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.AddPublisher(ctx, admin, services.PublisherInput{ID: 7, Name: "dup", Email: "dup@example.com"})
	assert.ErrorIs(t, err, utils.ErrPublisherExists)

	list, err := svc.ListPublishers(ctx, admin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ak@aglang.org", list[0].Email)

	require.NoError(t, svc.RemovePublisher(ctx, admin, 7))
	assert.ErrorIs(t, svc.RemovePublisher(ctx, admin, 7), utils.ErrPublisherNotFound)

	ok, err = svc.IsAllowed(ctx, models.Principal{ID: 7})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPublisherService_Validation(t *testing.T) {
	svc := services.NewPublisherService(dbtest.DiscardLogger(), failingPublisherRepo{})
	ctx := context.Background()

	for _, in := range []services.PublisherInput{
		{ID: 0, Name: "a", Email: "a@example.com"},
		{ID: 3, Name: "", Email: "a@example.com"},
		{ID: 3, Name: "a", Email: "nope"},
	} {
		_, err := svc.AddPublisher(ctx, admin, in)
		assert.ErrorIs(t, err, utils.ErrInvalidInput)
	}
}

func TestPublisherService_StorageFailure(t *testing.T) {
	svc := services.NewPublisherService(dbtest.DiscardLogger(), failingPublisherRepo{})
	ctx := context.Background()

	_, err := svc.IsAllowed(ctx, models.Principal{ID: 7})
	assert.ErrorIs(t, err, utils.ErrStorage)

	_, err = svc.AddPublisher(ctx, admin, services.PublisherInput{ID: 7, Name: "a", Email: "a@example.com"})
	assert.ErrorIs(t, err, utils.ErrStorage)
	assert.ErrorIs(t, err, errDBDown)

	err = svc.RemovePublisher(ctx, admin, 7)
	assert.ErrorIs(t, err, utils.ErrStorage)
	assert.NotErrorIs(t, err, utils.ErrPublisherNotFound)
}

func TestRemovePublisher_LogsRemovedEntry(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	svc := services.NewPublisherService(log, repositories.NewPublisherRepo(dbtest.NewSQLite(t)))
	ctx := context.Background()

	_, err := svc.AddPublisher(ctx, admin, services.PublisherInput{ID: 7, Name: "Andrey", Email: "ak@aglang.org"})
	require.NoError(t, err)
	buf.Reset()

	require.NoError(t, svc.RemovePublisher(ctx, admin, 7))
	assert.Contains(t, buf.String(), "name=Andrey")
	assert.Contains(t, buf.String(), "email=ak@aglang.org")

	buf.Reset()
	assert.ErrorIs(t, svc.RemovePublisher(ctx, admin, 9), utils.ErrPublisherNotFound)
	assert.NotContains(t, buf.String(), "removed")
}

func TestIsAllowed_RejectsAnonymous(t *testing.T) {
	svc := services.NewPublisherService(dbtest.DiscardLogger(), failingPublisherRepo{})
	ok, err := svc.IsAllowed(context.Background(), models.Principal{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegistryService_StorageFailure(t *testing.T) {
	svc := services.NewRegistryService(dbtest.DiscardLogger(), failingModuleRepo{}, staticAllowList(true))
	ctx := context.Background()
	p7 := models.Principal{ID: 7}

	_, err := svc.Publish(ctx, p7, services.ModuleInput{Name: "http", Version: int64Ptr(1), URL: "https://example.com/a"})
	assert.ErrorIs(t, err, utils.ErrStorage)
	assert.NotErrorIs(t, err, utils.ErrNotAllowed)

	_, err = svc.ListCatalog(ctx)
	assert.ErrorIs(t, err, utils.ErrStorage)

	_, err = svc.ListManaged(ctx, p7)
	assert.ErrorIs(t, err, utils.ErrStorage)

	// lookups report not found, so writes that need an existing row never reach storage
	assert.ErrorIs(t, svc.DeleteModule(ctx, p7, "http"), utils.ErrModuleNotFound)
}

func TestRegistryService_AllowListFailureIsStorageError(t *testing.T) {
	allowList := services.NewPublisherService(dbtest.DiscardLogger(), failingPublisherRepo{})
	svc := services.NewRegistryService(dbtest.DiscardLogger(), failingModuleRepo{}, allowList)

	_, err := svc.Publish(context.Background(), models.Principal{ID: 7}, services.ModuleInput{Name: "http", Version: int64Ptr(1), URL: "https://example.com/a"})
	assert.ErrorIs(t, err, utils.ErrStorage)
}
