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
	"context"
	"errors"
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

func int64Ptr(v int64) *int64 { return &v }

type fixture struct {
	registry   services.RegistryService
	publishers services.PublisherService
	modules    repositories.ModuleRepository
}

var admin = models.Principal{ID: 1, IsAdmin: true}

// newFixture wires real repositories over an in-memory database and allow-lists the given ids
func newFixture(t *testing.T, allowListed ...int64) *fixture {
	t.Helper()
	gdb := dbtest.NewSQLite(t)
	logger := dbtest.DiscardLogger()

	publisherRepo := repositories.NewPublisherRepo(gdb)
	moduleRepo := repositories.NewModuleRepo(gdb)
	publisherSvc := services.NewPublisherService(logger, publisherRepo)

	for _, id := range allowListed {
		_, err := publisherSvc.AddPublisher(context.Background(), admin, services.PublisherInput{
			ID:    id,
			Name:  "publisher",
			Email: "publisher@example.com",
		})
		require.NoError(t, err)
	}

	return &fixture{
		registry:   services.NewRegistryService(logger, moduleRepo, publisherSvc),
		publishers: publisherSvc,
		modules:    moduleRepo,
	}
}

func (f *fixture) get(t *testing.T, name string) *models.Module {
	t.Helper()
	m, err := f.modules.GetByName(context.Background(), name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	require.NoError(t, err)
	return m
}

// TestRegistryScenario walks the publish/resolve example end to end.
func TestRegistryScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7)
	p7 := models.Principal{ID: 7}

	action, err := f.registry.Publish(ctx, p7, services.ModuleInput{
		Name: "http", Version: int64Ptr(3), URL: "https://example.com/http.ag",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PublishActionInserted, action)
	assert.Equal(t, int64(7), f.get(t, "http").PublisherID)

	action, err = f.registry.Publish(ctx, p7, services.ModuleInput{
		Name: "http", Version: int64Ptr(4), URL: "https://example.com/http4.ag",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PublishActionUpdated, action)
	assert.Equal(t, int64(4), f.get(t, "http").Version)

	res, err := f.registry.Resolve(ctx, "http", 3)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/http4.ag", res.URL)
	assert.Equal(t, int64(4), res.Version)

	res, err = f.registry.Resolve(ctx, "http", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Version)

	_, err = f.registry.Resolve(ctx, "http", 5)
	require.ErrorIs(t, err, utils.ErrOutdated)
	var outdated *utils.OutdatedError
	require.ErrorAs(t, err, &outdated)
	assert.Equal(t, int64(4), outdated.Stored)
	assert.Contains(t, err.Error(), "4")

	_, err = f.registry.Resolve(ctx, "json", 1)
	assert.ErrorIs(t, err, utils.ErrModuleNotFound)
}

func TestPublish_NotAllowListed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7)

	_, err := f.registry.Publish(ctx, models.Principal{ID: 9}, services.ModuleInput{
		Name: "http", Version: int64Ptr(1), URL: "https://example.com/http.ag",
	})
	require.ErrorIs(t, err, utils.ErrNotAllowed)
	assert.Nil(t, f.get(t, "http"), "rejected publish must not create a record")
}

func TestPublish_NotAllowListedCannotModifyExisting(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7)
	p7 := models.Principal{ID: 7}

	_, err := f.registry.Publish(ctx, p7, services.ModuleInput{Name: "http", Version: int64Ptr(1), URL: "https://example.com/a"})
	require.NoError(t, err)

	_, err = f.registry.Publish(ctx, models.Principal{ID: 9}, services.ModuleInput{Name: "http", Version: int64Ptr(9), URL: "https://evil.example.com/a"})
	require.ErrorIs(t, err, utils.ErrNotAllowed)

	m := f.get(t, "http")
	assert.Equal(t, int64(1), m.Version)
	assert.Equal(t, "https://example.com/a", m.URL)
}

func TestPublish_OwnershipConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7, 8)

	_, err := f.registry.Publish(ctx, models.Principal{ID: 7}, services.ModuleInput{
		Name: "http", Description: "original", Version: int64Ptr(3), URL: "https://example.com/a",
	})
	require.NoError(t, err)

	_, err = f.registry.Publish(ctx, models.Principal{ID: 8}, services.ModuleInput{
		Name: "http", Description: "hijack", Version: int64Ptr(10), URL: "https://example.com/b",
	})
	require.ErrorIs(t, err, utils.ErrOwnership)

	m := f.get(t, "http")
	assert.Equal(t, "original", m.Description)
	assert.Equal(t, int64(3), m.Version)
	assert.Equal(t, int64(7), m.PublisherID)
}

func TestPublish_AdminMayOverwriteAnyRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7)

	_, err := f.registry.Publish(ctx, models.Principal{ID: 7}, services.ModuleInput{Name: "http", Version: int64Ptr(3), URL: "https://example.com/a"})
	require.NoError(t, err)

	action, err := f.registry.Publish(ctx, admin, services.ModuleInput{Name: "http", Description: "fixed", Version: int64Ptr(5), URL: "https://example.com/b"})
	require.NoError(t, err)
	assert.Equal(t, models.PublishActionUpdated, action)

	m := f.get(t, "http")
	assert.Equal(t, int64(5), m.Version)
	assert.Equal(t, "fixed", m.Description)
	assert.Equal(t, int64(7), m.PublisherID, "owner is preserved on admin update")
}

func TestPublish_AdminNotAllowListedCannotCreate(t *testing.T) {
	f := newFixture(t)

	_, err := f.registry.Publish(context.Background(), admin, services.ModuleInput{Name: "http", Version: int64Ptr(1), URL: "https://example.com/a"})
	require.ErrorIs(t, err, utils.ErrNotAllowed)
	assert.Nil(t, f.get(t, "http"))
}

func TestPublish_Validation(t *testing.T) {
	f := newFixture(t, 7)
	p7 := models.Principal{ID: 7}

	tests := []struct {
		name  string
		input services.ModuleInput
	}{
		{"empty name", services.ModuleInput{Name: "", Version: int64Ptr(1), URL: "https://example.com/a"}},
		{"bad name", services.ModuleInput{Name: "my-mod", Version: int64Ptr(1), URL: "https://example.com/a"}},
		{"missing version", services.ModuleInput{Name: "http", URL: "https://example.com/a"}},
		{"negative version", services.ModuleInput{Name: "http", Version: int64Ptr(-1), URL: "https://example.com/a"}},
		{"relative url", services.ModuleInput{Name: "http", Version: int64Ptr(1), URL: "files/a"}},
		{"missing url", services.ModuleInput{Name: "http", Version: int64Ptr(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.registry.Publish(context.Background(), p7, tt.input)
			require.ErrorIs(t, err, utils.ErrInvalidInput)
		})
	}
	assert.Nil(t, f.get(t, "http"))
}

func TestPublish_SanitizesInput(t *testing.T) {
	f := newFixture(t, 7)

	_, err := f.registry.Publish(context.Background(), models.Principal{ID: 7}, services.ModuleInput{
		Name:        " http\x00 ",
		Description: "client\x07 library\n",
		Version:     int64Ptr(0),
		URL:         " https://example.com/http.ag ",
	})
	require.NoError(t, err)

	m := f.get(t, "http")
	require.NotNil(t, m)
	assert.Equal(t, "client library", m.Description)
	assert.Equal(t, int64(0), m.Version)
	assert.Equal(t, "https://example.com/http.ag", m.URL)
}

func TestResolve_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.registry.Resolve(context.Background(), "bad/name", 1)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = f.registry.Resolve(context.Background(), "ht\x00tp", 1)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = f.registry.Resolve(context.Background(), "http", -1)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestListManaged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7, 8)

	for _, tc := range []struct {
		owner int64
		name  string
	}{{7, "http"}, {8, "json"}, {7, "sys"}} {
		_, err := f.registry.Publish(ctx, models.Principal{ID: tc.owner}, services.ModuleInput{
			Name: tc.name, Version: int64Ptr(1), URL: "https://example.com/" + tc.name,
		})
		require.NoError(t, err)
	}

	own, err := f.registry.ListManaged(ctx, models.Principal{ID: 7})
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "http", own[0].Name)
	assert.Equal(t, "sys", own[1].Name)

	all, err := f.registry.ListManaged(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	catalog, err := f.registry.ListCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 3)
	assert.Equal(t, "json", catalog[1].Name)
	require.NotNil(t, catalog[1].PublisherName)
}

func TestUpdateModule(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7, 8)

	_, err := f.registry.Publish(ctx, models.Principal{ID: 7}, services.ModuleInput{Name: "http", Version: int64Ptr(1), URL: "https://example.com/a"})
	require.NoError(t, err)

	err = f.registry.UpdateModule(ctx, models.Principal{ID: 7}, services.ModuleInput{Name: "http", Description: "d", Version: int64Ptr(2), URL: "https://example.com/b"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.get(t, "http").Version)

	err = f.registry.UpdateModule(ctx, models.Principal{ID: 8}, services.ModuleInput{Name: "http", Version: int64Ptr(3), URL: "https://example.com/c"})
	assert.ErrorIs(t, err, utils.ErrOwnership)

	err = f.registry.UpdateModule(ctx, models.Principal{ID: 9}, services.ModuleInput{Name: "http", Version: int64Ptr(3), URL: "https://example.com/c"})
	assert.ErrorIs(t, err, utils.ErrNotAllowed)

	err = f.registry.UpdateModule(ctx, models.Principal{ID: 7}, services.ModuleInput{Name: "json", Version: int64Ptr(1), URL: "https://example.com/c"})
	assert.ErrorIs(t, err, utils.ErrModuleNotFound)
	assert.Nil(t, f.get(t, "json"), "update never creates")

	err = f.registry.UpdateModule(ctx, admin, services.ModuleInput{Name: "http", Version: int64Ptr(7), URL: "https://example.com/d"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), f.get(t, "http").Version)
}

func TestDeleteModule(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7, 8)

	for _, name := range []string{"http", "json"} {
		_, err := f.registry.Publish(ctx, models.Principal{ID: 7}, services.ModuleInput{Name: name, Version: int64Ptr(1), URL: "https://example.com/a"})
		require.NoError(t, err)
	}

	assert.ErrorIs(t, f.registry.DeleteModule(ctx, models.Principal{ID: 8}, "http"), utils.ErrOwnership)
	assert.NotNil(t, f.get(t, "http"))

	require.NoError(t, f.registry.DeleteModule(ctx, models.Principal{ID: 7}, "http"))
	assert.Nil(t, f.get(t, "http"))

	_, err := f.registry.Resolve(ctx, "http", 0)
	assert.ErrorIs(t, err, utils.ErrModuleNotFound)

	assert.ErrorIs(t, f.registry.DeleteModule(ctx, models.Principal{ID: 7}, "http"), utils.ErrModuleNotFound)

	require.NoError(t, f.registry.DeleteModule(ctx, admin, "json"))
	assert.Nil(t, f.get(t, "json"))
}

func TestRemovedPublisherBecomesReadOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 7)
	p7 := models.Principal{ID: 7}

	_, err := f.registry.Publish(ctx, p7, services.ModuleInput{Name: "http", Version: int64Ptr(1), URL: "https://example.com/a"})
	require.NoError(t, err)
	require.NoError(t, f.publishers.RemovePublisher(ctx, admin, 7))

	_, err = f.registry.Publish(ctx, p7, services.ModuleInput{Name: "http", Version: int64Ptr(2), URL: "https://example.com/b"})
	assert.ErrorIs(t, err, utils.ErrNotAllowed)

	res, err := f.registry.Resolve(ctx, "http", 1)
	require.NoError(t, err, "modules of removed publishers stay resolvable")
	assert.Equal(t, int64(1), res.Version)

	catalog, err := f.registry.ListCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Nil(t, catalog[0].PublisherName)
}
