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

package wiring

import (
	"github.com/google/wire"

	"github.com/aglang/module-registry/controllers"
	"github.com/aglang/module-registry/db"
	"github.com/aglang/module-registry/middleware/auth"
	"github.com/aglang/module-registry/repositories"
	"github.com/aglang/module-registry/services"
)

var repositoryProviderSet = wire.NewSet(
	repositories.NewPublisherRepo,
	repositories.NewModuleRepo,
)

var serviceProviderSet = wire.NewSet(
	services.NewPublisherService,
	wire.Bind(new(services.AllowList), new(services.PublisherService)),
	services.NewRegistryService,
)

var controllerProviderSet = wire.NewSet(
	controllers.NewRegistryController,
	controllers.NewManageController,
	controllers.NewAdminController,
	controllers.NewCatalogPageController,
	db.NewHealthChecker,
	wire.Bind(new(controllers.HealthChecker), new(*db.HealthChecker)),
	controllers.NewHealthController,
)

var authProviderSet = wire.NewSet(
	ProvideAuthConfig,
	auth.NewTokenVerifier,
)
