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
	"github.com/aglang/module-registry/config"
	"github.com/aglang/module-registry/controllers"
	"github.com/aglang/module-registry/middleware/auth"
)

// AppParams holds everything the HTTP layer needs
type AppParams struct {
	RegistryController    controllers.RegistryController
	ManageController      controllers.ManageController
	AdminController       controllers.AdminController
	CatalogPageController controllers.CatalogPageController
	HealthController      controllers.HealthController
	TokenVerifier         *auth.TokenVerifier
}

// ProvideAuthConfig extracts the bearer token settings
func ProvideAuthConfig(cfg *config.Config) config.AuthConfig {
	return cfg.Auth
}
