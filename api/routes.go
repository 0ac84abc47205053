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

package api

import (
	"net/http"

	"github.com/aglang/module-registry/middleware/auth"
	"github.com/aglang/module-registry/wiring"
)

func registerRegistryRoutes(mux *http.ServeMux, params *wiring.AppParams) {
	ctrl := params.RegistryController
	mux.HandleFunc("POST /add", auth.RequireAuth(ctrl.Publish))
	mux.HandleFunc("GET /modules", ctrl.ListModules)
	mux.HandleFunc("GET /{name}/{version}", ctrl.Resolve)
}

func registerManageRoutes(mux *http.ServeMux, params *wiring.AppParams) {
	ctrl := params.ManageController
	mux.HandleFunc("GET /manage/modules", auth.RequireAuth(ctrl.ListManagedModules))
	mux.HandleFunc("PUT /manage/modules/{name}", auth.RequireAuth(ctrl.UpdateModule))
	mux.HandleFunc("DELETE /manage/modules/{name}", auth.RequireAuth(ctrl.DeleteModule))
}

func registerAdminRoutes(mux *http.ServeMux, params *wiring.AppParams) {
	ctrl := params.AdminController
	mux.HandleFunc("GET /admin/publishers", auth.RequireAuth(ctrl.ListPublishers))
	mux.HandleFunc("POST /admin/publishers", auth.RequireAuth(ctrl.AddPublisher))
	mux.HandleFunc("DELETE /admin/publishers/{id}", auth.RequireAuth(ctrl.RemovePublisher))
}
