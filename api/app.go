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
	"log/slog"
	"net/http"
	"strings"

	"github.com/aglang/module-registry/middleware/auth"
	"github.com/aglang/module-registry/middleware/logger"
	"github.com/aglang/module-registry/wiring"
)

// MakeHTTPHandler builds the full HTTP surface: the registry API under basePath,
// plus the public catalog page and health endpoint at the root.
func MakeHTTPHandler(params *wiring.AppParams, basePath string, log *slog.Logger) http.Handler {
	apiMux := http.NewServeMux()
	registerRegistryRoutes(apiMux, params)
	registerManageRoutes(apiMux, params)
	registerAdminRoutes(apiMux, params)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", params.HealthController.Healthz)
	mux.HandleFunc("GET /catalog", params.CatalogPageController.RenderCatalog)

	basePath = strings.TrimRight(basePath, "/")
	if basePath == "" {
		mux.Handle("/", apiMux)
	} else {
		mux.Handle(basePath+"/", http.StripPrefix(basePath, apiMux))
	}

	var handler http.Handler = mux
	handler = auth.Middleware(params.TokenVerifier)(handler)
	handler = logger.Recoverer(handler)
	handler = logger.RequestLogger(log)(handler)
	return handler
}
