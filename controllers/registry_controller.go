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

package controllers

import (
	"net/http"
	"strconv"

	"github.com/aglang/module-registry/middleware/logger"
	"github.com/aglang/module-registry/services"
	"github.com/aglang/module-registry/spec"
	"github.com/aglang/module-registry/utils"
)

// RegistryController defines the interface for the publish and resolve endpoints
type RegistryController interface {
	Publish(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
	ListModules(w http.ResponseWriter, r *http.Request)
}

type registryController struct {
	registryService services.RegistryService
}

// NewRegistryController creates a new registry controller
func NewRegistryController(registryService services.RegistryService) RegistryController {
	return &registryController{
		registryService: registryService,
	}
}

// Publish handles POST /add
func (c *registryController) Publish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var (
		req *spec.PublishRequest
		err error
	)
	if isFormRequest(r) {
		req, err = decodePublishForm(w, r)
	} else {
		req = &spec.PublishRequest{}
		err = decodeJSONBody(w, r, req)
	}
	if err != nil {
		log.Warn("Publish: invalid request body", "error", err)
		utils.WriteAPIError(w, err)
		return
	}

	action, err := c.registryService.Publish(ctx, principalFrom(r), services.ModuleInput{
		Name:        req.Name,
		Description: derefString(req.Description),
		Version:     req.Version,
		URL:         req.URL,
	})
	if err != nil {
		log.Warn("Publish: request failed", "name", req.Name, "error", err)
		utils.WriteAPIError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, &spec.PublishResponse{
		Success: true,
		Action:  string(action),
	})
}

// Resolve handles GET /{name}/{version} by redirecting to the stored artifact URL
func (c *registryController) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	name := r.PathValue(utils.PathParamModuleName)
	version, err := utils.ParseVersion(r.PathValue(utils.PathParamVersion))
	if err != nil {
		utils.WriteAPIError(w, err)
		return
	}

	resolution, err := c.registryService.Resolve(ctx, name, version)
	if err != nil {
		log.Debug("Resolve: request failed", "name", name, "version", version, "error", err)
		utils.WriteAPIError(w, err)
		return
	}

	w.Header().Set(utils.ModuleVersionHeader, strconv.FormatInt(resolution.Version, 10))
	http.Redirect(w, r, resolution.URL, http.StatusFound)
}

// ListModules handles GET /modules
func (c *registryController) ListModules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	listings, err := c.registryService.ListCatalog(ctx)
	if err != nil {
		log.Error("ListModules: failed to list catalog", "error", err)
		utils.WriteAPIError(w, err)
		return
	}

	utils.WriteNegotiatedResponse(w, r, http.StatusOK, convertToModuleListResponse(listings))
}
