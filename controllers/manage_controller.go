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

	"github.com/aglang/module-registry/middleware/logger"
	"github.com/aglang/module-registry/services"
	"github.com/aglang/module-registry/spec"
	"github.com/aglang/module-registry/utils"
)

// ManageController defines the interface for owner-side module management handlers
type ManageController interface {
	ListManagedModules(w http.ResponseWriter, r *http.Request)
	UpdateModule(w http.ResponseWriter, r *http.Request)
	DeleteModule(w http.ResponseWriter, r *http.Request)
}

type manageController struct {
	registryService services.RegistryService
}

// NewManageController creates a new manage controller
func NewManageController(registryService services.RegistryService) ManageController {
	return &manageController{
		registryService: registryService,
	}
}

// ListManagedModules handles GET /manage/modules
func (c *manageController) ListManagedModules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	listings, err := c.registryService.ListManaged(ctx, principalFrom(r))
	if err != nil {
		log.Error("ListManagedModules: failed to list modules", "error", err)
		utils.WriteAPIError(w, err)
		return
	}

	utils.WriteNegotiatedResponse(w, r, http.StatusOK, convertToModuleListResponse(listings))
}

// UpdateModule handles PUT /manage/modules/{name}
func (c *manageController) UpdateModule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)
	name := r.PathValue(utils.PathParamModuleName)

	var req spec.UpdateModuleRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		utils.WriteAPIError(w, err)
		return
	}

	err := c.registryService.UpdateModule(ctx, principalFrom(r), services.ModuleInput{
		Name:        name,
		Description: derefString(req.Description),
		Version:     req.Version,
		URL:         req.URL,
	})
	if err != nil {
		log.Warn("UpdateModule: request failed", "name", name, "error", err)
		utils.WriteAPIError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, &spec.SuccessResponse{Success: true})
}

// DeleteModule handles DELETE /manage/modules/{name}
func (c *manageController) DeleteModule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)
	name := r.PathValue(utils.PathParamModuleName)

	if err := c.registryService.DeleteModule(ctx, principalFrom(r), name); err != nil {
		log.Warn("DeleteModule: request failed", "name", name, "error", err)
		utils.WriteAPIError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, &spec.SuccessResponse{Success: true})
}
