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
	"fmt"
	"net/http"
	"strconv"

	"github.com/aglang/module-registry/middleware/logger"
	"github.com/aglang/module-registry/services"
	"github.com/aglang/module-registry/spec"
	"github.com/aglang/module-registry/utils"
)

// AdminController defines the interface for allow-list administration handlers
type AdminController interface {
	ListPublishers(w http.ResponseWriter, r *http.Request)
	AddPublisher(w http.ResponseWriter, r *http.Request)
	RemovePublisher(w http.ResponseWriter, r *http.Request)
}

type adminController struct {
	publisherService services.PublisherService
}

// NewAdminController creates a new admin controller
func NewAdminController(publisherService services.PublisherService) AdminController {
	return &adminController{
		publisherService: publisherService,
	}
}

// ListPublishers handles GET /admin/publishers
func (c *adminController) ListPublishers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	publishers, err := c.publisherService.ListPublishers(ctx, principalFrom(r))
	if err != nil {
		log.Warn("ListPublishers: request failed", "error", err)
		utils.WriteAPIError(w, err)
		return
	}

	items := make([]spec.PublisherResponse, len(publishers))
	for i := range publishers {
		items[i] = convertToPublisherResponse(&publishers[i])
	}
	utils.WriteNegotiatedResponse(w, r, http.StatusOK, &spec.PublisherListResponse{
		Publishers: items,
		Total:      int32(len(items)),
	})
}

// AddPublisher handles POST /admin/publishers
func (c *adminController) AddPublisher(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req spec.AddPublisherRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		utils.WriteAPIError(w, err)
		return
	}

	publisher, err := c.publisherService.AddPublisher(ctx, principalFrom(r), services.PublisherInput{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		log.Warn("AddPublisher: request failed", "publisherId", req.ID, "error", err)
		utils.WriteAPIError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusCreated, convertToPublisherResponse(publisher))
}

// RemovePublisher handles DELETE /admin/publishers/{id}
func (c *adminController) RemovePublisher(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	raw := r.PathValue(utils.PathParamPublisherID)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		utils.WriteAPIError(w, fmt.Errorf("%w: publisher id %q is not an integer", utils.ErrInvalidInput, raw))
		return
	}

	if err := c.publisherService.RemovePublisher(ctx, principalFrom(r), id); err != nil {
		log.Warn("RemovePublisher: request failed", "publisherId", id, "error", err)
		utils.WriteAPIError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, &spec.SuccessResponse{Success: true})
}
