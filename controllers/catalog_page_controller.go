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
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/aglang/module-registry/middleware/logger"
	"github.com/aglang/module-registry/models"
	"github.com/aglang/module-registry/services"
	"github.com/aglang/module-registry/utils"
)

//go:embed templates/catalog.html
var templateFS embed.FS

var catalogTemplate = template.Must(template.ParseFS(templateFS, "templates/catalog.html"))

// CatalogPageController defines the interface for the public HTML catalog
type CatalogPageController interface {
	RenderCatalog(w http.ResponseWriter, r *http.Request)
}

type catalogPageController struct {
	registryService services.RegistryService
}

// NewCatalogPageController creates a new catalog page controller
func NewCatalogPageController(registryService services.RegistryService) CatalogPageController {
	return &catalogPageController{
		registryService: registryService,
	}
}

type catalogRow struct {
	Name        string
	Version     int64
	Description string
	URL         string
	Author      string
}

// RenderCatalog handles GET /catalog
func (c *catalogPageController) RenderCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	listings, err := c.registryService.ListCatalog(ctx)
	if err != nil {
		log.Error("RenderCatalog: failed to list catalog", "error", err)
		utils.WriteAPIError(w, err)
		return
	}

	rows := make([]catalogRow, len(listings))
	for i, l := range listings {
		rows[i] = catalogRow{
			Name:        l.Name,
			Version:     l.Version,
			Description: l.Description,
			URL:         l.URL,
			Author:      authorLabel(l),
		}
	}

	var buf bytes.Buffer
	if err := catalogTemplate.Execute(&buf, struct{ Modules []catalogRow }{rows}); err != nil {
		log.Error("RenderCatalog: failed to render template", "error", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, utils.ErrorCodeInternal, "Failed to render catalog")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// authorLabel renders "name (email)", or nothing once the publisher has been removed
func authorLabel(l models.ModuleListing) string {
	name, email := derefString(l.PublisherName), derefString(l.PublisherEmail)
	switch {
	case name == "" && email == "":
		return ""
	case email == "":
		return name
	default:
		return name + " (" + email + ")"
	}
}
