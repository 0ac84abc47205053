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
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/aglang/module-registry/middleware/auth"
	"github.com/aglang/module-registry/models"
	"github.com/aglang/module-registry/spec"
	"github.com/aglang/module-registry/utils"
)

const contentTypeForm = "application/x-www-form-urlencoded"

// decodeJSONBody decodes a size-limited JSON request body into dst
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, utils.MaxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: request body exceeds %d bytes", utils.ErrInvalidInput, maxErr.Limit)
		}
		return fmt.Errorf("%w: malformed JSON body: %s", utils.ErrInvalidInput, err.Error())
	}
	return nil
}

// isFormRequest reports whether the body is url-encoded form data
func isFormRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == contentTypeForm
}

// decodePublishForm reads a publish request from url-encoded form fields
func decodePublishForm(w http.ResponseWriter, r *http.Request) (*spec.PublishRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, utils.MaxRequestBodyBytes)
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: malformed form body: %s", utils.ErrInvalidInput, err.Error())
	}
	req := &spec.PublishRequest{
		Name: r.PostForm.Get("name"),
		URL:  r.PostForm.Get("url"),
	}
	if r.PostForm.Has("description") {
		description := r.PostForm.Get("description")
		req.Description = &description
	}
	if raw := strings.TrimSpace(r.PostForm.Get("version")); raw != "" {
		version, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: version must be an integer", utils.ErrInvalidInput)
		}
		req.Version = &version
	}
	return req, nil
}

// principalFrom returns the authenticated principal; routes needing one are wrapped in auth.RequireAuth
func principalFrom(r *http.Request) models.Principal {
	p, _ := auth.GetPrincipal(r.Context())
	return p
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func convertToModuleListResponse(listings []models.ModuleListing) *spec.ModuleListResponse {
	modules := make([]spec.ModuleResponse, len(listings))
	for i, l := range listings {
		modules[i] = spec.ModuleResponse{
			Name:           l.Name,
			Description:    l.Description,
			Version:        l.Version,
			URL:            l.URL,
			PublisherID:    l.PublisherID,
			PublisherName:  derefString(l.PublisherName),
			PublisherEmail: derefString(l.PublisherEmail),
			UpdatedAt:      l.UpdatedAt,
		}
	}
	return &spec.ModuleListResponse{
		Modules: modules,
		Total:   int32(len(modules)),
	}
}

func convertToPublisherResponse(p *models.Publisher) spec.PublisherResponse {
	return spec.PublisherResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}
}
