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

package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/aglang/module-registry/spec"
)

// Error codes carried in spec.ErrorResponse
const (
	ErrorCodeForbidden         = "forbidden"
	ErrorCodeForbiddenUpdate   = "forbidden_update"
	ErrorCodeInvalidInput      = "invalid_input"
	ErrorCodeUnauthorized      = "unauthorized"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeOutdated          = "outdated"
	ErrorCodeConflict          = "conflict"
	ErrorCodePublisherNotFound = "publisher_not_found"
	ErrorCodeInternal          = "db_error"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeYAML = "application/yaml"
)

// WriteSuccessResponse writes data as JSON with the given status
func WriteSuccessResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteNegotiatedResponse writes YAML when the client asks for it, JSON otherwise
func WriteNegotiatedResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if !WantsYAML(r) {
		WriteSuccessResponse(w, status, data)
		return
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, ErrorCodeInternal, "Failed to encode response")
		return
	}
	w.Header().Set("Content-Type", ContentTypeYAML)
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

// WantsYAML reports whether the Accept header prefers YAML
func WantsYAML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, ContentTypeYAML) || strings.Contains(accept, "text/yaml")
}

// WriteErrorResponse writes a coded error body
func WriteErrorResponse(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(spec.ErrorResponse{Code: code, Message: message})
}

// WriteAPIError maps a domain error onto its HTTP status and error code.
// Storage and unknown errors never leak their details to the client.
func WriteAPIError(w http.ResponseWriter, err error) {
	status, code := StatusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	WriteErrorResponse(w, status, code, message)
}

// StatusForError returns the HTTP status and error code for a domain error
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, ErrorCodeInvalidInput
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, ErrorCodeUnauthorized
	case errors.Is(err, ErrNotAllowed), errors.Is(err, ErrAdminRequired):
		return http.StatusForbidden, ErrorCodeForbidden
	case errors.Is(err, ErrOwnership):
		return http.StatusForbidden, ErrorCodeForbiddenUpdate
	case errors.Is(err, ErrModuleNotFound):
		return http.StatusNotFound, ErrorCodeNotFound
	case errors.Is(err, ErrOutdated):
		return http.StatusNotFound, ErrorCodeOutdated
	case errors.Is(err, ErrPublisherNotFound):
		return http.StatusNotFound, ErrorCodePublisherNotFound
	case errors.Is(err, ErrPublisherExists):
		return http.StatusConflict, ErrorCodeConflict
	default:
		return http.StatusInternalServerError, ErrorCodeInternal
	}
}
