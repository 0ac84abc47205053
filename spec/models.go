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

package spec

import "time"

// PublishRequest is the body of POST /add
type PublishRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Version     *int64  `json:"version"`
	URL         string  `json:"url"`
}

// PublishResponse is returned by POST /add
type PublishResponse struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
}

// UpdateModuleRequest is the body of PUT /manage/modules/{name}
type UpdateModuleRequest struct {
	Description *string `json:"description,omitempty"`
	Version     *int64  `json:"version"`
	URL         string  `json:"url"`
}

// ModuleResponse is a catalog entry joined with its publisher
type ModuleResponse struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Version        int64     `json:"version"`
	URL            string    `json:"url"`
	PublisherID    int64     `json:"publisherId"`
	PublisherName  string    `json:"publisherName,omitempty"`
	PublisherEmail string    `json:"publisherEmail,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ModuleListResponse wraps a full catalog listing
type ModuleListResponse struct {
	Modules []ModuleResponse `json:"modules"`
	Total   int32            `json:"total"`
}

// AddPublisherRequest is the body of POST /admin/publishers
type AddPublisherRequest struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PublisherResponse is an allow-list entry
type PublisherResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublisherListResponse wraps the allow-list
type PublisherListResponse struct {
	Publishers []PublisherResponse `json:"publishers"`
	Total      int32               `json:"total"`
}

// SuccessResponse acknowledges mutations that return no entity
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
