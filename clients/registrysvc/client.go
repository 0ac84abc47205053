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

package registrysvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/aglang/module-registry/spec"
	"github.com/aglang/module-registry/utils"
)

const (
	defaultRetryMax     = 3
	defaultRetryWaitMin = 200 * time.Millisecond
	defaultRetryWaitMax = 2 * time.Second
	requestTimeout      = 30 * time.Second
)

// RegistryClient is the HTTP client for the module registry API
type RegistryClient interface {
	Publish(ctx context.Context, req spec.PublishRequest) (*spec.PublishResponse, error)
	Resolve(ctx context.Context, name string, version int64) (*Resolution, error)
	ListModules(ctx context.Context) (*spec.ModuleListResponse, error)
	ListManagedModules(ctx context.Context) (*spec.ModuleListResponse, error)
	UpdateModule(ctx context.Context, name string, req spec.UpdateModuleRequest) error
	DeleteModule(ctx context.Context, name string) error
	ListPublishers(ctx context.Context) (*spec.PublisherListResponse, error)
	AddPublisher(ctx context.Context, req spec.AddPublisherRequest) (*spec.PublisherResponse, error)
	RemovePublisher(ctx context.Context, id int64) error
}

// Config holds the client settings
type Config struct {
	// BaseURL includes the API base path, e.g. http://localhost:8080/repo/v1
	BaseURL string
	Token   string
	// RetryMax is the number of retries; zero selects the default and a negative value disables retries
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       *slog.Logger
}

// Resolution is where a resolve request redirects and the version it serves
type Resolution struct {
	Location string
	Version  int64
}

// APIError is a non-2xx response from the registry
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("registry returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("registry returned %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

type registryClient struct {
	baseURL    string
	token      string
	httpClient *retryablehttp.Client
}

// NewRegistryClient creates a registry client that retries transient failures
// and never follows the resolve redirect.
func NewRegistryClient(cfg Config) (RegistryClient, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid registry URL %q", cfg.BaseURL)
	}

	c := retryablehttp.NewClient()
	switch {
	case cfg.RetryMax > 0:
		c.RetryMax = cfg.RetryMax
	case cfg.RetryMax < 0:
		c.RetryMax = 0
	default:
		c.RetryMax = defaultRetryMax
	}
	c.RetryWaitMin = defaultRetryWaitMin
	if cfg.RetryWaitMin > 0 {
		c.RetryWaitMin = cfg.RetryWaitMin
	}
	c.RetryWaitMax = defaultRetryWaitMax
	if cfg.RetryWaitMax > 0 {
		c.RetryWaitMax = cfg.RetryWaitMax
	}
	c.Logger = nil
	if cfg.Logger != nil {
		c.Logger = retryablehttp.LeveledLogger(cfg.Logger)
	}
	c.ErrorHandler = keepLastResponse
	c.HTTPClient.Timeout = requestTimeout
	c.HTTPClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &registryClient{
		baseURL:    base.String(),
		token:      cfg.Token,
		httpClient: c,
	}, nil
}

// Publish calls POST /add
func (c *registryClient) Publish(ctx context.Context, req spec.PublishRequest) (*spec.PublishResponse, error) {
	var out spec.PublishResponse
	if err := c.doJSON(ctx, http.MethodPost, []string{"add"}, req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Resolve calls GET /{name}/{version} and reports the redirect target
func (c *registryClient) Resolve(ctx context.Context, name string, version int64) (*Resolution, error) {
	resp, err := c.do(ctx, http.MethodGet, []string{name, strconv.FormatInt(version, 10)}, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusFound {
		return nil, readAPIError(resp)
	}

	res := &Resolution{Location: resp.Header.Get("Location")}
	if v := resp.Header.Get(utils.ModuleVersionHeader); v != "" {
		res.Version, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s header %q: %w", utils.ModuleVersionHeader, v, err)
		}
	}
	return res, nil
}

// ListModules calls GET /modules
func (c *registryClient) ListModules(ctx context.Context) (*spec.ModuleListResponse, error) {
	var out spec.ModuleListResponse
	if err := c.doJSON(ctx, http.MethodGet, []string{"modules"}, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListManagedModules calls GET /manage/modules
func (c *registryClient) ListManagedModules(ctx context.Context) (*spec.ModuleListResponse, error) {
	var out spec.ModuleListResponse
	if err := c.doJSON(ctx, http.MethodGet, []string{"manage", "modules"}, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateModule calls PUT /manage/modules/{name}
func (c *registryClient) UpdateModule(ctx context.Context, name string, req spec.UpdateModuleRequest) error {
	return c.doJSON(ctx, http.MethodPut, []string{"manage", "modules", name}, req, http.StatusOK, nil)
}

// DeleteModule calls DELETE /manage/modules/{name}
func (c *registryClient) DeleteModule(ctx context.Context, name string) error {
	return c.doJSON(ctx, http.MethodDelete, []string{"manage", "modules", name}, nil, http.StatusOK, nil)
}

// ListPublishers calls GET /admin/publishers
func (c *registryClient) ListPublishers(ctx context.Context) (*spec.PublisherListResponse, error) {
	var out spec.PublisherListResponse
	if err := c.doJSON(ctx, http.MethodGet, []string{"admin", "publishers"}, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddPublisher calls POST /admin/publishers
func (c *registryClient) AddPublisher(ctx context.Context, req spec.AddPublisherRequest) (*spec.PublisherResponse, error) {
	var out spec.PublisherResponse
	if err := c.doJSON(ctx, http.MethodPost, []string{"admin", "publishers"}, req, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemovePublisher calls DELETE /admin/publishers/{id}
func (c *registryClient) RemovePublisher(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, []string{"admin", "publishers", strconv.FormatInt(id, 10)}, nil, http.StatusOK, nil)
}

// doJSON sends an optional JSON body and decodes a JSON response with the expected status
func (c *registryClient) doJSON(ctx context.Context, method string, path []string, body interface{}, wantStatus int, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	resp, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		return readAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *registryClient) do(ctx context.Context, method string, path []string, payload []byte) (*http.Response, error) {
	target, err := url.JoinPath(c.baseURL, path...)
	if err != nil {
		return nil, fmt.Errorf("failed to build request URL: %w", err)
	}

	var body interface{}
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", utils.ContentTypeJSON)
	if payload != nil {
		req.Header.Set("Content-Type", utils.ContentTypeJSON)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, target, err)
	}
	return resp, nil
}

// keepLastResponse hands the final response back so its error body can be decoded
func keepLastResponse(resp *http.Response, err error, attempts int) (*http.Response, error) {
	if resp != nil {
		return resp, nil
	}
	return nil, fmt.Errorf("giving up after %d attempt(s): %w", attempts, err)
}

func readAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, utils.MaxRequestBodyBytes))
	if err != nil {
		return apiErr
	}
	var body spec.ErrorResponse
	if json.Unmarshal(raw, &body) == nil && body.Code != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	return apiErr
}
