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
	"context"
	"net/http"
	"time"

	"github.com/aglang/module-registry/middleware/logger"
	"github.com/aglang/module-registry/utils"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthController defines the interface for the liveness endpoint
type HealthController interface {
	Healthz(w http.ResponseWriter, r *http.Request)
}

type healthController struct {
	checker HealthChecker
}

// NewHealthController creates a new health controller
func NewHealthController(checker HealthChecker) HealthController {
	return &healthController{checker: checker}
}

// Healthz handles GET /healthz
func (c *healthController) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := c.checker.Ping(ctx); err != nil {
		logger.GetLogger(ctx).Error("Healthz: database unreachable", "error", err)
		utils.WriteSuccessResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	utils.WriteSuccessResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
