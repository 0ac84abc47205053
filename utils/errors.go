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
	"errors"
	"fmt"
)

var (
	ErrNotAllowed        = errors.New("principal is not allowed to publish modules")
	ErrInvalidInput      = errors.New("invalid input")
	ErrOwnership         = errors.New("module is owned by another publisher")
	ErrModuleNotFound    = errors.New("module not found")
	ErrOutdated          = errors.New("requested version is newer than the registered one")
	ErrStorage           = errors.New("storage failure")
	ErrPublisherNotFound = errors.New("publisher not found")
	ErrPublisherExists   = errors.New("publisher already exists")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrAdminRequired     = errors.New("administrator role required")
)

// OutdatedError reports a resolve whose minimum version exceeds the stored one
type OutdatedError struct {
	Name      string
	Stored    int64
	Requested int64
}

func (e *OutdatedError) Error() string {
	return fmt.Sprintf("requested version %d of %q is newer than %d", e.Requested, e.Name, e.Stored)
}

// Is lets errors.Is(err, ErrOutdated) match
func (e *OutdatedError) Is(target error) bool {
	return target == ErrOutdated
}
