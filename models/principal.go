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

package models

import "strconv"

// Principal is the authenticated caller of an operation.
// It is passed explicitly into every service call instead of being read from ambient state.
type Principal struct {
	ID      int64
	IsAdmin bool
}

// String returns the principal id in decimal form
func (p Principal) String() string {
	return strconv.FormatInt(p.ID, 10)
}

// Owns reports whether the principal owns the given module
func (p Principal) Owns(m *Module) bool {
	return m != nil && m.PublisherID == p.ID
}
