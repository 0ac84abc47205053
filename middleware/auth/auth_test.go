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

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aglang/module-registry/config"
	"github.com/aglang/module-registry/models"
	"github.com/aglang/module-registry/utils"
)

var testAuth = config.AuthConfig{
	SigningKey:    "test-signing-key",
	Issuer:        "module-registry",
	Audience:      "argentum",
	AdminSubjects: []int64{1},
}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer(testAuth)
	verifier := NewTokenVerifier(testAuth)

	cases := []struct {
		name      string
		principal models.Principal
		want      models.Principal
	}{
		{"publisher", models.Principal{ID: 42}, models.Principal{ID: 42}},
		{"admin claim", models.Principal{ID: 5, IsAdmin: true}, models.Principal{ID: 5, IsAdmin: true}},
		{"configured admin subject", models.Principal{ID: 1}, models.Principal{ID: 1, IsAdmin: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := issuer.Issue(tc.principal, time.Hour)
			require.NoError(t, err)

			got, err := verifier.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestVerify_Rejects(t *testing.T) {
	verifier := NewTokenVerifier(testAuth)

	expired := NewTokenIssuer(testAuth)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(models.Principal{ID: 42}, time.Hour)
	require.NoError(t, err)

	otherKey := testAuth
	otherKey.SigningKey = "another-key"
	forged, err := NewTokenIssuer(otherKey).Issue(models.Principal{ID: 42}, time.Hour)
	require.NoError(t, err)

	otherAudience := testAuth
	otherAudience.Audience = "someone-else"
	wrongAudience, err := NewTokenIssuer(otherAudience).Issue(models.Principal{ID: 42}, time.Hour)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			Issuer:    testAuth.Issuer,
			Audience:  jwt.ClaimStrings{testAuth.Audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testAuth.SigningKey))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "42",
			Issuer:   testAuth.Issuer,
			Audience: jwt.ClaimStrings{testAuth.Audience},
		},
	}).SignedString([]byte(testAuth.SigningKey))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":        expiredToken,
		"wrong key":      forged,
		"wrong audience": wrongAudience,
		"non-numeric":    badSubject,
		"no expiry":      noExpiry,
		"garbage":        "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := verifier.Verify(token)
			assert.ErrorIs(t, err, utils.ErrUnauthenticated)
		})
	}
}

func TestIssue_RejectsAnonymousSubject(t *testing.T) {
	_, err := NewTokenIssuer(testAuth).Issue(models.Principal{}, time.Hour)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestMiddleware(t *testing.T) {
	token, err := NewTokenIssuer(testAuth).Issue(models.Principal{ID: 42}, time.Hour)
	require.NoError(t, err)

	var seen *models.Principal
	handler := Middleware(NewTokenVerifier(testAuth))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := GetPrincipal(r.Context()); ok {
			seen = &p
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantID     int64
	}{
		{"anonymous", "", http.StatusNoContent, 0},
		{"valid bearer", "Bearer " + token, http.StatusNoContent, 42},
		{"lowercase scheme", "bearer " + token, http.StatusNoContent, 42},
		{"basic auth", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, 0},
		{"invalid token", "Bearer abc.def.ghi", http.StatusUnauthorized, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/modules", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantID == 0 {
				assert.Nil(t, seen)
			} else {
				require.NotNil(t, seen)
				assert.Equal(t, tc.wantID, seen.ID)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/add", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/add", nil)
	handler(rec, req.WithContext(WithPrincipal(req.Context(), models.Principal{ID: 3})))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
