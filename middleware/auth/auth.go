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
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aglang/module-registry/config"
	"github.com/aglang/module-registry/middleware/logger"
	"github.com/aglang/module-registry/models"
	"github.com/aglang/module-registry/utils"
)

// Claims are the registry-specific bearer token claims. The subject is the decimal principal id.
type Claims struct {
	Admin bool `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

type principalKey struct{}

// TokenVerifier validates bearer tokens and turns them into principals
type TokenVerifier struct {
	key           []byte
	issuer        string
	audience      string
	adminSubjects []int64
}

// NewTokenVerifier creates a verifier for HS256 tokens signed with the configured key
func NewTokenVerifier(cfg config.AuthConfig) *TokenVerifier {
	return &TokenVerifier{
		key:           []byte(cfg.SigningKey),
		issuer:        cfg.Issuer,
		audience:      cfg.Audience,
		adminSubjects: cfg.AdminSubjects,
	}
}

// Verify parses a raw token and returns the principal it identifies
func (v *TokenVerifier) Verify(raw string) (models.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.key, nil
	}, opts...); err != nil {
		return models.Principal{}, fmt.Errorf("%w: %w", utils.ErrUnauthenticated, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return models.Principal{}, fmt.Errorf("%w: token subject %q is not a principal id", utils.ErrUnauthenticated, claims.Subject)
	}

	return models.Principal{
		ID:      id,
		IsAdmin: claims.Admin || slices.Contains(v.adminSubjects, id),
	}, nil
}

// TokenIssuer signs tokens with the shared key
type TokenIssuer struct {
	key      []byte
	issuer   string
	audience string
	now      func() time.Time
}

// NewTokenIssuer creates an issuer for the configured key, issuer and audience
func NewTokenIssuer(cfg config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{
		key:      []byte(cfg.SigningKey),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}
}

// Issue signs a token for the principal that expires after ttl
func (i *TokenIssuer) Issue(principal models.Principal, ttl time.Duration) (string, error) {
	if principal.ID <= 0 {
		return "", fmt.Errorf("%w: subject must be a positive principal id", utils.ErrInvalidInput)
	}
	if len(i.key) == 0 {
		return "", errors.New("signing key is empty")
	}
	now := i.now()
	claims := Claims{
		Admin: principal.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.String(),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if i.audience != "" {
		claims.Audience = jwt.ClaimStrings{i.audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
}

// WithPrincipal stores the authenticated principal in the context
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipal returns the authenticated principal, if any
func GetPrincipal(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(models.Principal)
	return p, ok
}

// Middleware authenticates bearer tokens when present.
// Requests without an Authorization header pass through anonymously; invalid tokens are rejected.
func Middleware(verifier *TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, utils.ErrorCodeUnauthorized, "Authorization header must be a bearer token")
				return
			}

			principal, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				logger.GetLogger(r.Context()).Warn("Rejected bearer token", "error", err)
				utils.WriteErrorResponse(w, http.StatusUnauthorized, utils.ErrorCodeUnauthorized, "Invalid or expired token")
				return
			}

			ctx := WithPrincipal(r.Context(), principal)
			ctx = logger.WithLogger(ctx, logger.GetLogger(ctx).With("principal", principal.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests to the wrapped handler
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetPrincipal(r.Context()); !ok {
			utils.WriteAPIError(w, utils.ErrUnauthenticated)
			return
		}
		next(w, r)
	}
}
