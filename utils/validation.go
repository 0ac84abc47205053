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
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxNameLength matches the VARCHAR(191) name columns
	MaxNameLength = 191
	// MaxURLLength bounds artifact URLs
	MaxURLLength = 2048
	// MaxDescriptionLength bounds free-text descriptions
	MaxDescriptionLength = 65535
)

var (
	moduleNamePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	versionPattern    = regexp.MustCompile(`^[0-9]+$`)
)

// StripControl removes control characters and trims surrounding whitespace
func StripControl(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s))
}

// StripControlMultiline removes control characters except line breaks and tabs
func StripControlMultiline(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s))
}

// SanitizeModuleName strips control characters and validates the result as a module name
func SanitizeModuleName(name string) (string, error) {
	name = StripControl(name)
	if err := ValidateModuleName(name); err != nil {
		return "", err
	}
	return name, nil
}

// ValidateModuleName checks a name as given, without normalizing it first
func ValidateModuleName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: module name cannot be empty", ErrInvalidInput)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: module name must not exceed %d characters", ErrInvalidInput, MaxNameLength)
	}
	if !moduleNamePattern.MatchString(name) {
		return fmt.Errorf("%w: module name %q contains invalid characters (only letters and digits are allowed)", ErrInvalidInput, name)
	}
	return nil
}

// SanitizeDescription normalizes free text; an empty description is valid
func SanitizeDescription(description string) (string, error) {
	if !utf8.ValidString(description) {
		return "", fmt.Errorf("%w: description must be valid UTF-8", ErrInvalidInput)
	}
	description = StripControlMultiline(description)
	if len(description) > MaxDescriptionLength {
		return "", fmt.Errorf("%w: description must not exceed %d bytes", ErrInvalidInput, MaxDescriptionLength)
	}
	return description, nil
}

// ValidateVersion rejects negative versions
func ValidateVersion(version int64) error {
	if version < 0 {
		return fmt.Errorf("%w: version must be a non-negative integer, got %d", ErrInvalidInput, version)
	}
	return nil
}

// ParseVersion parses a decimal path segment into a non-negative version
func ParseVersion(s string) (int64, error) {
	if !versionPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: version %q must be a non-negative integer", ErrInvalidInput, s)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: version %q is out of range", ErrInvalidInput, s)
	}
	return v, nil
}

// SanitizeURL requires an absolute http(s) URL with a host
func SanitizeURL(raw string) (string, error) {
	raw = StripControl(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: url cannot be empty", ErrInvalidInput)
	}
	if len(raw) > MaxURLLength {
		return "", fmt.Errorf("%w: url must not exceed %d characters", ErrInvalidInput, MaxURLLength)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: url is malformed: %v", ErrInvalidInput, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: url %q must be absolute", ErrInvalidInput, raw)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: url scheme %q is not supported", ErrInvalidInput, u.Scheme)
	}
	if u.User != nil {
		return "", fmt.Errorf("%w: url must not embed credentials", ErrInvalidInput)
	}
	return u.String(), nil
}

// SanitizePublisherName validates the display name of an allow-list entry
func SanitizePublisherName(name string) (string, error) {
	name = StripControl(name)
	if name == "" {
		return "", fmt.Errorf("%w: publisher name cannot be empty", ErrInvalidInput)
	}
	if len(name) > MaxNameLength {
		return "", fmt.Errorf("%w: publisher name must not exceed %d characters", ErrInvalidInput, MaxNameLength)
	}
	return name, nil
}

// SanitizeEmail validates a bare email address
func SanitizeEmail(email string) (string, error) {
	email = StripControl(email)
	if email == "" {
		return "", fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	}
	if len(email) > MaxNameLength {
		return "", fmt.Errorf("%w: email must not exceed %d characters", ErrInvalidInput, MaxNameLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email %q is not a valid address", ErrInvalidInput, email)
	}
	return email, nil
}

// ValidatePublisherID rejects non-positive principal ids
func ValidatePublisherID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: publisher id must be a positive integer, got %d", ErrInvalidInput, id)
	}
	return nil
}
