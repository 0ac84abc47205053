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

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/aglang/module-registry/models"
	"github.com/aglang/module-registry/repositories"
	"github.com/aglang/module-registry/utils"
)

// AllowList answers whether a principal may create or modify modules
type AllowList interface {
	IsAllowed(ctx context.Context, principal models.Principal) (bool, error)
}

// PublisherService defines the interface for allow-list administration
type PublisherService interface {
	AllowList
	AddPublisher(ctx context.Context, principal models.Principal, input PublisherInput) (*models.Publisher, error)
	RemovePublisher(ctx context.Context, principal models.Principal, id int64) error
	ListPublishers(ctx context.Context, principal models.Principal) ([]models.Publisher, error)
}

// PublisherInput is the unvalidated payload of an allow-list addition
type PublisherInput struct {
	ID    int64
	Name  string
	Email string
}

// Validate sanitizes the input into a publisher record
func (in PublisherInput) Validate() (*models.Publisher, error) {
	if err := utils.ValidatePublisherID(in.ID); err != nil {
		return nil, err
	}
	name, err := utils.SanitizePublisherName(in.Name)
	if err != nil {
		return nil, err
	}
	email, err := utils.SanitizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	return &models.Publisher{ID: in.ID, Name: name, Email: email}, nil
}

type publisherService struct {
	logger        *slog.Logger
	publisherRepo repositories.PublisherRepository
}

// NewPublisherService creates a new publisher service
func NewPublisherService(logger *slog.Logger, publisherRepo repositories.PublisherRepository) PublisherService {
	return &publisherService{
		logger:        logger,
		publisherRepo: publisherRepo,
	}
}

// IsAllowed reports allow-list membership of the principal
func (s *publisherService) IsAllowed(ctx context.Context, principal models.Principal) (bool, error) {
	if principal.ID <= 0 {
		return false, nil
	}
	ok, err := s.publisherRepo.Exists(ctx, principal.ID)
	if err != nil {
		s.logger.Error("Failed to check allow-list", "principal", principal.ID, "error", err)
		return false, storageError("failed to check allow-list", err)
	}
	return ok, nil
}

// AddPublisher adds an entry to the allow-list
func (s *publisherService) AddPublisher(ctx context.Context, principal models.Principal, input PublisherInput) (*models.Publisher, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}
	publisher, err := input.Validate()
	if err != nil {
		return nil, err
	}

	if err := s.publisherRepo.Create(ctx, publisher); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: id %d", utils.ErrPublisherExists, publisher.ID)
		}
		s.logger.Error("Failed to add publisher", "publisherId", publisher.ID, "error", err)
		return nil, storageError("failed to add publisher", err)
	}

	s.logger.Info("Publisher added to allow-list", "publisherId", publisher.ID, "by", principal.ID)
	return publisher, nil
}

// RemovePublisher removes an entry from the allow-list. Modules owned by the entry are kept.
func (s *publisherService) RemovePublisher(ctx context.Context, principal models.Principal, id int64) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}
	if err := utils.ValidatePublisherID(id); err != nil {
		return err
	}

	publisher, err := s.publisherRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", utils.ErrPublisherNotFound, id)
		}
		s.logger.Error("Failed to look up publisher", "publisherId", id, "error", err)
		return storageError("failed to look up publisher", err)
	}

	affected, err := s.publisherRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to remove publisher", "publisherId", id, "error", err)
		return storageError("failed to remove publisher", err)
	}
	// removed concurrently
	if affected == 0 {
		return fmt.Errorf("%w: id %d", utils.ErrPublisherNotFound, id)
	}

	s.logger.Info("Publisher removed from allow-list",
		"publisherId", id,
		"name", publisher.Name,
		"email", publisher.Email,
		"by", principal.ID)
	return nil
}

// ListPublishers returns the allow-list ordered by name
func (s *publisherService) ListPublishers(ctx context.Context, principal models.Principal) ([]models.Publisher, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}
	publishers, err := s.publisherRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list publishers", "error", err)
		return nil, storageError("failed to list publishers", err)
	}
	return publishers, nil
}

func requireAdmin(principal models.Principal) error {
	if !principal.IsAdmin {
		return utils.ErrAdminRequired
	}
	return nil
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, utils.ErrStorage, err)
}
