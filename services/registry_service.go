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

// publishAttempts bounds retries when a concurrent publish creates the same name first
const publishAttempts = 2

var errConcurrentCreate = errors.New("module created concurrently")

// RegistryService defines the interface for module catalog operations
type RegistryService interface {
	// Publish creates the record for a new name or overwrites the caller's existing record
	Publish(ctx context.Context, principal models.Principal, input ModuleInput) (models.PublishAction, error)
	// Resolve returns the stored record if its version is at least minimumVersion
	Resolve(ctx context.Context, name string, minimumVersion int64) (*models.Resolution, error)
	// ListCatalog returns every record with publisher info, for public display
	ListCatalog(ctx context.Context) ([]models.ModuleListing, error)
	// ListManaged returns the principal's own records, or all records for administrators
	ListManaged(ctx context.Context, principal models.Principal) ([]models.ModuleListing, error)
	// UpdateModule overwrites an existing record owned by the principal
	UpdateModule(ctx context.Context, principal models.Principal, input ModuleInput) error
	DeleteModule(ctx context.Context, principal models.Principal, name string) error
}

// ModuleInput is the unvalidated payload of a publish or update
type ModuleInput struct {
	Name        string
	Description string
	Version     *int64
	URL         string
}

// Validate sanitizes the input into a module record without an owner
func (in ModuleInput) Validate() (*models.Module, error) {
	name, err := utils.SanitizeModuleName(in.Name)
	if err != nil {
		return nil, err
	}
	description, err := utils.SanitizeDescription(in.Description)
	if err != nil {
		return nil, err
	}
	if in.Version == nil {
		return nil, fmt.Errorf("%w: version is required", utils.ErrInvalidInput)
	}
	if err := utils.ValidateVersion(*in.Version); err != nil {
		return nil, err
	}
	url, err := utils.SanitizeURL(in.URL)
	if err != nil {
		return nil, err
	}
	return &models.Module{
		Name:        name,
		Description: description,
		Version:     *in.Version,
		URL:         url,
	}, nil
}

type registryService struct {
	logger     *slog.Logger
	moduleRepo repositories.ModuleRepository
	allowList  AllowList
}

// NewRegistryService creates a new registry service
func NewRegistryService(logger *slog.Logger, moduleRepo repositories.ModuleRepository, allowList AllowList) RegistryService {
	return &registryService{
		logger:     logger,
		moduleRepo: moduleRepo,
		allowList:  allowList,
	}
}

// Publish creates or overwrites the single record for a module name
func (s *registryService) Publish(ctx context.Context, principal models.Principal, input ModuleInput) (models.PublishAction, error) {
	allowed, err := s.allowList.IsAllowed(ctx, principal)
	if err != nil {
		return "", err
	}
	if !allowed && !principal.IsAdmin {
		s.logger.Warn("Publish rejected: principal not on allow-list", "principal", principal.ID)
		return "", utils.ErrNotAllowed
	}

	module, err := input.Validate()
	if err != nil {
		return "", err
	}

	var action models.PublishAction
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		action, err = s.upsert(ctx, principal, allowed, module)
		if !errors.Is(err, errConcurrentCreate) {
			break
		}
		s.logger.Info("Module created concurrently, re-evaluating publish", "name", module.Name, "attempt", attempt)
	}
	if err != nil {
		if errors.Is(err, errConcurrentCreate) {
			err = storageError("failed to publish module", err)
		}
		return "", s.finish(err, "Failed to publish module", module.Name)
	}

	s.logger.Info("Module published",
		"name", module.Name,
		"version", module.Version,
		"action", action,
		"principal", principal.ID)
	return action, nil
}

// upsert runs the read-check-write of a publish in one transaction
func (s *registryService) upsert(ctx context.Context, principal models.Principal, allowed bool, module *models.Module) (models.PublishAction, error) {
	var action models.PublishAction
	err := s.moduleRepo.RunInTransaction(ctx, func(txRepo repositories.ModuleRepository) error {
		existing, err := txRepo.GetByName(ctx, module.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return storageError("failed to look up module", err)
		}

		if existing == nil {
			// The owner reference must point at an allow-listed publisher
			if !allowed {
				return utils.ErrNotAllowed
			}
			record := *module
			record.PublisherID = principal.ID
			if err := txRepo.Create(ctx, &record); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return errConcurrentCreate
				}
				return storageError("failed to insert module", err)
			}
			action = models.PublishActionInserted
			return nil
		}

		if !principal.Owns(existing) && !principal.IsAdmin {
			s.logger.Warn("Publish rejected: module owned by another publisher",
				"name", module.Name, "owner", existing.PublisherID, "principal", principal.ID)
			return fmt.Errorf("%w: %q", utils.ErrOwnership, module.Name)
		}
		if _, err := txRepo.UpdateContent(ctx, module.Name, module.Description, module.Version, module.URL); err != nil {
			return storageError("failed to update module", err)
		}
		action = models.PublishActionUpdated
		return nil
	})
	return action, err
}

// Resolve looks up the current record and enforces the minimum version
func (s *registryService) Resolve(ctx context.Context, name string, minimumVersion int64) (*models.Resolution, error) {
	if err := utils.ValidateModuleName(name); err != nil {
		return nil, err
	}
	if err := utils.ValidateVersion(minimumVersion); err != nil {
		return nil, err
	}

	module, err := s.moduleRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", utils.ErrModuleNotFound, name)
		}
		s.logger.Error("Failed to resolve module", "name", name, "error", err)
		return nil, storageError("failed to resolve module", err)
	}

	if module.Version < minimumVersion {
		return nil, &utils.OutdatedError{Name: name, Stored: module.Version, Requested: minimumVersion}
	}

	return &models.Resolution{Name: module.Name, Version: module.Version, URL: module.URL}, nil
}

// ListCatalog returns every record with publisher info
func (s *registryService) ListCatalog(ctx context.Context) ([]models.ModuleListing, error) {
	listings, err := s.moduleRepo.ListWithPublishers(ctx)
	if err != nil {
		s.logger.Error("Failed to list catalog", "error", err)
		return nil, storageError("failed to list catalog", err)
	}
	return listings, nil
}

// ListManaged returns the records the principal may manage
func (s *registryService) ListManaged(ctx context.Context, principal models.Principal) ([]models.ModuleListing, error) {
	var (
		listings []models.ModuleListing
		err      error
	)
	if principal.IsAdmin {
		listings, err = s.moduleRepo.ListWithPublishers(ctx)
	} else {
		listings, err = s.moduleRepo.ListWithPublishersByOwner(ctx, principal.ID)
	}
	if err != nil {
		s.logger.Error("Failed to list managed modules", "principal", principal.ID, "error", err)
		return nil, storageError("failed to list managed modules", err)
	}
	return listings, nil
}

// UpdateModule overwrites an existing record; it never creates one
func (s *registryService) UpdateModule(ctx context.Context, principal models.Principal, input ModuleInput) error {
	if err := s.requireWriter(ctx, principal); err != nil {
		return err
	}
	// The name addresses an existing record and is matched as given
	if err := utils.ValidateModuleName(input.Name); err != nil {
		return err
	}
	module, err := input.Validate()
	if err != nil {
		return err
	}

	err = s.moduleRepo.RunInTransaction(ctx, func(txRepo repositories.ModuleRepository) error {
		existing, err := s.authorizeExisting(ctx, txRepo, principal, module.Name)
		if err != nil {
			return err
		}
		if _, err := txRepo.UpdateContent(ctx, existing.Name, module.Description, module.Version, module.URL); err != nil {
			return storageError("failed to update module", err)
		}
		return nil
	})
	if err != nil {
		return s.finish(err, "Failed to update module", module.Name)
	}

	s.logger.Info("Module updated", "name", module.Name, "version", module.Version, "principal", principal.ID)
	return nil
}

// DeleteModule removes a record owned by the principal
func (s *registryService) DeleteModule(ctx context.Context, principal models.Principal, name string) error {
	if err := s.requireWriter(ctx, principal); err != nil {
		return err
	}
	if err := utils.ValidateModuleName(name); err != nil {
		return err
	}

	err := s.moduleRepo.RunInTransaction(ctx, func(txRepo repositories.ModuleRepository) error {
		if _, err := s.authorizeExisting(ctx, txRepo, principal, name); err != nil {
			return err
		}
		if _, err := txRepo.Delete(ctx, name); err != nil {
			return storageError("failed to delete module", err)
		}
		return nil
	})
	if err != nil {
		return s.finish(err, "Failed to delete module", name)
	}

	s.logger.Info("Module deleted", "name", name, "principal", principal.ID)
	return nil
}

// requireWriter rejects principals that are neither allow-listed nor administrators
func (s *registryService) requireWriter(ctx context.Context, principal models.Principal) error {
	if principal.IsAdmin {
		return nil
	}
	allowed, err := s.allowList.IsAllowed(ctx, principal)
	if err != nil {
		return err
	}
	if !allowed {
		return utils.ErrNotAllowed
	}
	return nil
}

func (s *registryService) authorizeExisting(ctx context.Context, txRepo repositories.ModuleRepository, principal models.Principal, name string) (*models.Module, error) {
	existing, err := txRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", utils.ErrModuleNotFound, name)
		}
		return nil, storageError("failed to look up module", err)
	}
	if !principal.Owns(existing) && !principal.IsAdmin {
		return nil, fmt.Errorf("%w: %q", utils.ErrOwnership, name)
	}
	return existing, nil
}

func (s *registryService) finish(err error, msg, name string) error {
	if isDomainError(err) && !errors.Is(err, utils.ErrStorage) {
		return err
	}
	s.logger.Error(msg, "name", name, "error", err)
	if errors.Is(err, utils.ErrStorage) {
		return err
	}
	return storageError(msg, err)
}

func isDomainError(err error) bool {
	for _, target := range []error{
		utils.ErrStorage,
		utils.ErrNotAllowed,
		utils.ErrOwnership,
		utils.ErrModuleNotFound,
		utils.ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
