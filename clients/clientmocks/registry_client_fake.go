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

package clientmocks

import (
	"context"
	"sync"

	"github.com/aglang/module-registry/clients/registrysvc"
	"github.com/aglang/module-registry/spec"
)

// Ensure RegistryClientMock implements RegistryClient interface
var _ registrysvc.RegistryClient = (*RegistryClientMock)(nil)

type RegistryClientMock struct {
	// Publish
	PublishFunc  func(ctx context.Context, req spec.PublishRequest) (*spec.PublishResponse, error)
	publishMutex sync.RWMutex
	publishCalls []struct {
		Ctx context.Context
		Req spec.PublishRequest
	}

	// Resolve
	ResolveFunc  func(ctx context.Context, name string, version int64) (*registrysvc.Resolution, error)
	resolveMutex sync.RWMutex
	resolveCalls []struct {
		Ctx     context.Context
		Name    string
		Version int64
	}

	// ListModules
	ListModulesFunc  func(ctx context.Context) (*spec.ModuleListResponse, error)
	listModulesMutex sync.RWMutex
	listModulesCalls []struct {
		Ctx context.Context
	}

	// ListManagedModules
	ListManagedModulesFunc  func(ctx context.Context) (*spec.ModuleListResponse, error)
	listManagedModulesMutex sync.RWMutex
	listManagedModulesCalls []struct {
		Ctx context.Context
	}

	// UpdateModule
	UpdateModuleFunc  func(ctx context.Context, name string, req spec.UpdateModuleRequest) error
	updateModuleMutex sync.RWMutex
	updateModuleCalls []struct {
		Ctx  context.Context
		Name string
		Req  spec.UpdateModuleRequest
	}

	// DeleteModule
	DeleteModuleFunc  func(ctx context.Context, name string) error
	deleteModuleMutex sync.RWMutex
	deleteModuleCalls []struct {
		Ctx  context.Context
		Name string
	}

	// ListPublishers
	ListPublishersFunc  func(ctx context.Context) (*spec.PublisherListResponse, error)
	listPublishersMutex sync.RWMutex
	listPublishersCalls []struct {
		Ctx context.Context
	}

	// AddPublisher
	AddPublisherFunc  func(ctx context.Context, req spec.AddPublisherRequest) (*spec.PublisherResponse, error)
	addPublisherMutex sync.RWMutex
	addPublisherCalls []struct {
		Ctx context.Context
		Req spec.AddPublisherRequest
	}

	// RemovePublisher
	RemovePublisherFunc  func(ctx context.Context, id int64) error
	removePublisherMutex sync.RWMutex
	removePublisherCalls []struct {
		Ctx context.Context
		ID  int64
	}
}

func (m *RegistryClientMock) Publish(ctx context.Context, req spec.PublishRequest) (*spec.PublishResponse, error) {
	m.publishMutex.Lock()
	m.publishCalls = append(m.publishCalls, struct {
		Ctx context.Context
		Req spec.PublishRequest
	}{
		Ctx: ctx,
		Req: req,
	})
	m.publishMutex.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, req)
	}

	return &spec.PublishResponse{Success: true, Action: "inserted"}, nil
}

func (m *RegistryClientMock) PublishCalls() []struct {
	Ctx context.Context
	Req spec.PublishRequest
} {
	m.publishMutex.RLock()
	defer m.publishMutex.RUnlock()
	return m.publishCalls
}

func (m *RegistryClientMock) Resolve(ctx context.Context, name string, version int64) (*registrysvc.Resolution, error) {
	m.resolveMutex.Lock()
	m.resolveCalls = append(m.resolveCalls, struct {
		Ctx     context.Context
		Name    string
		Version int64
	}{
		Ctx:     ctx,
		Name:    name,
		Version: version,
	})
	m.resolveMutex.Unlock()

	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, name, version)
	}

	return &registrysvc.Resolution{}, nil
}

func (m *RegistryClientMock) ResolveCalls() []struct {
	Ctx     context.Context
	Name    string
	Version int64
} {
	m.resolveMutex.RLock()
	defer m.resolveMutex.RUnlock()
	return m.resolveCalls
}

func (m *RegistryClientMock) ListModules(ctx context.Context) (*spec.ModuleListResponse, error) {
	m.listModulesMutex.Lock()
	m.listModulesCalls = append(m.listModulesCalls, struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	})
	m.listModulesMutex.Unlock()

	if m.ListModulesFunc != nil {
		return m.ListModulesFunc(ctx)
	}

	return &spec.ModuleListResponse{}, nil
}

func (m *RegistryClientMock) ListModulesCalls() []struct {
	Ctx context.Context
} {
	m.listModulesMutex.RLock()
	defer m.listModulesMutex.RUnlock()
	return m.listModulesCalls
}

func (m *RegistryClientMock) ListManagedModules(ctx context.Context) (*spec.ModuleListResponse, error) {
	m.listManagedModulesMutex.Lock()
	m.listManagedModulesCalls = append(m.listManagedModulesCalls, struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	})
	m.listManagedModulesMutex.Unlock()

	if m.ListManagedModulesFunc != nil {
		return m.ListManagedModulesFunc(ctx)
	}

	return &spec.ModuleListResponse{}, nil
}

func (m *RegistryClientMock) ListManagedModulesCalls() []struct {
	Ctx context.Context
} {
	m.listManagedModulesMutex.RLock()
	defer m.listManagedModulesMutex.RUnlock()
	return m.listManagedModulesCalls
}

func (m *RegistryClientMock) UpdateModule(ctx context.Context, name string, req spec.UpdateModuleRequest) error {
	m.updateModuleMutex.Lock()
	m.updateModuleCalls = append(m.updateModuleCalls, struct {
		Ctx  context.Context
		Name string
		Req  spec.UpdateModuleRequest
	}{
		Ctx:  ctx,
		Name: name,
		Req:  req,
	})
	m.updateModuleMutex.Unlock()

	if m.UpdateModuleFunc != nil {
		return m.UpdateModuleFunc(ctx, name, req)
	}

	return nil
}

func (m *RegistryClientMock) UpdateModuleCalls() []struct {
	Ctx  context.Context
	Name string
	Req  spec.UpdateModuleRequest
} {
	m.updateModuleMutex.RLock()
	defer m.updateModuleMutex.RUnlock()
	return m.updateModuleCalls
}

func (m *RegistryClientMock) DeleteModule(ctx context.Context, name string) error {
	m.deleteModuleMutex.Lock()
	m.deleteModuleCalls = append(m.deleteModuleCalls, struct {
		Ctx  context.Context
		Name string
	}{
		Ctx:  ctx,
		Name: name,
	})
	m.deleteModuleMutex.Unlock()

	if m.DeleteModuleFunc != nil {
		return m.DeleteModuleFunc(ctx, name)
	}

	return nil
}

func (m *RegistryClientMock) DeleteModuleCalls() []struct {
	Ctx  context.Context
	Name string
} {
	m.deleteModuleMutex.RLock()
	defer m.deleteModuleMutex.RUnlock()
	return m.deleteModuleCalls
}

func (m *RegistryClientMock) ListPublishers(ctx context.Context) (*spec.PublisherListResponse, error) {
	m.listPublishersMutex.Lock()
	m.listPublishersCalls = append(m.listPublishersCalls, struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	})
	m.listPublishersMutex.Unlock()

	if m.ListPublishersFunc != nil {
		return m.ListPublishersFunc(ctx)
	}

	return &spec.PublisherListResponse{}, nil
}

func (m *RegistryClientMock) ListPublishersCalls() []struct {
	Ctx context.Context
} {
	m.listPublishersMutex.RLock()
	defer m.listPublishersMutex.RUnlock()
	return m.listPublishersCalls
}

func (m *RegistryClientMock) AddPublisher(ctx context.Context, req spec.AddPublisherRequest) (*spec.PublisherResponse, error) {
	m.addPublisherMutex.Lock()
	m.addPublisherCalls = append(m.addPublisherCalls, struct {
		Ctx context.Context
		Req spec.AddPublisherRequest
	}{
		Ctx: ctx,
		Req: req,
	})
	m.addPublisherMutex.Unlock()

	if m.AddPublisherFunc != nil {
		return m.AddPublisherFunc(ctx, req)
	}

	return &spec.PublisherResponse{ID: req.ID, Name: req.Name, Email: req.Email}, nil
}

func (m *RegistryClientMock) AddPublisherCalls() []struct {
	Ctx context.Context
	Req spec.AddPublisherRequest
} {
	m.addPublisherMutex.RLock()
	defer m.addPublisherMutex.RUnlock()
	return m.addPublisherCalls
}

func (m *RegistryClientMock) RemovePublisher(ctx context.Context, id int64) error {
	m.removePublisherMutex.Lock()
	m.removePublisherCalls = append(m.removePublisherCalls, struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	})
	m.removePublisherMutex.Unlock()

	if m.RemovePublisherFunc != nil {
		return m.RemovePublisherFunc(ctx, id)
	}

	return nil
}

func (m *RegistryClientMock) RemovePublisherCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	m.removePublisherMutex.RLock()
	defer m.removePublisherMutex.RUnlock()
	return m.removePublisherCalls
}
