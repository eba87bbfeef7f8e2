package zkey

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tenant-platform/internal/model"
	"tenant-platform/internal/storage"
)

type memApps struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]*model.Tenant
	apps    map[uuid.UUID]*model.Application
}

func newMemApps() *memApps {
	return &memApps{
		tenants: make(map[uuid.UUID]*model.Tenant),
		apps:    make(map[uuid.UUID]*model.Application),
	}
}

func (m *memApps) addTenant(t *model.Tenant) *model.Tenant {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	m.tenants[t.ID] = t
	return t
}

func (m *memApps) GetTenant(_ context.Context, id uuid.UUID) (*model.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tenants[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memApps) CreateApplication(_ context.Context, a *model.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.apps {
		if existing.ClientID == a.ClientID {
			return storage.ErrConflict
		}
	}
	cp := *a
	m.apps[a.ID] = &cp
	return nil
}

func (m *memApps) GetApplication(_ context.Context, id uuid.UUID) (*model.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memApps) GetApplicationByClientID(_ context.Context, clientID string) (*model.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.apps {
		if a.ClientID == clientID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memApps) ListApplications(_ context.Context, tenantID uuid.UUID) ([]model.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Application
	for _, a := range m.apps {
		if a.TenantID == tenantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memApps) UpdateApplication(_ context.Context, a *model.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.apps[a.ID]; !ok {
		return storage.ErrNotFound
	}
	cp := *a
	m.apps[a.ID] = &cp
	return nil
}

func (m *memApps) UpdateApplicationSecret(_ context.Context, id uuid.UUID, secretHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return storage.ErrNotFound
	}
	a.ClientSecretHash = secretHash
	return nil
}

func (m *memApps) DeleteApplication(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.apps[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.apps, id)
	return nil
}
