package manager

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"tenant-platform/internal/model"
	"tenant-platform/internal/storage"
	"tenant-platform/internal/worker"
)

type memStore struct {
	mu       sync.Mutex
	tenants  map[uuid.UUID]*model.Tenant
	users    []model.User
	chatbot  []model.ChatbotContact
	whatsapp []model.WhatsAppContact
	messages []model.ChatMessage

	failDelete error
}

func newMemStore() *memStore {
	return &memStore{tenants: make(map[uuid.UUID]*model.Tenant)}
}

func (m *memStore) CreateTenant(ctx context.Context, t *model.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.tenants {
		if existing.Slug == t.Slug {
			return storage.ErrConflict
		}
	}
	cp := *t
	m.tenants[t.ID] = &cp
	return nil
}

func (m *memStore) GetTenant(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tenants[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) ListTenants(ctx context.Context) ([]model.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Tenant
	for _, t := range m.tenants {
		out = append(out, *t)
	}
	return out, nil
}

func (m *memStore) UpdateTenant(ctx context.Context, t *model.Tenant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.tenants[t.ID]
	if !ok {
		return storage.ErrNotFound
	}
	cur.Name, cur.Domain = t.Name, t.Domain
	return nil
}

func (m *memStore) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete != nil {
		return m.failDelete
	}
	if _, ok := m.tenants[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.tenants, id)
	return nil
}

func (m *memStore) UpdateTenantSettings(ctx context.Context, id uuid.UUID, fn func([]byte) ([]byte, error)) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tenants[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	next, err := fn(t.Settings)
	if err != nil {
		return nil, err
	}
	t.Settings = next
	return next, nil
}

func (m *memStore) UpdateTenantLogo(ctx context.Context, id uuid.UUID, logoURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tenants[id]
	if !ok {
		return storage.ErrNotFound
	}
	t.LogoURL = logoURL
	return nil
}

func (m *memStore) UpdateTenantConcurrency(ctx context.Context, id uuid.UUID, workers int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tenants[id]
	if !ok {
		return storage.ErrNotFound
	}
	t.Concurrency = workers
	return nil
}

func (m *memStore) ListUsers(ctx context.Context, tenantID uuid.UUID) ([]model.User, error) {
	return m.users, nil
}

func (m *memStore) ListChatbotContacts(ctx context.Context, tenantID uuid.UUID) ([]model.ChatbotContact, error) {
	return m.chatbot, nil
}

func (m *memStore) ListWhatsAppContacts(ctx context.Context, tenantID uuid.UUID) ([]model.WhatsAppContact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.WhatsAppContact(nil), m.whatsapp...), nil
}

func (m *memStore) ChatStats(ctx context.Context, tenantID uuid.UUID) ([]model.ChatStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := map[string]*model.ChatStat{}
	var order []string
	for _, msg := range m.messages {
		st, ok := stats[msg.JID]
		if !ok {
			st = &model.ChatStat{JID: msg.JID}
			stats[msg.JID] = st
			order = append(order, msg.JID)
		}
		st.MessageCount++
		if msg.CreatedAt.After(st.LastMessageAt) {
			st.LastMessageAt = msg.CreatedAt
		}
	}
	var out []model.ChatStat
	for _, jid := range order {
		out = append(out, *stats[jid])
	}
	return out, nil
}

func (m *memStore) UpsertWhatsAppContact(ctx context.Context, c *model.WhatsAppContact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.whatsapp {
		if m.whatsapp[i].TenantID == c.TenantID && m.whatsapp[i].JID == c.JID {
			if c.PushName != "" {
				m.whatsapp[i].PushName = c.PushName
			}
			return nil
		}
	}
	m.whatsapp = append(m.whatsapp, *c)
	return nil
}

func (m *memStore) InsertChatMessage(ctx context.Context, msg *model.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *memStore) ListChatMessagesPaginated(ctx context.Context, tenantID uuid.UUID, cursor string, limit int) ([]model.ChatMessage, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ChatMessage
	for _, msg := range m.messages {
		if msg.TenantID == tenantID {
			out = append(out, msg)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, "", nil
}

type fakeBroker struct {
	mu       sync.Mutex
	declared []string
	deleted  []string
	events   []string
	failDecl error
}

func (b *fakeBroker) DeclareQueue(tenantID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failDecl != nil {
		return b.failDecl
	}
	b.declared = append(b.declared, tenantID)
	return nil
}

func (b *fakeBroker) DeleteQueues(tenantID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, tenantID)
	return nil
}

func (b *fakeBroker) PublishEvent(eventType string, tenantID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, eventType)
	return nil
}

type fakeConsumer struct {
	handler worker.Handler
	workers int
	stopped bool
}

func (c *fakeConsumer) Stop()                { c.stopped = true }
func (c *fakeConsumer) SetWorkerCount(n int) { c.workers = n }

type consumerRegistry struct {
	mu        sync.Mutex
	consumers map[string]*fakeConsumer
}

func (r *consumerRegistry) start(tenantID string, workers int, handler worker.Handler) (TenantConsumer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.consumers == nil {
		r.consumers = make(map[string]*fakeConsumer)
	}
	c := &fakeConsumer{handler: handler, workers: workers}
	r.consumers[tenantID] = c
	return c, nil
}
