// internal/manager/tenant_manager.go
package manager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tenant-platform/internal/contacts"
	"tenant-platform/internal/metrics"
	"tenant-platform/internal/model"
	"tenant-platform/internal/settings"
	"tenant-platform/internal/worker"
)

// TenantStore is the persistence the manager needs.
type TenantStore interface {
	CreateTenant(ctx context.Context, t *model.Tenant) error
	GetTenant(ctx context.Context, id uuid.UUID) (*model.Tenant, error)
	ListTenants(ctx context.Context) ([]model.Tenant, error)
	UpdateTenant(ctx context.Context, t *model.Tenant) error
	DeleteTenant(ctx context.Context, id uuid.UUID) error
	UpdateTenantSettings(ctx context.Context, id uuid.UUID, fn func(current []byte) ([]byte, error)) ([]byte, error)
	UpdateTenantLogo(ctx context.Context, id uuid.UUID, logoURL string) error
	UpdateTenantConcurrency(ctx context.Context, id uuid.UUID, workers int) error

	ListUsers(ctx context.Context, tenantID uuid.UUID) ([]model.User, error)
	ListChatbotContacts(ctx context.Context, tenantID uuid.UUID) ([]model.ChatbotContact, error)
	ListWhatsAppContacts(ctx context.Context, tenantID uuid.UUID) ([]model.WhatsAppContact, error)
	ChatStats(ctx context.Context, tenantID uuid.UUID) ([]model.ChatStat, error)
	UpsertWhatsAppContact(ctx context.Context, c *model.WhatsAppContact) error
	InsertChatMessage(ctx context.Context, m *model.ChatMessage) error
	ListChatMessagesPaginated(ctx context.Context, tenantID uuid.UUID, cursor string, limit int) ([]model.ChatMessage, string, error)
}

// Broker owns tenant queues and lifecycle events.
type Broker interface {
	DeclareQueue(tenantID string) error
	DeleteQueues(tenantID string) error
	PublishEvent(eventType string, tenantID uuid.UUID) error
}

// TenantConsumer is a running chat consumer for one tenant.
type TenantConsumer interface {
	Stop()
	SetWorkerCount(n int)
}

// ConsumerStarter subscribes a handler to a tenant's chat queue.
type ConsumerStarter func(tenantID string, workers int, handler worker.Handler) (TenantConsumer, error)

type Options struct {
	DefaultWorkers     int
	DefaultCountryCode string
	UploadsDir         string
	PublicBaseURL      string
}

type TenantManager struct {
	storage TenantStore
	broker  Broker
	start   ConsumerStarter
	opts    Options

	mu        sync.RWMutex
	consumers map[uuid.UUID]TenantConsumer
}

func NewTenantManager(store TenantStore, broker Broker, start ConsumerStarter, opts Options) *TenantManager {
	if opts.DefaultWorkers <= 0 {
		opts.DefaultWorkers = 1
	}
	return &TenantManager{
		storage:   store,
		broker:    broker,
		start:     start,
		opts:      opts,
		consumers: make(map[uuid.UUID]TenantConsumer),
	}
}

type CreateTenantInput struct {
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Domain   string          `json:"domain"`
	Settings json.RawMessage `json:"settings"`
}

type UpdateTenantInput struct {
	Name   *string `json:"name"`
	Domain *string `json:"domain"`
}

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}$`)
	slugReplacer = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify derives a URL-safe slug from a display name.
func Slugify(name string) string {
	s := slugReplacer.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	s = strings.Trim(s, "-")
	if len(s) > 63 {
		s = strings.TrimRight(s[:63], "-")
	}
	return s
}

func validateName(name string) error {
	n := len([]rune(strings.TrimSpace(name)))
	if n == 0 || n > 120 {
		return fmt.Errorf("%w: name must be 1 to 120 characters", model.ErrValidation)
	}
	return nil
}

// AddTenant persists a tenant, declares its chat queue and starts its
// consumer.
func (tm *TenantManager) AddTenant(ctx context.Context, in CreateTenantInput) (*model.Tenant, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Name)
	}
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: slug %q must match %s", model.ErrValidation, slug, slugPattern)
	}
	doc, err := settings.Decode(in.Settings)
	if err != nil {
		return nil, fmt.Errorf("%w: settings: %v", model.ErrValidation, err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	t := &model.Tenant{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug,
		Domain:      strings.TrimSpace(in.Domain),
		Settings:    raw,
		Concurrency: tm.opts.DefaultWorkers,
	}
	if err := tm.storage.CreateTenant(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	if err := tm.startTenant(t.ID, t.Concurrency); err != nil {
		if derr := tm.storage.DeleteTenant(ctx, t.ID); derr != nil {
			log.Error().Err(derr).Str("tenant", t.ID.String()).Msg("failed to roll back tenant")
		}
		return nil, err
	}

	tm.publish(model.EventTenantCreated, t.ID)
	log.Info().Str("tenant", t.ID.String()).Str("slug", t.Slug).Msg("Tenant added and consumer started")
	return t, nil
}

// startTenant declares the queue and spawns the consumer unless it already
// runs.
func (tm *TenantManager) startTenant(id uuid.UUID, workers int) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if _, exists := tm.consumers[id]; exists {
		return nil
	}
	if err := tm.broker.DeclareQueue(id.String()); err != nil {
		return err
	}
	if workers <= 0 {
		workers = tm.opts.DefaultWorkers
	}
	c, err := tm.start(id.String(), workers, tm.chatHandler(id))
	if err != nil {
		return err
	}
	tm.consumers[id] = c
	return nil
}

func (tm *TenantManager) GetTenant(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	return tm.storage.GetTenant(ctx, id)
}

func (tm *TenantManager) ListTenants(ctx context.Context) ([]model.Tenant, error) {
	return tm.storage.ListTenants(ctx)
}

func (tm *TenantManager) UpdateTenant(ctx context.Context, id uuid.UUID, in UpdateTenantInput) (*model.Tenant, error) {
	t, err := tm.storage.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return nil, err
		}
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.Domain != nil {
		t.Domain = strings.TrimSpace(*in.Domain)
	}
	if err := tm.storage.UpdateTenant(ctx, t); err != nil {
		return nil, err
	}
	tm.publish(model.EventTenantUpdated, id)
	return t, nil
}

// RemoveTenant deletes the tenant row, then stops the consumer and deletes
// the queues. A failed delete leaves the running tenant untouched.
func (tm *TenantManager) RemoveTenant(ctx context.Context, id uuid.UUID) error {
	if err := tm.storage.DeleteTenant(ctx, id); err != nil {
		return err
	}

	tm.mu.Lock()
	if c, exists := tm.consumers[id]; exists {
		c.Stop()
		delete(tm.consumers, id)
	}
	tm.mu.Unlock()

	if err := tm.broker.DeleteQueues(id.String()); err != nil {
		log.Warn().Err(err).Str("tenant", id.String()).Msg("Failed to delete queues")
	}

	tm.publish(model.EventTenantDeleted, id)
	log.Info().Str("tenant", id.String()).Msg("Tenant removed and consumer stopped")
	return nil
}

// Settings returns the tenant's stored settings document.
func (tm *TenantManager) Settings(ctx context.Context, id uuid.UUID) (json.RawMessage, error) {
	t, err := tm.storage.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(t.Settings) == 0 {
		return json.RawMessage("{}"), nil
	}
	return t.Settings, nil
}

// UpdateSettings deep-merges patch into the stored settings and returns the
// result.
func (tm *TenantManager) UpdateSettings(ctx context.Context, id uuid.UUID, patch []byte) (json.RawMessage, error) {
	if _, err := settings.Decode(patch); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	merged, err := tm.storage.UpdateTenantSettings(ctx, id, func(current []byte) ([]byte, error) {
		return settings.MergeJSON(current, patch)
	})
	if err != nil {
		return nil, err
	}
	tm.publish(model.EventTenantSettingsUpdated, id)
	return merged, nil
}

// GetTenantContacts returns the tenant's de-duplicated contact list.
func (tm *TenantManager) GetTenantContacts(ctx context.Context, id uuid.UUID) ([]contacts.TenantContact, error) {
	t, err := tm.storage.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}

	in := contacts.Input{DefaultCountryCode: tm.opts.DefaultCountryCode}
	if doc, err := settings.Decode(t.Settings); err == nil {
		if cc := settings.String(doc, "contacts.default_country_code"); cc != "" {
			in.DefaultCountryCode = cc
		}
	}

	if in.Users, err = tm.storage.ListUsers(ctx, id); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if in.Chatbot, err = tm.storage.ListChatbotContacts(ctx, id); err != nil {
		return nil, fmt.Errorf("list chatbot contacts: %w", err)
	}
	if in.WhatsApp, err = tm.storage.ListWhatsAppContacts(ctx, id); err != nil {
		return nil, fmt.Errorf("list whatsapp contacts: %w", err)
	}
	if in.Stats, err = tm.storage.ChatStats(ctx, id); err != nil {
		return nil, fmt.Errorf("chat stats: %w", err)
	}

	rows, sum := contacts.Build(in)
	metrics.ContactMatches.WithLabelValues(contacts.MatchExact).Add(float64(sum.Exact))
	metrics.ContactMatches.WithLabelValues(contacts.MatchPartial).Add(float64(sum.Partial))
	metrics.ContactMatches.WithLabelValues(contacts.MatchNone).Add(float64(sum.None))
	return rows, nil
}

// ListMessages pages through the tenant's chat history.
func (tm *TenantManager) ListMessages(ctx context.Context, id uuid.UUID, cursor string, limit int) ([]model.ChatMessage, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return tm.storage.ListChatMessagesPaginated(ctx, id, cursor, limit)
}

// Recover restarts consumers for every stored tenant. Failures are logged
// per tenant and do not stop the others.
func (tm *TenantManager) Recover(ctx context.Context) error {
	tenants, err := tm.storage.ListTenants(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tenants: %w", err)
	}
	for _, t := range tenants {
		if err := tm.startTenant(t.ID, t.Concurrency); err != nil {
			log.Error().Err(err).Str("tenant", t.ID.String()).Msg("Failed to recover tenant")
			continue
		}
		log.Info().Str("tenant", t.ID.String()).Msg("Recovered tenant")
	}
	return nil
}

// ShutdownAll stops every tenant consumer
func (tm *TenantManager) ShutdownAll() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for id, c := range tm.consumers {
		c.Stop()
		log.Info().Str("tenant", id.String()).Msg("Stopped tenant")
	}
	tm.consumers = make(map[uuid.UUID]TenantConsumer)
}

// ListTenantIDs returns all currently registered tenant UUIDs
func (tm *TenantManager) ListTenantIDs() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	ids := make([]string, 0, len(tm.consumers))
	for id := range tm.consumers {
		ids = append(ids, id.String())
	}
	return ids
}

func (tm *TenantManager) SetWorkerCount(ctx context.Context, id uuid.UUID, n int) error {
	if n <= 0 || n > 64 {
		return fmt.Errorf("%w: concurrency must be between 1 and 64", model.ErrValidation)
	}

	tm.mu.RLock()
	c, ok := tm.consumers[id]
	tm.mu.RUnlock()
	if !ok {
		return fmt.Errorf("tenant %s has no running consumer: %w", id, errNoConsumer)
	}

	c.SetWorkerCount(n)

	// Persist concurrency level in DB
	if err := tm.storage.UpdateTenantConcurrency(ctx, id, n); err != nil {
		return fmt.Errorf("failed to persist concurrency: %w", err)
	}
	return nil
}

var errNoConsumer = errors.New("consumer not running")

// IsNoConsumer reports whether err came from a tenant without a consumer.
func IsNoConsumer(err error) bool { return errors.Is(err, errNoConsumer) }

func (tm *TenantManager) publish(eventType string, id uuid.UUID) {
	if err := tm.broker.PublishEvent(eventType, id); err != nil {
		log.Warn().Err(err).Str("tenant", id.String()).Str("event", eventType).Msg("failed to publish tenant event")
	}
}
