// internal/model/tenant.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Slug        string          `db:"slug" json:"slug"`
	Domain      string          `db:"domain" json:"domain,omitempty"`
	LogoURL     string          `db:"logo_url" json:"logo_url,omitempty"`
	Settings    json.RawMessage `db:"settings" json:"settings"`
	Concurrency int             `db:"concurrency" json:"concurrency"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// TenantEvent is published on the tenant events exchange whenever a tenant
// changes.
type TenantEvent struct {
	Type     string    `json:"type"`
	TenantID uuid.UUID `json:"tenant_id"`
	At       time.Time `json:"at"`
}

const (
	EventTenantCreated         = "tenant.created"
	EventTenantUpdated         = "tenant.updated"
	EventTenantDeleted         = "tenant.deleted"
	EventTenantSettingsUpdated = "tenant.settings_updated"
	EventTenantLogoUpdated     = "tenant.logo_updated"
)
