package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"tenant-platform/internal/model"
)

const tenantColumns = `id, name, slug, domain, logo_url, settings, concurrency, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (*model.Tenant, error) {
	var t model.Tenant
	var settings []byte
	if err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Domain, &t.LogoURL, &settings, &t.Concurrency, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Settings = json.RawMessage(settings)
	return &t, nil
}

func (s *Storage) CreateTenant(ctx context.Context, t *model.Tenant) error {
	settings := []byte(t.Settings)
	if len(settings) == 0 {
		settings = []byte("{}")
	}
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO tenants (id, name, slug, domain, settings, concurrency)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, t.ID, t.Name, t.Slug, t.Domain, settings, t.Concurrency).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	t.Settings = settings
	return nil
}

func (s *Storage) GetTenant(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	t, err := scanTenant(row)
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (s *Storage) ListTenants(ctx context.Context) ([]model.Tenant, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+tenantColumns+` FROM tenants ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []model.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, *t)
	}
	return tenants, rows.Err()
}

func (s *Storage) UpdateTenant(ctx context.Context, t *model.Tenant) error {
	err := s.DB.QueryRowContext(ctx, `
		UPDATE tenants
		SET name = $1, domain = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`, t.Name, t.Domain, t.ID).Scan(&t.UpdatedAt)
	return mapError(err)
}

func (s *Storage) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	return expectOne(s.DB.ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, id))
}

// UpdateTenantSettings applies fn to the stored settings inside a row lock,
// so concurrent merges do not lose each other's keys.
func (s *Storage) UpdateTenantSettings(ctx context.Context, id uuid.UUID, fn func(current []byte) ([]byte, error)) ([]byte, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current []byte
	if err := tx.QueryRowContext(ctx, `SELECT settings FROM tenants WHERE id = $1 FOR UPDATE`, id).Scan(&current); err != nil {
		return nil, mapError(err)
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE tenants SET settings = $1, updated_at = NOW() WHERE id = $2`, next, id); err != nil {
		return nil, mapError(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit settings: %w", err)
	}
	return next, nil
}

func (s *Storage) UpdateTenantLogo(ctx context.Context, id uuid.UUID, logoURL string) error {
	return expectOne(s.DB.ExecContext(ctx, `
		UPDATE tenants SET logo_url = $1, updated_at = NOW() WHERE id = $2
	`, logoURL, id))
}

func (s *Storage) UpdateTenantConcurrency(ctx context.Context, id uuid.UUID, workers int) error {
	return expectOne(s.DB.ExecContext(ctx, `
		UPDATE tenants
		SET concurrency = $1
		WHERE id = $2
	`, workers, id))
}

