package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"tenant-platform/internal/model"
)

const applicationColumns = `id, tenant_id, name, client_id, client_secret_hash, redirect_uris,
	post_logout_redirect_uris, login_methods, branding, default_locale, created_at, updated_at`

func scanApplication(row rowScanner) (*model.Application, error) {
	var a model.Application
	var branding []byte
	err := row.Scan(
		&a.ID, &a.TenantID, &a.Name, &a.ClientID, &a.ClientSecretHash,
		pq.Array(&a.RedirectURIs), pq.Array(&a.PostLogoutRedirectURIs), pq.Array(&a.LoginMethods),
		&branding, &a.DefaultLocale, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(branding) > 0 {
		if err := json.Unmarshal(branding, &a.Branding); err != nil {
			return nil, fmt.Errorf("decode branding for %s: %w", a.ID, err)
		}
	}
	return &a, nil
}

func (s *Storage) CreateApplication(ctx context.Context, a *model.Application) error {
	branding, err := json.Marshal(a.Branding)
	if err != nil {
		return err
	}
	err = s.DB.QueryRowContext(ctx, `
		INSERT INTO applications (id, tenant_id, name, client_id, client_secret_hash, redirect_uris,
			post_logout_redirect_uris, login_methods, branding, default_locale)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`, a.ID, a.TenantID, a.Name, a.ClientID, a.ClientSecretHash,
		pq.Array(a.RedirectURIs), pq.Array(a.PostLogoutRedirectURIs), pq.Array(a.LoginMethods),
		branding, a.DefaultLocale,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	return mapError(err)
}

func (s *Storage) GetApplication(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (s *Storage) GetApplicationByClientID(ctx context.Context, clientID string) (*model.Application, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE client_id = $1`, clientID)
	a, err := scanApplication(row)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (s *Storage) ListApplications(ctx context.Context, tenantID uuid.UUID) ([]model.Application, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE tenant_id = $1
		ORDER BY created_at
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

func (s *Storage) UpdateApplication(ctx context.Context, a *model.Application) error {
	branding, err := json.Marshal(a.Branding)
	if err != nil {
		return err
	}
	err = s.DB.QueryRowContext(ctx, `
		UPDATE applications
		SET name = $1, redirect_uris = $2, post_logout_redirect_uris = $3, login_methods = $4,
			branding = $5, default_locale = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`, a.Name, pq.Array(a.RedirectURIs), pq.Array(a.PostLogoutRedirectURIs), pq.Array(a.LoginMethods),
		branding, a.DefaultLocale, a.ID,
	).Scan(&a.UpdatedAt)
	return mapError(err)
}

func (s *Storage) UpdateApplicationSecret(ctx context.Context, id uuid.UUID, secretHash string) error {
	return expectOne(s.DB.ExecContext(ctx, `
		UPDATE applications SET client_secret_hash = $1, updated_at = NOW() WHERE id = $2
	`, secretHash, id))
}

func (s *Storage) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	return expectOne(s.DB.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id))
}
