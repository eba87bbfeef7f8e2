package storage

import (
	"context"

	"github.com/google/uuid"

	"tenant-platform/internal/model"
)

func (s *Storage) ListUsers(ctx context.Context, tenantID uuid.UUID) ([]model.User, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, tenant_id, name, phone, email, wallet_address, created_at
		FROM users WHERE tenant_id = $1
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.TenantID, &u.Name, &u.Phone, &u.Email, &u.WalletAddress, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Storage) ListChatbotContacts(ctx context.Context, tenantID uuid.UUID) ([]model.ChatbotContact, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, tenant_id, name, phone, email, created_at
		FROM chatbot_contacts WHERE tenant_id = $1
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ChatbotContact
	for rows.Next() {
		var c model.ChatbotContact
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Storage) ListWhatsAppContacts(ctx context.Context, tenantID uuid.UUID) ([]model.WhatsAppContact, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, tenant_id, jid, push_name, created_at
		FROM whatsapp_contacts WHERE tenant_id = $1
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WhatsAppContact
	for rows.Next() {
		var c model.WhatsAppContact
		if err := rows.Scan(&c.ID, &c.TenantID, &c.JID, &c.PushName, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpsertWhatsAppContact records a JID for the tenant, refreshing the push
// name when a non-empty one is supplied.
func (s *Storage) UpsertWhatsAppContact(ctx context.Context, c *model.WhatsAppContact) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO whatsapp_contacts (id, tenant_id, jid, push_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant_id, jid) DO UPDATE
		SET push_name = COALESCE(NULLIF(EXCLUDED.push_name, ''), whatsapp_contacts.push_name)
		RETURNING id, created_at
	`, c.ID, c.TenantID, c.JID, c.PushName).Scan(&c.ID, &c.CreatedAt)
	return mapError(err)
}

func (s *Storage) ChatStats(ctx context.Context, tenantID uuid.UUID) ([]model.ChatStat, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT jid, COUNT(*), MAX(created_at)
		FROM tenant_user_chat_messages
		WHERE tenant_id = $1
		GROUP BY jid
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ChatStat
	for rows.Next() {
		var st model.ChatStat
		if err := rows.Scan(&st.JID, &st.MessageCount, &st.LastMessageAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
