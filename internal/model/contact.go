// internal/model/contact.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatbotContact struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type WhatsAppContact struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	JID       string    `db:"jid" json:"jid"`
	PushName  string    `db:"push_name" json:"push_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type User struct {
	ID            uuid.UUID `db:"id" json:"id"`
	TenantID      uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name          string    `db:"name" json:"name"`
	Phone         string    `db:"phone" json:"phone"`
	Email         string    `db:"email" json:"email"`
	WalletAddress string    `db:"wallet_address" json:"wallet_address,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ChatStat aggregates tenant_user_chat_messages per JID.
type ChatStat struct {
	JID           string    `json:"jid"`
	MessageCount  int       `json:"message_count"`
	LastMessageAt time.Time `json:"last_message_at"`
}
