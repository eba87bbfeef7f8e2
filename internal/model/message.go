// internal/model/message.go
package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// ChatMessage is a row of tenant_user_chat_messages.
type ChatMessage struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	TenantID  uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	JID       string     `db:"jid" json:"jid"`
	UserID    *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	Direction string     `db:"direction" json:"direction"`
	Body      string     `db:"body" json:"body"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// ChatEvent is the payload carried on a tenant's chat queue.
type ChatEvent struct {
	JID       string    `json:"jid"`
	PushName  string    `json:"push_name"`
	Direction string    `json:"direction"`
	Body      string    `json:"body"`
	At        time.Time `json:"at"`
}
