package manager

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"

	"tenant-platform/internal/contacts"
	"tenant-platform/internal/model"
	"tenant-platform/internal/worker"
)

// chatHandler ingests ChatEvents from a tenant's queue: the sender becomes a
// WhatsApp contact and the message lands in the chat history.
func (tm *TenantManager) chatHandler(tenantID uuid.UUID) worker.Handler {
	return func(ctx context.Context, msg amqp.Delivery) error {
		var ev model.ChatEvent
		if err := json.Unmarshal(msg.Body, &ev); err != nil {
			return fmt.Errorf("decode chat event: %w", err)
		}

		jid := contacts.ParseJID(ev.JID)
		switch jid.Kind {
		case contacts.JIDInvalid:
			return fmt.Errorf("invalid jid %q", ev.JID)
		case contacts.JIDGroup:
			log.Debug().Str("tenant", tenantID.String()).Str("jid", ev.JID).Msg("skipping group message")
			return nil
		}

		switch ev.Direction {
		case "":
			ev.Direction = model.DirectionInbound
		case model.DirectionInbound, model.DirectionOutbound:
		default:
			return fmt.Errorf("invalid direction %q", ev.Direction)
		}

		at := ev.At
		if at.IsZero() {
			at = msg.Timestamp
		}
		if at.IsZero() {
			at = time.Now()
		}

		if err := tm.storage.UpsertWhatsAppContact(ctx, &model.WhatsAppContact{
			TenantID: tenantID,
			JID:      jid.Canonical,
			PushName: ev.PushName,
		}); err != nil {
			return fmt.Errorf("upsert contact: %w", err)
		}

		m := &model.ChatMessage{
			ID:        uuid.New(),
			TenantID:  tenantID,
			JID:       jid.Canonical,
			Direction: ev.Direction,
			Body:      ev.Body,
			CreatedAt: at.UTC(),
		}
		if err := tm.storage.InsertChatMessage(ctx, m); err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
		return nil
	}
}
