package storage

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"tenant-platform/internal/model"
)

func (s *Storage) InsertChatMessage(ctx context.Context, m *model.ChatMessage) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO tenant_user_chat_messages (id, tenant_id, jid, user_id, direction, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.DB.ExecContext(ctx, query, m.ID, m.TenantID, m.JID, m.UserID, m.Direction, m.Body, m.CreatedAt)
	return mapError(err)
}

// ErrInvalidCursor is returned for a cursor this package did not issue.
var ErrInvalidCursor = fmt.Errorf("%w: invalid cursor", model.ErrValidation)

// EncodeCursor packs the keyset position (created_at, id) of the last row on
// a page.
func EncodeCursor(createdAt time.Time, id uuid.UUID) string {
	raw := strconv.FormatInt(createdAt.UnixNano(), 10) + ":" + id.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor reverses EncodeCursor.
func DecodeCursor(cursor string) (time.Time, uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, ErrInvalidCursor
	}
	ts, id, ok := strings.Cut(string(raw), ":")
	if !ok {
		return time.Time{}, uuid.Nil, ErrInvalidCursor
	}
	nanos, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, ErrInvalidCursor
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return time.Time{}, uuid.Nil, ErrInvalidCursor
	}
	return time.Unix(0, nanos).UTC(), uid, nil
}

// ListChatMessagesPaginated retrieves messages oldest first using a
// (created_at, id) keyset cursor.
func (s *Storage) ListChatMessagesPaginated(ctx context.Context, tenantID uuid.UUID, cursor string, limit int) ([]model.ChatMessage, string, error) {
	var rows *sql.Rows
	var err error
	if cursor == "" {
		rows, err = s.DB.QueryContext(ctx, `
			SELECT id, tenant_id, jid, user_id, direction, body, created_at
			FROM tenant_user_chat_messages
			WHERE tenant_id = $1
			ORDER BY created_at, id
			LIMIT $2
		`, tenantID, limit)
	} else {
		after, afterID, derr := DecodeCursor(cursor)
		if derr != nil {
			return nil, "", derr
		}
		rows, err = s.DB.QueryContext(ctx, `
			SELECT id, tenant_id, jid, user_id, direction, body, created_at
			FROM tenant_user_chat_messages
			WHERE tenant_id = $1
			  AND (created_at, id) > ($2::timestamptz, $3::uuid)
			ORDER BY created_at, id
			LIMIT $4
		`, tenantID, after, afterID, limit)
	}
	if err != nil {
		return nil, "", fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var messages []model.ChatMessage
	var last model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		var userID uuid.NullUUID
		if err := rows.Scan(&m.ID, &m.TenantID, &m.JID, &userID, &m.Direction, &m.Body, &m.CreatedAt); err != nil {
			return nil, "", fmt.Errorf("scan failed: %w", err)
		}
		if userID.Valid {
			id := userID.UUID
			m.UserID = &id
		}
		last = m
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(messages) == limit {
		nextCursor = EncodeCursor(last.CreatedAt, last.ID)
	}

	return messages, nextCursor, nil
}
