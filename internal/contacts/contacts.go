// Package contacts builds the de-duplicated contact list shown for a tenant
// from users, chatbot contacts, WhatsApp contacts and chat history.
//
// Matching is best effort. Unparseable phones and JIDs never fail a build;
// they surface as unmatched rows.
package contacts

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"tenant-platform/internal/model"
)

const (
	SourceUser     = "user"
	SourceChatbot  = "chatbot"
	SourceWhatsApp = "whatsapp"

	MatchExact   = "exact"
	MatchPartial = "partial"
	MatchNone    = "none"
)

type TenantContact struct {
	Key              string     `json:"key"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone,omitempty"`
	Email            string     `json:"email,omitempty"`
	JID              string     `json:"jid,omitempty"`
	UserID           *uuid.UUID `json:"user_id,omitempty"`
	ChatbotContactID *uuid.UUID `json:"chatbot_contact_id,omitempty"`
	PushName         string     `json:"push_name,omitempty"`
	Sources          []string   `json:"sources"`
	MessageCount     int        `json:"message_count"`
	LastMessageAt    *time.Time `json:"last_message_at,omitempty"`
	Match            string     `json:"match,omitempty"`
}

type Input struct {
	Users              []model.User
	Chatbot            []model.ChatbotContact
	WhatsApp           []model.WhatsAppContact
	Stats              []model.ChatStat
	DefaultCountryCode string
}

// Summary counts WhatsApp contacts by how they were matched.
type Summary struct {
	Exact   int
	Partial int
	None    int
}

type builder struct {
	cc      string
	rows    []*TenantContact
	byPhone map[string]*TenantContact
	byEmail map[string]*TenantContact
	byJID   map[string]*TenantContact
	summary Summary
}

// Build merges the inputs into one row per person.
func Build(in Input) ([]TenantContact, Summary) {
	b := &builder{
		cc:      in.DefaultCountryCode,
		byPhone: make(map[string]*TenantContact),
		byEmail: make(map[string]*TenantContact),
		byJID:   make(map[string]*TenantContact),
	}

	for _, u := range in.Users {
		id := u.ID
		row := b.attachOrCreate("user:"+u.ID.String(), u.Phone, u.Email)
		row.UserID = &id
		if row.Name == "" {
			row.Name = u.Name
		}
		addSource(row, SourceUser)
	}

	for _, c := range in.Chatbot {
		id := c.ID
		row := b.attachOrCreate("chatbot:"+c.ID.String(), c.Phone, c.Email)
		if row.ChatbotContactID == nil {
			row.ChatbotContactID = &id
		}
		if row.Name == "" {
			row.Name = c.Name
		}
		addSource(row, SourceChatbot)
	}

	wa := in.WhatsApp
	known := make(map[string]bool, len(wa))
	for _, c := range wa {
		known[ParseJID(c.JID).Canonical] = true
	}
	for _, s := range in.Stats {
		if p := ParseJID(s.JID); p.Canonical != "" && !known[p.Canonical] {
			known[p.Canonical] = true
			wa = append(wa, model.WhatsAppContact{JID: s.JID})
		}
	}
	for _, c := range wa {
		b.addWhatsApp(c)
	}

	for _, s := range in.Stats {
		row, ok := b.byJID[ParseJID(s.JID).Canonical]
		if !ok {
			continue
		}
		row.MessageCount += s.MessageCount
		if !s.LastMessageAt.IsZero() && (row.LastMessageAt == nil || s.LastMessageAt.After(*row.LastMessageAt)) {
			at := s.LastMessageAt
			row.LastMessageAt = &at
		}
	}

	out := make([]TenantContact, 0, len(b.rows))
	for _, r := range b.rows {
		if r.Name == "" {
			r.Name = firstNonEmpty(r.PushName, r.Phone, r.Email, r.JID)
		}
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].LastMessageAt, out[j].LastMessageAt
		switch {
		case ti != nil && tj == nil:
			return true
		case ti == nil && tj != nil:
			return false
		case ti != nil && tj != nil && !ti.Equal(*tj):
			return ti.After(*tj)
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, b.summary
}

func (b *builder) attachOrCreate(key, rawPhone, rawEmail string) *TenantContact {
	phone := NormalizePhone(rawPhone, b.cc)
	email := strings.ToLower(strings.TrimSpace(rawEmail))

	row := b.byPhone[phone]
	if row == nil && email != "" {
		row = b.byEmail[email]
	}
	if row == nil {
		row = &TenantContact{Key: key}
		b.rows = append(b.rows, row)
	}

	if phone != "" {
		if row.Phone == "" {
			row.Phone = phone
		}
		if _, taken := b.byPhone[phone]; !taken {
			b.byPhone[phone] = row
		}
	}
	if email != "" {
		if row.Email == "" {
			row.Email = email
		}
		if _, taken := b.byEmail[email]; !taken {
			b.byEmail[email] = row
		}
	}
	return row
}

func (b *builder) addWhatsApp(c model.WhatsAppContact) {
	p := ParseJID(c.JID)
	if p.Kind == JIDGroup {
		return
	}
	if p.Canonical == "" {
		// Unparseable: keep the raw address so the operator can see it.
		b.summary.None++
		b.rows = append(b.rows, &TenantContact{
			Key:      "whatsapp:" + c.JID,
			JID:      c.JID,
			PushName: c.PushName,
			Sources:  []string{SourceWhatsApp},
			Match:    MatchNone,
		})
		return
	}
	if row, seen := b.byJID[p.Canonical]; seen {
		if row.PushName == "" {
			row.PushName = c.PushName
		}
		return
	}

	row, match := b.findByPhone(p.Phone)
	if row == nil {
		row = &TenantContact{Key: "whatsapp:" + p.Canonical, Phone: p.Phone}
		b.rows = append(b.rows, row)
		if p.Phone != "" {
			if _, taken := b.byPhone[p.Phone]; !taken {
				b.byPhone[p.Phone] = row
			}
		}
	}

	switch match {
	case MatchExact:
		b.summary.Exact++
	case MatchPartial:
		b.summary.Partial++
	default:
		b.summary.None++
	}
	row.Match = match
	row.JID = p.Canonical
	row.PushName = c.PushName
	addSource(row, SourceWhatsApp)
	b.byJID[p.Canonical] = row
}

// findByPhone looks for an existing row not yet linked to a JID. A partial
// match only counts when exactly one row qualifies.
func (b *builder) findByPhone(phone string) (*TenantContact, string) {
	if phone == "" {
		return nil, MatchNone
	}
	if row, ok := b.byPhone[phone]; ok && row.JID == "" {
		return row, MatchExact
	}

	var candidate *TenantContact
	for _, row := range b.rows {
		if row.JID != "" || row.Phone == "" || !PartialMatch(row.Phone, phone) {
			continue
		}
		if candidate != nil && candidate != row {
			return nil, MatchNone
		}
		candidate = row
	}
	if candidate != nil {
		return candidate, MatchPartial
	}
	return nil, MatchNone
}

func addSource(row *TenantContact, src string) {
	for _, s := range row.Sources {
		if s == src {
			return
		}
	}
	row.Sources = append(row.Sources, src)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
