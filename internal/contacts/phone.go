package contacts

import (
	"strings"

	"go.mau.fi/whatsmeow/types"
)

// MinPartialDigits is the shortest number (and the suffix length) used for
// partial matching. Nine digits covers a subscriber number without its
// trunk or country prefix.
const MinPartialDigits = 9

// NormalizePhone reduces a phone number to international digits. A leading
// + or 00 marks the number as already international; a single leading 0 is a
// trunk prefix replaced by countryCode. Returns "" when no digits remain.
func NormalizePhone(raw, countryCode string) string {
	raw = strings.TrimSpace(raw)
	international := strings.HasPrefix(raw, "+")

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case digits == "":
		return ""
	case international:
		return digits
	case strings.HasPrefix(digits, "00"):
		return digits[2:]
	case strings.HasPrefix(digits, "0") && countryCode != "":
		return countryCode + digits[1:]
	}
	return digits
}

// PartialMatch reports whether two normalized numbers share the same
// trailing MinPartialDigits digits.
func PartialMatch(a, b string) bool {
	if len(a) < MinPartialDigits || len(b) < MinPartialDigits {
		return false
	}
	return a[len(a)-MinPartialDigits:] == b[len(b)-MinPartialDigits:]
}

// JIDKind classifies a WhatsApp address.
type JIDKind int

const (
	JIDInvalid JIDKind = iota
	JIDUser
	JIDHidden
	JIDBroadcast
	JIDGroup
)

// ParsedJID is a WhatsApp address reduced to its canonical form.
type ParsedJID struct {
	Canonical string
	Phone     string
	Kind      JIDKind
}

// ParseJID canonicalizes a JID. Device suffixes are dropped and legacy c.us
// addresses are rewritten to s.whatsapp.net. A bare number is treated as a
// user JID. Hidden (lid) and broadcast addresses carry no phone.
func ParseJID(raw string) ParsedJID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParsedJID{}
	}
	if !strings.Contains(raw, "@") {
		phone := NormalizePhone("+"+raw, "")
		if phone == "" {
			return ParsedJID{}
		}
		return ParsedJID{
			Canonical: types.NewJID(phone, types.DefaultUserServer).String(),
			Phone:     phone,
			Kind:      JIDUser,
		}
	}

	jid, err := types.ParseJID(raw)
	if err != nil {
		return ParsedJID{}
	}

	switch jid.Server {
	case types.DefaultUserServer, types.LegacyUserServer:
		phone := NormalizePhone("+"+jid.User, "")
		if phone == "" {
			return ParsedJID{}
		}
		return ParsedJID{
			Canonical: types.NewJID(phone, types.DefaultUserServer).String(),
			Phone:     phone,
			Kind:      JIDUser,
		}
	case types.HiddenUserServer:
		return ParsedJID{Canonical: jid.ToNonAD().String(), Kind: JIDHidden}
	case types.BroadcastServer:
		return ParsedJID{Canonical: jid.ToNonAD().String(), Kind: JIDBroadcast}
	case types.GroupServer:
		return ParsedJID{Canonical: jid.String(), Kind: JIDGroup}
	}
	return ParsedJID{}
}
