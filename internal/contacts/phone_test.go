package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		raw, cc, want string
	}{
		{"+62 812-3456-7890", "62", "6281234567890"},
		{"0812 3456 7890", "62", "6281234567890"},
		{"0062812345678", "62", "62812345678"},
		{"81234567890", "62", "81234567890"},
		{"(021) 555-1234", "62", "62215551234"},
		{"0812", "", "0812"},
		{"n/a", "62", ""},
		{"", "62", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.raw, tc.cc), tc.raw)
	}
}

func TestPartialMatch(t *testing.T) {
	assert.True(t, PartialMatch("6281234567890", "81234567890"))
	assert.True(t, PartialMatch("6281234567890", "6281234567890"))
	assert.False(t, PartialMatch("6281234567890", "6281234567899"))
	assert.False(t, PartialMatch("12345678", "12345678"), "too short to match partially")
}

func TestParseJID(t *testing.T) {
	p := ParseJID("6281234567890@s.whatsapp.net")
	assert.Equal(t, JIDUser, p.Kind)
	assert.Equal(t, "6281234567890", p.Phone)
	assert.Equal(t, "6281234567890@s.whatsapp.net", p.Canonical)

	p = ParseJID("6281234567890:12@s.whatsapp.net")
	assert.Equal(t, "6281234567890@s.whatsapp.net", p.Canonical, "device suffix dropped")

	p = ParseJID("6281234567890@c.us")
	assert.Equal(t, "6281234567890@s.whatsapp.net", p.Canonical, "legacy server rewritten")

	p = ParseJID("6281234567890")
	assert.Equal(t, JIDUser, p.Kind)
	assert.Equal(t, "6281234567890@s.whatsapp.net", p.Canonical)

	p = ParseJID("120363025246125486@g.us")
	assert.Equal(t, JIDGroup, p.Kind)

	p = ParseJID("172839405@lid")
	assert.Equal(t, JIDHidden, p.Kind)
	assert.Empty(t, p.Phone)
	assert.Equal(t, "172839405@lid", p.Canonical)

	p = ParseJID("123456789@broadcast")
	assert.Equal(t, JIDBroadcast, p.Kind)
	assert.Empty(t, p.Phone)
	assert.Equal(t, "123456789@broadcast", p.Canonical)

	assert.Equal(t, JIDInvalid, ParseJID("").Kind)
	assert.Equal(t, JIDInvalid, ParseJID("abc@s.whatsapp.net").Kind)
}
