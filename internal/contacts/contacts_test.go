package contacts

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenant-platform/internal/model"
)

func findByJID(rows []TenantContact, jid string) *TenantContact {
	for i := range rows {
		if rows[i].JID == jid {
			return &rows[i]
		}
	}
	return nil
}

func TestBuildExactMatchMergesUserAndWhatsApp(t *testing.T) {
	userID := uuid.New()
	rows, sum := Build(Input{
		DefaultCountryCode: "62",
		Users:              []model.User{{ID: userID, Name: "Budi", Phone: "0812-3456-7890", Email: "Budi@Example.com"}},
		WhatsApp:           []model.WhatsAppContact{{JID: "6281234567890:3@s.whatsapp.net", PushName: "budi wa"}},
	})

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "Budi", row.Name)
	assert.Equal(t, "6281234567890", row.Phone)
	assert.Equal(t, "budi@example.com", row.Email)
	assert.Equal(t, &userID, row.UserID)
	assert.Equal(t, MatchExact, row.Match)
	assert.Equal(t, []string{SourceUser, SourceWhatsApp}, row.Sources)
	assert.Equal(t, Summary{Exact: 1}, sum)
}

func TestBuildPartialMatchRequiresUniqueCandidate(t *testing.T) {
	rows, sum := Build(Input{
		Chatbot: []model.ChatbotContact{{ID: uuid.New(), Name: "Sari", Phone: "81234567890"}},
		WhatsApp: []model.WhatsAppContact{
			{JID: "6281234567890@s.whatsapp.net", PushName: "Sari"},
		},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, MatchPartial, rows[0].Match)
	assert.Equal(t, Summary{Partial: 1}, sum)

	rows, sum = Build(Input{
		Chatbot: []model.ChatbotContact{
			{ID: uuid.New(), Name: "A", Phone: "81234567890"},
			{ID: uuid.New(), Name: "B", Phone: "11234567890"},
		},
		WhatsApp: []model.WhatsAppContact{{JID: "6281234567890@s.whatsapp.net"}},
	})
	assert.Len(t, rows, 3, "ambiguous partial match must not merge")
	assert.Equal(t, Summary{None: 1}, sum)
}

func TestBuildCollapsesChatbotAndUserByEmail(t *testing.T) {
	rows, _ := Build(Input{
		Users:   []model.User{{ID: uuid.New(), Name: "Rina", Email: "rina@example.com"}},
		Chatbot: []model.ChatbotContact{{ID: uuid.New(), Name: "rina bot", Email: " RINA@example.com "}},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, "Rina", rows[0].Name)
	assert.NotNil(t, rows[0].UserID)
	assert.NotNil(t, rows[0].ChatbotContactID)
	assert.ElementsMatch(t, []string{SourceUser, SourceChatbot}, rows[0].Sources)
}

func TestBuildSkipsGroupsAndKeepsHiddenJIDs(t *testing.T) {
	rows, sum := Build(Input{
		WhatsApp: []model.WhatsAppContact{
			{JID: "120363025246125486@g.us", PushName: "family"},
			{JID: "172839405@lid", PushName: "hidden"},
			{JID: "123456789@broadcast", PushName: "promo list"},
			{JID: "not a jid@@", PushName: "broken"},
		},
	})
	require.Len(t, rows, 3)
	assert.NotNil(t, findByJID(rows, "172839405@lid"))

	list := findByJID(rows, "123456789@broadcast")
	require.NotNil(t, list)
	assert.Empty(t, list.Phone)
	assert.Equal(t, MatchNone, list.Match)
	assert.Equal(t, "promo list", list.PushName)
	assert.Equal(t, Summary{None: 3}, sum)
}

func TestBuildAttachesStatsAndSorts(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	rows, _ := Build(Input{
		Users: []model.User{{ID: uuid.New(), Name: "Zed", Phone: "+6281111111111"}},
		WhatsApp: []model.WhatsAppContact{
			{JID: "6281111111111@s.whatsapp.net"},
			{JID: "6282222222222@s.whatsapp.net", PushName: "Ann"},
		},
		Stats: []model.ChatStat{
			{JID: "6281111111111@s.whatsapp.net", MessageCount: 3, LastMessageAt: older},
			{JID: "6282222222222@s.whatsapp.net", MessageCount: 1, LastMessageAt: newer},
			{JID: "6283333333333@s.whatsapp.net", MessageCount: 2, LastMessageAt: older},
		},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "Ann", rows[0].Name)
	assert.Equal(t, 1, rows[0].MessageCount)

	zed := findByJID(rows, "6281111111111@s.whatsapp.net")
	require.NotNil(t, zed)
	assert.Equal(t, "Zed", zed.Name)
	assert.Equal(t, 3, zed.MessageCount)

	stray := findByJID(rows, "6283333333333@s.whatsapp.net")
	require.NotNil(t, stray, "chat history without a contact still yields a row")
	assert.Equal(t, "6283333333333", stray.Name)
	assert.Equal(t, MatchNone, stray.Match)
}

func TestBuildDeduplicatesWhatsAppDevices(t *testing.T) {
	rows, sum := Build(Input{
		WhatsApp: []model.WhatsAppContact{
			{JID: "6281234567890@s.whatsapp.net"},
			{JID: "6281234567890:7@s.whatsapp.net", PushName: "late name"},
		},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, "late name", rows[0].PushName)
	assert.Equal(t, Summary{None: 1}, sum)
}
