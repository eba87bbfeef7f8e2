package portal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	fs := NewFileStore(path)

	s, err := fs.Load()
	require.NoError(t, err)
	assert.Nil(t, s)

	require.NoError(t, fs.Save(&Session{AccessToken: "a", RefreshToken: "r", User: &User{ID: "u1", Role: RoleInvestor}}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"accessToken": "a"`)
	assert.Contains(t, string(raw), `"refreshToken": "r"`)

	s, err = fs.Load()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "u1", s.User.ID)

	require.NoError(t, fs.Clear())
	require.NoError(t, fs.Clear())
	s, err = fs.Load()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}
